// Package masking redacts credentials from text before it reaches the logs.
package masking

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

const secretReplacement = "[REDACTED]"

// Service applies literal secret redaction followed by the built-in regex sweep.
// Created once at startup; safe for concurrent use.
type Service struct {
	secrets  []string
	patterns []*CompiledPattern
}

// NewService creates a masking service that always redacts the given literal
// secrets (configured tokens and keys). Empty secrets are ignored.
func NewService(secrets ...string) *Service {
	s := &Service{patterns: compileBuiltinPatterns()}
	for _, secret := range secrets {
		if strings.TrimSpace(secret) != "" {
			s.secrets = append(s.secrets, secret)
		}
	}

	slog.Debug("Masking service initialized",
		"builtin_patterns", len(s.patterns),
		"literal_secrets", len(s.secrets))

	return s
}

// Mask returns text with every configured secret and credential-shaped token replaced.
// A nil Service returns text unchanged.
func (s *Service) Mask(text string) string {
	if s == nil || text == "" {
		return text
	}

	masked := text
	for _, secret := range s.secrets {
		masked = strings.ReplaceAll(masked, secret, secretReplacement)
	}
	for _, pattern := range s.patterns {
		masked = pattern.Regex.ReplaceAllString(masked, pattern.Replacement)
	}
	return masked
}

// MaskError masks err's message. Returns "" for a nil error.
func (s *Service) MaskError(err error) string {
	if err == nil {
		return ""
	}
	return s.Mask(err.Error())
}

// Truncate shortens text to at most maxBytes without splitting a UTF-8 rune.
func Truncate(text string, maxBytes int) string {
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "...(truncated)"
}
