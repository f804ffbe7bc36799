package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/thundertactical/thunder-ai-backend/pkg/intent"
)

// ConfigValidator validates configuration with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs validation (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateServer(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := v.validateLLM(); err != nil {
		return fmt.Errorf("LLM validation failed: %w", err)
	}

	if err := v.validateOrderPlatform(); err != nil {
		return fmt.Errorf("order platform validation failed: %w", err)
	}

	if err := v.validateIntent(); err != nil {
		return fmt.Errorf("intent validation failed: %w", err)
	}

	return nil
}

func (v *ConfigValidator) validateServer() error {
	s := v.cfg.Server
	if s == nil {
		return NewValidationError("server", "", ErrMissingRequiredField)
	}

	port, err := strconv.Atoi(s.Port)
	if err != nil || port < 1 || port > 65535 {
		return NewValidationError("server", "port", fmt.Errorf("%w: %q is not a TCP port", ErrInvalidValue, s.Port))
	}

	if s.MaxMessageLength <= 0 {
		return NewValidationError("server", "max_message_length", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}

	if s.ShutdownTimeout <= 0 {
		return NewValidationError("server", "shutdown_timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}

	return nil
}

func (v *ConfigValidator) validateLLM() error {
	l := v.cfg.LLM
	if l == nil {
		return NewValidationError("llm", "", ErrMissingRequiredField)
	}

	if l.Model == "" {
		return NewValidationError("llm", "model", ErrMissingRequiredField)
	}

	if l.Temperature != nil && (*l.Temperature < 0 || *l.Temperature > 2) {
		return NewValidationError("llm", "temperature", fmt.Errorf("%w: must be between 0 and 2", ErrInvalidValue))
	}

	if l.MaxTokens < 0 {
		return NewValidationError("llm", "max_tokens", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}

	if l.Timeout <= 0 {
		return NewValidationError("llm", "timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}

	if l.BaseURL != "" {
		if err := validateHTTPURL(l.BaseURL); err != nil {
			return NewValidationError("llm", "base_url", err)
		}
	}

	return nil
}

func (v *ConfigValidator) validateOrderPlatform() error {
	o := v.cfg.OrderPlatform
	if o == nil {
		return NewValidationError("order_platform", "", ErrMissingRequiredField)
	}

	if o.Timeout <= 0 {
		return NewValidationError("order_platform", "timeout", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}

	if o.BaseURL != "" {
		if err := validateHTTPURL(o.BaseURL); err != nil {
			return NewValidationError("order_platform", "base_url", err)
		}
	}

	return nil
}

func (v *ConfigValidator) validateIntent() error {
	i := v.cfg.Intent
	if i == nil {
		return NewValidationError("intent", "", ErrMissingRequiredField)
	}

	if !intent.IsValidStrategy(i.Strategy) {
		return NewValidationError("intent", "strategy", fmt.Errorf("%w: unknown strategy %q", ErrInvalidValue, i.Strategy))
	}

	// Building the detector catches keyword lists that are empty after trimming
	if _, err := intent.New(i.Strategy, i.Keywords); err != nil {
		return NewValidationError("intent", "keywords", err)
	}

	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidValue, raw)
	}
	return nil
}
