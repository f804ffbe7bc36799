package config

import "time"

// LLMConfig defines the chat-completion provider.
// BaseURL is empty for the public OpenAI endpoint; set it for
// OpenAI-compatible gateways.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key,omitempty"`
	Model       string        `yaml:"model,omitempty"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	Temperature *float32      `yaml:"temperature,omitempty"`
	MaxTokens   int           `yaml:"max_tokens,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// DefaultLLMConfig returns the built-in provider settings.
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		Model:   "gpt-4.1-mini",
		Timeout: 60 * time.Second,
	}
}

// Configured reports whether an API key is present.
func (c *LLMConfig) Configured() bool {
	return c.APIKey != ""
}
