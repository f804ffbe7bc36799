package config

import "time"

// ServerConfig holds HTTP listener and request-limit settings.
type ServerConfig struct {
	Port             string        `yaml:"port,omitempty"`
	MaxMessageLength int           `yaml:"max_message_length,omitempty"` // in runes
	AllowedOrigins   []string      `yaml:"allowed_origins,omitempty"`    // CORS; empty allows all
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// DefaultServerConfig returns the built-in server settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:             "10000",
		MaxMessageLength: 4000,
		ShutdownTimeout:  10 * time.Second,
	}
}

// AllowsAllOrigins reports whether CORS should accept every origin.
func (c *ServerConfig) AllowsAllOrigins() bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
