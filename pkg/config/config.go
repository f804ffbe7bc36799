package config

// Config is the umbrella configuration object built once at startup by
// Initialize and passed explicitly to every component. It is never mutated
// after Initialize returns.
type Config struct {
	configDir string // Configuration directory path (for reference)

	Server        *ServerConfig
	LLM           *LLMConfig
	OrderPlatform *OrderPlatformConfig
	Assistant     *AssistantConfig
	Intent        *IntentConfig
}

// Stats summarizes the loaded configuration for startup logging and /health.
type Stats struct {
	OrderLookupConfigured bool
	LLMConfigured         bool
	IntentStrategy        string
	Model                 string
}

// Stats returns configuration statistics for logging/monitoring
func (c *Config) Stats() Stats {
	s := Stats{}
	if c.OrderPlatform != nil {
		s.OrderLookupConfigured = c.OrderPlatform.Configured()
	}
	if c.LLM != nil {
		s.LLMConfigured = c.LLM.Configured()
		s.Model = c.LLM.Model
	}
	if c.Intent != nil {
		s.IntentStrategy = c.Intent.Strategy
	}
	return s
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}
