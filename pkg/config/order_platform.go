package config

import (
	"fmt"
	"strings"
	"time"
)

// OrderPlatformConfig holds the BigCommerce store credentials.
// Missing credentials are not a startup error: lookups answer NotConfigured instead.
type OrderPlatformConfig struct {
	StoreHash   string        `yaml:"store_hash,omitempty"`
	AccessToken string        `yaml:"access_token,omitempty"`
	ClientID    string        `yaml:"client_id,omitempty"` // sent as X-Auth-Client when set
	BaseURL     string        `yaml:"base_url,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// DefaultOrderPlatformConfig returns the built-in order platform settings.
func DefaultOrderPlatformConfig() *OrderPlatformConfig {
	return &OrderPlatformConfig{
		Timeout: 15 * time.Second,
	}
}

// Configured reports whether the required credentials are present.
func (c *OrderPlatformConfig) Configured() bool {
	return c != nil && c.StoreHash != "" && c.AccessToken != ""
}

// ResolvedBaseURL returns the explicit base URL, or the v2 API root derived
// from the store hash. The trailing slash is always trimmed.
func (c *OrderPlatformConfig) ResolvedBaseURL() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://api.bigcommerce.com/stores/%s/v2", c.StoreHash)
	}
	return strings.TrimRight(base, "/")
}
