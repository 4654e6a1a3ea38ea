package config

import "fmt"

// APIConfig defines settings for the market-data API client.
type APIConfig struct {
	// BaseURL is the root of the market-data API, without a trailing slash.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `json:"timeout_seconds"`
	// RateLimitPerSecond caps outgoing requests. The public archive throttles
	// aggressive clients, so the default is deliberately low.
	RateLimitPerSecond int `json:"rate_limit_per_second"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 30
	}
	if c.RateLimitPerSecond == 0 {
		c.RateLimitPerSecond = 2
	}
}

// Validate checks mandatory fields.
func (c APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}
	if c.RateLimitPerSecond < 1 {
		return fmt.Errorf("rate_limit_per_second must be positive")
	}
	return nil
}
