package config

import "fmt"

// MetricsConfig enables observability sinks for long fetch runs.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks that every enabled sink has an endpoint to reach.
func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && c.PrometheusAddr == "" {
		return fmt.Errorf("metrics: prometheus_addr is required when prometheus is enabled")
	}
	if c.InfluxEnabled {
		if c.InfluxURL == "" {
			return fmt.Errorf("metrics: influx_url is required when influx is enabled")
		}
		if c.InfluxOrg == "" || c.InfluxBucket == "" {
			return fmt.Errorf("metrics: influx_org and influx_bucket are required when influx is enabled")
		}
	}
	return nil
}
