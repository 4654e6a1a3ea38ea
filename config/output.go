package config

// OutputConfig defines where fetched tables, the panel and reports land.
type OutputConfig struct {
	DataDir   string `json:"data_dir"`
	ReportDir string `json:"report_dir"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
}
