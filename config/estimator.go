package config

import "fmt"

// EstimatorConfig tunes the panel builder and the logit estimator.
type EstimatorConfig struct {
	// MaxIterations bounds the Newton iterations before the fit is declared
	// non-convergent.
	MaxIterations int `json:"max_iterations"`
	// Tolerance is the convergence threshold on the coefficient update.
	Tolerance float64 `json:"tolerance"`
	// LogShift is added to |FE| before taking logs so the transform is
	// defined at zero error.
	LogShift float64 `json:"log_shift"`
	// TrimQuantile is the per-market |FE| quantile above which observations
	// are discarded.
	TrimQuantile float64 `json:"trim_quantile"`
	// ClusterSE selects cluster-robust standard errors, clustered on the
	// dispatch interval.
	ClusterSE bool `json:"cluster_se"`
}

// SetDefaults applies sane defaults.
func (c *EstimatorConfig) SetDefaults() {
	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-8
	}
	if c.LogShift == 0 {
		c.LogShift = 1
	}
	if c.TrimQuantile == 0 {
		c.TrimQuantile = 0.99
	}
}

// Validate checks ranges.
func (c EstimatorConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be positive")
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive")
	}
	if c.TrimQuantile <= 0 || c.TrimQuantile >= 1 {
		return fmt.Errorf("trim_quantile must be in (0,1)")
	}
	return nil
}
