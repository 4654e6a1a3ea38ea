package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  base_url: "https://market-data.example.com"
  timeout_seconds: 10
  rate_limit_per_second: 4
study:
  region: "SA1"
  start: "2019-11-01 00:00:00"
  end: "2020-03-31 23:55:00"
  duids: ["HPRG1", "HPRL1", "PPCCGT"]
  batteries: ["HPRG1", "HPRL1"]
output:
  data_dir: "testdata/out"
estimator:
  max_iterations: 50
  cluster_se: true
logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api.base_url", cfg.API.BaseURL, "https://market-data.example.com"},
		{"api.timeout_seconds", cfg.API.TimeoutSeconds, 10},
		{"api.rate_limit_per_second", cfg.API.RateLimitPerSecond, 4},
		{"study.region", cfg.Study.Region, "SA1"},
		{"study.duids", len(cfg.Study.DUIDs), 3},
		{"study.batteries", cfg.Study.BatterySet()["HPRL1"], true},
		{"output.data_dir", cfg.Output.DataDir, "testdata/out"},
		{"output.report_dir default", cfg.Output.ReportDir, "reports"},
		{"estimator.max_iterations", cfg.Estimator.MaxIterations, 50},
		{"estimator.tolerance default", cfg.Estimator.Tolerance, 1e-8},
		{"estimator.log_shift default", cfg.Estimator.LogShift, 1.0},
		{"estimator.trim_quantile default", cfg.Estimator.TrimQuantile, 0.99},
		{"estimator.cluster_se", cfg.Estimator.ClusterSE, true},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"metrics.prometheus_addr default", cfg.Metrics.PrometheusAddr, ":2112"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  base_url: "https://market-data.example.com"
study:
  region: "SA1"
  start: "2019-11-01 00:00:00"
  end: "2020-03-31 23:55:00"
  duids: ["HPRG1"]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("NEM_STUDY__REGION", "NSW1")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "NSW1", cfg.Study.Region)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := Load("config.toml")
	require.Error(t, err)
}

func TestMetricsValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  MetricsConfig
		ok   bool
	}{
		{"disabled", MetricsConfig{}, true},
		{"prometheus with addr", MetricsConfig{PrometheusEnabled: true, PrometheusAddr: ":2112"}, true},
		{"prometheus without addr", MetricsConfig{PrometheusEnabled: true}, false},
		{"influx complete", MetricsConfig{InfluxEnabled: true, InfluxURL: "http://localhost:8086", InfluxOrg: "nem", InfluxBucket: "fetch"}, true},
		{"influx without url", MetricsConfig{InfluxEnabled: true, InfluxOrg: "nem", InfluxBucket: "fetch"}, false},
		{"influx without bucket", MetricsConfig{InfluxEnabled: true, InfluxURL: "http://localhost:8086", InfluxOrg: "nem"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestStudyValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  StudyConfig
		ok   bool
	}{
		{"valid", StudyConfig{Region: "SA1", Start: "2019-11-01 00:00:00", End: "2019-12-01 00:00:00", DUIDs: []string{"A", "B"}, Batteries: []string{"A"}}, true},
		{"missing region", StudyConfig{Start: "2019-11-01 00:00:00", End: "2019-12-01 00:00:00", DUIDs: []string{"A"}}, false},
		{"window reversed", StudyConfig{Region: "SA1", Start: "2019-12-01 00:00:00", End: "2019-11-01 00:00:00", DUIDs: []string{"A"}}, false},
		{"duplicate duid", StudyConfig{Region: "SA1", Start: "2019-11-01 00:00:00", End: "2019-12-01 00:00:00", DUIDs: []string{"A", "A"}}, false},
		{"battery outside panel", StudyConfig{Region: "SA1", Start: "2019-11-01 00:00:00", End: "2019-12-01 00:00:00", DUIDs: []string{"A"}, Batteries: []string{"B"}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if c.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
