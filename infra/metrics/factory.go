package metrics

import (
	"github.com/ydereck/nembid/config"
)

// FromConfig assembles the configured sinks into a single Sink. With nothing
// enabled it returns a NopSink.
func FromConfig(cfg config.MetricsConfig) (Sink, error) {
	var sinks []Sink
	if cfg.PrometheusEnabled {
		prom, err := NewPromSink()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, prom)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(
			cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket))
	}
	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}
