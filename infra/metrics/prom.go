package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink counts fetch requests and rows in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPromSink registers fetch metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using the configured
// address.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fetch_requests_total",
		Help: "Total number of market API requests",
	}, []string{"table", "status"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fetch_rows_total",
		Help: "Total number of rows fetched per table",
	}, []string{"table"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fetch_duration_seconds",
		Help:    "Time spent on each market API request",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(rows); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			rows = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, rows: rows, duration: duration}, nil
}

// RecordFetch implements Sink.
func (s *PromSink) RecordFetch(ev FetchEvent) error {
	s.requests.WithLabelValues(ev.Table, ev.Status()).Inc()
	if ev.Err == nil {
		s.rows.WithLabelValues(ev.Table).Add(float64(ev.Rows))
	}
	s.duration.WithLabelValues(ev.Table).Observe(ev.Duration.Seconds())
	return nil
}
