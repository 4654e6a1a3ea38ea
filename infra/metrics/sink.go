// Package metrics records fetch activity in Prometheus and InfluxDB so long
// backfills can be watched from the usual dashboards.
package metrics

import (
	"time"

	"github.com/ydereck/nembid/core/model"
)

// FetchEvent describes one completed API request for a market table.
type FetchEvent struct {
	Table    string
	Rows     int
	Duration time.Duration
	Err      error
}

// PricePoint is a single dispatch price observation, forwarded to sinks that
// keep a price series.
type PricePoint struct {
	Interval time.Time
	Region   string
	Market   model.Market
	RRP      float64
}

// Sink receives fetch events.
type Sink interface {
	RecordFetch(FetchEvent) error
}

// PriceRecorder is implemented by sinks that also persist price series.
type PriceRecorder interface {
	RecordPrice(PricePoint) error
}

// NopSink discards everything.
type NopSink struct{}

// RecordFetch implements Sink.
func (NopSink) RecordFetch(FetchEvent) error { return nil }

// Status labels a fetch event for tagging.
func (e FetchEvent) Status() string {
	if e.Err != nil {
		return "error"
	}
	return "ok"
}
