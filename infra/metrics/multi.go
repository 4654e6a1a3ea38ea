package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFetch forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordFetch(ev FetchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordFetch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPrice forwards price points to the sinks that keep a price series.
func (m *MultiSink) RecordPrice(p PricePoint) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(PriceRecorder); ok {
			if err := rec.RecordPrice(p); err != nil {
				return err
			}
		}
	}
	return nil
}
