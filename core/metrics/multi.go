package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDayCost forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordDayCost(ev DayCostEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDayCost(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSiteVisit forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordSiteVisit(ev SiteVisitEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSiteVisit(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordTag forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordTag(ev TagEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordTag(ev); err != nil {
			return err
		}
	}
	return nil
}
