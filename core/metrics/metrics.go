package metrics

import "time"

// DayCostEvent records the fixed daily cost charged when a crew worked.
type DayCostEvent struct {
	CrewID   string
	Company  string
	Timestep int
	Date     time.Time
	Cost     float64
}

// SiteVisitEvent records one completed survey visit.
type SiteVisitEvent struct {
	CrewID      string
	FacilityID  string
	Timestep    int
	Date        time.Time
	LeaksFound  int
	LeaksMissed int
	// MinutesOnSite covers the survey itself plus the offsite travel draw.
	MinutesOnSite float64
}

// TagEvent records a positive detection. Redundant marks detections of
// leaks that already carried a tag.
type TagEvent struct {
	CrewID       string
	FacilityID   string
	LeakID       string
	Timestep     int
	Date         time.Time
	RateKgPerDay float64
	Redundant    bool
}

// Sink receives operational events for observability purposes. The
// timeseries accumulators remain the source of truth; sinks only observe,
// and a failing sink must never alter simulation results.
type Sink interface {
	RecordDayCost(ev DayCostEvent) error
	RecordSiteVisit(ev SiteVisitEvent) error
	RecordTag(ev TagEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordDayCost(DayCostEvent) error     { return nil }
func (NopSink) RecordSiteVisit(SiteVisitEvent) error { return nil }
func (NopSink) RecordTag(TagEvent) error             { return nil }
