package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/emisense/ldarsim/core/metrics"
)

// PromSink exposes survey activity as Prometheus metrics.
type PromSink struct {
	cost    *prometheus.CounterVec
	visits  *prometheus.CounterVec
	tags    *prometheus.CounterVec
	missed  *prometheus.CounterVec
	minutes *prometheus.HistogramVec
}

// NewPromSink registers the survey metrics on the provided registerer. If
// reg is nil, the default registerer is used. Already registered collectors
// are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		cost: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_cost_total",
			Help: "Total survey program cost",
		}, []string{"company", "crew_id"}),
		visits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_site_visits_total",
			Help: "Total completed site visits",
		}, []string{"crew_id"}),
		tags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_tags_total",
			Help: "Total leak detections",
		}, []string{"crew_id", "redundant"}),
		missed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_missed_leaks_total",
			Help: "Total leaks present but not detected during a visit",
		}, []string{"crew_id"}),
		minutes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "survey_visit_minutes",
			Help:    "Minutes spent per site visit including travel",
			Buckets: prometheus.LinearBuckets(30, 30, 10),
		}, []string{"crew_id"}),
	}
	for _, c := range []**prometheus.CounterVec{&s.cost, &s.visits, &s.tags, &s.missed} {
		if err := reg.Register(*c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			*c = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	if err := reg.Register(s.minutes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.minutes = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return s, nil
}

// RecordDayCost adds the daily cost to the program cost counter.
func (s *PromSink) RecordDayCost(ev metrics.DayCostEvent) error {
	s.cost.WithLabelValues(ev.Company, ev.CrewID).Add(ev.Cost)
	return nil
}

// RecordSiteVisit counts the visit and observes its duration.
func (s *PromSink) RecordSiteVisit(ev metrics.SiteVisitEvent) error {
	s.visits.WithLabelValues(ev.CrewID).Inc()
	if ev.LeaksMissed > 0 {
		s.missed.WithLabelValues(ev.CrewID).Add(float64(ev.LeaksMissed))
	}
	s.minutes.WithLabelValues(ev.CrewID).Observe(ev.MinutesOnSite)
	return nil
}

// RecordTag counts a detection, split by redundancy.
func (s *PromSink) RecordTag(ev metrics.TagEvent) error {
	s.tags.WithLabelValues(ev.CrewID, strconv.FormatBool(ev.Redundant)).Inc()
	return nil
}
