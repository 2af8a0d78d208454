package model

import "fmt"

// Site represents one monitored facility in the simulation.
type Site struct {
	FacilityID string
	LonIndex   int // longitude cell in the weather grid
	LatIndex   int // latitude cell in the weather grid
	Lat        float64
	Lon        float64

	// SinceLastSurvey is the neglect age in simulation days. It grows by one
	// per day via the company daily reset and drops to zero when a crew
	// surveys the site. Never negative.
	SinceLastSurvey int

	RequiredSurveys int // mandated surveys per calendar year
	SurveysThisYear int

	// AttemptedToday marks a site a crew tried and rejected (weather) during
	// the current day. Scoped to one day and one method; cleared by the
	// company daily reset, never by the crew itself.
	AttemptedToday bool

	SurveysConducted int
	MissedLeaks      int

	// SurveyMinutes is the fixed on-site duration of one survey visit.
	SurveyMinutes float64
}

// Validate checks that the site configuration is sound.
func (s Site) Validate() error {
	if s.FacilityID == "" {
		return fmt.Errorf("site without facility ID")
	}
	if s.SinceLastSurvey < 0 {
		return fmt.Errorf("site %s: negative survey age", s.FacilityID)
	}
	if s.SurveyMinutes <= 0 {
		return fmt.Errorf("site %s: survey duration must be positive", s.FacilityID)
	}
	if s.RequiredSurveys < 0 {
		return fmt.Errorf("site %s: negative required surveys", s.FacilityID)
	}
	return nil
}

// QuotaMet reports whether the site already received all surveys mandated
// for the current year.
func (s Site) QuotaMet() bool {
	return s.SurveysThisYear >= s.RequiredSurveys
}

// MarkSurveyed applies the bookkeeping for a completed survey selection:
// counters advance and the neglect age resets.
func (s *Site) MarkSurveyed() {
	s.SurveysConducted++
	s.SurveysThisYear++
	s.SinceLastSurvey = 0
}
