package config

import (
	"fmt"
	"time"

	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/infra/environment"
)

// SimulationConfig holds the run-level parameters.
type SimulationConfig struct {
	// Seed drives the single random generator of the run.
	Seed uint64 `json:"seed"`
	// StartDate is the first simulated day, formatted 2006-01-02.
	StartDate string `json:"start_date"`
	// Days is the number of timesteps to simulate.
	Days int `json:"days"`
	// Company is the operator name written into discovery metadata.
	Company string `json:"company"`
	// BaseLatitude feeds the daylight calculator.
	BaseLatitude float64 `json:"base_latitude"`
	// OffsiteTimesMinutes is the travel-time pool crews draw from.
	OffsiteTimesMinutes []float64 `json:"offsite_times_minutes"`
	// Export is the directory timeseries files are written to; empty
	// disables export.
	Export string `json:"export"`
}

// SetDefaults applies sane defaults.
func (c *SimulationConfig) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Days == 0 {
		c.Days = 365
	}
	if c.Company == "" {
		c.Company = "operator"
	}
	if c.BaseLatitude == 0 {
		c.BaseLatitude = 55
	}
	if len(c.OffsiteTimesMinutes) == 0 {
		c.OffsiteTimesMinutes = []float64{15, 30, 45, 60}
	}
}

// Validate checks mandatory fields.
func (c SimulationConfig) Validate() error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	for _, m := range c.OffsiteTimesMinutes {
		if m < 0 {
			return fmt.Errorf("offsite times must not be negative")
		}
	}
	return nil
}

// Start parses the configured start date.
func (c SimulationConfig) Start() (time.Time, error) {
	if c.StartDate == "" {
		return time.Time{}, fmt.Errorf("start_date is required")
	}
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("start_date: %w", err)
	}
	return t, nil
}

// SiteConfig describes one facility in the input dataset.
type SiteConfig struct {
	FacilityID      string  `json:"facility_id"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	LonIndex        int     `json:"lon_index"`
	LatIndex        int     `json:"lat_index"`
	RequiredSurveys int     `json:"required_surveys"`
	SurveyMinutes   float64 `json:"survey_minutes"`
	// InitialAgeDays seeds the neglect age so the whole registry is not
	// surveyed on day one.
	InitialAgeDays int `json:"initial_age_days"`
}

// ToModel converts the dataset entry into a registry record.
func (c SiteConfig) ToModel() *model.Site {
	return &model.Site{
		FacilityID:      c.FacilityID,
		Lat:             c.Lat,
		Lon:             c.Lon,
		LonIndex:        c.LonIndex,
		LatIndex:        c.LatIndex,
		RequiredSurveys: c.RequiredSurveys,
		SurveyMinutes:   c.SurveyMinutes,
		SinceLastSurvey: c.InitialAgeDays,
	}
}

// WeatherConfig describes the synthetic weather grid.
type WeatherConfig struct {
	LonCells   int                    `json:"lon_cells"`
	LatCells   int                    `json:"lat_cells"`
	Thresholds environment.Thresholds `json:"thresholds"`
}

// SetDefaults applies a single-cell grid with typical limits.
func (c *WeatherConfig) SetDefaults() {
	if c.LonCells == 0 {
		c.LonCells = 1
	}
	if c.LatCells == 0 {
		c.LatCells = 1
	}
	c.Thresholds.SetDefaults()
}

// Validate checks the grid dimensions.
func (c WeatherConfig) Validate() error {
	if c.LonCells < 1 || c.LatCells < 1 {
		return fmt.Errorf("weather grid needs at least one cell")
	}
	return nil
}
