package crew

import "fmt"

// MethodParams holds the per-method survey parameters loaded from
// configuration.
type MethodParams struct {
	// Name of the survey method, e.g. "OGI".
	Name string `json:"name" yaml:"name"`
	// MaxWorkdayHours caps the length of a working day.
	MaxWorkdayHours float64 `json:"max_workday_hours" yaml:"max_workday_hours"`
	// MinIntervalDays is the minimum mandated number of days between two
	// surveys of the same site.
	MinIntervalDays int `json:"min_interval_days" yaml:"min_interval_days"`
	// CostPerDay is the fixed cost charged for every day a crew worked.
	CostPerDay float64 `json:"cost_per_day" yaml:"cost_per_day"`
	// ConsiderDaylight caps the workday at the available daylight hours.
	ConsiderDaylight bool `json:"consider_daylight" yaml:"consider_daylight"`
	// Crews is the number of crews the company fields.
	Crews int `json:"crews" yaml:"crews"`
}

// SetDefaults applies sane defaults.
func (p *MethodParams) SetDefaults() {
	if p.Name == "" {
		p.Name = "OGI"
	}
	if p.MaxWorkdayHours == 0 {
		p.MaxWorkdayHours = 8
	}
	if p.Crews == 0 {
		p.Crews = 1
	}
}

// Validate checks mandatory fields. The work-window bounds themselves are
// checked per day, because daylight can shrink them below the configured
// maximum.
func (p MethodParams) Validate() error {
	if p.MaxWorkdayHours <= 0 || p.MaxWorkdayHours >= 24 {
		return fmt.Errorf("max_workday_hours must be in (0, 24), got %v", p.MaxWorkdayHours)
	}
	if p.MinIntervalDays < 0 {
		return fmt.Errorf("min_interval_days must not be negative")
	}
	if p.CostPerDay < 0 {
		return fmt.Errorf("cost_per_day must not be negative")
	}
	if p.Crews < 1 {
		return fmt.Errorf("at least one crew is required")
	}
	return nil
}

// InstrumentParams holds the sensor sensitivity parameters of the survey
// instrument. The minimum detection limit is expressed in the log10 g/h
// domain of the detection curve.
type InstrumentParams struct {
	MDLMean  float64 `json:"mdl_mean" yaml:"mdl_mean"`
	MDLSigma float64 `json:"mdl_sigma" yaml:"mdl_sigma"`
}

// Validate checks the instrument spread.
func (p InstrumentParams) Validate() error {
	if p.MDLSigma < 0 {
		return fmt.Errorf("mdl_sigma must not be negative")
	}
	return nil
}
