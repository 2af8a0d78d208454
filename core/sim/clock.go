package sim

import "time"

// Clock holds the shared simulation time: a current date-time plus the
// integer timestep index (one timestep per simulation day). It is mutated
// by crews (survey time advance), schedulers (work window bounds) and the
// company day loop; callers must serialize access per §turn discipline
// documented on company.Company.
type Clock struct {
	Current  time.Time
	Timestep int
}

// NewClock returns a clock positioned at midnight of the start date.
func NewClock(start time.Time) *Clock {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return &Clock{Current: day}
}

// SetHour rewinds or advances the clock to the given whole hour of the
// current date, keeping the date itself.
func (c *Clock) SetHour(hour int) {
	d := c.Current
	c.Current = time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}

// Advance moves the clock forward by the given number of minutes.
func (c *Clock) Advance(minutes float64) {
	c.Current = c.Current.Add(time.Duration(minutes * float64(time.Minute)))
}

// Hour returns the whole hour of the current date.
func (c *Clock) Hour() int {
	return c.Current.Hour()
}

// StepDay advances to the next timestep, positioning the clock at midnight
// of the following calendar day.
func (c *Clock) StepDay() {
	c.Timestep++
	d := c.Current
	c.Current = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).AddDate(0, 0, 1)
}
