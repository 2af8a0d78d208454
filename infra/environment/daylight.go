package environment

import (
	"math"
	"time"
)

// Daylight precomputes day length per timestep for a reference latitude,
// using the standard solar declination approximation. Good to a few
// minutes, which is well inside the whole-hour work window granularity.
type Daylight struct {
	hours []float64
}

// NewDaylight computes day lengths for steps consecutive days starting at
// the given date.
func NewDaylight(latitudeDeg float64, start time.Time, steps int) *Daylight {
	d := &Daylight{hours: make([]float64, steps)}
	latRad := latitudeDeg * math.Pi / 180
	for i := 0; i < steps; i++ {
		day := start.AddDate(0, 0, i).YearDay()
		declRad := 23.45 * math.Pi / 180 * math.Sin(2*math.Pi*float64(284+day)/365)
		cosH := -math.Tan(latRad) * math.Tan(declRad)
		switch {
		case cosH <= -1: // polar day
			d.hours[i] = 24
		case cosH >= 1: // polar night
			d.hours[i] = 0
		default:
			d.hours[i] = 2 * math.Acos(cosH) * 180 / math.Pi / 15
		}
	}
	return d
}

// Hours returns the daylight hours for the given timestep. Steps beyond the
// precomputed horizon reuse the last value.
func (d *Daylight) Hours(timestep int) float64 {
	if len(d.hours) == 0 {
		return 0
	}
	if timestep < 0 {
		timestep = 0
	}
	if timestep >= len(d.hours) {
		timestep = len(d.hours) - 1
	}
	return d.hours[timestep]
}
