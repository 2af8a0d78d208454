package sim

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/emisense/ldarsim/core/model"
)

// ErrEmptyOffsitePool is returned when a survey visit needs a travel time
// draw but the offsite-time pool holds no values.
var ErrEmptyOffsitePool = errors.New("offsite time pool is empty")

// Context is the shared mutable state of one simulation run: clock, site
// and leak registries, the tag pool and the seeded random generator. It is
// owned by the orchestrator and passed by reference to each crew. Access is
// strictly single-threaded: crews take turns, one full day at a time.
type Context struct {
	Clock      *Clock
	Sites      []*model.Site
	Leaks      []*model.Leak
	Tags       []*model.Leak
	Timeseries *Timeseries

	// OffsiteTimes is the pool of travel times in minutes; one value is
	// drawn uniformly per site visit.
	OffsiteTimes []float64

	// Rand is the single generator for the run. It is seeded once at
	// construction and never re-seeded, so a fixed seed and fixed call
	// order reproduce a run exactly.
	Rand *rand.Rand
}

// NewContext creates the shared state for a run starting at the given date.
func NewContext(start time.Time, steps int, seed uint64) *Context {
	return &Context{
		Clock:      NewClock(start),
		Timeseries: NewTimeseries(steps),
		Rand:       rand.New(rand.NewPCG(seed, 0)),
	}
}

// ActiveLeaks returns the active leaks currently present at a facility.
func (c *Context) ActiveLeaks(facilityID string) []*model.Leak {
	var present []*model.Leak
	for _, l := range c.Leaks {
		if l.FacilityID == facilityID && l.Active() {
			present = append(present, l)
		}
	}
	return present
}

// AppendTag adds a newly tagged leak to the shared tag pool. The pool is
// append-only within a run; the repair workflow consumes it externally.
func (c *Context) AppendTag(l *model.Leak) {
	c.Tags = append(c.Tags, l)
}

// DrawOffsiteMinutes picks one travel time uniformly from the pool.
func (c *Context) DrawOffsiteMinutes() (float64, error) {
	if len(c.OffsiteTimes) == 0 {
		return 0, ErrEmptyOffsitePool
	}
	return c.OffsiteTimes[c.Rand.IntN(len(c.OffsiteTimes))], nil
}
