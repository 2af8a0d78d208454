// Package crew implements the daily field operations of one leak-detection
// inspection crew: scheduling a working day, picking sites off the shared
// registry and applying the stochastic sensor model to the leaks present.
//
// All methods mutate the shared simulation context and must therefore run
// inside the crew's logical turn: the orchestrator serializes crews within
// a timestep, one full day at a time. No internal locking is performed.
package crew

import (
	"errors"
	"fmt"

	"github.com/emisense/ldarsim/core/environment"
	"github.com/emisense/ldarsim/core/logger"
	"github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/core/sim"
)

// ErrWorkWindow is returned when the derived work hours cannot form a valid
// day (zero, negative or a full 24 hours). The day cannot be scheduled and
// the run should abort rather than proceed with undefined window bounds.
var ErrWorkWindow = errors.New("work hours outside (0, 24)")

// TagPublisher receives newly tagged leaks, e.g. to notify a downstream
// repair queue. Publish failures are logged, never propagated: the tag pool
// remains the source of truth.
type TagPublisher interface {
	PublishTag(l *model.Leak) error
}

// NopPublisher discards tag notifications.
type NopPublisher struct{}

func (NopPublisher) PublishTag(*model.Leak) error { return nil }

// Crew simulates a single inspection crew operating one survey method.
type Crew struct {
	id      string
	company string

	ctx        *sim.Context
	method     MethodParams
	instrument InstrumentParams
	daylight   environment.DaylightService
	grid       environment.DeploymentGrid
	sink       metrics.Sink
	tags       TagPublisher
	log        logger.Logger

	// Last known crew position, updated on every selected site.
	lat, lon float64

	workedToday bool
}

// New constructs a crew operating on the shared simulation context.
func New(id, company string, ctx *sim.Context, method MethodParams, instrument InstrumentParams,
	daylight environment.DaylightService, grid environment.DeploymentGrid,
	sink metrics.Sink, tags TagPublisher, log logger.Logger) (*Crew, error) {
	if ctx == nil || daylight == nil || grid == nil {
		return nil, fmt.Errorf("crew %s: nil dependency", id)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if tags == nil {
		tags = NopPublisher{}
	}
	return &Crew{
		id:         id,
		company:    company,
		ctx:        ctx,
		method:     method,
		instrument: instrument,
		daylight:   daylight,
		grid:       grid,
		sink:       sink,
		tags:       tags,
		log:        log,
	}, nil
}

// ID returns the crew identifier.
func (c *Crew) ID() string { return c.id }

// WorkedToday reports whether the crew completed at least one survey during
// its most recent working day.
func (c *Crew) WorkedToday() bool { return c.workedToday }

// WorkDay runs one full working day: it derives the work window, then
// repeatedly picks and surveys sites until the window closes or no eligible
// site remains. If any work occurred the method's fixed daily cost is added
// to the cost accumulator at the current timestep.
func (c *Crew) WorkDay() error {
	c.workedToday = false
	clock := c.ctx.Clock

	hours := c.method.MaxWorkdayHours
	if c.method.ConsiderDaylight {
		if daylight := c.daylight.Hours(clock.Timestep); daylight < hours {
			hours = daylight
		}
	}
	if hours <= 0 || hours >= 24 {
		return fmt.Errorf("crew %s at timestep %d: %.2f hours: %w", c.id, clock.Timestep, hours, ErrWorkWindow)
	}

	// Center the window on solar noon. The loop compares whole clock hours,
	// so a visit may start any time before the end hour.
	start := (24 - hours) / 2
	endHour := int(start + hours)
	clock.SetHour(int(start))

	for clock.Hour() < endHour {
		site, ok := c.ChooseSite()
		if !ok {
			break
		}
		if err := c.VisitSite(site); err != nil {
			return err
		}
		c.workedToday = true
	}

	if c.workedToday {
		c.ctx.Timeseries.AddCost(clock.Timestep, c.method.CostPerDay)
		if err := c.sink.RecordDayCost(metrics.DayCostEvent{
			CrewID:   c.id,
			Company:  c.company,
			Timestep: clock.Timestep,
			Date:     clock.Current,
			Cost:     c.method.CostPerDay,
		}); err != nil {
			c.log.Errorf("day cost metrics error: %v", err)
		}
	}
	return nil
}
