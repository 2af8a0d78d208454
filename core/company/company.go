// Package company aggregates the crews of one operator and owns the
// per-day contracts the crews themselves rely on: the daily reset of
// neglect ages and attempted-today flags, the yearly survey quota
// rollover, and the strict turn discipline between crews. Crews never run
// concurrently; each finishes its whole day before the next starts.
package company

import (
	"fmt"

	"github.com/emisense/ldarsim/core/crew"
	"github.com/emisense/ldarsim/core/environment"
	"github.com/emisense/ldarsim/core/logger"
	"github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/core/sim"
)

// Company owns the crews operating one survey method.
type Company struct {
	name  string
	ctx   *sim.Context
	crews []*crew.Crew
	log   logger.Logger
}

// New builds a company and its crews from the method configuration.
func New(name string, ctx *sim.Context, method crew.MethodParams, instrument crew.InstrumentParams,
	daylight environment.DaylightService, grid environment.DeploymentGrid,
	sink metrics.Sink, tags crew.TagPublisher, log logger.Logger) (*Company, error) {
	if err := method.Validate(); err != nil {
		return nil, fmt.Errorf("method config: %w", err)
	}
	if err := instrument.Validate(); err != nil {
		return nil, fmt.Errorf("instrument config: %w", err)
	}
	co := &Company{name: name, ctx: ctx, log: log}
	for i := 0; i < method.Crews; i++ {
		id := fmt.Sprintf("%s-crew-%d", method.Name, i+1)
		c, err := crew.New(id, name, ctx, method, instrument, daylight, grid, sink, tags, log)
		if err != nil {
			return nil, err
		}
		co.crews = append(co.crews, c)
	}
	return co, nil
}

// Crews returns the company's crews in turn order.
func (c *Company) Crews() []*crew.Crew { return c.crews }

// DailyReset applies the start-of-day bookkeeping crews depend on but never
// perform themselves: every site ages by one day and sheds its
// attempted-today flag. On January 1st the yearly survey quotas roll over.
func (c *Company) DailyReset() {
	date := c.ctx.Clock.Current
	newYear := date.Month() == 1 && date.Day() == 1
	for _, s := range c.ctx.Sites {
		s.SinceLastSurvey++
		s.AttemptedToday = false
		if newYear {
			s.SurveysThisYear = 0
		}
	}
}

// SurveyDay runs one full simulation day: the daily reset, then every crew
// in turn. Crews share the clock and registries, so the turn order is part
// of the deterministic replay contract.
func (c *Company) SurveyDay() error {
	c.DailyReset()
	for _, cr := range c.crews {
		if err := cr.WorkDay(); err != nil {
			return fmt.Errorf("company %s: %w", c.name, err)
		}
		if cr.WorkedToday() {
			c.log.Debugw("crew day complete", map[string]any{
				"crew":     cr.ID(),
				"timestep": c.ctx.Clock.Timestep,
			})
		}
	}
	return nil
}
