package crew

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/core/model"
)

// Detection curve after Ravikumar et al. 2018: the probability of seeing a
// leak follows a logistic curve in log10 rate, with the steepness k drawn
// per observation and the midpoint x0 drawn from the instrument's minimum
// detection limit distribution.
const (
	curveSteepnessMean  = 4.9
	curveSteepnessSigma = 0.3

	// Converts kg/day to the g/h domain the curve was fitted in.
	kgPerDayToGramsPerHour = 41.6667
)

// VisitSite surveys the chosen site: every active leak present gets one
// stochastic detection attempt, then the clock advances by the survey
// duration plus a travel time drawn from the offsite pool.
func (c *Crew) VisitSite(site *model.Site) error {
	clock := c.ctx.Clock
	found, missed := 0, 0

	for _, leak := range c.ctx.ActiveLeaks(site.FacilityID) {
		p := c.detectionProbability(leak.RateKgPerDay)
		detected := distuv.Bernoulli{P: p, Src: c.ctx.Rand}.Rand() == 1

		switch {
		case detected && leak.Tagged:
			// Another crew already found it; only the metric moves.
			c.ctx.Timeseries.IncRedundantTags(clock.Timestep)
			c.recordTag(leak, true)
			found++
		case detected:
			leak.Tag(clock.Current, c.company, c.id)
			c.ctx.AppendTag(leak)
			c.recordTag(leak, false)
			if err := c.tags.PublishTag(leak); err != nil {
				c.log.Errorf("tag publish error for leak %s: %v", leak.ID, err)
			}
			found++
		default:
			site.MissedLeaks++
			missed++
		}
	}

	offsite, err := c.ctx.DrawOffsiteMinutes()
	if err != nil {
		return err
	}
	clock.Advance(site.SurveyMinutes)
	clock.Advance(offsite)

	c.ctx.Timeseries.IncSitesVisited(clock.Timestep)
	if err := c.sink.RecordSiteVisit(metrics.SiteVisitEvent{
		CrewID:        c.id,
		FacilityID:    site.FacilityID,
		Timestep:      clock.Timestep,
		Date:          clock.Current,
		LeaksFound:    found,
		LeaksMissed:   missed,
		MinutesOnSite: site.SurveyMinutes + offsite,
	}); err != nil {
		c.log.Errorf("site visit metrics error: %v", err)
	}
	return nil
}

// detectionProbability draws the curve parameters and evaluates the
// logistic model for one observation. The draws happen before the zero-rate
// check so the generator consumes the same stream regardless of rate, which
// keeps fixed-seed runs reproducible across datasets.
func (c *Crew) detectionProbability(rateKgPerDay float64) float64 {
	k := distuv.Normal{Mu: curveSteepnessMean, Sigma: curveSteepnessSigma, Src: c.ctx.Rand}.Rand()
	x0 := distuv.Normal{Mu: c.instrument.MDLMean, Sigma: c.instrument.MDLSigma, Src: c.ctx.Rand}.Rand()
	if rateKgPerDay == 0 {
		return 0
	}
	x := math.Log10(rateKgPerDay * kgPerDayToGramsPerHour)
	return logistic(k * (x - x0))
}

// logistic evaluates 1/(1+exp(-z)) without overflowing for large |z|.
func logistic(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func (c *Crew) recordTag(leak *model.Leak, redundant bool) {
	if err := c.sink.RecordTag(metrics.TagEvent{
		CrewID:       c.id,
		FacilityID:   leak.FacilityID,
		LeakID:       leak.ID,
		Timestep:     c.ctx.Clock.Timestep,
		Date:         c.ctx.Clock.Current,
		RateKgPerDay: leak.RateKgPerDay,
		Redundant:    redundant,
	}); err != nil {
		c.log.Errorf("tag metrics error: %v", err)
	}
}
