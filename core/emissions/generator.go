// Package emissions seeds the initial leak population of a run. Counts and
// rates are drawn from the run's shared generator, so a fixed seed yields
// the same starting population every time.
package emissions

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/core/sim"
)

// GeneratorConfig describes the initial leak population. Rates follow a
// lognormal distribution, the usual shape of measured emission rates; the
// leak count per site is Poisson distributed.
type GeneratorConfig struct {
	LeaksPerSiteMean float64 `json:"leaks_per_site_mean" yaml:"leaks_per_site_mean"`
	// RateLogMean and RateLogSigma parameterize the lognormal rate draw in
	// ln kg/day space.
	RateLogMean  float64 `json:"rate_log_mean" yaml:"rate_log_mean"`
	RateLogSigma float64 `json:"rate_log_sigma" yaml:"rate_log_sigma"`
}

// SetDefaults applies the published LDAR program defaults.
func (c *GeneratorConfig) SetDefaults() {
	if c.LeaksPerSiteMean == 0 {
		c.LeaksPerSiteMean = 1.5
	}
	if c.RateLogSigma == 0 {
		c.RateLogSigma = 1.8
	}
}

// Validate checks the distribution parameters.
func (c GeneratorConfig) Validate() error {
	if c.LeaksPerSiteMean < 0 {
		return fmt.Errorf("leaks_per_site_mean must not be negative")
	}
	if c.RateLogSigma < 0 {
		return fmt.Errorf("rate_log_sigma must not be negative")
	}
	return nil
}

// Populate appends an initial active leak population to the context, one
// Poisson-drawn batch per site in registry order.
func Populate(ctx *sim.Context, cfg GeneratorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LeaksPerSiteMean == 0 {
		return nil
	}
	count := distuv.Poisson{Lambda: cfg.LeaksPerSiteMean, Src: ctx.Rand}
	rate := distuv.LogNormal{Mu: cfg.RateLogMean, Sigma: cfg.RateLogSigma, Src: ctx.Rand}
	for _, site := range ctx.Sites {
		n := int(count.Rand())
		for i := 0; i < n; i++ {
			ctx.Leaks = append(ctx.Leaks, &model.Leak{
				ID:           fmt.Sprintf("%s-leak-%d", site.FacilityID, i+1),
				FacilityID:   site.FacilityID,
				Status:       model.StatusActive,
				RateKgPerDay: rate.Rand(),
			})
		}
	}
	return nil
}
