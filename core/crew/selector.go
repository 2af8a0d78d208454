package crew

import (
	"sort"

	"github.com/emisense/ldarsim/core/model"
)

// ChooseSite picks the next site to survey. Sites are ranked by neglect
// age, most neglected first; the sort is stable so equally aged sites keep
// their prior relative order, which keeps replays deterministic.
//
// One call represents one attempted pick. On success the selection side
// effects (survey counters, age reset) are already applied to the returned
// site. ok is false when no site is available for the rest of the day.
func (c *Crew) ChooseSite() (site *model.Site, ok bool) {
	sites := c.ctx.Sites
	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].SinceLastSurvey > sites[j].SinceLastSurvey
	})

	for _, s := range sites {
		if s.AttemptedToday {
			continue
		}

		// The scan runs most-neglected-first, so if even this site is still
		// inside the mandated interval no unattempted site can qualify
		// today. End the day outright instead of skipping one site.
		if s.SinceLastSurvey < c.method.MinIntervalDays {
			c.ctx.Clock.SetHour(23)
			return nil, false
		}

		if !s.QuotaMet() {
			if c.grid.Deployable(s.LonIndex, s.LatIndex, c.ctx.Clock.Timestep) {
				s.MarkSurveyed()
				c.lat, c.lon = s.Lat, s.Lon
				return s, true
			}
			// Weather blocks this site for the rest of the day.
			s.AttemptedToday = true
		}
	}
	return nil, false
}
