package sim

// Timeseries holds the per-timestep operational accumulators produced by
// the simulation. All series are additive: crews only increment the value
// at the current timestep, never rewrite history.
type Timeseries struct {
	Cost          []float64
	RedundantTags []int
	SitesVisited  []int
}

// NewTimeseries preallocates accumulators for the given number of timesteps.
func NewTimeseries(steps int) *Timeseries {
	return &Timeseries{
		Cost:          make([]float64, steps),
		RedundantTags: make([]int, steps),
		SitesVisited:  make([]int, steps),
	}
}

// AddCost adds the given amount to the cost series at step.
func (t *Timeseries) AddCost(step int, amount float64) {
	t.grow(step)
	t.Cost[step] += amount
}

// IncRedundantTags counts one detection of an already tagged leak.
func (t *Timeseries) IncRedundantTags(step int) {
	t.grow(step)
	t.RedundantTags[step]++
}

// IncSitesVisited counts one completed site visit.
func (t *Timeseries) IncSitesVisited(step int) {
	t.grow(step)
	t.SitesVisited[step]++
}

func (t *Timeseries) grow(step int) {
	for len(t.Cost) <= step {
		t.Cost = append(t.Cost, 0)
		t.RedundantTags = append(t.RedundantTags, 0)
		t.SitesVisited = append(t.SitesVisited, 0)
	}
}
