package environment

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Thresholds are the weather limits above/below which a survey cannot be
// flown at a cell.
type Thresholds struct {
	MaxWindMS   float64 `json:"max_wind_ms" yaml:"max_wind_ms"`
	MinTempC    float64 `json:"min_temp_c" yaml:"min_temp_c"`
	MaxPrecipMM float64 `json:"max_precip_mm" yaml:"max_precip_mm"`
}

// SetDefaults applies typical OGI operating limits.
func (t *Thresholds) SetDefaults() {
	if t.MaxWindMS == 0 {
		t.MaxWindMS = 10
	}
	if t.MinTempC == 0 {
		t.MinTempC = -25
	}
	if t.MaxPrecipMM == 0 {
		t.MaxPrecipMM = 0.5
	}
}

// Weather holds per-cell, per-timestep weather fields, indexed
// [lon][lat][timestep].
type Weather struct {
	WindMS   [][][]float64
	TempC    [][][]float64
	PrecipMM [][][]float64
}

// Grid is the precomputed deployability lookup: one boolean per cell and
// timestep, evaluated once so the per-pick lookup in the site selector is
// constant time.
type Grid struct {
	ok [][][]bool
}

// Precompute evaluates the thresholds over the weather fields.
func Precompute(w Weather, th Thresholds) (*Grid, error) {
	if len(w.WindMS) == 0 || len(w.WindMS) != len(w.TempC) || len(w.WindMS) != len(w.PrecipMM) {
		return nil, fmt.Errorf("weather fields have mismatched longitude dimensions")
	}
	g := &Grid{ok: make([][][]bool, len(w.WindMS))}
	for i := range w.WindMS {
		if len(w.WindMS[i]) != len(w.TempC[i]) || len(w.WindMS[i]) != len(w.PrecipMM[i]) {
			return nil, fmt.Errorf("weather fields have mismatched latitude dimensions at lon %d", i)
		}
		g.ok[i] = make([][]bool, len(w.WindMS[i]))
		for j := range w.WindMS[i] {
			steps := len(w.WindMS[i][j])
			if steps != len(w.TempC[i][j]) || steps != len(w.PrecipMM[i][j]) {
				return nil, fmt.Errorf("weather fields have mismatched timesteps at cell (%d,%d)", i, j)
			}
			g.ok[i][j] = make([]bool, steps)
			for t := 0; t < steps; t++ {
				g.ok[i][j][t] = w.WindMS[i][j][t] <= th.MaxWindMS &&
					w.TempC[i][j][t] >= th.MinTempC &&
					w.PrecipMM[i][j][t] <= th.MaxPrecipMM
			}
		}
	}
	return g, nil
}

// Deployable reports whether the cell can be surveyed at the timestep.
// Out-of-range indices are never deployable.
func (g *Grid) Deployable(lonIndex, latIndex, timestep int) bool {
	if lonIndex < 0 || lonIndex >= len(g.ok) {
		return false
	}
	if latIndex < 0 || latIndex >= len(g.ok[lonIndex]) {
		return false
	}
	cell := g.ok[lonIndex][latIndex]
	if timestep < 0 || timestep >= len(cell) {
		return false
	}
	return cell[timestep]
}

// Availability returns the fraction of deployable cell-days in the grid.
func (g *Grid) Availability() float64 {
	var flat []float64
	for _, lon := range g.ok {
		for _, cell := range lon {
			for _, ok := range cell {
				if ok {
					flat = append(flat, 1)
				} else {
					flat = append(flat, 0)
				}
			}
		}
	}
	if len(flat) == 0 {
		return 0
	}
	return stat.Mean(flat, nil)
}

// SyntheticWeather generates plausible weather fields for a grid: Weibull
// wind, normal temperature and exponential precipitation. The fields use
// their own seeded source so the main simulation stream is untouched.
func SyntheticWeather(lonCells, latCells, steps int, seed uint64) Weather {
	src := rand.New(rand.NewPCG(seed, 0))
	wind := distuv.Weibull{K: 2, Lambda: 6, Src: src}
	temp := distuv.Normal{Mu: 8, Sigma: 12, Src: src}
	precip := distuv.Exponential{Rate: 4, Src: src}

	w := Weather{
		WindMS:   make([][][]float64, lonCells),
		TempC:    make([][][]float64, lonCells),
		PrecipMM: make([][][]float64, lonCells),
	}
	for i := 0; i < lonCells; i++ {
		w.WindMS[i] = make([][]float64, latCells)
		w.TempC[i] = make([][]float64, latCells)
		w.PrecipMM[i] = make([][]float64, latCells)
		for j := 0; j < latCells; j++ {
			w.WindMS[i][j] = make([]float64, steps)
			w.TempC[i][j] = make([]float64, steps)
			w.PrecipMM[i][j] = make([]float64, steps)
			for t := 0; t < steps; t++ {
				w.WindMS[i][j][t] = wind.Rand()
				w.TempC[i][j][t] = temp.Rand()
				w.PrecipMM[i][j][t] = precip.Rand()
			}
		}
	}
	return w
}
