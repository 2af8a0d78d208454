package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emisense/ldarsim/config"
	"github.com/emisense/ldarsim/core/crew"
	"github.com/emisense/ldarsim/core/emissions"
	"github.com/emisense/ldarsim/infra/environment"
)

func testConfig(days int) *config.Config {
	cfg := &config.Config{
		Simulation: config.SimulationConfig{
			Seed:                42,
			StartDate:           "2024-06-01",
			Days:                days,
			Company:             "acme",
			BaseLatitude:        51,
			OffsiteTimesMinutes: []float64{15, 30},
		},
		Method: crew.MethodParams{
			Name:            "OGI",
			MaxWorkdayHours: 8,
			MinIntervalDays: 0,
			CostPerDay:      1500,
			Crews:           1,
		},
		Instrument: crew.InstrumentParams{MDLMean: 0.47, MDLSigma: 0.1},
		Emissions:  emissions.GeneratorConfig{LeaksPerSiteMean: 2, RateLogMean: 0.5, RateLogSigma: 1.5},
		Weather: config.WeatherConfig{
			LonCells: 1,
			LatCells: 1,
			// Limits no synthetic sample exceeds, so every day is deployable.
			Thresholds: environment.Thresholds{MaxWindMS: 1e6, MinTempC: -1e6, MaxPrecipMM: 1e6},
		},
	}
	for _, id := range []string{"F001", "F002", "F003"} {
		cfg.Sites = append(cfg.Sites, config.SiteConfig{
			FacilityID:      id,
			RequiredSurveys: 50,
			SurveyMinutes:   90,
			InitialAgeDays:  120,
		})
	}
	return cfg
}

func TestServiceRunProducesActivity(t *testing.T) {
	svc, err := New(testConfig(5))
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	require.NoError(t, svc.Run(context.Background()))
	state := svc.Context()
	visits := 0
	for _, v := range state.Timeseries.SitesVisited {
		visits += v
	}
	assert.Positive(t, visits, "no sites visited over 5 clear days")
	assert.Equal(t, 5, state.Clock.Timestep)
}

func TestServiceRunDeterministic(t *testing.T) {
	run := func() ([]float64, int) {
		svc, err := New(testConfig(5))
		require.NoError(t, err)
		require.NoError(t, svc.Run(context.Background()))
		return svc.Context().Timeseries.Cost, len(svc.Context().Tags)
	}
	costA, tagsA := run()
	costB, tagsB := run()
	assert.Equal(t, costA, costB)
	assert.Equal(t, tagsA, tagsB)
}

func TestServiceRunCancelled(t *testing.T) {
	svc, err := New(testConfig(5))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, svc.Run(ctx), context.Canceled)
}

func TestServiceExport(t *testing.T) {
	cfg := testConfig(3)
	cfg.Simulation.Export = filepath.Join(t.TempDir(), "out")
	svc, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Run(context.Background()))

	for _, name := range []string{"timeseries.csv", "tags.csv"} {
		data, err := os.ReadFile(filepath.Join(cfg.Simulation.Export, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestServiceRejectsBadMethod(t *testing.T) {
	cfg := testConfig(2)
	cfg.Method.MaxWorkdayHours = 24
	_, err := New(cfg)
	assert.Error(t, err)
}
