// Package app wires the configured simulation together and runs it.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/emisense/ldarsim/config"
	"github.com/emisense/ldarsim/core/company"
	"github.com/emisense/ldarsim/core/crew"
	"github.com/emisense/ldarsim/core/emissions"
	coremetrics "github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/core/sim"
	"github.com/emisense/ldarsim/infra/environment"
	"github.com/emisense/ldarsim/infra/logger"
	"github.com/emisense/ldarsim/infra/metrics"
	"github.com/emisense/ldarsim/infra/mqtt"
	"github.com/emisense/ldarsim/pkg/export"
)

var registerOnce sync.Once

// Service owns one simulation run.
type Service struct {
	RunID   string
	cfg     *config.Config
	simctx  *sim.Context
	company *company.Company
	pub     *mqtt.Publisher
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	registerOnce.Do(func() {
		if err := metrics.RegisterBuiltins(); err != nil {
			logg.Errorf("register metrics sinks: %v", err)
		}
	})

	start, err := cfg.Simulation.Start()
	if err != nil {
		return nil, err
	}
	days := cfg.Simulation.Days

	simctx := sim.NewContext(start, days, cfg.Simulation.Seed)
	simctx.OffsiteTimes = cfg.Simulation.OffsiteTimesMinutes
	for _, sc := range cfg.Sites {
		simctx.Sites = append(simctx.Sites, sc.ToModel())
	}
	if err := emissions.Populate(simctx, cfg.Emissions); err != nil {
		return nil, fmt.Errorf("leak population: %w", err)
	}

	daylight := environment.NewDaylight(cfg.Simulation.BaseLatitude, start, days)
	// The weather stream uses a derived seed so it never shifts the draws of
	// the detection model.
	weather := environment.SyntheticWeather(cfg.Weather.LonCells, cfg.Weather.LatCells, days, cfg.Simulation.Seed+1)
	grid, err := environment.Precompute(weather, cfg.Weather.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("deployment grid: %w", err)
	}
	logg.Infof("deployment grid ready: %.0f%% of cell-days deployable", grid.Availability()*100)

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	var tags crew.TagPublisher = crew.NopPublisher{}
	var pub *mqtt.Publisher
	if cfg.MQTT.Enabled {
		pub, err = mqtt.NewPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("tag publisher: %w", err)
		}
		tags = pub
	}

	co, err := company.New(cfg.Simulation.Company, simctx, cfg.Method, cfg.Instrument,
		daylight, grid, sink, tags, logger.New("company"))
	if err != nil {
		return nil, err
	}

	return &Service{
		RunID:   uuid.NewString(),
		cfg:     cfg,
		simctx:  simctx,
		company: co,
		pub:     pub,
		log:     logg,
	}, nil
}

// Context exposes the shared simulation state, mainly for inspection after
// a run.
func (s *Service) Context() *sim.Context { return s.simctx }

// Run executes the configured number of simulation days. Cancellation is
// checked between days; a day in progress always completes.
func (s *Service) Run(ctx context.Context) error {
	s.log.Infof("run %s: %d sites, %d leaks, %d days",
		s.RunID, len(s.simctx.Sites), len(s.simctx.Leaks), s.cfg.Simulation.Days)
	for step := 0; step < s.cfg.Simulation.Days; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.company.SurveyDay(); err != nil {
			return fmt.Errorf("timestep %d: %w", step, err)
		}
		s.simctx.Clock.StepDay()
	}
	s.log.Infof("run %s complete: %d leaks tagged", s.RunID, len(s.simctx.Tags))
	if s.cfg.Simulation.Export != "" {
		if err := s.export(s.cfg.Simulation.Export); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}
	return nil
}

// Close releases external connections.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}

func (s *Service) export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	start, err := s.cfg.Simulation.Start()
	if err != nil {
		return err
	}
	tsFile, err := os.Create(filepath.Join(dir, "timeseries.csv"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tsFile.Close(); cerr != nil {
			s.log.Errorf("close timeseries export: %v", cerr)
		}
	}()
	if err := export.WriteCSV(tsFile, s.simctx.Timeseries, start); err != nil {
		return err
	}
	tagFile, err := os.Create(filepath.Join(dir, "tags.csv"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := tagFile.Close(); cerr != nil {
			s.log.Errorf("close tags export: %v", cerr)
		}
	}()
	return export.WriteTagsCSV(tagFile, s.simctx.Tags)
}
