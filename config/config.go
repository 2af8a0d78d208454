package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/emisense/ldarsim/core/crew"
	"github.com/emisense/ldarsim/core/emissions"
	"github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/infra/mqtt"
)

// Config is the root configuration of a simulation run.
type Config struct {
	Simulation SimulationConfig          `json:"simulation"`
	Method     crew.MethodParams         `json:"method"`
	Instrument crew.InstrumentParams     `json:"instrument"`
	Sites      []SiteConfig              `json:"sites"`
	Emissions  emissions.GeneratorConfig `json:"emissions"`
	Weather    WeatherConfig             `json:"weather"`
	Metrics    metrics.Config            `json:"metrics"`
	MQTT       mqtt.Config               `json:"mqtt"`
}

// Load reads the configuration file (yaml or json by extension), applies
// L_-prefixed environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. L_SIMULATION__SEED=7.
	if err := k.Load(env.Provider("L_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "l_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Simulation.SetDefaults()
	cfg.Method.SetDefaults()
	cfg.Emissions.SetDefaults()
	cfg.Weather.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and the site dataset.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if err := c.Method.Validate(); err != nil {
		return fmt.Errorf("method: %w", err)
	}
	if err := c.Instrument.Validate(); err != nil {
		return fmt.Errorf("instrument: %w", err)
	}
	if err := c.Emissions.Validate(); err != nil {
		return fmt.Errorf("emissions: %w", err)
	}
	if err := c.Weather.Validate(); err != nil {
		return fmt.Errorf("weather: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if len(c.Sites) == 0 {
		return fmt.Errorf("at least one site is required")
	}
	for i, s := range c.Sites {
		if err := s.ToModel().Validate(); err != nil {
			return fmt.Errorf("site %d: %w", i, err)
		}
		if s.LonIndex >= c.Weather.LonCells || s.LatIndex >= c.Weather.LatCells {
			return fmt.Errorf("site %s: grid cell (%d,%d) outside %dx%d weather grid",
				s.FacilityID, s.LonIndex, s.LatIndex, c.Weather.LonCells, c.Weather.LatCells)
		}
	}
	return nil
}
