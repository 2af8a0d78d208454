package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/emisense/ldarsim/core/factory"
	"github.com/emisense/ldarsim/core/metrics"
)

// RegisterBuiltins adds the bundled sink factories to the core registry.
// Call once during application startup.
func RegisterBuiltins() error {
	if err := metrics.RegisterSink("prometheus", func(conf map[string]any) (metrics.Sink, error) {
		return NewPromSink(prometheus.DefaultRegisterer)
	}); err != nil {
		return err
	}
	return metrics.RegisterSink("influx", func(conf map[string]any) (metrics.Sink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})
}
