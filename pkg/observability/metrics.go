package observability

import (
	"context"

	"github.com/danilucaci/stylemap/pkg/tokens"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for token lookups.
type Metrics struct {
	Lookups  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors. Call Register (or register the fields
// yourself) before use.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylemap_lookups_total",
				Help: "Total number of token lookups by result.",
			},
			[]string{"sheet", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "stylemap_resolve_duration_seconds",
				Help: "Duration of token resolutions.",
			},
			[]string{"sheet"},
		),
	}
}

// Register registers the collectors with the given registerer.
// Pass prometheus.DefaultRegisterer for the global registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if err := reg.Register(m.Lookups); err != nil {
		return err
	}
	return reg.Register(m.Duration)
}

// Hooks adapts the collectors into resolver hooks.
func (m *Metrics) Hooks() tokens.LifecycleHooks {
	return tokens.LifecycleHooks{
		OnLookup: func(_ context.Context, ev tokens.LookupEvent) {
			result := "hit"
			if ev.CacheHit {
				result = "cache_hit"
			}
			m.Lookups.WithLabelValues(ev.Sheet, result).Inc()
			m.Duration.WithLabelValues(ev.Sheet).Observe(ev.Duration.Seconds())
		},
		OnMiss: func(_ context.Context, ev tokens.LookupEvent) {
			m.Lookups.WithLabelValues(ev.Sheet, "miss").Inc()
			m.Duration.WithLabelValues(ev.Sheet).Observe(ev.Duration.Seconds())
		},
	}
}
