package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects preview controller counters on its own registry so several
// controllers (and tests) never collide on the default one. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Selections     prometheus.Counter
	Outcomes       *prometheus.CounterVec
	Superseded     prometheus.Counter
	DecodeDuration prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,

		Selections: factory.NewCounter(prometheus.CounterOpts{
			Name: "wavepeek_selections_total",
			Help: "Files selected for preview",
		}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wavepeek_outcomes_total",
			Help: "Settled selections by final phase",
		}, []string{"phase"}),

		Superseded: factory.NewCounter(prometheus.CounterOpts{
			Name: "wavepeek_superseded_total",
			Help: "Decode results dropped because a newer selection or a clear arrived first",
		}),

		DecodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wavepeek_decode_duration_seconds",
			Help:    "Decode latency of authoritative selections",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
	}
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Selected() {
	if m == nil {
		return
	}
	m.Selections.Inc()
}

func (m *Metrics) Settled(phase string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(phase).Inc()
}

func (m *Metrics) Dropped() {
	if m == nil {
		return
	}
	m.Superseded.Inc()
}

func (m *Metrics) ObserveDecode(d time.Duration) {
	if m == nil {
		return
	}
	m.DecodeDuration.Observe(d.Seconds())
}

// WriteTextfile dumps all collectors in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
