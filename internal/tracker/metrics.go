package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes session activity to Prometheus. A nil *Metrics records
// nothing.
type Metrics struct {
	transitions *prometheus.CounterVec
	saveErrors  prometheus.Counter
	percent     prometheus.Gauge
	chapters    prometheus.Gauge
}

// NewMetrics registers the session collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scripturesteps",
			Name:      "transitions_total",
			Help:      "Progress transitions applied, by kind.",
		}, []string{"kind"}),
		saveErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "scripturesteps",
			Name:      "save_errors_total",
			Help:      "Snapshots that failed to persist.",
		}),
		percent: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "scripturesteps",
			Name:      "completion_percent",
			Help:      "Word-weighted completion percentage.",
		}),
		chapters: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "scripturesteps",
			Name:      "completed_chapters",
			Help:      "Completed chapters across the catalog.",
		}),
	}
}

func (m *Metrics) observe(kind string, percent float64, chapters int) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind).Inc()
	m.percent.Set(percent)
	m.chapters.Set(float64(chapters))
}

func (m *Metrics) saveFailed() {
	if m == nil {
		return
	}
	m.saveErrors.Inc()
}
