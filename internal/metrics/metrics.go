// Package metrics exposes projection measurements to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. It implements calculation.Recorder.
type Metrics struct {
	// Projection metrics
	Projections        *prometheus.CounterVec
	ProjectionDuration prometheus.Histogram
	Milestones         *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Projections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeplan_projections_total",
				Help: "Total projections run by status",
			},
			[]string{"status"},
		),
		ProjectionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifeplan_projection_duration_seconds",
			Help:    "Duration of projection runs",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		Milestones: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeplan_milestones_total",
				Help: "Total milestones processed by type and outcome",
			},
			[]string{"type", "outcome"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeplan_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lifeplan_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveProjection counts a finished run and records its duration.
func (m *Metrics) ObserveProjection(status string, elapsed time.Duration) {
	m.Projections.WithLabelValues(status).Inc()
	m.ProjectionDuration.Observe(elapsed.Seconds())
}

// ObserveMilestone counts one processed milestone.
func (m *Metrics) ObserveMilestone(kind, outcome string) {
	if kind == "" {
		kind = "unknown"
	}
	m.Milestones.WithLabelValues(kind, outcome).Inc()
}
