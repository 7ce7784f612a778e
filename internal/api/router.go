// Package api serves projections over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpgo/lifeplan/internal/metrics"
	"github.com/rs/zerolog"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ProjectionHandler *ProjectionHandler
	Logger            zerolog.Logger
	// Metrics and Gatherer are optional; without them /metrics is not mounted.
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(RequestMetrics(cfg.Metrics))
	}

	r.Get("/health", Liveness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/projections", func(r chi.Router) {
			r.Post("/", cfg.ProjectionHandler.Create)
			r.Get("/example", cfg.ProjectionHandler.Example)
		})
		r.Get("/formats", cfg.ProjectionHandler.Formats)
	})

	return r
}
