package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rpgo/lifeplan/internal/api"
	"github.com/rpgo/lifeplan/internal/metrics"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.settings
			if port != "" {
				cfg.HTTPPort = port
			}
			log := opts.logger

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(registry)

			engine := opts.newEngine()
			engine.SetRecorder(m)

			router := api.NewRouter(api.RouterConfig{
				ProjectionHandler: api.NewProjectionHandler(engine, opts.newParser(), cfg.MaxBodyBytes),
				Logger:            log,
				Metrics:           m,
				Gatherer:          registry,
			})

			server := &http.Server{
				Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
				Handler:      router,
				ReadTimeout:  cfg.HTTPReadTimeout,
				WriteTimeout: cfg.HTTPWriteTimeout,
				IdleTimeout:  cfg.HTTPIdleTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (overrides LIFEPLAN_HTTP_PORT)")
	return cmd
}
