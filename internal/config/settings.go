package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/rpgo/lifeplan/internal/domain"
)

// EnvPrefix is prepended to every environment variable read by LoadSettings.
const EnvPrefix = "LIFEPLAN_"

// Settings holds process configuration for the CLI and the HTTP server.
type Settings struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes        int64         `env:"MAX_BODY_BYTES"        envDefault:"1048576"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Projection
	MaxYears    int                `env:"MAX_YEARS" envDefault:"150"`
	Assumptions domain.Assumptions `envPrefix:"ASSUMPTION_"`
}

// LoadSettings loads settings from LIFEPLAN_* environment variables.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(nil)
}

// LoadSettingsFrom loads settings from environ instead of the process
// environment when environ is non-nil.
func LoadSettingsFrom(environ map[string]string) (*Settings, error) {
	cfg := &Settings{}
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if cfg.MaxYears < 1 {
		return nil, fmt.Errorf("%w: max years must be positive, got %d", domain.ErrInvalidInput, cfg.MaxYears)
	}
	if err := cfg.Assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	return cfg, nil
}
