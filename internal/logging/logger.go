// Package logging builds the zerolog logger shared by the CLI and the server
// and adapts it to the engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Out    io.Writer
}

// New creates a new zerolog logger based on config. Output defaults to stderr
// so that projection output on stdout stays clean.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Out != nil {
		output = cfg.Out
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// EngineLogger adapts a zerolog.Logger to calculation.Logger.
type EngineLogger struct {
	logger zerolog.Logger
}

// NewEngineLogger tags every entry with component=engine.
func NewEngineLogger(l zerolog.Logger) *EngineLogger {
	return &EngineLogger{logger: l.With().Str("component", "engine").Logger()}
}

func (l *EngineLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l *EngineLogger) Infof(format string, args ...any) {
	l.logger.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *EngineLogger) Warnf(format string, args ...any) {
	l.logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l *EngineLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msg(fmt.Sprintf(format, args...))
}
