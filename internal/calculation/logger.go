package calculation

import "time"

// Logger is a minimal logging interface for the projection engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// Recorder receives run-level measurements at the end of each projection.
type Recorder interface {
	ObserveProjection(status string, elapsed time.Duration)
	ObserveMilestone(kind, outcome string)
}

// NopRecorder implements Recorder with no output.
type NopRecorder struct{}

func (NopRecorder) ObserveProjection(string, time.Duration) {}
func (NopRecorder) ObserveMilestone(string, string)         {}
