package bramble

import "log/slog"

// Logger is the minimal logging sink the runtime depends on. Every warning
// and error described by the lifecycle contracts goes through it; it must
// never panic. Plug any structured logger via a thin adapter, or use
// [NewSlogAdapter].
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps a *slog.Logger to implement [Logger].
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a [Logger] from a *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultLogger creates a [Logger] backed by slog.Default().
func NewDefaultLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NopLogger discards all log messages. Used when Options.Log is nil.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
