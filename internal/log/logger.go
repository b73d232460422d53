// Package log builds the process-wide slog logger. Every record carries a
// component attribute so the api and worker binaries are distinguishable
// in merged output.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger pre-tagged with a component name.
type Logger struct {
	*slog.Logger
	component string
}

// Config controls handler selection and tagging. A nil Handler means a
// text handler on stdout at the configured level.
type Config struct {
	Level     slog.Level
	Component string
	Handler   slog.Handler
}

// New builds a logger from cfg.
func New(cfg Config) *Logger {
	handler := cfg.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	component := cfg.Component
	if component == "" {
		component = "app"
	}
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// WithComponent returns a logger tagged with a different component,
// sharing the same handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// Component returns the logger's component tag.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the slog default, so packages logging
// through the slog package functions inherit the component tag.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
