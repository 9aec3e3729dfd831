// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating console loggers
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name, added to every record
	Name string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "text" (colorized) or "json"
	Format string

	// Output defaults to stderr so diagnostics never mix with the drill prompts
	Output io.Writer

	// NoColor disables ANSI colors in text format
	NoColor bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// Logger wraps slog with the key-value call style used throughout the code base
type Logger struct {
	*slog.Logger
	name  string
	level *slog.LevelVar
}

// NewLogger creates a new logger from the given configuration
func NewLogger(cfg LoggerConfig) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level).slogLevel())

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(output, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    cfg.NoColor || !isTerminal(output),
		})
	}

	logger := slog.New(handler)
	if cfg.Name != "" {
		logger = logger.With("component", cfg.Name)
	}

	return &Logger{
		Logger: logger,
		name:   cfg.Name,
		level:  level,
	}
}

// Discard returns a logger that drops every record
func Discard() *Logger {
	return NewLogger(LoggerConfig{Output: io.Discard, NoColor: true, Level: "error"})
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	return &Logger{
		Logger: slog.New(levelHandler{level: lv, Handler: l.Logger.Handler()}),
		name:   l.name,
		level:  lv,
	}
}

// WithField returns a logger that adds key=value to every record
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{
		Logger: l.Logger.With(key, value),
		name:   l.name,
		level:  l.level,
	}
}

// Enabled reports whether records at level would be written
func (l *Logger) Enabled(level Level) bool {
	return level.slogLevel() >= l.level.Level()
}

// levelHandler overrides the minimum level of an existing handler
type levelHandler struct {
	level slog.Leveler
	slog.Handler
}

func (h levelHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{level: h.level, Handler: h.Handler.WithAttrs(attrs)}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{level: h.level, Handler: h.Handler.WithGroup(name)}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
