// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer, defaults to io.Discard so the screen is not corrupted
	App    string    // optional application name attached to every entry
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
)

// Configure replaces the global logger
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	writer := cfg.Output
	if writer == nil {
		writer = io.Discard
	}
	app := cfg.App
	if app == "" {
		app = "vi-scene"
	}

	l := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("app", app).
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

// Base returns the configured logger
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the component name
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
