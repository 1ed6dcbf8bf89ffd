package slogx

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

type Config struct {
	Service string
	Version string
	Env     string // e.g. "dev", "prod"
	Level   string // e.g. "debug", "info", "warn", "error"
	Format  string // e.g. "json", "text"
}

var (
	mu       sync.RWMutex
	fallback *slog.Logger
)

// New returns a configured slog.Logger and records it as the package
// fallback used by FromContext. The process-wide slog default is left
// untouched so embedding applications keep their own logging setup.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev", // Add source info in dev mode
		Level:     level,
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	mu.Lock()
	fallback = logger
	mu.Unlock()

	return logger
}

// Fallback returns the most recently constructed logger, or the process
// default when New has not been called yet.
func Fallback() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if fallback == nil {
		return slog.Default()
	}
	return fallback
}

// parseLevel maps a string to slog.Level.
func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
