// Package logging configures zerolog for the vitrify CLI and provides
// context helpers so engine code can log without importing setup details.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string

	// Format selects "console" (human-readable) or "json".
	Format string

	// File is an optional log file path. Empty means stderr.
	File string
}

// Result reports what NewLogger actually did, so callers can tell the
// user where their logs went when a file could not be opened.
type Result struct {
	Logger       zerolog.Logger
	UsingFile    bool
	FilePath     string
	FallbackUsed bool
	FallbackErr  error
}

// NewLogger builds a zerolog.Logger from cfg. Unknown levels fall back to
// info. If the configured file cannot be opened the logger falls back to
// stderr and the Result records the failure.
func NewLogger(cfg Config) Result {
	level := parseLevel(cfg.Level)

	var w io.Writer = os.Stderr
	res := Result{}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			res.FallbackUsed = true
			res.FallbackErr = err
		} else {
			w = f
			res.UsingFile = true
			res.FilePath = cfg.File
		}
	}

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w}
	}

	res.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return res
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// ContextWithLogger attaches a logger to ctx for retrieval via FromContext.
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none is present. Engine code uses this instead of a package global.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
