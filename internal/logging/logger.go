// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides structured logging for verifai using zerolog.
// Logs always go to stderr (or a caller-supplied writer) so that stdout
// carries only the result envelope.
//
//	log := logging.Default()
//	log.Warn().Str("source", "crossref").Err(err).Msg("lookup failed")
//
//	ctx = logging.WithRunID(ctx, id)
//	logging.FromContext(ctx).Debug().Msg("reconciling")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var defaultLogger = newDefault(os.Stderr, levelFromEnv())

// Options configures Setup.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", ...).
	// Empty keeps the LOG_LEVEL environment default.
	Level string

	// JSON forces JSON output even on a terminal.
	JSON bool

	// Out overrides the destination (default os.Stderr).
	Out io.Writer
}

// Setup replaces the default logger according to opts.
func Setup(opts Options) error {
	level := levelFromEnv()
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return err
		}
		level = l
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON && isTerminal(out) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	defaultLogger = newDefault(out, level)
	return nil
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// New creates a JSON logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func newDefault(w io.Writer, level zerolog.Level) zerolog.Logger {
	logger := New(w, level)
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

func levelFromEnv() zerolog.Level {
	s := os.Getenv("LOG_LEVEL")
	if s == "" {
		if os.Getenv("DEBUG") != "" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
