package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the CLI logger. --verbose forces debug and --quiet
// forces error; otherwise level is parsed ("" means info).
func newLogger(w io.Writer, level string, verbose, quiet bool) (*slog.Logger, error) {
	var lvl slog.Level
	switch {
	case verbose:
		lvl = slog.LevelDebug
	case quiet:
		lvl = slog.LevelError
	case level == "":
		lvl = slog.LevelInfo
	default:
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("%w: log level %q", ErrInvalidFlag, level)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// loggerFor returns env.Logger when set, or a logger built from flags.
func loggerFor(env *Environment, level string, f commonFlags) (*slog.Logger, error) {
	if env.Logger != nil {
		return env.Logger, nil
	}
	return newLogger(env.Stderr, level, f.verbose, f.quiet)
}

// discardLogger drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
