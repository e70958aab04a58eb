package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	teachtoeach "github.com/alnah/teachtoeach"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// Environ lists the process environment as KEY=VALUE pairs.
	Environ func() []string

	// NewExporter builds PDF exporters. Nil uses headless Chrome.
	NewExporter func() teachtoeach.Exporter

	// Logger overrides the logger built from flags. Nil builds one on Stderr.
	Logger *slog.Logger
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// getenv tolerates a zero Environment in tests.
func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
