package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	teachtoeach "github.com/alnah/teachtoeach"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// fixedNow is the clock every command test runs at.
var fixedNow = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

// testEnv returns an Environment isolated from the process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Logger: slog.New(slog.DiscardHandler),
	}
	return env, &stdout, &stderr
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// fakeExporter returns a fixed document or error.
type fakeExporter struct {
	mu    sync.Mutex
	pdf   []byte
	err   error
	calls int
}

func (f *fakeExporter) ExportPDF(_ context.Context, _ []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func (f *fakeExporter) Close() error { return nil }

var _ teachtoeach.Exporter = (*fakeExporter)(nil)
