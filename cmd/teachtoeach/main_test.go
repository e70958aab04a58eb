package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command prints usage",
			args:       []string{"teachtoeach"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: teachtoeach",
		},
		{
			name:       "unknown command",
			args:       []string{"teachtoeach", "publish"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: publish",
		},
		{
			name:       "version",
			args:       []string{"teachtoeach", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "teachtoeach " + Version,
		},
		{
			name:       "--version",
			args:       []string{"teachtoeach", "--version"},
			wantCode:   ExitSuccess,
			wantStdout: "teachtoeach " + Version,
		},
		{
			name:       "help for build",
			args:       []string{"teachtoeach", "help", "build"},
			wantCode:   ExitSuccess,
			wantStdout: "--pdf",
		},
		{
			name:       "build -h prints usage and succeeds",
			args:       []string{"teachtoeach", "build", "-h"},
			wantCode:   ExitSuccess,
			wantStdout: "Usage: teachtoeach build",
		},
		{
			name:       "unknown flag is a usage error",
			args:       []string{"teachtoeach", "build", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: "invalid flag",
		},
		{
			name:       "positional argument is a usage error",
			args:       []string{"teachtoeach", "serve", "extra"},
			wantCode:   ExitUsage,
			wantStderr: "unexpected argument: extra",
		},
		{
			name:       "missing asset root is an I/O error with a hint",
			args:       []string{"teachtoeach", "build", "--asset-root", "/nonexistent/teachtoeach-images"},
			wantCode:   ExitIO,
			wantStderr: "asset root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			if got := runMain(tt.args, env); got != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", got, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"build", true},
		{"serve", true},
		{"doctor", true},
		{"version", true},
		{"--version", true},
		{"help", true},
		{"-h", true},
		{"--help", true},
		{"convert", false},
		{"", false},
		{"BUILD", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
