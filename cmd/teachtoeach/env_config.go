package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/teachtoeach/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "TEACHTOEACH_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TEACHTOEACH_CONFIG: config file name or path
	AssetRoot  string        // TEACHTOEACH_ASSET_ROOT: image directory
	OutputDir  string        // TEACHTOEACH_OUTPUT_DIR: build output directory
	Addr       string        // TEACHTOEACH_ADDR: preview server address
	LogLevel   string        // TEACHTOEACH_LOG_LEVEL: debug, info, warn, error
	Workers    int           // TEACHTOEACH_WORKERS: parallel builds
	Theme      string        // TEACHTOEACH_THEME: theme preset or path
	Site       string        // TEACHTOEACH_SITE: content preset or path
	Timeout    time.Duration // TEACHTOEACH_TIMEOUT: PDF export timeout
}

// knownEnvVars lists valid TEACHTOEACH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEACHTOEACH_CONFIG":     true,
	"TEACHTOEACH_ASSET_ROOT": true,
	"TEACHTOEACH_OUTPUT_DIR": true,
	"TEACHTOEACH_ADDR":       true,
	"TEACHTOEACH_LOG_LEVEL":  true,
	"TEACHTOEACH_WORKERS":    true,
	"TEACHTOEACH_THEME":      true,
	"TEACHTOEACH_SITE":       true,
	"TEACHTOEACH_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("TEACHTOEACH_CONFIG"),
		AssetRoot:  getenv("TEACHTOEACH_ASSET_ROOT"),
		OutputDir:  getenv("TEACHTOEACH_OUTPUT_DIR"),
		Addr:       getenv("TEACHTOEACH_ADDR"),
		LogLevel:   getenv("TEACHTOEACH_LOG_LEVEL"),
		Theme:      getenv("TEACHTOEACH_THEME"),
		Site:       getenv("TEACHTOEACH_SITE"),
	}

	if workers := getenv("TEACHTOEACH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if timeout := getenv("TEACHTOEACH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized TEACHTOEACH_*
// variable in environ.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with set environment
// variables. Flags are applied afterwards, giving:
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.AssetRoot != "" {
		cfg.Assets.Root = env.AssetRoot
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Site != "" {
		cfg.Site = env.Site
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
}
