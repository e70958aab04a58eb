package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/teachtoeach/internal/config"
)

func mapGetenv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all variables", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"TEACHTOEACH_CONFIG":     "/etc/teachtoeach.yaml",
			"TEACHTOEACH_ASSET_ROOT": "/srv/images",
			"TEACHTOEACH_OUTPUT_DIR": "/srv/www",
			"TEACHTOEACH_ADDR":       ":9000",
			"TEACHTOEACH_LOG_LEVEL":  "debug",
			"TEACHTOEACH_WORKERS":    "4",
			"TEACHTOEACH_THEME":      "ocean",
			"TEACHTOEACH_SITE":       "content.yaml",
			"TEACHTOEACH_TIMEOUT":    "1m",
		}))

		want := envConfig{
			ConfigPath: "/etc/teachtoeach.yaml",
			AssetRoot:  "/srv/images",
			OutputDir:  "/srv/www",
			Addr:       ":9000",
			LogLevel:   "debug",
			Workers:    4,
			Theme:      "ocean",
			Site:       "content.yaml",
			Timeout:    time.Minute,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"TEACHTOEACH_WORKERS": "-2",
			"TEACHTOEACH_TIMEOUT": "later",
		}))
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want 0", cfg.Workers)
		}
		if cfg.Timeout != 0 {
			t.Errorf("Timeout = %v, want 0", cfg.Timeout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"TEACHTOEACH_THEME=ocean",
		"TEACHTOEACH_THEMES=ocean",
		"PATH=/usr/bin",
	})

	out := buf.String()
	if !strings.Contains(out, "TEACHTOEACH_THEMES") {
		t.Errorf("output = %q, want a warning for TEACHTOEACH_THEMES", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("output = %q, want exactly one warning", out)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_Precedence - defaults < file < env < flags
// ---------------------------------------------------------------------------

func TestLoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "teachtoeach.yaml", `
theme: ivory
assets:
  root: from-file
output:
  dir: from-file
`)

	env, _, _ := testEnv(map[string]string{
		"TEACHTOEACH_CONFIG":     cfgPath,
		"TEACHTOEACH_ASSET_ROOT": "from-env",
		"TEACHTOEACH_OUTPUT_DIR": "from-env",
	})

	cfg, err := loadConfig(commonFlags{assetRoot: "from-flag"}, env)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Theme != "ivory" {
		t.Errorf("Theme = %q, want ivory from file", cfg.Theme)
	}
	if cfg.Output.Dir != "from-env" {
		t.Errorf("Output.Dir = %q, want from-env", cfg.Output.Dir)
	}
	if cfg.Assets.Root != "from-flag" {
		t.Errorf("Assets.Root = %q, want from-flag", cfg.Assets.Root)
	}
	if cfg.Site != config.DefaultSite {
		t.Errorf("Site = %q, want default %q", cfg.Site, config.DefaultSite)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv(nil)
	_, err := loadConfig(commonFlags{config: "/nonexistent/teachtoeach.yaml"}, env)
	if err == nil {
		t.Fatal("loadConfig() should fail for a missing file")
	}
	if got := exitCodeFor(err); got != ExitUsage && got != ExitIO {
		t.Errorf("exitCodeFor() = %d, want usage or I/O", got)
	}
}
