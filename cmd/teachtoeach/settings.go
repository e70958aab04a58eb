package main

import (
	"fmt"

	"github.com/alnah/teachtoeach/internal/config"
)

// loadConfig resolves the configuration shared by every command:
// defaults < config file < environment < common flags. Command-specific
// flags are merged by the caller, which then calls Validate.
func loadConfig(f commonFlags, env *Environment) (*config.Config, error) {
	ec := loadEnvConfig(env.getenv)
	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	path := f.config
	if path == "" {
		path = ec.ConfigPath
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(ec, cfg)

	if f.assetRoot != "" {
		cfg.Assets.Root = f.assetRoot
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}
