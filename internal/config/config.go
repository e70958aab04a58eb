package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/teachtoeach/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrInvalidBlock    = errors.New("invalid block")
)

// Field length limits.
const (
	MaxNameLength     = 64   // variant, preset, section and form identifiers
	MaxTitleLength    = 100  // page, heading and card titles
	MaxLabelLength    = 100  // link text, field labels, submit labels
	MaxTextLength     = 5000 // paragraphs and card bodies
	MaxShortLength    = 50   // price, tutor, mode, lang, icon, fallback glyph
	MaxURLLength      = 2048 // hrefs and asset paths
	MaxAddrLength     = 255  // listen address
	MaxPageSizeLength = 10   // "letter", "a4"
)

// Defaults.
const (
	DefaultSite      = "teachtoeach"
	DefaultTheme     = "classic"
	DefaultOutputDir = "public"
	DefaultAddr      = "127.0.0.1:8080"
	DefaultPageSize  = "letter"
	DefaultTimeout   = 30 * time.Second
)

// Config holds the build and preview settings.
type Config struct {
	Site     string          `yaml:"site"`  // content preset name or path to a content file
	Theme    string          `yaml:"theme"` // theme preset name or path to a theme file
	Variants []VariantConfig `yaml:"variants"`
	Assets   AssetsConfig    `yaml:"assets"`
	Output   OutputConfig    `yaml:"output"`
	Server   ServerConfig    `yaml:"server"`
	PDF      PDFConfig       `yaml:"pdf"`
	Log      LogConfig       `yaml:"log"`
	Workers  int             `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// VariantConfig is one site built from a content and theme pair.
type VariantConfig struct {
	Name  string `yaml:"name"`
	Site  string `yaml:"site"`  // empty = Config.Site
	Theme string `yaml:"theme"` // empty = Config.Theme
}

// AssetsConfig defines where images are read from.
type AssetsConfig struct {
	Root string `yaml:"root"` // empty = embedded assets only
}

// OutputConfig defines where built pages are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig defines the preview server.
type ServerConfig struct {
	Addr  string `yaml:"addr"`
	Watch bool   `yaml:"watch"`
}

// PDFConfig defines the optional flyer export.
type PDFConfig struct {
	Enabled  bool          `yaml:"enabled"`
	PageSize string        `yaml:"pageSize"` // "letter" or "a4"
	Timeout  time.Duration `yaml:"timeout"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Site:   DefaultSite,
		Theme:  DefaultTheme,
		Output: OutputConfig{Dir: DefaultOutputDir},
		Server: ServerConfig{Addr: DefaultAddr},
		PDF:    PDFConfig{PageSize: DefaultPageSize, Timeout: DefaultTimeout},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site", c.Site, MaxURLLength},
		{"theme", c.Theme, MaxURLLength},
		{"assets.root", c.Assets.Root, MaxURLLength},
		{"output.dir", c.Output.Dir, MaxURLLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4":
			// valid
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter or a4)", ErrInvalidValue, c.PDF.PageSize)
		}
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("%w: pdf.timeout must not be negative, got %s", ErrInvalidValue, c.PDF.Timeout)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn or error)", ErrInvalidValue, c.Log.Level)
		}
	}

	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		prefix := fmt.Sprintf("variants[%d]", i)
		if v.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalidValue, prefix)
		}
		if err := validateName(prefix+".name", v.Name); err != nil {
			return err
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: %s.name %q is duplicated", ErrInvalidValue, prefix, v.Name)
		}
		seen[v.Name] = true
		if err := validateFieldLength(prefix+".site", v.Site, MaxURLLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".theme", v.Theme, MaxURLLength); err != nil {
			return err
		}
	}

	return nil
}

// ResolvedVariants returns the variants to build with Site and Theme filled
// in from the top level. Without declared variants it returns one unnamed
// variant.
func (c *Config) ResolvedVariants() []VariantConfig {
	if len(c.Variants) == 0 {
		return []VariantConfig{{Site: c.Site, Theme: c.Theme}}
	}
	out := make([]VariantConfig, len(c.Variants))
	for i, v := range c.Variants {
		if v.Site == "" {
			v.Site = c.Site
		}
		if v.Theme == "" {
			v.Theme = c.Theme
		}
		out[i] = v
	}
	return out
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateName restricts identifiers used in output paths and HTML ids.
func validateName(fieldName, value string) error {
	if err := validateFieldLength(fieldName, value, MaxNameLength); err != nil {
		return err
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %s %q (letters, digits, '-' and '_' only)", ErrInvalidValue, fieldName, value)
		}
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeDocument(configPath, data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup
// order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "teachtoeach", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
