package config

import (
	"github.com/alnah/teachtoeach/internal/assets"
)

// ThemeConfig is a theme file. Colors are validated when the renderer is
// built.
type ThemeConfig struct {
	Name           string `yaml:"name"`
	Background     string `yaml:"background"`
	CardBackground string `yaml:"cardBackground"`
	Accent         string `yaml:"accent"`
	TextLight      string `yaml:"textLight"`
	TextSecondary  string `yaml:"textSecondary"`
	Shadow         string `yaml:"shadow"`
	FontFamily     string `yaml:"fontFamily"`
	CardStyle      string `yaml:"cardStyle"`
	CodeStyle      string `yaml:"codeStyle"`
}

// Validate checks field lengths.
func (t *ThemeConfig) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", t.Name, MaxNameLength},
		{"background", t.Background, MaxShortLength},
		{"cardBackground", t.CardBackground, MaxShortLength},
		{"accent", t.Accent, MaxShortLength},
		{"textLight", t.TextLight, MaxShortLength},
		{"textSecondary", t.TextSecondary, MaxShortLength},
		{"shadow", t.Shadow, MaxShortLength},
		{"fontFamily", t.FontFamily, MaxLabelLength},
		{"cardStyle", t.CardStyle, MaxShortLength},
		{"codeStyle", t.CodeStyle, MaxShortLength},
	}
	for _, f := range fields {
		if err := validateFieldLength("theme."+f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// LoadTheme loads a theme file by path, or an embedded preset by name.
func LoadTheme(nameOrPath string) (*ThemeConfig, error) {
	data, err := loadNamedOrPath(nameOrPath, assets.ErrThemeNotFound, assets.NewEmbeddedStore().LoadTheme)
	if err != nil {
		return nil, err
	}

	var theme ThemeConfig
	if err := decodeDocument(nameOrPath, data, &theme); err != nil {
		return nil, err
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}
