package teachtoeach

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/teachtoeach/internal/pipeline"
)

// CardStyle selects how cards are drawn.
type CardStyle string

// Card styles.
const (
	CardRaised  CardStyle = "raised"  // shadow, lifts and fills with the accent on hover
	CardFlat    CardStyle = "flat"    // no shadow, accent border on hover
	CardOutline CardStyle = "outline" // bordered, transparent background
)

// CardStyles lists the accepted card styles.
func CardStyles() []CardStyle {
	return []CardStyle{CardRaised, CardFlat, CardOutline}
}

// Theme is the immutable palette of a page.
type Theme struct {
	Name           string
	Background     string
	CardBackground string
	Accent         string
	TextLight      string
	TextSecondary  string
	Shadow         string
	FontFamily     string
	CardStyle      CardStyle
	CodeStyle      string // chroma style for code blocks; empty emits no code CSS
}

// DefaultTheme returns the dark gold palette.
func DefaultTheme() Theme {
	return Theme{
		Name:           "classic",
		Background:     "#1C1B19",
		CardBackground: "#2B2A27",
		Accent:         "#D6B46E",
		TextLight:      "#EAE6DA",
		TextSecondary:  "#A9A59D",
		Shadow:         "rgba(0,0,0,0.5)",
		FontFamily:     "'Poppins', sans-serif",
		CardStyle:      CardRaised,
		CodeStyle:      "monokai",
	}
}

var (
	hexColorPattern  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorPattern  = regexp.MustCompile(`^rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*(?:0|1|0?\.\d+|1\.0+)\s*)?\)$`)
	fontFamilyDenied = "{};<>\\\n\r"
)

// IsColor reports whether s is a hex, rgb() or rgba() color.
func IsColor(s string) bool {
	return hexColorPattern.MatchString(s) || rgbColorPattern.MatchString(s)
}

// Validate checks every palette entry. The stylesheet is built from these
// values without escaping, so anything outside the accepted forms is
// rejected.
func (t Theme) Validate() error {
	colors := []struct {
		name, value string
	}{
		{"background", t.Background},
		{"cardBackground", t.CardBackground},
		{"accent", t.Accent},
		{"textLight", t.TextLight},
		{"textSecondary", t.TextSecondary},
		{"shadow", t.Shadow},
	}
	for _, c := range colors {
		if !IsColor(c.value) {
			return fmt.Errorf("%w: %s %q (expected #hex, rgb() or rgba())", ErrInvalidColor, c.name, c.value)
		}
	}

	if strings.TrimSpace(t.FontFamily) == "" || strings.ContainsAny(t.FontFamily, fontFamilyDenied) {
		return fmt.Errorf("%w: %q", ErrInvalidFontFamily, t.FontFamily)
	}

	switch t.CardStyle {
	case CardRaised, CardFlat, CardOutline:
	default:
		return fmt.Errorf("%w: %q (expected raised, flat or outline)", ErrInvalidCardStyle, t.CardStyle)
	}

	if t.CodeStyle != "" && !pipeline.HasCodeStyle(t.CodeStyle) {
		return fmt.Errorf("%w: %q", pipeline.ErrUnknownCodeStyle, t.CodeStyle)
	}
	return nil
}
