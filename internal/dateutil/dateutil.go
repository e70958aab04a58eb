// Package dateutil expands date placeholders in authored page text, such as
// the copyright year in the footer.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used by a bare {date} placeholder.
const DefaultDateFormat = "YYYY"

// dateTokens maps user-friendly tokens to Go time layout components,
// longest first so matching is greedy.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common formats.
var DatePresets = map[string]string{
	"year":     "YYYY",
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D)
// to a Go time layout. Text inside [brackets] is copied literally; other
// characters are preserved as-is.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		n := 1
		lit := rest[:1]
		for _, t := range dateTokens {
			if strings.HasPrefix(rest, t.token) {
				n, lit = len(t.token), t.goFmt
				break
			}
		}
		layout.WriteString(lit)
		rest = rest[n:]
	}

	return layout.String(), nil
}

// Expand replaces {date} and {date:FORMAT} placeholders in text with t
// formatted accordingly. FORMAT may be a preset name (case-insensitive).
// Other braces are left untouched.
//
//	Expand("© {date} TeachToEach", t)          -> "© 2025 TeachToEach"
//	Expand("Updated {date:long}", t)           -> "Updated March 4, 2025"
func Expand(text string, t time.Time) (string, error) {
	const open = "{date"

	var out strings.Builder
	rest := text
	for {
		i := strings.Index(rest, open)
		if i == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:i])
		rest = rest[i+len(open):]

		end := strings.IndexByte(rest, '}')
		if end == -1 || (end > 0 && rest[0] != ':') {
			// Not a placeholder ("{dates}", "{date" without close).
			out.WriteString(open)
			continue
		}

		format := DefaultDateFormat
		if end > 0 {
			format = rest[1:end]
			if preset, ok := DatePresets[strings.ToLower(format)]; ok {
				format = preset
			}
		}

		layout, err := ParseDateFormat(format)
		if err != nil {
			return "", err
		}
		out.WriteString(t.Format(layout))
		rest = rest[end+1:]
	}
}
