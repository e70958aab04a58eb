package pipeline

import (
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownCodeStyle indicates the Chroma style name is not registered.
var ErrUnknownCodeStyle = errors.New("unknown code style")

// HasCodeStyle reports whether name is a registered Chroma style.
func HasCodeStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// CodeStyles lists the registered Chroma style names.
func CodeStyles() []string {
	return styles.Names()
}

// CodeCSS returns the stylesheet for code blocks highlighted with classes,
// using the named Chroma style.
func CodeCSS(style string) (string, error) {
	if !HasCodeStyle(style) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCodeStyle, style)
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s code CSS: %w", style, err)
	}
	return buf.String(), nil
}
