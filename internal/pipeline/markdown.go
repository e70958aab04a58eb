package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates Markdown to HTML conversion failed.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter abstracts Markdown to HTML fragment conversion.
type MarkdownConverter interface {
	ToHTML(content string) (string, error)
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark.
// It holds no per-call state and is safe for concurrent use.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // colors come from CodeCSS
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe is not set: raw HTML in content is dropped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ MarkdownConverter = (*GoldmarkConverter)(nil)
