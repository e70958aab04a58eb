// Package pipeline converts authored Markdown text to HTML fragments and
// produces the matching syntax highlighting stylesheet.
//
// Markdown is rendered by Goldmark with GFM extensions. Raw HTML in the
// source is never passed through, so the output is safe to embed in a page
// without further escaping. Fenced code blocks are highlighted by Chroma
// using CSS classes; CodeCSS returns the rules for a named Chroma style.
package pipeline
