package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxDocumentSize caps config, content and theme files.
const maxDocumentSize = 1 << 20

// decodeDocument decodes the YAML document read from source into v.
// Unknown keys are rejected. Every failure wraps ErrConfigParse and names
// source; syntax and type errors carry the offending line and column.
func decodeDocument(source string, data []byte, v any) error {
	switch {
	case len(data) == 0:
		return fmt.Errorf("%w: %s: empty document", ErrConfigParse, source)
	case len(data) > maxDocumentSize:
		return fmt.Errorf("%w: %s: %d bytes exceeds the %d byte limit",
			ErrConfigParse, source, len(data), maxDocumentSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %s:\n%s", ErrConfigParse, source, yaml.FormatError(err, false, true))
	}
	return nil
}
