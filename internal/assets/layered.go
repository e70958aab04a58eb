package assets

import (
	"errors"
	"io/fs"
)

// LayeredStore tries a custom store first and falls back to another store
// when the path is not found there. Validation and traversal errors from the
// custom store are returned as-is, without fallback.
type LayeredStore struct {
	custom   Store // nil means fallback only
	fallback Store
}

// NewLayeredStore creates a LayeredStore. custom may be nil.
func NewLayeredStore(custom, fallback Store) *LayeredStore {
	return &LayeredStore{custom: custom, fallback: fallback}
}

// Read implements Store.
func (l *LayeredStore) Read(path string) ([]byte, error) {
	if l.custom == nil {
		return l.fallback.Read(path)
	}

	content, err := l.custom.Read(path)
	if err == nil {
		return content, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return l.fallback.Read(path)
}

// HasCustom reports whether a custom store is configured.
func (l *LayeredStore) HasCustom() bool {
	return l.custom != nil
}

// Compile-time interface check.
var _ Store = (*LayeredStore)(nil)
