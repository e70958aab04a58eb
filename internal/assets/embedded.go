package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed images/* templates/* themes/* sites/*
var embedded embed.FS

// EmbeddedStore reads the defaults compiled into the binary.
type EmbeddedStore struct{}

// NewEmbeddedStore creates an EmbeddedStore.
func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

// Read returns an embedded file by slash-separated path, e.g. "images/logo.svg".
func (e *EmbeddedStore) Read(name string) ([]byte, error) {
	if err := ValidatePath(name); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}

	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetUnavailable, name, fs.ErrNotExist)
	}

	content, err := embedded.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetUnavailable, name, err)
	}
	return content, nil
}

// LoadTemplate returns an embedded HTML template by name (without .html).
func (e *EmbeddedStore) LoadTemplate(name string) (string, error) {
	content, err := e.loadNamed("templates", name, ".html", ErrTemplateNotFound)
	return string(content), err
}

// LoadTheme returns the YAML source of a theme preset.
func (e *EmbeddedStore) LoadTheme(name string) ([]byte, error) {
	return e.loadNamed("themes", name, ".yaml", ErrThemeNotFound)
}

// LoadSite returns the YAML source of a content preset.
func (e *EmbeddedStore) LoadSite(name string) ([]byte, error) {
	return e.loadNamed("sites", name, ".yaml", ErrSiteNotFound)
}

// Themes lists the embedded theme preset names in sorted order.
func (e *EmbeddedStore) Themes() []string {
	return listNames("themes", ".yaml")
}

// Sites lists the embedded content preset names in sorted order.
func (e *EmbeddedStore) Sites() []string {
	return listNames("sites", ".yaml")
}

func (e *EmbeddedStore) loadNamed(dir, name, ext string, notFound error) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := embedded.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", notFound, name)
	}
	return content, nil
}

func listNames(dir, ext string) []string {
	entries, err := embedded.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ext); ok && !e.IsDir() {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ Store = (*EmbeddedStore)(nil)
