package assets

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ImagePattern matches every file with a known image extension.
const ImagePattern = "**/*.{png,jpg,jpeg,gif,svg,webp,ico,avif,bmp,PNG,JPG,JPEG,GIF,SVG,WEBP}"

// Inventory lists the files in fsys matching any of patterns, sorted and
// de-duplicated. Patterns use doublestar syntax ("**", "{a,b}").
func Inventory(fsys fs.FS, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{ImagePattern}
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: bad pattern %q", ErrInvalidAssetPath, p)
		}
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("globbing %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// MatchAny reports whether name matches one of the doublestar patterns.
// Invalid patterns never match.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.PathMatch(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
