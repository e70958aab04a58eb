package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a preset name (theme, site, template) is safe
// for use as a filename. Returns ErrInvalidAssetName if the name is empty or
// contains path separators, dots, or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// ValidatePath checks that an image reference can be handed to a store.
// Traversal is checked by the store itself, relative to its root.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidAssetPath)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: contains null byte", ErrInvalidAssetPath)
	}
	return nil
}
