package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore reads assets from a directory on the filesystem.
// Relative paths are resolved under Root; absolute paths are read as given.
type FilesystemStore struct {
	root string
}

// NewFilesystemStore creates a FilesystemStore for the given root directory.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks so containment checks compare real paths.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemStore{root: absPath}, nil
}

// Root returns the absolute asset root.
func (f *FilesystemStore) Root() string {
	return f.root
}

// Read returns the content of path.
func (f *FilesystemStore) Read(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}

	filePath := path
	if !filepath.IsAbs(path) {
		filePath = filepath.Join(f.root, filepath.FromSlash(path))
		if err := f.verifyPathContainment(filePath); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
		}
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- relative paths contained above, absolute paths are explicit
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetUnavailable, path, err)
	}
	return content, nil
}

// verifyPathContainment ensures the resolved file path is within root,
// following symlinks so a link cannot point outside it.
func (f *FilesystemStore) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// A missing file fails EvalSymlinks; keep the cleaned path for the prefix check.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	if !strings.HasPrefix(absFilePath, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes asset root", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ Store = (*FilesystemStore)(nil)
