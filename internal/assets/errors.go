package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrAssetUnavailable indicates an asset could not be read. The Resolver
	// converts it to a missing EncodedAsset; it never reaches render callers.
	ErrAssetUnavailable = errors.New("asset unavailable")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrThemeNotFound indicates the requested theme preset does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrSiteNotFound indicates the requested content preset does not exist.
	ErrSiteNotFound = errors.New("site not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidAssetPath indicates an empty path or one containing a null byte.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrInvalidBasePath indicates the configured asset root is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrPathTraversal indicates an attempt to access files outside the asset root.
	ErrPathTraversal = errors.New("path traversal detected")
)
