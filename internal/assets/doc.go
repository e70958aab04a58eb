// Package assets reads static resources and inlines images for rendered pages.
//
// # Stores
//
// Byte access goes through the Store interface:
//
//	Store (interface)
//	    │
//	    ├── FilesystemStore - reads from an asset root on disk
//	    ├── EmbeddedStore   - reads from the go:embed defaults (logo, templates, themes, sites)
//	    └── LayeredStore    - custom-first, falling back when a path is not found
//
// # Resolver
//
// Resolver turns an image path into an EncodedAsset: the base64 payload and
// MIME type of the file, or an explicit missing marker. Results are cached
// per path for the lifetime of the Resolver (one rendering session), so a
// cache hit never touches the store. Concurrent misses for the same path
// share a single store read.
//
// Resolution never fails. An unreadable, absent or invalid path becomes a
// missing EncodedAsset and the renderer shows a fallback indicator instead.
//
// # Embedded Layout
//
//	images/logo.svg          # default navbar logo
//	templates/page.html      # page template
//	themes/{name}.yaml       # theme presets (classic, ivory, ocean)
//	sites/{name}.yaml        # content presets (teachtoeach)
//
// # Security
//
// Relative paths are resolved under the asset root; FilesystemStore resolves
// symlinks and rejects paths escaping the root. Preset names are validated
// with ValidateAssetName.
package assets
