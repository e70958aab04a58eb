package assets

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FallbackMIMEType is used when neither the extension nor the content
// identifies an image type.
const FallbackMIMEType = "application/octet-stream"

// extensionTypes maps lowercase image extensions to MIME types.
var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/x-icon",
	".avif": "image/avif",
	".bmp":  "image/bmp",
}

// InferMIMEType derives the MIME type of an image from its extension.
// Unknown extensions are sniffed from content; anything that does not sniff
// as an image gets FallbackMIMEType.
func InferMIMEType(path string, content []byte) string {
	if t, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	if len(content) == 0 {
		return FallbackMIMEType
	}

	detected, _, _ := strings.Cut(mimetype.Detect(content).String(), ";")
	if strings.HasPrefix(detected, "image/") {
		return detected
	}
	return FallbackMIMEType
}

// IsImageExtension reports whether path has a known image extension.
func IsImageExtension(path string) bool {
	_, ok := extensionTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}
