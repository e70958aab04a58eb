package assets

import (
	"encoding/base64"
	"html/template"
)

// EncodedAsset is the result of resolving an image path: either the file's
// base64 payload with its MIME type, or a missing marker.
type EncodedAsset struct {
	Path     string
	MIMEType string
	Data     string // standard base64, no line breaks
	Missing  bool
}

// Encode wraps raw bytes read from path as a successful EncodedAsset.
func Encode(path string, content []byte) EncodedAsset {
	return EncodedAsset{
		Path:     path,
		MIMEType: InferMIMEType(path, content),
		Data:     base64.StdEncoding.EncodeToString(content),
	}
}

// MissingAsset returns the missing marker for path.
func MissingAsset(path string) EncodedAsset {
	return EncodedAsset{Path: path, Missing: true}
}

// OK reports whether the asset was resolved.
func (a EncodedAsset) OK() bool {
	return !a.Missing
}

// DataURI returns the asset as a data: URL for inlining, or "" when missing.
// The MIME type comes from InferMIMEType, so the value is safe to emit
// without html/template URL filtering.
func (a EncodedAsset) DataURI() template.URL {
	if a.Missing {
		return ""
	}
	return template.URL("data:" + a.MIMEType + ";base64," + a.Data) // #nosec G203 -- MIME from fixed table or sniffed image type
}
