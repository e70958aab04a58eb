package teachtoeach

import "errors"

// Sentinel errors for library operations.
var (
	// ErrValidationIncomplete reports a contact form submission with a blank
	// required field. It is not fatal: the form stays unsubmitted.
	ErrValidationIncomplete = errors.New("required fields are missing")

	ErrNilRenderer   = errors.New("renderer is not initialized")
	ErrTemplateParse = errors.New("page template parsing failed")
	ErrRender        = errors.New("page rendering failed")
	ErrUnknownBlock  = errors.New("unknown block type")
	ErrInvalidForm   = errors.New("invalid form")

	// Theme validation errors.
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidCardStyle  = errors.New("invalid card style")
	ErrInvalidFontFamily = errors.New("invalid font family")

	// PDF export errors.
	ErrEmptyDocument    = errors.New("document cannot be empty")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrExporterPoolDone = errors.New("exporter pool is closed")
)
