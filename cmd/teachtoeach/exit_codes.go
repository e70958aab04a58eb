package main

import (
	"errors"
	"os"
	"strings"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/config"
	"github.com/alnah/teachtoeach/internal/dateutil"
	"github.com/alnah/teachtoeach/internal/hints"
	"github.com/alnah/teachtoeach/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlag     = errors.New("invalid flag")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrAssetRoot       = errors.New("asset root is not a readable directory")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrListen          = errors.New("failed to start preview server")
	ErrBuildIncomplete = errors.New("some variants failed to build")
)

// Exit codes for the teachtoeach CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build or serve
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, content or theme
	ExitIO      = 3 // File not found, permission denied, bind failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, teachtoeach.ErrBrowserConnect) ||
		errors.Is(err, teachtoeach.ErrPageCreate) ||
		errors.Is(err, teachtoeach.ErrPageLoad) ||
		errors.Is(err, teachtoeach.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnknownVariant) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidBlock) ||
		errors.Is(err, assets.ErrSiteNotFound) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, teachtoeach.ErrInvalidColor) ||
		errors.Is(err, teachtoeach.ErrInvalidCardStyle) ||
		errors.Is(err, teachtoeach.ErrInvalidFontFamily) ||
		errors.Is(err, teachtoeach.ErrInvalidPageSize) ||
		errors.Is(err, teachtoeach.ErrTemplateParse) ||
		errors.Is(err, pipeline.ErrUnknownCodeStyle) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrAssetRoot) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrListen) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns the actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, teachtoeach.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if _, after, ok := strings.Cut(err.Error(), "tried "); ok {
			searched = strings.Split(after, ", ")
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, assets.ErrThemeNotFound):
		return hints.ForThemeNotFound(assets.NewEmbeddedStore().Themes())
	case errors.Is(err, assets.ErrSiteNotFound):
		return hints.ForSiteNotFound(assets.NewEmbeddedStore().Sites())
	case errors.Is(err, ErrAssetRoot):
		return hints.ForAssetRoot()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrListen):
		return hints.ForAddressInUse()
	default:
		return ""
	}
}
