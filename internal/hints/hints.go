// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/teachtoeach/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser connection errors during PDF export.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "or build without --pdf")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests the user config location found among searchedPaths, if any.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/teachtoeach") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForThemeNotFound lists the available theme presets.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available themes: " + strings.Join(available, ", "))
}

// ForSiteNotFound lists the available built-in content presets.
func ForSiteNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available sites: " + strings.Join(available, ", ") + " (or pass a .yaml path)")
}

// ForAssetRoot returns a hint for an unusable asset root directory.
func ForAssetRoot() string {
	return format("set --asset-root or TEACHTOEACH_ASSET_ROOT to a readable directory")
}

// ForMissingAssets summarizes image references that fell back to placeholders.
func ForMissingAssets(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return format("missing images rendered as placeholders: " + strings.Join(paths, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAddressInUse returns a hint when the preview server cannot bind.
func ForAddressInUse() string {
	return format("pick another address with --addr, e.g. --addr 127.0.0.1:8081")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
