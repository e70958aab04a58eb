package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string        `json:"status"`
	Chrome   chromeInfo    `json:"chrome"`
	Env      envInfo       `json:"environment"`
	System   systemInfo    `json:"system"`
	Assets   assetInfo     `json:"assets"`
	Variants []variantInfo `json:"variants,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Sandbox  bool   `json:"sandbox"`
	Required bool   `json:"required"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// assetInfo describes the image directory.
type assetInfo struct {
	Root   string `json:"root,omitempty"`
	Images int    `json:"images"`
}

// variantInfo describes one site variant.
type variantInfo struct {
	Name     string   `json:"name"`
	OK       bool     `json:"ok"`
	Sections int      `json:"sections"`
	Forms    int      `json:"forms"`
	Missing  []string `json:"missing_images,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stdout)
	if err != nil {
		if errors.Is(err, errHelpRequested) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(flags.common, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(f commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkEnvironment(result, env)
	checkSystem(result)
	pdfEnabled := checkSite(result, f, env)
	checkChrome(result, pdfEnabled)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects Chrome/Chromium. A missing browser is only an error
// when PDF export is enabled.
func checkChrome(result *doctorResult, required bool) {
	result.Chrome.Required = required
	report := func(msg string) {
		if required {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg+" (only needed for --pdf)")
		}
	}

	chromePath, found := teachtoeach.LookBrowser()
	if !found {
		if chromePath != "" {
			report(fmt.Sprintf("Chrome not found at %s", chromePath))
		} else {
			report("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
		}
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	result.Env.Container, result.Env.ContainerHint = isContainer(env)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for --pdf")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(env *Environment) (bool, string) {
	if env.getenv("TEACHTOEACH_CONTAINER") == "1" {
		return true, "TEACHTOEACH_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := env.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if env.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory PDF export writes to.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "teachtoeach-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// checkSite loads the config and renders every variant once, reporting
// unreadable images. It returns whether PDF export is enabled.
func checkSite(result *doctorResult, f commonFlags, env *Environment) bool {
	cfg, err := loadConfig(f, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return false
	}
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return cfg.PDF.Enabled
	}

	result.Assets.Root = cfg.Assets.Root
	if cfg.Assets.Root != "" {
		images, err := assets.Inventory(os.DirFS(cfg.Assets.Root), assets.ImagePattern)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Asset root %s: %v", cfg.Assets.Root, err))
			return cfg.PDF.Enabled
		}
		result.Assets.Images = len(images)
	}

	store, err := newAssetStore(cfg.Assets.Root)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return cfg.PDF.Enabled
	}
	resolver := assets.NewResolver(store)
	logger := discardLogger()

	for _, v := range cfg.ResolvedVariants() {
		info := variantInfo{Name: variantLabel(v.Name)}
		site, err := loadVariant(v, resolver, logger, env.now())
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.Variants = append(result.Variants, info)
			continue
		}

		info.Sections = len(site.page.Sections)
		info.Forms = len(pageForms(site.page))

		out, err := site.renderer.Render(context.Background(), teachtoeach.Input{Page: site.page})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("variant %s: %v", info.Name, err))
			result.Variants = append(result.Variants, info)
			continue
		}
		info.OK = true
		info.Missing = out.MissingAssets
		for _, m := range out.MissingAssets {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("variant %s: image %q unavailable, a placeholder is shown", info.Name, m))
		}
		result.Variants = append(result.Variants, info)
	}

	return cfg.PDF.Enabled
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "teachtoeach doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	for _, v := range r.Variants {
		if !v.OK {
			fmt.Fprintf(w, "  [ERROR] %s: failed to load\n", v.Name)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %d section(s), %d form(s)\n", v.Name, v.Sections, v.Forms)
		if len(v.Missing) > 0 {
			fmt.Fprintf(w, "  [WARN] %s: %d image(s) unavailable\n", v.Name, len(v.Missing))
		}
	}
	if r.Assets.Root != "" {
		fmt.Fprintf(w, "  [OK] Asset root: %s (%d image(s))\n", r.Assets.Root, r.Assets.Images)
	} else {
		fmt.Fprintln(w, "  [OK] Asset root: embedded images only")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	switch {
	case r.Chrome.Found:
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	case r.Chrome.Required:
		fmt.Fprintln(w, "  [ERROR] Not found")
	default:
		fmt.Fprintln(w, "  [WARN] Not found (PDF export disabled)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
