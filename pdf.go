package teachtoeach

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/teachtoeach/internal/fileutil"
	"github.com/alnah/teachtoeach/internal/process"
)

// DefaultExportTimeout bounds page load and printing when ctx has no deadline.
const DefaultExportTimeout = 30 * time.Second

// PageSize is a paper format for PDF export.
type PageSize string

// Page sizes.
const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
)

// marginInches applies to every edge.
const marginInches = 0.4

// ParsePageSize returns the PageSize for s (case-insensitive).
func ParsePageSize(s string) (PageSize, error) {
	switch PageSize(strings.ToLower(strings.TrimSpace(s))) {
	case PageLetter:
		return PageLetter, nil
	case PageA4:
		return PageA4, nil
	default:
		return "", fmt.Errorf("%w: %q (expected letter or a4)", ErrInvalidPageSize, s)
	}
}

// Dimensions returns width and height in inches.
func (s PageSize) Dimensions() (width, height float64) {
	if s == PageA4 {
		return 8.27, 11.69
	}
	return 8.5, 11
}

// Exporter prints rendered documents to PDF.
type Exporter interface {
	ExportPDF(ctx context.Context, document []byte) ([]byte, error)
	Close() error
}

// pdfRenderer renders a local HTML file to PDF. Split from the exporter so
// tests can run without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Compile-time interface checks.
var (
	_ Exporter    = (*RodExporter)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// RodExporter prints documents with headless Chrome driven by go-rod. The
// browser starts on first export. Rod downloads Chromium when none is
// installed.
type RodExporter struct {
	renderer pdfRenderer
	logger   *slog.Logger
}

// NewExporter creates a RodExporter. Defaults: letter paper, 30s timeout.
func NewExporter(opts ...ExportOption) *RodExporter {
	cfg := exportConfig{
		timeout:  DefaultExportTimeout,
		pageSize: PageLetter,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &RodExporter{
		renderer: &rodRenderer{timeout: cfg.timeout, pageSize: cfg.pageSize, logger: cfg.logger},
		logger:   cfg.logger,
	}
}

// ExportPDF writes document to a temporary file and prints it.
func (e *RodExporter) ExportPDF(ctx context.Context, document []byte) ([]byte, error) {
	if len(document) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	start := time.Now()
	pdf, err := e.renderer.RenderFromFile(ctx, tmpPath)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("pdf exported", slog.Int("bytes", len(pdf)), slog.Duration("elapsed", time.Since(start)))
	return pdf, nil
}

// Close releases the browser.
func (e *RodExporter) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// LookBrowser returns the Chrome binary rod would use, if one is installed.
func LookBrowser() (string, bool) {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin, fileutil.FileExists(bin)
	}
	return launcher.LookPath()
}

// ---------------------------------------------------------------------------
// rod
// ---------------------------------------------------------------------------

type rodRenderer struct {
	timeout  time.Duration
	pageSize PageSize
	logger   *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.logger.Debug("browser started", slog.Int("pid", l.PID()))
	r.launcher = l
	r.browser = browser
	return browser, nil
}

// Close closes the browser and kills its process group.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPDFOptions(r.pageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return buf, nil
}

// buildPDFOptions returns print options for size with backgrounds enabled.
func buildPDFOptions(size PageSize) *proto.PagePrintToPDF {
	width, height := size.Dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
