package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/config"
	"github.com/alnah/teachtoeach/internal/fileutil"
	"github.com/alnah/teachtoeach/internal/hints"
)

// Output file names inside a variant directory.
const (
	htmlFileName = "index.html"
	pdfFileName  = "index.pdf"
)

// buildResult holds the outcome of building one variant.
type buildResult struct {
	Variant  string
	HTMLPath string
	PDFPath  string
	Missing  []string
	Duration time.Duration
	Err      error
}

// runBuild renders every selected variant into the output directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := mergeBuildFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := loggerFor(env, cfg.Log.Level, flags.common)
	if err != nil {
		return err
	}

	variants, err := selectVariants(cfg.ResolvedVariants(), flags.variants)
	if err != nil {
		return err
	}

	store, err := newAssetStore(cfg.Assets.Root)
	if err != nil {
		return err
	}
	resolver := assets.NewResolver(store, assets.WithLogger(logger))

	workers := min(teachtoeach.ResolvePoolSize(cfg.Workers), len(variants))
	logger.Debug("building", slog.Int("variants", len(variants)), slog.Int("workers", workers))

	b := &builder{
		outDir:   cfg.Output.Dir,
		resolver: resolver,
		logger:   logger,
		now:      env.now(),
	}
	if cfg.PDF.Enabled {
		pool, err := newExporterPool(cfg.PDF, workers, env, logger)
		if err != nil {
			return err
		}
		defer func() { _ = pool.Close() }()
		b.exporters = pool
	}

	start := time.Now()
	results := b.buildAll(ctx, variants, workers)
	if err := ctx.Err(); err != nil {
		return err
	}

	stats := resolver.Stats()
	logger.Debug("asset cache", slog.Int64("hits", stats.Hits), slog.Int64("reads", stats.Reads), slog.Int("entries", stats.Entries))

	return reportBuild(env.Stdout, env.Stderr, results, flags.common.quiet, time.Since(start))
}

// mergeBuildFlags applies build flags over cfg (CLI wins).
func mergeBuildFlags(f *buildFlags, cfg *config.Config) error {
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: --workers must not be negative, got %d", ErrInvalidFlag, f.workers)
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.pdf {
		cfg.PDF.Enabled = true
	}
	if f.pageSize != "" {
		cfg.PDF.PageSize = f.pageSize
	}
	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --timeout %q (e.g. 30s, 2m)", ErrInvalidFlag, f.timeout)
		}
		cfg.PDF.Timeout = d
	}
	return nil
}

// selectVariants returns the variants named in names, in config order.
// No names selects every variant.
func selectVariants(all []config.VariantConfig, names []string) ([]config.VariantConfig, error) {
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var selected []config.VariantConfig
	available := make([]string, 0, len(all))
	for _, v := range all {
		available = append(available, variantLabel(v.Name))
		if wanted[v.Name] {
			selected = append(selected, v)
			delete(wanted, v.Name)
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownVariant, n, strings.Join(available, ", "))
	}
	return selected, nil
}

// newExporterPool builds the PDF exporter pool for cfg.
func newExporterPool(cfg config.PDFConfig, workers int, env *Environment, logger *slog.Logger) (*teachtoeach.ExporterPool, error) {
	newFn := env.NewExporter
	if newFn == nil {
		size, err := teachtoeach.ParsePageSize(cfg.PageSize)
		if err != nil {
			return nil, err
		}
		newFn = func() teachtoeach.Exporter {
			return teachtoeach.NewExporter(
				teachtoeach.WithTimeout(cfg.Timeout),
				teachtoeach.WithPageSize(size),
				teachtoeach.WithExportLogger(logger),
			)
		}
	}
	return teachtoeach.NewExporterPool(workers, newFn), nil
}

// builder renders variants that share one asset resolver.
type builder struct {
	outDir    string
	resolver  teachtoeach.AssetResolver
	exporters *teachtoeach.ExporterPool // nil when PDF export is off
	logger    *slog.Logger
	now       time.Time
}

// buildAll builds variants with at most workers in flight. Results keep
// the order of variants.
func (b *builder) buildAll(ctx context.Context, variants []config.VariantConfig, workers int) []buildResult {
	results := make([]buildResult, len(variants))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, v := range variants {
		g.Go(func() error {
			results[i] = b.build(ctx, v)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// build renders one variant and writes its files.
func (b *builder) build(ctx context.Context, v config.VariantConfig) buildResult {
	start := time.Now()
	res := buildResult{Variant: variantLabel(v.Name)}
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	site, err := loadVariant(v, b.resolver, b.logger, b.now)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := site.renderer.Render(ctx, teachtoeach.Input{Page: site.page})
	if err != nil {
		res.Err = fmt.Errorf("variant %s: %w", site.label(), err)
		return res
	}
	res.Missing = out.MissingAssets

	dir := filepath.Join(b.outDir, v.Name)
	res.HTMLPath = filepath.Join(dir, htmlFileName)
	if err := fileutil.WriteFile(res.HTMLPath, out.HTML); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrWriteOutput, err)
		return res
	}

	if b.exporters != nil {
		res.PDFPath = filepath.Join(dir, pdfFileName)
		if err := b.exportPDF(ctx, res.PDFPath, out.HTML); err != nil {
			res.Err = fmt.Errorf("variant %s: %w", site.label(), err)
			return res
		}
	}

	b.logger.Debug("variant built", slog.String("variant", res.Variant), slog.String("path", res.HTMLPath))
	return res
}

func (b *builder) exportPDF(ctx context.Context, path string, document []byte) error {
	exp, err := b.exporters.Acquire(ctx)
	if err != nil {
		return err
	}
	defer b.exporters.Release(exp)

	pdf, err := exp.ExportPDF(ctx, document)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, pdf); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// reportBuild prints one line per variant and returns an error joining
// ErrBuildIncomplete with the first failure when any variant failed.
func reportBuild(stdout, stderr io.Writer, results []buildResult, quiet bool, elapsed time.Duration) error {
	var (
		failed   int
		firstErr error
	)

	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(stderr, "FAILED %s: %v%s\n", r.Variant, r.Err, hintFor(r.Err))
			continue
		}
		if !quiet {
			line := fmt.Sprintf("%s -> %s", r.Variant, r.HTMLPath)
			if r.PDFPath != "" {
				line += ", " + r.PDFPath
			}
			fmt.Fprintf(stdout, "%s (%s)\n", line, r.Duration.Round(time.Millisecond))
		}
		if len(r.Missing) > 0 {
			fmt.Fprintf(stderr, "warning: %s: %d image(s) unavailable%s\n", r.Variant, len(r.Missing), hints.ForMissingAssets(r.Missing))
		}
	}

	if !quiet {
		fmt.Fprintf(stdout, "built %d/%d variant(s) in %s\n", len(results)-failed, len(results), elapsed.Round(time.Millisecond))
	}

	if failed > 0 {
		return errors.Join(fmt.Errorf("%w: %d of %d", ErrBuildIncomplete, failed, len(results)), firstErr)
	}
	return nil
}
