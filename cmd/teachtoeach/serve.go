package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/config"
)

// Preview server limits.
const (
	formPathPrefix    = "/contact/"
	maxFormBytes      = 64 << 10
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	requestIDHeader   = "X-Request-ID"
)

// runServe previews one variant until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.watch {
		cfg.Server.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := loggerFor(env, cfg.Log.Level, flags.common)
	if err != nil {
		return err
	}

	variant, err := pickVariant(cfg.ResolvedVariants(), flags.variant)
	if err != nil {
		return err
	}

	store, err := newAssetStore(cfg.Assets.Root)
	if err != nil {
		return err
	}
	resolver := assets.NewResolver(store, assets.WithLogger(logger))

	var hub *reloadHub
	if cfg.Server.Watch {
		hub = newReloadHub(logger)
		defer hub.Close()
	}

	p, err := newPreview(variant, resolver, logger, env.now, hub)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListen, err)
	}

	if cfg.Server.Watch {
		w, err := newSiteWatcher(cfg.Assets.Root, watchedFiles(variant), logger, p.onChange)
		if err != nil {
			_ = ln.Close()
			return err
		}
		defer func() { _ = w.Close() }()
		go w.Run(ctx)
	}

	srv := &http.Server{
		Handler:           p.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "serving %s at http://%s\n", variantLabel(variant.Name), ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrListen, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if hub != nil {
			hub.Close()
		}
		logger.Debug("shutting down preview server")
		return srv.Shutdown(shutdownCtx)
	}
}

// pickVariant returns the named variant, or the first one when name is empty.
func pickVariant(all []config.VariantConfig, name string) (config.VariantConfig, error) {
	if name == "" {
		return all[0], nil
	}
	selected, err := selectVariants(all, []string{name})
	if err != nil {
		return config.VariantConfig{}, err
	}
	return selected[0], nil
}

// watchedFiles lists the content and theme files of v that live on disk.
func watchedFiles(v config.VariantConfig) []string {
	var files []string
	for _, f := range []string{v.Site, v.Theme} {
		if config.IsPath(f) {
			files = append(files, f)
		}
	}
	return files
}

// ---------------------------------------------------------------------------
// preview
// ---------------------------------------------------------------------------

// preview serves one variant and keeps the acknowledgment of each form.
type preview struct {
	variant  config.VariantConfig
	resolver *assets.Resolver
	logger   *slog.Logger
	now      func() time.Time
	hub      *reloadHub // nil unless watching

	mu    sync.RWMutex
	site  *variantSite
	forms map[string]*teachtoeach.ContactForm
	acks  map[string]teachtoeach.Acknowledgment
}

func newPreview(v config.VariantConfig, resolver *assets.Resolver, logger *slog.Logger, now func() time.Time, hub *reloadHub) (*preview, error) {
	p := &preview{
		variant:  v,
		resolver: resolver,
		logger:   logger,
		now:      now,
		hub:      hub,
	}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// reload reads the variant again. Forms start over as unsubmitted.
func (p *preview) reload() error {
	site, err := loadVariant(p.variant, p.resolver, p.logger, p.now())
	if err != nil {
		return err
	}

	forms := make(map[string]*teachtoeach.ContactForm)
	for id, f := range pageForms(site.page) {
		cf, err := teachtoeach.NewContactForm(f)
		if err != nil {
			return fmt.Errorf("variant %s: %w", site.label(), err)
		}
		forms[id] = cf
	}

	p.mu.Lock()
	p.site = site
	p.forms = forms
	p.acks = make(map[string]teachtoeach.Acknowledgment)
	p.mu.Unlock()
	return nil
}

// onChange reloads after a watched file changed and tells open pages.
func (p *preview) onChange(c change) {
	if c&changeAssets != 0 {
		p.resolver.Reset()
	}
	if err := p.reload(); err != nil {
		p.logger.Error("reload failed, keeping previous page", slog.Any("error", err))
		return
	}
	n := 0
	if p.hub != nil {
		n = p.hub.Broadcast()
	}
	p.logger.Info("page reloaded", slog.Int("clients", n))
}

func (p *preview) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", p.handlePage)
	mux.HandleFunc("POST "+formPathPrefix+"{id}", p.handleSubmit)
	if p.hub != nil {
		mux.Handle("GET "+liveReloadPath, p.hub)
	}
	return withRequestLog(p.logger, mux)
}

func (p *preview) handlePage(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusOK)
}

// handleSubmit runs the form state machine and re-renders the page with
// the acknowledgment under the form.
func (p *preview) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	p.mu.RLock()
	form := p.forms[id]
	p.mu.RUnlock()
	if form == nil {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form submission", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for name := range r.PostForm {
		values[name] = r.PostForm.Get(name)
	}

	status := http.StatusOK
	ack, err := form.Submit(values)
	if err != nil {
		if !errors.Is(err, teachtoeach.ErrValidationIncomplete) {
			p.logger.Error("form submission failed", slog.String("form", id), slog.Any("error", err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		status = http.StatusUnprocessableEntity
	}

	if !p.recordAck(id, form, ack) {
		// The page was reloaded while this submission ran; its form is gone.
		p.logger.Info("form reloaded during submission, acknowledgment dropped", slog.String("form", id))
		p.render(w, r, http.StatusConflict)
		return
	}

	p.logger.Info("form submitted", slog.String("form", id), slog.String("state", form.State().String()))
	p.render(w, r, status)
}

// recordAck stores ack for id if form is still the live form for id.
func (p *preview) recordAck(id string, form *teachtoeach.ContactForm, ack teachtoeach.Acknowledgment) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.forms[id] != form {
		return false
	}
	p.acks[id] = ack
	return true
}

func (p *preview) render(w http.ResponseWriter, r *http.Request, status int) {
	p.mu.RLock()
	site := p.site
	acks := make(map[string]teachtoeach.Acknowledgment, len(p.acks))
	for id, a := range p.acks {
		acks[id] = a
	}
	actions := make(map[string]string, len(p.forms))
	for id := range p.forms {
		actions[id] = formPathPrefix + id
	}
	p.mu.RUnlock()

	in := teachtoeach.Input{
		Page:            site.page,
		Acknowledgments: acks,
		FormAction:      actions,
	}
	if p.hub != nil {
		in.LiveReload = liveReloadPath
	}

	res, err := site.renderer.Render(r.Context(), in)
	if err != nil {
		p.logger.Error("render failed", slog.Any("error", err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(res.HTML)
}

// ---------------------------------------------------------------------------
// request logging
// ---------------------------------------------------------------------------

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Hijack lets the live reload endpoint take over the connection.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(s.ResponseWriter).Hijack()
}

// withRequestLog tags each request with an ID and logs it once served.
func withRequestLog(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("request",
			slog.String("id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}
