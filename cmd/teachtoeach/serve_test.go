package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

func newTestPreview(t *testing.T, v config.VariantConfig, hub *reloadHub) *preview {
	t.Helper()

	resolver := assets.NewResolver(assets.NewEmbeddedStore())
	p, err := newPreview(v, resolver, slog.New(slog.DiscardHandler), func() time.Time { return fixedNow }, hub)
	if err != nil {
		t.Fatalf("newPreview() error = %v", err)
	}
	return p
}

var defaultVariant = config.VariantConfig{Site: config.DefaultSite, Theme: config.DefaultTheme}

func postForm(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// TestPreview_Page - GET /
// ---------------------------------------------------------------------------

func TestPreview_Page(t *testing.T) {
	t.Parallel()

	h := newTestPreview(t, defaultVariant, nil).routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/contact/contact"`) {
		t.Error("form should post back to the preview server")
	}
	if strings.Contains(body, "__livereload") {
		t.Error("live reload script should be absent without --watch")
	}
}

func TestPreview_RequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	h := newTestPreview(t, defaultVariant, nil).routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("%s = %q, want abc-123", requestIDHeader, got)
	}
}

func TestPreview_UnknownPath(t *testing.T) {
	t.Parallel()

	h := newTestPreview(t, defaultVariant, nil).routes()

	for _, path := range []string{"/about", liveReloadPath} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPreview_Submit - POST /contact/{id}
// ---------------------------------------------------------------------------

func TestPreview_Submit(t *testing.T) {
	t.Parallel()

	p := newTestPreview(t, defaultVariant, nil)
	h := p.routes()

	// Blank required fields keep the form unsubmitted.
	rec := postForm(t, h, "/contact/contact", url.Values{"name": {"  "}, "email": {"a@b.c"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("incomplete submit status = %d, want 422", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Please fill in the required fields: Your Name, Message.") {
		t.Errorf("warning acknowledgment missing from body")
	}
	if got := p.forms["contact"].State(); got != teachtoeach.FormUnsubmitted {
		t.Errorf("state = %v, want unsubmitted", got)
	}

	// A complete submission is acknowledged.
	rec = postForm(t, h, "/contact/contact", url.Values{"name": {"Ada"}, "feedback": {"Hello"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("complete submit status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), teachtoeach.SuccessMessage) {
		t.Error("success acknowledgment missing from body")
	}

	// Submitted is terminal.
	rec = postForm(t, h, "/contact/contact", url.Values{})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), teachtoeach.SuccessMessage) {
		t.Errorf("resubmit status = %d, want 200 with success acknowledgment", rec.Code)
	}

	// The acknowledgment stays on later page views.
	view := httptest.NewRecorder()
	h.ServeHTTP(view, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(view.Body.String(), teachtoeach.SuccessMessage) {
		t.Error("acknowledgment should persist across page views")
	}
}

func TestPreview_AckDroppedAfterReload(t *testing.T) {
	t.Parallel()

	p := newTestPreview(t, defaultVariant, nil)

	p.mu.RLock()
	stale := p.forms["contact"]
	p.mu.RUnlock()

	ack, err := stale.Submit(map[string]string{"name": "Ada", "feedback": "Hello"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := p.reload(); err != nil {
		t.Fatalf("reload() error = %v", err)
	}

	if p.recordAck("contact", stale, ack) {
		t.Error("recordAck() = true for a form replaced by reload")
	}
	if _, ok := p.acks["contact"]; ok {
		t.Error("acknowledgment from the replaced form should not be stored")
	}
	if got := p.forms["contact"].State(); got != teachtoeach.FormUnsubmitted {
		t.Errorf("reloaded form state = %v, want unsubmitted", got)
	}

	rec := httptest.NewRecorder()
	p.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(rec.Body.String(), teachtoeach.SuccessMessage) {
		t.Error("page should not show a success message after reload")
	}
}

func TestPreview_SubmitUnknownForm(t *testing.T) {
	t.Parallel()

	h := newTestPreview(t, defaultVariant, nil).routes()

	rec := postForm(t, h, "/contact/newsletter", url.Values{"email": {"a@b.c"}})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPreview_SubmitMethod(t *testing.T) {
	t.Parallel()

	h := newTestPreview(t, defaultVariant, nil).routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact/contact", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on a form endpoint status = %d, want 405", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// TestPreview_Reload - Content edits and live reload
// ---------------------------------------------------------------------------

func TestPreview_OnChangeReloadsContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	site := writeTestFile(t, dir, "content.yaml", "title: Before\nsections:\n  - id: a\n")
	p := newTestPreview(t, config.VariantConfig{Site: site, Theme: config.DefaultTheme}, nil)
	h := p.routes()

	writeTestFile(t, dir, "content.yaml", "title: After\nsections:\n  - id: a\n")
	p.onChange(changeContent)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "<title>After</title>") {
		t.Error("page should show the edited title")
	}

	// A broken edit keeps the last good page.
	writeTestFile(t, dir, "content.yaml", "title: [unclosed\n")
	p.onChange(changeContent)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(rec.Body.String(), "<title>After</title>") {
		t.Error("failed reload should keep the previous page")
	}
}

func TestPreview_LiveReload(t *testing.T) {
	t.Parallel()

	hub := newReloadHub(slog.New(slog.DiscardHandler))
	defer hub.Close()
	p := newTestPreview(t, defaultVariant, hub)

	srv := httptest.NewServer(p.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "__livereload") {
		t.Error("watched page should subscribe to live reload")
	}

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + liveReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered with the hub")
		}
		time.Sleep(10 * time.Millisecond)
	}

	p.onChange(changeContent)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("message = %q, want reload", msg)
	}
}

// ---------------------------------------------------------------------------
// TestPickVariant / TestWatchedFiles
// ---------------------------------------------------------------------------

func TestPickVariant(t *testing.T) {
	t.Parallel()

	all := []config.VariantConfig{{Name: "light"}, {Name: "dark"}}

	if v, err := pickVariant(all, ""); err != nil || v.Name != "light" {
		t.Errorf("pickVariant(\"\") = %q, %v; want light", v.Name, err)
	}
	if v, err := pickVariant(all, "dark"); err != nil || v.Name != "dark" {
		t.Errorf("pickVariant(dark) = %q, %v; want dark", v.Name, err)
	}
	if _, err := pickVariant(all, "sepia"); err == nil {
		t.Error("pickVariant(sepia) should fail")
	}
}

func TestWatchedFiles(t *testing.T) {
	t.Parallel()

	site := filepath.Join("content", "site.yaml")
	got := watchedFiles(config.VariantConfig{Site: site, Theme: "ocean"})
	if len(got) != 1 || got[0] != site {
		t.Errorf("watchedFiles() = %v, want [%s]", got, site)
	}
}
