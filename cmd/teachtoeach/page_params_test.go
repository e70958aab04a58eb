package main

import (
	"errors"
	"path/filepath"
	"testing"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/config"
	"github.com/alnah/teachtoeach/internal/dateutil"
)

// ---------------------------------------------------------------------------
// TestBuildPage - Content file to Page
// ---------------------------------------------------------------------------

func TestBuildPage(t *testing.T) {
	t.Parallel()

	site := &config.SiteConfig{
		Title: "Open Day {date}",
		Icon:  "🎓",
		Sections: []config.SectionConfig{
			{ID: "hero", Blocks: []config.BlockConfig{
				{Heading: &config.HeadingConfig{Text: "Hello"}},
				{Divider: true},
			}},
			{ID: "footer", Blocks: []config.BlockConfig{
				{Paragraph: &config.ParagraphConfig{Text: "© {date} TeachToEach"}},
			}},
		},
	}

	page, err := buildPage(site, fixedNow)
	if err != nil {
		t.Fatalf("buildPage() error = %v", err)
	}

	if page.Title != "Open Day 2025" {
		t.Errorf("Title = %q, want Open Day 2025", page.Title)
	}
	if len(page.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(page.Sections))
	}
	h, ok := page.Sections[0].Blocks[0].(teachtoeach.Heading)
	if !ok || h.Level != defaultHeadingLevel {
		t.Errorf("first block = %#v, want heading at level %d", page.Sections[0].Blocks[0], defaultHeadingLevel)
	}
	if _, ok := page.Sections[0].Blocks[1].(teachtoeach.Divider); !ok {
		t.Errorf("second block = %#v, want divider", page.Sections[0].Blocks[1])
	}
	p, ok := page.Sections[1].Blocks[0].(teachtoeach.Paragraph)
	if !ok || p.Text != "© 2025 TeachToEach" {
		t.Errorf("footer = %#v", page.Sections[1].Blocks[0])
	}
}

func TestBuildPage_BadDateFormat(t *testing.T) {
	t.Parallel()

	site := &config.SiteConfig{Title: "Since {date:}"}
	if _, err := buildPage(site, fixedNow); !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Errorf("buildPage() error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestBuildBlock_EmptyEntry(t *testing.T) {
	t.Parallel()

	if b := buildBlock(config.BlockConfig{}, func(s string) string { return s }); b != nil {
		t.Errorf("buildBlock(empty) = %#v, want nil", b)
	}
}

// ---------------------------------------------------------------------------
// TestBuildForm / TestPageForms
// ---------------------------------------------------------------------------

func TestBuildForm(t *testing.T) {
	t.Parallel()

	f := buildForm(&config.FormConfig{
		ID: "contact",
		Fields: []config.FieldConfig{
			{Name: "name", Label: "Name", Required: true},
			{Name: "msg", Label: "Message", Kind: "multi-line"},
		},
	})

	if f.ID != "contact" || len(f.Fields) != 2 {
		t.Fatalf("form = %#v", f)
	}
	if f.Fields[0].Kind != teachtoeach.SingleLine || !f.Fields[0].Required {
		t.Errorf("field[0] = %#v", f.Fields[0])
	}
	if f.Fields[1].Kind != teachtoeach.MultiLine {
		t.Errorf("field[1].Kind = %q, want multi-line", f.Fields[1].Kind)
	}
}

func TestPageForms(t *testing.T) {
	t.Parallel()

	page := teachtoeach.Page{Sections: []teachtoeach.Section{
		{Blocks: []teachtoeach.Block{teachtoeach.Divider{}, teachtoeach.Form{ID: "a"}}},
		{Blocks: []teachtoeach.Block{teachtoeach.Form{ID: "b"}}},
	}}

	forms := pageForms(page)
	if len(forms) != 2 || forms["a"].ID != "a" || forms["b"].ID != "b" {
		t.Errorf("pageForms() = %v", forms)
	}
}

// ---------------------------------------------------------------------------
// TestBuildTheme - Theme file overlay
// ---------------------------------------------------------------------------

func TestBuildTheme(t *testing.T) {
	t.Parallel()

	def := teachtoeach.DefaultTheme()

	if got := buildTheme(nil); got != def {
		t.Errorf("buildTheme(nil) = %+v, want default", got)
	}

	got := buildTheme(&config.ThemeConfig{Accent: "#FF0000", CardStyle: "flat"})
	if got.Accent != "#FF0000" || got.CardStyle != teachtoeach.CardFlat {
		t.Errorf("overlay not applied: %+v", got)
	}
	if got.Background != def.Background || got.FontFamily != def.FontFamily {
		t.Errorf("unset fields should keep defaults: %+v", got)
	}
}

// ---------------------------------------------------------------------------
// TestNewAssetStore
// ---------------------------------------------------------------------------

func TestNewAssetStore(t *testing.T) {
	t.Parallel()

	if _, err := newAssetStore(""); err != nil {
		t.Errorf("newAssetStore(\"\") error = %v", err)
	}
	if _, err := newAssetStore(t.TempDir()); err != nil {
		t.Errorf("newAssetStore(dir) error = %v", err)
	}
	if _, err := newAssetStore(filepath.Join(t.TempDir(), "absent")); !errors.Is(err, ErrAssetRoot) {
		t.Errorf("newAssetStore(absent) error = %v, want ErrAssetRoot", err)
	}
}

func TestVariantLabel(t *testing.T) {
	t.Parallel()

	if got := variantLabel(""); got != "default" {
		t.Errorf("variantLabel(\"\") = %q", got)
	}
	if got := variantLabel("dark"); got != "dark" {
		t.Errorf("variantLabel(dark) = %q", got)
	}
}
