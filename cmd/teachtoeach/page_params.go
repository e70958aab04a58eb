package main

import (
	"fmt"
	"log/slog"
	"time"

	teachtoeach "github.com/alnah/teachtoeach"
	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/config"
	"github.com/alnah/teachtoeach/internal/dateutil"
	"github.com/alnah/teachtoeach/internal/fileutil"
)

// defaultHeadingLevel applies when a heading omits its level.
const defaultHeadingLevel = 2

// newAssetStore returns the store images are read from: the asset root
// layered over the embedded images, or the embedded images alone.
func newAssetStore(root string) (assets.Store, error) {
	embedded := assets.NewEmbeddedStore()
	if root == "" {
		return embedded, nil
	}
	if !fileutil.DirExists(root) {
		return nil, fmt.Errorf("%w: %s", ErrAssetRoot, root)
	}
	fsStore, err := assets.NewFilesystemStore(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetRoot, err)
	}
	return assets.NewLayeredStore(fsStore, embedded), nil
}

// variantSite is a loaded variant ready to render.
type variantSite struct {
	name     string
	renderer *teachtoeach.Renderer
	page     teachtoeach.Page
}

// label names the variant in messages.
func (v *variantSite) label() string {
	return variantLabel(v.name)
}

func variantLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

// loadVariant reads the content and theme of v and builds its renderer.
func loadVariant(v config.VariantConfig, resolver teachtoeach.AssetResolver, logger *slog.Logger, now time.Time) (*variantSite, error) {
	wrap := func(err error) error {
		return fmt.Errorf("variant %s: %w", variantLabel(v.Name), err)
	}

	site, err := config.LoadSite(v.Site)
	if err != nil {
		return nil, wrap(err)
	}
	themeCfg, err := config.LoadTheme(v.Theme)
	if err != nil {
		return nil, wrap(err)
	}
	page, err := buildPage(site, now)
	if err != nil {
		return nil, wrap(err)
	}

	renderer, err := teachtoeach.NewRenderer(
		teachtoeach.WithTheme(buildTheme(themeCfg)),
		teachtoeach.WithResolver(resolver),
		teachtoeach.WithLogger(logger.With(slog.String("variant", variantLabel(v.Name)))),
	)
	if err != nil {
		return nil, wrap(err)
	}

	return &variantSite{name: v.Name, renderer: renderer, page: page}, nil
}

// buildTheme overlays the set fields of tc on the default palette.
func buildTheme(tc *config.ThemeConfig) teachtoeach.Theme {
	t := teachtoeach.DefaultTheme()
	if tc == nil {
		return t
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.Name, tc.Name)
	set(&t.Background, tc.Background)
	set(&t.CardBackground, tc.CardBackground)
	set(&t.Accent, tc.Accent)
	set(&t.TextLight, tc.TextLight)
	set(&t.TextSecondary, tc.TextSecondary)
	set(&t.Shadow, tc.Shadow)
	set(&t.FontFamily, tc.FontFamily)
	set(&t.CodeStyle, tc.CodeStyle)
	if tc.CardStyle != "" {
		t.CardStyle = teachtoeach.CardStyle(tc.CardStyle)
	}
	return t
}

// buildPage converts a content file into a Page, expanding {date}
// placeholders in text against now.
func buildPage(site *config.SiteConfig, now time.Time) (teachtoeach.Page, error) {
	var firstErr error
	expand := func(s string) string {
		out, err := dateutil.Expand(s, now)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return s
		}
		return out
	}

	page := teachtoeach.Page{
		Title:    expand(site.Title),
		Icon:     site.Icon,
		Lang:     site.Lang,
		Sections: make([]teachtoeach.Section, 0, len(site.Sections)),
	}

	for _, sc := range site.Sections {
		sec := teachtoeach.Section{
			ID:     sc.ID,
			Class:  sc.Class,
			Blocks: make([]teachtoeach.Block, 0, len(sc.Blocks)),
		}
		for _, bc := range sc.Blocks {
			if b := buildBlock(bc, expand); b != nil {
				sec.Blocks = append(sec.Blocks, b)
			}
		}
		page.Sections = append(page.Sections, sec)
	}

	if firstErr != nil {
		return teachtoeach.Page{}, firstErr
	}
	return page, nil
}

// buildBlock converts one validated block entry.
func buildBlock(bc config.BlockConfig, expand func(string) string) teachtoeach.Block {
	switch {
	case bc.Heading != nil:
		level := bc.Heading.Level
		if level == 0 {
			level = defaultHeadingLevel
		}
		return teachtoeach.Heading{Level: level, Text: expand(bc.Heading.Text), Accent: expand(bc.Heading.Accent)}
	case bc.Paragraph != nil:
		return teachtoeach.Paragraph{Text: expand(bc.Paragraph.Text), Markdown: bc.Paragraph.Markdown}
	case bc.Divider:
		return teachtoeach.Divider{}
	case bc.Cards != nil:
		cards := make([]teachtoeach.Card, 0, len(bc.Cards.Items))
		for _, c := range bc.Cards.Items {
			cards = append(cards, teachtoeach.Card{
				Title: expand(c.Title),
				Body:  expand(c.Body),
				Price: c.Price,
				Tutor: c.Tutor,
				Mode:  c.Mode,
			})
		}
		return teachtoeach.CardGroup{Class: bc.Cards.Class, Cards: cards}
	case bc.Image != nil:
		return teachtoeach.Image{Path: bc.Image.Path, Alt: bc.Image.Alt, Fallback: bc.Image.Fallback, Width: bc.Image.Width}
	case bc.Link != nil:
		return teachtoeach.Link{Text: bc.Link.Text, Href: bc.Link.Href}
	case bc.Form != nil:
		return buildForm(bc.Form)
	default:
		return nil
	}
}

func buildForm(fc *config.FormConfig) teachtoeach.Form {
	fields := make([]teachtoeach.FormField, 0, len(fc.Fields))
	for _, f := range fc.Fields {
		kind := teachtoeach.SingleLine
		if f.Kind == string(teachtoeach.MultiLine) {
			kind = teachtoeach.MultiLine
		}
		fields = append(fields, teachtoeach.FormField{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     kind,
			Required: f.Required,
		})
	}
	return teachtoeach.Form{ID: fc.ID, Fields: fields, SubmitLabel: fc.SubmitLabel}
}

// pageForms indexes the forms of page by ID.
func pageForms(page teachtoeach.Page) map[string]teachtoeach.Form {
	forms := make(map[string]teachtoeach.Form)
	for _, sec := range page.Sections {
		for _, b := range sec.Blocks {
			if f, ok := b.(teachtoeach.Form); ok {
				forms[f.ID] = f
			}
		}
	}
	return forms
}
