package teachtoeach

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strings"

	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/pipeline"
)

// Rendering defaults.
const (
	DefaultLang          = "en"
	DefaultImageFallback = "🖼"
	DefaultSubmitLabel   = "Submit"

	pageTemplateName = "page"
)

// requiredTemplates are the named templates a page template must define.
var requiredTemplates = []string{
	"document", "section", "heading", "paragraph", "divider",
	"link", "image", "cards", "form",
}

// Renderer turns a Page into an HTML document. A Renderer is safe for
// concurrent use when its resolver and Markdown converter are.
type Renderer struct {
	theme          Theme
	resolver       AssetResolver
	markdown       pipeline.MarkdownConverter
	templateSource string
	logger         *slog.Logger

	tmpl *template.Template
	css  template.CSS
}

// NewRenderer creates a Renderer. The theme is validated and the
// stylesheet built once here.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		theme:  DefaultTheme(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.resolver == nil {
		r.resolver = assets.NewResolver(assets.NewEmbeddedStore(), assets.WithLogger(r.logger))
	}
	if r.markdown == nil {
		r.markdown = pipeline.NewGoldmarkConverter()
	}

	if err := r.theme.Validate(); err != nil {
		return nil, err
	}
	css, err := buildStylesheet(r.theme)
	if err != nil {
		return nil, err
	}
	r.css = template.CSS(css) // #nosec G203 -- built from a validated theme

	if r.templateSource == "" {
		src, err := assets.NewEmbeddedStore().LoadTemplate(pageTemplateName)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
		}
		r.templateSource = src
	}
	tmpl, err := template.New(pageTemplateName).Parse(r.templateSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}
	for _, name := range requiredTemplates {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: missing template %q", ErrTemplateParse, name)
		}
	}
	r.tmpl = tmpl

	return r, nil
}

// Theme returns the renderer's palette.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render produces the document for in.Page. Sections are emitted in input
// order, one fragment each. Missing images never fail the render; their
// paths are reported in Result.MissingAssets. The context is checked
// between sections.
func (r *Renderer) Render(ctx context.Context, in Input) (*Result, error) {
	if r == nil || r.tmpl == nil {
		return nil, ErrNilRenderer
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := &renderState{in: in, seen: make(map[string]bool)}
	fragments := make([]Fragment, 0, len(in.Page.Sections))
	var body strings.Builder

	for i, sec := range in.Page.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frag, err := r.renderSection(st, i, sec)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
		body.WriteString(string(frag.HTML))
	}

	lang := in.Page.Lang
	if lang == "" {
		lang = DefaultLang
	}

	data := documentData{
		Lang:       lang,
		Title:      in.Page.Title,
		Icon:       r.iconURL(st, in.Page.Icon),
		CSS:        r.css,
		Body:       template.HTML(body.String()), // #nosec G203 -- fragments come from html/template
		LiveReload: in.LiveReload,
	}
	var doc bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&doc, "document", data); err != nil {
		return nil, fmt.Errorf("%w: document: %w", ErrRender, err)
	}

	if len(st.missing) > 0 {
		r.logger.Info("rendered with missing assets", slog.Int("count", len(st.missing)))
	}

	return &Result{
		HTML:          doc.Bytes(),
		Fragments:     fragments,
		MissingAssets: st.missing,
	}, nil
}

// renderState carries per-render bookkeeping.
type renderState struct {
	in      Input
	missing []string
	seen    map[string]bool
}

func (s *renderState) noteMissing(path string) {
	if path == "" || s.seen[path] {
		return
	}
	s.seen[path] = true
	s.missing = append(s.missing, path)
}

// ---------------------------------------------------------------------------
// Template data
// ---------------------------------------------------------------------------

type documentData struct {
	Lang       string
	Title      string
	Icon       template.URL
	CSS        template.CSS
	Body       template.HTML
	LiveReload string
}

type sectionData struct {
	ID    string
	Class string
	Index int
	Body  template.HTML
}

type paragraphData struct {
	Text string
	HTML template.HTML
}

type imageData struct {
	Asset    assets.EncodedAsset
	Alt      string
	Fallback string
	Width    int
}

type formData struct {
	ID          string
	Action      string
	Fields      []formFieldData
	SubmitLabel string
	Ack         *Acknowledgment
}

type formFieldData struct {
	Name      string
	Label     string
	Required  bool
	MultiLine bool
}

// ---------------------------------------------------------------------------
// Sections and blocks
// ---------------------------------------------------------------------------

func (r *Renderer) renderSection(st *renderState, index int, sec Section) (Fragment, error) {
	var body bytes.Buffer
	for j, b := range sec.Blocks {
		if err := r.renderBlock(&body, st, b); err != nil {
			return Fragment{}, fmt.Errorf("%w: section %d (%s) block %d: %w", ErrRender, index, sec.ID, j, err)
		}
	}

	var out bytes.Buffer
	data := sectionData{
		ID:    sec.ID,
		Class: sec.Class,
		Index: index,
		Body:  template.HTML(body.String()), // #nosec G203 -- blocks come from html/template
	}
	if err := r.tmpl.ExecuteTemplate(&out, "section", data); err != nil {
		return Fragment{}, fmt.Errorf("%w: section %d (%s): %w", ErrRender, index, sec.ID, err)
	}

	return Fragment{
		Index: index,
		ID:    sec.ID,
		HTML:  template.HTML(out.String()), // #nosec G203 -- output of html/template
	}, nil
}

func (r *Renderer) renderBlock(w *bytes.Buffer, st *renderState, b Block) error {
	switch blk := b.(type) {
	case Heading:
		blk.Level = clampLevel(blk.Level)
		return r.tmpl.ExecuteTemplate(w, "heading", blk)
	case Paragraph:
		data := paragraphData{Text: blk.Text}
		if blk.Markdown {
			converted, err := r.markdown.ToHTML(blk.Text)
			if err != nil {
				return err
			}
			data.HTML = template.HTML(converted) // #nosec G203 -- goldmark without raw HTML
		}
		return r.tmpl.ExecuteTemplate(w, "paragraph", data)
	case CardGroup:
		return r.tmpl.ExecuteTemplate(w, "cards", blk)
	case Image:
		return r.tmpl.ExecuteTemplate(w, "image", r.imageData(st, blk))
	case Form:
		return r.tmpl.ExecuteTemplate(w, "form", formViewData(st.in, blk))
	case Link:
		return r.tmpl.ExecuteTemplate(w, "link", blk)
	case Divider:
		return r.tmpl.ExecuteTemplate(w, "divider", blk)
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownBlock)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBlock, b)
	}
}

func (r *Renderer) imageData(st *renderState, img Image) imageData {
	asset := r.resolver.Resolve(img.Path)
	if !asset.OK() {
		st.noteMissing(img.Path)
		r.logger.Debug("image fallback", slog.String("path", img.Path))
	}
	fallback := img.Fallback
	if fallback == "" {
		fallback = DefaultImageFallback
	}
	return imageData{
		Asset:    asset,
		Alt:      img.Alt,
		Fallback: fallback,
		Width:    img.Width,
	}
}

func formViewData(in Input, f Form) formData {
	fields := make([]formFieldData, 0, len(f.Fields))
	for _, field := range f.Fields {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		fields = append(fields, formFieldData{
			Name:      field.Name,
			Label:     label,
			Required:  field.Required,
			MultiLine: field.Kind == MultiLine,
		})
	}

	submit := f.SubmitLabel
	if submit == "" {
		submit = DefaultSubmitLabel
	}

	data := formData{
		ID:          f.ID,
		Action:      in.FormAction[f.ID],
		Fields:      fields,
		SubmitLabel: submit,
	}
	if ack, ok := in.Acknowledgments[f.ID]; ok {
		data.Ack = &ack
	}
	return data
}

// iconURL returns the favicon URL. Image paths go through the resolver;
// anything else is treated as an emoji and drawn into an SVG.
func (r *Renderer) iconURL(st *renderState, icon string) template.URL {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return ""
	}
	if assets.IsImageExtension(icon) {
		asset := r.resolver.Resolve(icon)
		if !asset.OK() {
			st.noteMissing(icon)
			return ""
		}
		return asset.DataURI()
	}
	return emojiIcon(icon)
}

func emojiIcon(emoji string) template.URL {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` +
		html.EscapeString(emoji) + `</text></svg>`
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))) // #nosec G203 -- fixed MIME, encoded payload
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}
