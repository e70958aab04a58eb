package teachtoeach

import (
	"html/template"
	"log/slog"
	"time"

	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/pipeline"
)

// Page is the declarative description of a landing page.
type Page struct {
	Title    string
	Icon     string // emoji, or an image path resolved like any other asset
	Lang     string
	Sections []Section
}

// Section is one top-level region of the page. Blocks render in order.
type Section struct {
	ID     string
	Class  string
	Blocks []Block
}

// BlockKind names a block variant.
type BlockKind string

// Block kinds.
const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindCards     BlockKind = "cards"
	KindImage     BlockKind = "image"
	KindForm      BlockKind = "form"
	KindLink      BlockKind = "link"
	KindDivider   BlockKind = "divider"
)

// Block is a content element of a section. The set of implementations is
// closed: Heading, Paragraph, CardGroup, Image, Form, Link and Divider.
type Block interface {
	Kind() BlockKind
	block()
}

// Heading is a title of level 1 to 6. Accent, when set, is appended in a
// highlighted span.
type Heading struct {
	Level  int
	Text   string
	Accent string
}

// Paragraph is a run of text. Markdown paragraphs are converted to HTML;
// plain ones are escaped.
type Paragraph struct {
	Text     string
	Markdown bool
}

// CardGroup is an ordered set of cards sharing a style class.
type CardGroup struct {
	Class string
	Cards []Card
}

// Card is a fixed-shape tile. Price, Tutor and Mode are optional.
type Card struct {
	Title string
	Body  string
	Price string
	Tutor string
	Mode  string
}

// Image is an inlined picture. Fallback is shown when the asset is missing.
type Image struct {
	Path     string
	Alt      string
	Fallback string
	Width    int
}

// Form is a contact form. Its ID keys acknowledgments in Input.
type Form struct {
	ID          string
	Fields      []FormField
	SubmitLabel string
}

// FieldKind selects the input control for a form field.
type FieldKind string

// Field kinds.
const (
	SingleLine FieldKind = "single-line"
	MultiLine  FieldKind = "multi-line"
)

// FormField is one labelled input of a Form.
type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
}

// Link is a navigation entry.
type Link struct {
	Text string
	Href string
}

// Divider is a horizontal rule.
type Divider struct{}

func (Heading) Kind() BlockKind   { return KindHeading }
func (Paragraph) Kind() BlockKind { return KindParagraph }
func (CardGroup) Kind() BlockKind { return KindCards }
func (Image) Kind() BlockKind     { return KindImage }
func (Form) Kind() BlockKind      { return KindForm }
func (Link) Kind() BlockKind      { return KindLink }
func (Divider) Kind() BlockKind   { return KindDivider }

func (Heading) block()   {}
func (Paragraph) block() {}
func (CardGroup) block() {}
func (Image) block()     {}
func (Form) block()      {}
func (Link) block()      {}
func (Divider) block()   {}

// Input is the input for a render.
type Input struct {
	Page Page

	// Acknowledgments maps a form ID to the message shown under that form.
	Acknowledgments map[string]Acknowledgment

	// LiveReload is the websocket path the document subscribes to for
	// reloads. Empty disables the script.
	LiveReload string

	// FormAction maps a form ID to its submit URL. Forms without an entry
	// render without an action attribute.
	FormAction map[string]string
}

// Fragment is the rendered markup of one section.
type Fragment struct {
	Index int
	ID    string
	HTML  template.HTML
}

// Result is the output of a render.
type Result struct {
	HTML          []byte
	Fragments     []Fragment
	MissingAssets []string // paths that fell back, in first-seen order
}

// AssetResolver resolves an image path to its inlined form. Resolve never
// fails: unavailable assets come back with Missing set.
type AssetResolver interface {
	Resolve(path string) assets.EncodedAsset
}

// Compile-time interface check.
var _ AssetResolver = (*assets.Resolver)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the palette used for the stylesheet.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithResolver sets the asset resolver. Without it, images resolve against
// the assets embedded in the binary.
func WithResolver(res AssetResolver) Option {
	return func(r *Renderer) {
		r.resolver = res
	}
}

// WithMarkdown replaces the Markdown converter for Markdown paragraphs.
func WithMarkdown(c pipeline.MarkdownConverter) Option {
	return func(r *Renderer) {
		r.markdown = c
	}
}

// WithTemplate replaces the embedded page template. The source must define
// the same named templates as the default one.
func WithTemplate(source string) Option {
	return func(r *Renderer) {
		r.templateSource = source
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// ExportOption configures an Exporter.
type ExportOption func(*exportConfig)

type exportConfig struct {
	timeout  time.Duration
	pageSize PageSize
	logger   *slog.Logger
}

// WithTimeout sets the page load and print timeout.
func WithTimeout(d time.Duration) ExportOption {
	return func(c *exportConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPageSize sets the paper format.
func WithPageSize(s PageSize) ExportOption {
	return func(c *exportConfig) {
		c.pageSize = s
	}
}

// WithExportLogger sets the exporter's logger.
func WithExportLogger(l *slog.Logger) ExportOption {
	return func(c *exportConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
