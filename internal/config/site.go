package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alnah/teachtoeach/internal/assets"
	"github.com/alnah/teachtoeach/internal/fileutil"
)

// SiteConfig is a content file: the page title and its ordered sections.
type SiteConfig struct {
	Title    string          `yaml:"title"`
	Icon     string          `yaml:"icon"` // emoji or image path
	Lang     string          `yaml:"lang"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig is one top-level region of the page.
type SectionConfig struct {
	ID     string        `yaml:"id"`
	Class  string        `yaml:"class"`
	Blocks []BlockConfig `yaml:"blocks"`
}

// BlockConfig holds exactly one block.
type BlockConfig struct {
	Heading   *HeadingConfig   `yaml:"heading"`
	Paragraph *ParagraphConfig `yaml:"paragraph"`
	Divider   bool             `yaml:"divider"`
	Cards     *CardsConfig     `yaml:"cards"`
	Image     *ImageConfig     `yaml:"image"`
	Link      *LinkConfig      `yaml:"link"`
	Form      *FormConfig      `yaml:"form"`
}

// HeadingConfig defines a heading block.
type HeadingConfig struct {
	Level  int    `yaml:"level"` // 1-6, default 2
	Text   string `yaml:"text"`
	Accent string `yaml:"accent"`
}

// ParagraphConfig defines a text block.
type ParagraphConfig struct {
	Text     string `yaml:"text"`
	Markdown bool   `yaml:"markdown"`
}

// CardsConfig defines a card group.
type CardsConfig struct {
	Class string       `yaml:"class"`
	Items []CardConfig `yaml:"items"`
}

// CardConfig defines one card. Price, tutor and mode are optional.
type CardConfig struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Price string `yaml:"price"`
	Tutor string `yaml:"tutor"`
	Mode  string `yaml:"mode"`
}

// ImageConfig defines an inlined image.
type ImageConfig struct {
	Path     string `yaml:"path"`
	Alt      string `yaml:"alt"`
	Fallback string `yaml:"fallback"`
	Width    int    `yaml:"width"`
}

// LinkConfig defines a navigation link.
type LinkConfig struct {
	Text string `yaml:"text"`
	Href string `yaml:"href"`
}

// FormConfig defines a contact form.
type FormConfig struct {
	ID          string        `yaml:"id"`
	SubmitLabel string        `yaml:"submitLabel"`
	Fields      []FieldConfig `yaml:"fields"`
}

// FieldConfig defines one form field.
type FieldConfig struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Kind     string `yaml:"kind"` // "single-line" (default) or "multi-line"
	Required bool   `yaml:"required"`
}

// Validate checks the structure of the content file.
func (s *SiteConfig) Validate() error {
	if err := validateFieldLength("title", s.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("icon", s.Icon, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("lang", s.Lang, MaxShortLength); err != nil {
		return err
	}

	sectionIDs := make(map[string]bool, len(s.Sections))
	formIDs := make(map[string]bool)
	for i, sec := range s.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if sec.ID != "" {
			if err := validateName(prefix+".id", sec.ID); err != nil {
				return err
			}
			if sectionIDs[sec.ID] {
				return fmt.Errorf("%w: %s.id %q is duplicated", ErrInvalidValue, prefix, sec.ID)
			}
			sectionIDs[sec.ID] = true
		}
		if err := validateFieldLength(prefix+".class", sec.Class, MaxNameLength); err != nil {
			return err
		}
		for j, b := range sec.Blocks {
			if err := b.validate(fmt.Sprintf("%s.blocks[%d]", prefix, j), formIDs); err != nil {
				return err
			}
		}
	}
	return nil
}

// Kind returns the name of the single block set, or "" when none or
// several are set.
func (b *BlockConfig) Kind() string {
	var kinds []string
	if b.Heading != nil {
		kinds = append(kinds, "heading")
	}
	if b.Paragraph != nil {
		kinds = append(kinds, "paragraph")
	}
	if b.Divider {
		kinds = append(kinds, "divider")
	}
	if b.Cards != nil {
		kinds = append(kinds, "cards")
	}
	if b.Image != nil {
		kinds = append(kinds, "image")
	}
	if b.Link != nil {
		kinds = append(kinds, "link")
	}
	if b.Form != nil {
		kinds = append(kinds, "form")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func (b *BlockConfig) validate(prefix string, formIDs map[string]bool) error {
	switch b.Kind() {
	case "heading":
		h := b.Heading
		if h.Level < 0 || h.Level > 6 {
			return fmt.Errorf("%w: %s.heading.level must be between 1 and 6, got %d", ErrInvalidBlock, prefix, h.Level)
		}
		if err := validateFieldLength(prefix+".heading.text", h.Text, MaxTitleLength); err != nil {
			return err
		}
		return validateFieldLength(prefix+".heading.accent", h.Accent, MaxTitleLength)
	case "paragraph":
		return validateFieldLength(prefix+".paragraph.text", b.Paragraph.Text, MaxTextLength)
	case "divider":
		return nil
	case "cards":
		return b.Cards.validate(prefix + ".cards")
	case "image":
		img := b.Image
		if strings.TrimSpace(img.Path) == "" {
			return fmt.Errorf("%w: %s.image.path is required", ErrInvalidBlock, prefix)
		}
		if img.Width < 0 {
			return fmt.Errorf("%w: %s.image.width must not be negative", ErrInvalidBlock, prefix)
		}
		if err := validateFieldLength(prefix+".image.path", img.Path, MaxURLLength); err != nil {
			return err
		}
		if err := validateFieldLength(prefix+".image.alt", img.Alt, MaxLabelLength); err != nil {
			return err
		}
		return validateFieldLength(prefix+".image.fallback", img.Fallback, MaxShortLength)
	case "link":
		if strings.TrimSpace(b.Link.Href) == "" {
			return fmt.Errorf("%w: %s.link.href is required", ErrInvalidBlock, prefix)
		}
		if err := validateFieldLength(prefix+".link.text", b.Link.Text, MaxLabelLength); err != nil {
			return err
		}
		return validateFieldLength(prefix+".link.href", b.Link.Href, MaxURLLength)
	case "form":
		return b.Form.validate(prefix+".form", formIDs)
	default:
		return fmt.Errorf("%w: %s must set exactly one of heading, paragraph, divider, cards, image, link, form", ErrInvalidBlock, prefix)
	}
}

func (c *CardsConfig) validate(prefix string) error {
	if err := validateFieldLength(prefix+".class", c.Class, MaxNameLength); err != nil {
		return err
	}
	for i, card := range c.Items {
		p := fmt.Sprintf("%s.items[%d]", prefix, i)
		if strings.TrimSpace(card.Title) == "" {
			return fmt.Errorf("%w: %s.title is required", ErrInvalidBlock, p)
		}
		fields := []struct {
			name  string
			value string
			max   int
		}{
			{".title", card.Title, MaxTitleLength},
			{".body", card.Body, MaxTextLength},
			{".price", card.Price, MaxShortLength},
			{".tutor", card.Tutor, MaxShortLength},
			{".mode", card.Mode, MaxShortLength},
		}
		for _, f := range fields {
			if err := validateFieldLength(p+f.name, f.value, f.max); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *FormConfig) validate(prefix string, formIDs map[string]bool) error {
	if f.ID == "" {
		return fmt.Errorf("%w: %s.id is required", ErrInvalidBlock, prefix)
	}
	if err := validateName(prefix+".id", f.ID); err != nil {
		return err
	}
	if formIDs[f.ID] {
		return fmt.Errorf("%w: %s.id %q is duplicated", ErrInvalidBlock, prefix, f.ID)
	}
	formIDs[f.ID] = true

	if err := validateFieldLength(prefix+".submitLabel", f.SubmitLabel, MaxLabelLength); err != nil {
		return err
	}

	names := make(map[string]bool, len(f.Fields))
	for i, field := range f.Fields {
		p := fmt.Sprintf("%s.fields[%d]", prefix, i)
		if field.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalidBlock, p)
		}
		if err := validateName(p+".name", field.Name); err != nil {
			return err
		}
		if names[field.Name] {
			return fmt.Errorf("%w: %s.name %q is duplicated", ErrInvalidBlock, p, field.Name)
		}
		names[field.Name] = true
		if err := validateFieldLength(p+".label", field.Label, MaxLabelLength); err != nil {
			return err
		}
		switch field.Kind {
		case "", "single-line", "multi-line":
		default:
			return fmt.Errorf("%w: %s.kind %q (must be single-line or multi-line)", ErrInvalidBlock, p, field.Kind)
		}
	}
	return nil
}

// ReferencedAssets returns the image paths the content refers to, in
// document order without duplicates. The icon is included when it names an
// image file.
func (s *SiteConfig) ReferencedAssets() []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if assets.IsImageExtension(s.Icon) {
		add(s.Icon)
	}
	for _, sec := range s.Sections {
		for _, b := range sec.Blocks {
			if b.Image != nil {
				add(b.Image.Path)
			}
		}
	}
	return paths
}

// LoadSite loads a content file by path, or an embedded preset by name.
func LoadSite(nameOrPath string) (*SiteConfig, error) {
	data, err := loadNamedOrPath(nameOrPath, assets.ErrSiteNotFound, assets.NewEmbeddedStore().LoadSite)
	if err != nil {
		return nil, err
	}
	return ParseSite(nameOrPath, data)
}

// ParseSite decodes and validates a content file read from source.
func ParseSite(source string, data []byte) (*SiteConfig, error) {
	var site SiteConfig
	if err := decodeDocument(source, data, &site); err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

// loadNamedOrPath reads a file when nameOrPath looks like a path, and asks
// the embedded loader otherwise.
func loadNamedOrPath(nameOrPath string, notFound error, embedded func(string) ([]byte, error)) ([]byte, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}
	if !IsPath(nameOrPath) {
		return embedded(nameOrPath)
	}

	data, err := os.ReadFile(nameOrPath) // #nosec G304 -- path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", notFound, nameOrPath)
		}
		return nil, fmt.Errorf("reading %s: %w", nameOrPath, err)
	}
	return data, nil
}

// IsPath reports whether nameOrPath refers to a file rather than a preset.
func IsPath(nameOrPath string) bool {
	return fileutil.IsFilePath(nameOrPath) ||
		strings.HasSuffix(nameOrPath, ".yaml") ||
		strings.HasSuffix(nameOrPath, ".yml")
}
