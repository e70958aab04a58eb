package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			input:    "Taught by a **verified student tutor**.",
			contains: []string{"<strong>verified student tutor</strong>"},
		},
		{
			name:     "autolink",
			input:    "Visit https://example.com today",
			contains: []string{`<a href="https://example.com">`},
		},
		{
			name:     "raw HTML dropped",
			input:    "Hi <script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "code fence highlighted with classes",
			input:    "```python\nprint(\"hello\")\n```",
			contains: []string{`class="chroma"`},
			excludes: []string{"style=\"color"},
		},
		{
			name:     "table",
			input:    "| Course | Price |\n|---|---|\n| Python | £12 |",
			contains: []string{"<table>", "<td>Python</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want containing %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("ToHTML() = %q, must not contain %q", got, bad)
				}
			}
		})
	}
}

func TestGoldmarkConverter_Deterministic(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()
	in := "Learn **online** or *in-person*.\n\n- flexible\n- affordable"

	a, err := conv.ToHTML(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := conv.ToHTML(in)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("ToHTML() not deterministic:\n%s\n%s", a, b)
	}
}

func TestCodeCSS(t *testing.T) {
	t.Parallel()

	t.Run("known style", func(t *testing.T) {
		t.Parallel()

		css, err := CodeCSS("monokai")
		if err != nil {
			t.Fatalf("CodeCSS() error = %v", err)
		}
		if !strings.Contains(css, ".chroma") {
			t.Errorf("CodeCSS() missing .chroma rules: %q", css)
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		if _, err := CodeCSS("no-such-style"); !errors.Is(err, ErrUnknownCodeStyle) {
			t.Errorf("CodeCSS() error = %v, want ErrUnknownCodeStyle", err)
		}
	})

	t.Run("registry", func(t *testing.T) {
		t.Parallel()

		if !HasCodeStyle("github") {
			t.Error("HasCodeStyle(github) = false")
		}
		if len(CodeStyles()) == 0 {
			t.Error("CodeStyles() empty")
		}
	})
}
