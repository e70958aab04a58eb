package assets

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"
)

func TestInventory(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"images/logo.png":           {Data: []byte("x")},
		"images/team/ada.JPG":       {Data: []byte("x")},
		"images/notes.txt":          {Data: []byte("x")},
		"site.yaml":                 {Data: []byte("x")},
		"themes/icons/star.svg":     {Data: []byte("x")},
		"ETS-exam website/Logo.png": {Data: []byte("x")},
	}

	t.Run("default image pattern", func(t *testing.T) {
		t.Parallel()

		got, err := Inventory(fsys)
		if err != nil {
			t.Fatalf("Inventory() error = %v", err)
		}
		want := []string{
			"ETS-exam website/Logo.png",
			"images/logo.png",
			"images/team/ada.JPG",
			"themes/icons/star.svg",
		}
		if !slices.Equal(got, want) {
			t.Errorf("Inventory() = %v, want %v", got, want)
		}
	})

	t.Run("overlapping patterns deduplicated", func(t *testing.T) {
		t.Parallel()

		got, err := Inventory(fsys, "images/*.png", "**/*.png")
		if err != nil {
			t.Fatalf("Inventory() error = %v", err)
		}
		want := []string{"ETS-exam website/Logo.png", "images/logo.png"}
		if !slices.Equal(got, want) {
			t.Errorf("Inventory() = %v, want %v", got, want)
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()

		_, err := Inventory(fsys, "images/[.png")
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

func TestMatchAny(t *testing.T) {
	t.Parallel()

	patterns := []string{"**/*.yaml", "images/**"}

	tests := []struct {
		name string
		want bool
	}{
		{"site.yaml", true},
		{"config/themes/ocean.yaml", true},
		{"images/logo.png", true},
		{"images/a/b/c.svg", true},
		{"README.md", false},
	}
	for _, tt := range tests {
		if got := MatchAny(patterns, tt.name); got != tt.want {
			t.Errorf("MatchAny(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if MatchAny([]string{"[bad"}, "x") {
		t.Error("invalid pattern matched")
	}
}
