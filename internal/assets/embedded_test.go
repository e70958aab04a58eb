package assets

import (
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
)

func TestEmbeddedStore_Read(t *testing.T) {
	t.Parallel()

	store := NewEmbeddedStore()

	t.Run("default logo", func(t *testing.T) {
		t.Parallel()

		got, err := store.Read("images/logo.svg")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if !strings.Contains(string(got), "<svg") {
			t.Error("logo.svg does not look like SVG")
		}
	})

	t.Run("leading dot slash", func(t *testing.T) {
		t.Parallel()

		if _, err := store.Read("./images/logo.svg"); err != nil {
			t.Errorf("Read() error = %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := store.Read("images/nope.png")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("absolute path is not embedded", func(t *testing.T) {
		t.Parallel()

		_, err := store.Read("/images/logo.svg")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})
}

func TestEmbeddedStore_Presets(t *testing.T) {
	t.Parallel()

	store := NewEmbeddedStore()

	t.Run("themes listed", func(t *testing.T) {
		t.Parallel()

		got := store.Themes()
		for _, want := range []string{"classic", "ivory", "ocean"} {
			if !slices.Contains(got, want) {
				t.Errorf("Themes() = %v, missing %q", got, want)
			}
		}
		if !slices.IsSorted(got) {
			t.Errorf("Themes() = %v, want sorted", got)
		}
	})

	t.Run("sites listed", func(t *testing.T) {
		t.Parallel()

		if got := store.Sites(); !slices.Contains(got, "teachtoeach") {
			t.Errorf("Sites() = %v, missing teachtoeach", got)
		}
	})

	t.Run("load theme", func(t *testing.T) {
		t.Parallel()

		data, err := store.LoadTheme("classic")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if !strings.Contains(string(data), "#D6B46E") {
			t.Error("classic theme missing gold accent")
		}
	})

	t.Run("unknown theme", func(t *testing.T) {
		t.Parallel()

		if _, err := store.LoadTheme("neon"); !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("error = %v, want ErrThemeNotFound", err)
		}
	})

	t.Run("invalid site name", func(t *testing.T) {
		t.Parallel()

		if _, err := store.LoadSite("../sites"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("page template", func(t *testing.T) {
		t.Parallel()

		tmpl, err := store.LoadTemplate("page")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		for _, name := range []string{"document", "section", "cards", "image", "form"} {
			if !strings.Contains(tmpl, `{{define "`+name+`"}}`) {
				t.Errorf("page template missing %q definition", name)
			}
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		if _, err := store.LoadTemplate("cover"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})
}
