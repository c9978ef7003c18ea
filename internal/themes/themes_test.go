package themes

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{name: "with hash", input: "#1a2b3c", want: color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{name: "without hash", input: "ff00aa", want: color.RGBA{R: 0xff, G: 0x00, B: 0xaa, A: 255}},
		{name: "uppercase", input: "#FF00AA", want: color.RGBA{R: 0xff, G: 0x00, B: 0xaa, A: 255}},
		{name: "short form rejected", input: "#fff", wantErr: true},
		{name: "garbage rejected", input: "nothex", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("ParseHexColor(%q) error = %v, want ErrInvalid", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	for _, name := range BuiltinNames {
		if Builtin(name) == nil {
			t.Errorf("builtin %q missing", name)
		}
	}
	if Builtin("nonexistent") != nil {
		t.Error("unknown name returned a builtin theme")
	}

	dracula := Builtin("dracula")
	if dracula.BG != (color.RGBA{R: 40, G: 42, B: 54, A: 255}) {
		t.Errorf("dracula bg = %v", dracula.BG)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Theme)
		wantField string
	}{
		{name: "defaults valid", mutate: func(*Theme) {}},
		{name: "scale too small", mutate: func(t *Theme) { t.Scale = 0 }, wantField: "scale"},
		{name: "scale too large", mutate: func(t *Theme) { t.Scale = 5 }, wantField: "scale"},
		{name: "padding negative", mutate: func(t *Theme) { t.Padding = -1 }, wantField: "padding"},
		{name: "padding too large", mutate: func(t *Theme) { t.Padding = 65 }, wantField: "padding"},
		{name: "font size too small", mutate: func(t *Theme) { t.FontSize = 7 }, wantField: "font_size"},
		{name: "font size too large", mutate: func(t *Theme) { t.FontSize = 73 }, wantField: "font_size"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			theme := Default()
			tt.mutate(theme)
			err := theme.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not name field %q", err, tt.wantField)
			}
		})
	}
}

func TestResolveBuiltins(t *testing.T) {
	t.Parallel()

	got, err := Resolve("dracula", t.TempDir())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.BG != (color.RGBA{R: 40, G: 42, B: 54, A: 255}) {
		t.Errorf("dracula bg = %v", got.BG)
	}

	def, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if *def != *Default() {
		t.Errorf("empty name = %+v, want default", def)
	}
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "mine.toml", `bg = "#101010"`)

	_, err := Resolve("nonexistent", dir)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve error = %v, want ErrNotFound", err)
	}
	// The message names the search locations and what is available.
	for _, want := range []string{"dracula", dir, "mine"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestResolveUserTheme(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "term.toml", `
bg = "#101820"
fg = "#e0e0e0"
scale = 1
padding = 8
font_size = 14
`)

	got, err := Resolve("term", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.BG != (color.RGBA{R: 0x10, G: 0x18, B: 0x20, A: 255}) {
		t.Errorf("bg = %v", got.BG)
	}
	if got.Scale != 1 || got.Padding != 8 || got.FontSize != 14 {
		t.Errorf("scale/padding/font_size = %d/%d/%d", got.Scale, got.Padding, got.FontSize)
	}
	if got.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, dir)
	}
}

func TestResolveNestedName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "dark"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTheme(t, filepath.Join(dir, "dark"), "night.toml", `bg = "#000000"`)

	got, err := Resolve("dark/night", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.BG != (color.RGBA{A: 255}) {
		t.Errorf("bg = %v, want black", got.BG)
	}
}

func TestResolvePartialThemeInheritsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "partial.toml", `fg = "#ffffff"`)

	got, err := Resolve("partial", dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	def := Default()
	if got.BG != def.BG || got.Scale != def.Scale || got.Padding != def.Padding {
		t.Errorf("unset fields did not inherit defaults: %+v", got)
	}
}

func TestResolveInvalidTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		toml string
	}{
		{name: "scale out of range", toml: `scale = 9`},
		{name: "padding out of range", toml: `padding = 100`},
		{name: "font size out of range", toml: `font_size = 4`},
		{name: "bad color", toml: `bg = "nope"`},
		{name: "bad toml", toml: `scale = = 2`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTheme(t, dir, "broken.toml", tt.toml)

			if _, err := Resolve("broken", dir); !errors.Is(err, ErrInvalid) {
				t.Errorf("Resolve error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestResolveBadNames(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"../escape", "a/../b", "/abs", "trailing/", "a\\b"} {
		if _, err := Resolve(name, t.TempDir()); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Resolve(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func writeTheme(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
