// Package themes resolves theme names to validated color/typography
// settings for the terminal renderer. Builtin themes are compiled in;
// user themes are TOML files under a themes directory, addressed by
// path-like names such as "dark/dracula".
package themes

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Field bounds. Out-of-range values are a configuration error, never
// silently clamped.
const (
	MinScale    = 1
	MaxScale    = 4
	MinPadding  = 0
	MaxPadding  = 64
	MinFontSize = 8
	MaxFontSize = 72
)

// Theme holds resolved rendering parameters.
type Theme struct {
	BG       color.RGBA
	FG       color.RGBA
	Scale    int    // integer canvas multiplier, 1-4
	Padding  int    // pixels around the text block, 0-64
	FontSize int    // points at 72 DPI, 8-72
	FontPath string // empty = bundled monospace fallback
	BaseDir  string // directory of the theme file, for relative fonts
}

// Default returns the builtin default theme.
func Default() *Theme {
	return &Theme{
		BG:       color.RGBA{R: 15, G: 18, B: 24, A: 255},
		FG:       color.RGBA{R: 128, G: 255, B: 170, A: 255},
		Scale:    2,
		Padding:  16,
		FontSize: 16,
	}
}

// Validate checks field ranges, naming the offending field.
func (t *Theme) Validate() error {
	if t.Scale < MinScale || t.Scale > MaxScale {
		return fmt.Errorf("%w: scale %d out of range %d-%d", ErrInvalid, t.Scale, MinScale, MaxScale)
	}
	if t.Padding < MinPadding || t.Padding > MaxPadding {
		return fmt.Errorf("%w: padding %d out of range %d-%d", ErrInvalid, t.Padding, MinPadding, MaxPadding)
	}
	if t.FontSize < MinFontSize || t.FontSize > MaxFontSize {
		return fmt.Errorf("%w: font_size %d out of range %d-%d", ErrInvalid, t.FontSize, MinFontSize, MaxFontSize)
	}
	return nil
}

// BuiltinNames lists the compiled-in themes in documentation order.
var BuiltinNames = []string{"default", "light", "dracula", "monokai", "solarized"}

// Builtin returns a compiled-in theme by name, or nil.
func Builtin(name string) *Theme {
	t := Default()
	switch name {
	case "default":
	case "light":
		t.BG = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		t.FG = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	case "dracula":
		t.BG = color.RGBA{R: 40, G: 42, B: 54, A: 255}
		t.FG = color.RGBA{R: 248, G: 248, B: 242, A: 255}
	case "monokai":
		t.BG = color.RGBA{R: 39, G: 40, B: 34, A: 255}
		t.FG = color.RGBA{R: 248, G: 248, B: 240, A: 255}
	case "solarized":
		t.BG = color.RGBA{R: 0, G: 43, B: 54, A: 255}
		t.FG = color.RGBA{R: 131, G: 148, B: 150, A: 255}
	default:
		return nil
	}
	return t
}

// ParseHexColor parses a "#rrggbb" color, with the hash optional.
func ParseHexColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty color", ErrInvalid)
	}
	if s[0] != '#' {
		s = "#" + s
	}
	if len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: color %q, expected 6 hex digits (e.g. #1a2b3c)", ErrInvalid, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q, expected 6 hex digits (e.g. #1a2b3c)", ErrInvalid, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
