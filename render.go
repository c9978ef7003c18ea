package appack

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Screenshot bounds. Runaway program output is clamped rather than
// producing a multi-megabyte bitmap.
const (
	maxLines = 80
	maxCols  = 120
)

const fontDPI = 72

// Raw terminal control sequences are stripped before painting: the
// screenshot is monochrome text, not an ANSI interpreter.
var (
	ansiCSI = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
	ansiOSC = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)
)

// Renderer paints a prompt line and a captured transcript into a themed
// bitmap using monospace cell metrics.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the screenshot for "$ <display>" followed by the
// transcript. Canvas size derives from content: the longest line and the
// line count set the base dimensions, padding surrounds the text block,
// and the whole canvas is multiplied by the theme's integer scale.
func (r *Renderer) Render(display, transcript string, theme *Theme) (*RenderedImage, error) {
	text := "$ " + display + "\n\n" + transcript

	lines := prepareLines(text)
	if len(lines) == 0 {
		lines = []string{"(no output)"}
	}

	widest := 1
	for _, line := range lines {
		if len(line) > widest {
			widest = len(line)
		}
	}

	face, err := loadFace(theme)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	metrics := face.Metrics()
	cellH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("%w: face has no 'M' glyph", ErrFontNotFound)
	}
	cellW := adv.Ceil()

	w := theme.Padding*2 + widest*cellW
	h := theme.Padding*2 + len(lines)*cellH

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(theme.BG), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(theme.FG),
		Face: face,
	}
	for row, line := range lines {
		y := theme.Padding + row*cellH + ascent
		for col := 0; col < len(line); col++ {
			// Per-cell positioning keeps the grid monospace even if
			// the face reports uneven advances.
			d.Dot = fixed.P(theme.Padding+col*cellW, y)
			d.DrawString(line[col : col+1])
		}
	}

	scaled := scaleImage(img, theme.Scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageEncode, err)
	}

	bounds := scaled.Bounds()
	return &RenderedImage{
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// loadFace resolves the theme's font: path relative to the theme file
// first, then absolute, then the bundled Go Mono face.
func loadFace(theme *Theme) (font.Face, error) {
	data := gomono.TTF
	if theme.FontPath != "" {
		path := theme.FontPath
		if !filepath.IsAbs(path) && theme.BaseDir != "" {
			path = filepath.Join(theme.BaseDir, path)
		}
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontNotFound, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(theme.FontSize),
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontNotFound, err)
	}
	return face, nil
}

// scaleImage replicates pixels by an integer factor, so dimensions stay
// exactly linear in the factor.
func scaleImage(src *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := src.RGBAAt(x, y)
			for sy := 0; sy < factor; sy++ {
				for sx := 0; sx < factor; sx++ {
					dst.SetRGBA(x*factor+sx, y*factor+sy, c)
				}
			}
		}
	}
	return dst
}

// prepareLines normalizes line endings, strips ANSI sequences, and clamps
// the text to the screenshot bounds.
func prepareLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = ansiCSI.ReplaceAllString(text, "")
	text = ansiOSC.ReplaceAllString(text, "")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, clampLine(line))
	}
	// Split never returns an empty slice, but trailing newlines leave
	// empty tail lines; keep them, they are real terminal rows.
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "(output truncated)")
	}
	return lines
}

// clampLine expands tabs, replaces non-printable and non-ASCII runes with
// '?', and truncates past the column limit.
func clampLine(line string) string {
	line = strings.ReplaceAll(line, "\t", "    ")
	var b strings.Builder
	col := 0
	for _, ch := range line {
		if col >= maxCols {
			b.WriteString("...")
			break
		}
		if ch >= 0x20 && ch < 0x7f {
			b.WriteRune(ch)
		} else {
			b.WriteByte('?')
		}
		col++
	}
	return b.String()
}
