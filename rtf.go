package appack

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// watermarkCaption is appended to generated documents unless disabled.
const watermarkCaption = "Packed with appack, created by Ian Fogarty (catforgor)."

// Color table slots for the highlighted code section. Slot 0 is the RTF
// auto color; slots are referenced as \cfN.
const (
	colorText = iota + 1
	colorKeyword
	colorString
	colorComment
	colorNumber
	colorFunction
)

// DocumentInput carries everything the composer embeds.
type DocumentInput struct {
	Assignment string
	Name       string
	StudentID  string
	CFileName  string
	Code       string
	Display    string // the command shown under the screenshot
	Transcript string
	Image      *RenderedImage
	Watermark  bool
}

// Composer assembles the submission document in RTF. It never re-invokes
// the sandbox; all content arrives through DocumentInput.
type Composer struct {
	highlight bool
}

// NewComposer creates a Composer with C syntax highlighting enabled.
func NewComposer() *Composer {
	return &Composer{highlight: true}
}

// Compose serializes the document: header block, highlighted source,
// screenshot image, captured output, optional watermark caption.
func (c *Composer) Compose(in *DocumentInput) ([]byte, error) {
	if in.Code == "" {
		return nil, ErrEmptySource
	}
	if in.Image == nil || len(in.Image.PNG) == 0 {
		return nil, fmt.Errorf("%w: missing screenshot", ErrImageEncode)
	}

	var r strings.Builder
	r.Grow(len(in.Image.PNG)*2 + len(in.Code) + 4096)

	r.WriteString("{\\rtf1\\ansi\\deff0\n")
	r.WriteString("{\\fonttbl{\\f0 Calibri;}{\\f1 Consolas;}}\n")
	r.WriteString("{\\colortbl ;" +
		"\\red0\\green0\\blue0;" + // text
		"\\red0\\green0\\blue255;" + // keyword
		"\\red163\\green21\\blue21;" + // string
		"\\red0\\green128\\blue0;" + // comment
		"\\red9\\green134\\blue88;" + // number
		"\\red121\\green94\\blue38;}\n") // function
	r.WriteString("\\viewkind4\\uc1\\pard\\sa120\\sl240\\slmult1\\f0\\fs24\n")

	r.WriteString("\\b ")
	escapeRTF(&r, in.Assignment+" Submission", false)
	r.WriteString(" \\b0\\par\n")
	escapeRTF(&r, fmt.Sprintf("Student: %s (%s)", in.Name, in.StudentID), false)
	r.WriteString("\\par\n")
	escapeRTF(&r, "Source file: "+in.CFileName, false)
	r.WriteString("\\par\n\\par\n")

	r.WriteString("\\b Code\\b0\\par\n")
	r.WriteString("{\\pard\\f1\\fs18 ")
	c.writeCode(&r, in.Code)
	r.WriteString("\\par}\n\\pard\\f0\\fs24\\par\n")

	r.WriteString("\\b Program Run Screenshot\\b0\\par\n")
	escapeRTF(&r, "Command: "+in.Display, false)
	r.WriteString("\\par\n")
	writePicture(&r, in.Image)

	r.WriteString("\\b Captured Output (Text)\\b0\\par\n")
	r.WriteString("{\\pard\\f1\\fs18 ")
	escapeRTF(&r, in.Transcript, true)
	r.WriteString("\\par}\n")

	if in.Watermark {
		r.WriteString("\\pard\\qc\\f0\\fs16\\i ")
		escapeRTF(&r, watermarkCaption, false)
		r.WriteString(" \\i0\\par\n")
	}
	r.WriteString("}\n")

	return []byte(r.String()), nil
}

// writeCode emits the source block, tokenized through chroma's C lexer so
// keywords, strings, comments, and numbers pick up the color table slots.
// The text content is exactly the escaped source; colors are control words
// around it.
func (c *Composer) writeCode(r *strings.Builder, code string) {
	lexer := lexers.Get("c")
	if !c.highlight || lexer == nil {
		escapeRTF(r, code, true)
		return
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		escapeRTF(r, code, true)
		return
	}

	current := colorText
	fmt.Fprintf(r, "\\cf%d ", colorText)
	for _, tok := range it.Tokens() {
		slot := colorSlot(tok.Type)
		if slot != current {
			fmt.Fprintf(r, "\\cf%d ", slot)
			current = slot
		}
		escapeRTF(r, tok.Value, true)
	}
	if current != colorText {
		fmt.Fprintf(r, "\\cf%d ", colorText)
	}
}

// colorSlot maps a chroma token type to a color table slot.
func colorSlot(tt chroma.TokenType) int {
	switch {
	case tt.InCategory(chroma.Keyword):
		return colorKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return colorString
	case tt.InCategory(chroma.Comment):
		return colorComment
	case tt.InSubCategory(chroma.LiteralNumber):
		return colorNumber
	case tt == chroma.NameFunction:
		return colorFunction
	}
	return colorText
}

// writePicture embeds the PNG as an inline \pict object. picw/pich are the
// pixel dimensions; the goal values display at 15 twips per pixel while the
// underlying resolution is preserved.
func writePicture(r *strings.Builder, img *RenderedImage) {
	pw, ph := img.Width, img.Height
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	fmt.Fprintf(r, "{\\pict\\pngblip\\picw%d\\pich%d\\picwgoal%d\\pichgoal%d\n",
		pw, ph, pw*15, ph*15)
	writeHex(r, img.PNG, 64)
	r.WriteString("}\n\\par\n")
}

// escapeRTF writes text with RTF control characters escaped. In block mode
// newlines become \line and tabs become four spaces; inline mode collapses
// all whitespace to single spaces. Non-ASCII runes use \uN? escapes.
func escapeRTF(buf *strings.Builder, text string, block bool) {
	for _, ch := range text {
		switch {
		case ch == '\\':
			buf.WriteString("\\\\")
		case ch == '{':
			buf.WriteString("\\{")
		case ch == '}':
			buf.WriteString("\\}")
		case ch == '\n' && block:
			buf.WriteString("\\line\n")
		case ch == '\r' && block:
			// swallowed; \r\n pairs reduce to \line
		case ch == '\t' && block:
			buf.WriteString("    ")
		case ch == '\n' || ch == '\r' || ch == '\t':
			buf.WriteByte(' ')
		case ch >= 0x20 && ch < 0x7f:
			buf.WriteRune(ch)
		default:
			writeUnicodeEscape(buf, ch)
		}
	}
}

// writeUnicodeEscape emits \uN? with RTF's signed 16-bit convention,
// splitting supplementary-plane runes into surrogate pairs.
func writeUnicodeEscape(buf *strings.Builder, ch rune) {
	cp := uint32(ch)
	switch {
	case cp <= 0x7FFF:
		fmt.Fprintf(buf, "\\u%d?", cp)
	case cp <= 0xFFFF:
		fmt.Fprintf(buf, "\\u%d?", int16(cp))
	default:
		adj := cp - 0x10000
		hi := 0xD800 + (adj >> 10)
		lo := 0xDC00 + (adj & 0x3FF)
		fmt.Fprintf(buf, "\\u%d?\\u%d?", int16(hi), int16(lo))
	}
}

// writeHex emits bytes as lowercase hex, wrapped at perLine bytes.
func writeHex(buf *strings.Builder, data []byte, perLine int) {
	if perLine < 1 {
		perLine = 1
	}
	for i, b := range data {
		fmt.Fprintf(buf, "%02x", b)
		if (i+1)%perLine == 0 {
			buf.WriteByte('\n')
		}
	}
	if len(data) == 0 || len(data)%perLine != 0 {
		buf.WriteByte('\n')
	}
}
