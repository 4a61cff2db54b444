// Package svgdraw renders diagram frames as SVG documents.
package svgdraw

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"unicode/utf8"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

// glyphAdvance approximates the advance of one glyph as a fraction of the font size.
const glyphAdvance = 0.6

const fontFamily = "Go, DejaVu Sans, Arial, sans-serif"

// Surface accumulates SVG elements. The zero value is not usable; call New.
type Surface struct {
	width, height int
	buf           bytes.Buffer
	elements      int
}

// New returns a surface for a width×height document.
func New(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Len returns the number of elements drawn so far.
func (s *Surface) Len() int {
	return s.elements
}

func paint(attr string, c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf(`%s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	}
	return fmt.Sprintf(`%s="#%02x%02x%02x" %s-opacity="%.3f"`, attr, c.R, c.G, c.B, attr, float64(c.A)/255)
}

func (s *Surface) emit(format string, args ...any) {
	fmt.Fprintf(&s.buf, format, args...)
	s.buf.WriteByte('\n')
	s.elements++
}

func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	s.emit(`<rect x="%d" y="%d" width="%d" height="%d" %s/>`, x, y, w, h, paint("fill", c))
}

func (s *Surface) StrokeRect(x, y, w, h, width int, c color.RGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	s.emit(`<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke-width="%d" %s/>`,
		x, y, w, h, max(width, 1), paint("stroke", c))
}

func (s *Surface) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	s.emit(`<circle cx="%d" cy="%d" r="%d" %s/>`, cx, cy, r, paint("fill", c))
}

func (s *Surface) StrokeCircle(cx, cy, r, width int, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	s.emit(`<circle cx="%d" cy="%d" r="%d" fill="none" stroke-width="%d" %s/>`,
		cx, cy, r, max(width, 1), paint("stroke", c))
}

func (s *Surface) Line(x0, y0, x1, y1, width int, c color.RGBA) {
	if c.A == 0 {
		return
	}
	s.emit(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke-width="%d" stroke-linecap="round" %s/>`,
		x0, y0, x1, y1, max(width, 1), paint("stroke", c))
}

func (s *Surface) TextWidth(size int, text string) int {
	return int(float64(utf8.RuneCountInString(text)*size) * glyphAdvance)
}

func (s *Surface) Text(x, y, size int, text string, c color.RGBA) {
	if text == "" || c.A == 0 {
		return
	}
	var esc bytes.Buffer
	if err := xml.EscapeText(&esc, []byte(text)); err != nil {
		return
	}
	s.emit(`<text x="%d" y="%d" font-size="%d" font-family="%s" dominant-baseline="hanging" %s>%s</text>`,
		x, y, size, fontFamily, paint("fill", c), esc.String())
}

// Bytes returns the complete SVG document.
func (s *Surface) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.width, s.height, s.width, s.height)
	out.WriteByte('\n')
	out.Write(s.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

// Minifier shrinks SVG documents before they are sent to clients.
type Minifier struct {
	m *minify.M
}

func NewMinifier() *Minifier {
	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	return &Minifier{m: m}
}

// Minify returns the minified document.
func (mn *Minifier) Minify(doc []byte) ([]byte, error) {
	out, err := mn.m.Bytes("image/svg+xml", doc)
	if err != nil {
		return nil, fmt.Errorf("svgdraw: minify: %w", err)
	}
	return out, nil
}
