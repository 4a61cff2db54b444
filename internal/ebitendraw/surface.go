// Package ebitendraw draws diagrams onto ebiten images and runs the desktop preview.
package ebitendraw

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Surface implements diagram.ImageSurface on an *ebiten.Image. Point it at the screen
// with Target before each frame.
type Surface struct {
	dst    *ebiten.Image
	source *text.GoTextFaceSource
	faces  map[int]*text.GoTextFace
	images map[image.Image]*ebiten.Image
}

// NewSurface parses the UI font. The returned surface has no target yet.
func NewSurface() (*Surface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebitendraw: load font: %w", err)
	}
	return &Surface{
		source: src,
		faces:  make(map[int]*text.GoTextFace),
		images: make(map[image.Image]*ebiten.Image),
	}, nil
}

// Target sets the image drawn on.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// diagram colours carry straight alpha; ebiten reads color.RGBA as premultiplied.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA(c)
}

func (s *Surface) face(size int) *text.GoTextFace {
	f, ok := s.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: s.source, Size: float64(size)}
		s.faces[size] = f
	}
	return f
}

func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), straight(c), false)
}

func (s *Surface) StrokeRect(x, y, w, h, width int, c color.RGBA) {
	if w <= 0 || h <= 0 || width <= 0 || c.A == 0 {
		return
	}
	vector.StrokeRect(s.dst, float32(x), float32(y), float32(w), float32(h), float32(width), straight(c), false)
}

func (s *Surface) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), straight(c), true)
}

func (s *Surface) StrokeCircle(cx, cy, r, width int, c color.RGBA) {
	if r <= 0 || width <= 0 || c.A == 0 {
		return
	}
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(width), straight(c), true)
}

func (s *Surface) Line(x0, y0, x1, y1, width int, c color.RGBA) {
	if width <= 0 || c.A == 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), straight(c), true)
}

func (s *Surface) TextWidth(size int, str string) int {
	w, _ := text.Measure(str, s.face(size), 0)
	return int(w + 0.5)
}

func (s *Surface) Text(x, y, size int, str string, c color.RGBA) {
	if str == "" || c.A == 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(straight(c))
	text.Draw(s.dst, str, s.face(size), op)
}

// DrawImage blits a skin texture. Uploaded textures are cached by source image.
func (s *Surface) DrawImage(img image.Image, x, y, w, h int) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	eimg, ok := s.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		s.images[img] = eimg
	}
	b := eimg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(eimg, op)
}
