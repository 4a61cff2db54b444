// Package rasterdraw renders diagram frames into RGBA images.
package rasterdraw

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const circleSegments = 64

var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

func regularFont() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// Surface draws into a supersampled canvas. Call Image to get the final frame.
type Surface struct {
	width, height int
	scale         int
	canvas        *image.RGBA
	ras           *vector.Rasterizer
	font          *opentype.Font
	faces         map[int]font.Face
}

// New returns a width×height surface rendering at supersample times the resolution.
func New(width, height, supersample int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rasterdraw: invalid size %dx%d", width, height)
	}
	supersample = max(supersample, 1)
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("rasterdraw: parse font: %w", err)
	}
	w, h := width*supersample, height*supersample
	return &Surface{
		width:  width,
		height: height,
		scale:  supersample,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
		ras:    vector.NewRasterizer(w, h),
		font:   f,
		faces:  make(map[int]font.Face),
	}, nil
}

// Close releases the cached font faces.
func (s *Surface) Close() error {
	for size, face := range s.faces {
		face.Close()
		delete(s.faces, size)
	}
	return nil
}

// Image returns the frame at its nominal size.
func (s *Surface) Image() *image.RGBA {
	if s.scale == 1 {
		return s.canvas
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.canvas, s.canvas.Bounds(), draw.Src, nil)
	return dst
}

func (s *Surface) face(px int) (font.Face, error) {
	if f, ok := s.faces[px]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	s.faces[px] = f
	return f, nil
}

func (s *Surface) px(v int) float32 {
	return float32(v * s.scale)
}

func uniform(c color.RGBA) *image.Uniform {
	return image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (s *Surface) fill(c color.RGBA) {
	b := s.canvas.Bounds()
	s.ras.Draw(s.canvas, b, uniform(c), image.Point{})
}

func (s *Surface) begin() {
	b := s.canvas.Bounds()
	s.ras.Reset(b.Dx(), b.Dy())
}

func (s *Surface) rectPath(x0, y0, x1, y1 float32, reverse bool) {
	s.ras.MoveTo(x0, y0)
	if reverse {
		s.ras.LineTo(x0, y1)
		s.ras.LineTo(x1, y1)
		s.ras.LineTo(x1, y0)
	} else {
		s.ras.LineTo(x1, y0)
		s.ras.LineTo(x1, y1)
		s.ras.LineTo(x0, y1)
	}
	s.ras.ClosePath()
}

func (s *Surface) circlePath(cx, cy, r float32, reverse bool) {
	dir := 1.0
	if reverse {
		dir = -1
	}
	s.ras.MoveTo(cx+r, cy)
	for i := 1; i < circleSegments; i++ {
		a := dir * 2 * math.Pi * float64(i) / circleSegments
		s.ras.LineTo(cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)))
	}
	s.ras.ClosePath()
}

func (s *Surface) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	s.begin()
	s.rectPath(s.px(x), s.px(y), s.px(x+w), s.px(y+h), false)
	s.fill(c)
}

// StrokeRect centres the stroke on the rect outline.
func (s *Surface) StrokeRect(x, y, w, h, width int, c color.RGBA) {
	if w <= 0 || h <= 0 || c.A == 0 {
		return
	}
	half := s.px(max(width, 1)) / 2
	x0, y0, x1, y1 := s.px(x), s.px(y), s.px(x+w), s.px(y+h)
	s.begin()
	s.rectPath(x0-half, y0-half, x1+half, y1+half, false)
	if x1-x0 > 2*half && y1-y0 > 2*half {
		s.rectPath(x0+half, y0+half, x1-half, y1-half, true)
	}
	s.fill(c)
}

func (s *Surface) FillCircle(cx, cy, r int, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	s.begin()
	s.circlePath(s.px(cx), s.px(cy), s.px(r), false)
	s.fill(c)
}

func (s *Surface) StrokeCircle(cx, cy, r, width int, c color.RGBA) {
	if r <= 0 || c.A == 0 {
		return
	}
	half := s.px(max(width, 1)) / 2
	fx, fy, fr := s.px(cx), s.px(cy), s.px(r)
	s.begin()
	s.circlePath(fx, fy, fr+half, false)
	if fr > half {
		s.circlePath(fx, fy, fr-half, true)
	}
	s.fill(c)
}

// Line draws a segment with square caps.
func (s *Surface) Line(x0, y0, x1, y1, width int, c color.RGBA) {
	if c.A == 0 {
		return
	}
	ax, ay, bx, by := s.px(x0), s.px(y0), s.px(x1), s.px(y1)
	half := s.px(max(width, 1)) / 2
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		s.begin()
		s.rectPath(ax-half, ay-half, ax+half, ay+half, false)
		s.fill(c)
		return
	}
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux
	s.begin()
	s.ras.MoveTo(ax-ux+nx, ay-uy+ny)
	s.ras.LineTo(bx+ux+nx, by+uy+ny)
	s.ras.LineTo(bx+ux-nx, by+uy-ny)
	s.ras.LineTo(ax-ux-nx, ay-uy-ny)
	s.ras.ClosePath()
	s.fill(c)
}

func (s *Surface) TextWidth(size int, text string) int {
	f, err := s.face(size * s.scale)
	if err != nil {
		return 0
	}
	return font.MeasureString(f, text).Ceil() / s.scale
}

func (s *Surface) Text(x, y, size int, text string, c color.RGBA) {
	if text == "" || c.A == 0 {
		return
	}
	f, err := s.face(size * s.scale)
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  s.canvas,
		Src:  uniform(c),
		Face: f,
		Dot:  fixed.Point26_6{X: fixed.I(x * s.scale), Y: fixed.I(y*s.scale) + f.Metrics().Ascent},
	}
	d.DrawString(text)
}

// DrawImage scales img into the rect.
func (s *Surface) DrawImage(img image.Image, x, y, w, h int) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x*s.scale, y*s.scale, (x+w)*s.scale, (y+h)*s.scale)
	draw.CatmullRom.Scale(s.canvas, r, img, img.Bounds(), draw.Over, nil)
}
