package rasterdraw

import (
	"image"
	"image/color"

	"github.com/soar/mapview/internal/diagram"
)

// DefaultSupersample is the canvas multiplier used for exported frames.
const DefaultSupersample = 2

// RenderFrame renders one diagram frame of width×height.
func RenderFrame(st *diagram.State, m diagram.MappingTable, width, height int, opts ...diagram.RenderOption) (*image.RGBA, error) {
	s, err := New(width, height, DefaultSupersample)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	diagram.Render(s, st, m, diagram.NewBox(0, 0, width, height), opts...)
	return s.Image(), nil
}

// Icon draws a size×size controller glyph in the accent colour.
func Icon(size int, accent color.RGBA) (*image.RGBA, error) {
	s, err := New(size, size, 4)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	body := diagram.DefaultTheme().Body
	h := size / 2
	y := (size - h) / 2
	r := h / 2
	s.FillRect(r, y, size-2*r, h, body)
	s.FillCircle(r, y+r, r, body)
	s.FillCircle(size-r, y+r, r, body)

	lw := max(1, size/16)
	s.StrokeRect(r, y, size-2*r, h, lw, accent)
	dot := max(1, size/10)
	s.FillCircle(size/4, size/2, dot, accent)
	s.FillCircle(size*3/4, size/2, dot, accent)
	return s.Image(), nil
}

// IconICO renders Icon and wraps it for the Windows tray.
func IconICO(size int, accent color.RGBA) ([]byte, error) {
	img, err := Icon(size, accent)
	if err != nil {
		return nil, err
	}
	return EncodeICO(img)
}
