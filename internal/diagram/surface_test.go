package diagram

import (
	"image"
	"image/color"
)

// recordingSurface records every primitive as an op name.
type recordingSurface struct {
	ops      []string
	texts    []string
	lines    int
	segments []lineOp
	images   int
}

type lineOp struct {
	x0, y0, x1, y1 int
	c              color.RGBA
}

// within reports whether the segment lies in r, edges included.
func (l lineOp) within(r Rect) bool {
	return min(l.x0, l.x1) >= r.X && max(l.x0, l.x1) <= r.X+r.W &&
		min(l.y0, l.y1) >= r.Y && max(l.y0, l.y1) <= r.Y+r.H
}

func (r *recordingSurface) FillRect(x, y, w, h int, c color.RGBA) {
	r.ops = append(r.ops, "fill_rect")
}

func (r *recordingSurface) StrokeRect(x, y, w, h, width int, c color.RGBA) {
	r.ops = append(r.ops, "stroke_rect")
}

func (r *recordingSurface) FillCircle(cx, cy, rad int, c color.RGBA) {
	r.ops = append(r.ops, "fill_circle")
}

func (r *recordingSurface) StrokeCircle(cx, cy, rad, width int, c color.RGBA) {
	r.ops = append(r.ops, "stroke_circle")
}

func (r *recordingSurface) Line(x0, y0, x1, y1, width int, c color.RGBA) {
	r.ops = append(r.ops, "line")
	r.lines++
	r.segments = append(r.segments, lineOp{x0, y0, x1, y1, c})
}

func (r *recordingSurface) TextWidth(size int, s string) int {
	return len([]rune(s)) * size / 2
}

func (r *recordingSurface) Text(x, y, size int, s string, c color.RGBA) {
	r.ops = append(r.ops, "text")
	r.texts = append(r.texts, s)
}

type imageRecordingSurface struct {
	recordingSurface
}

func (r *imageRecordingSurface) DrawImage(img image.Image, x, y, w, h int) {
	r.ops = append(r.ops, "image")
	r.images++
}

type fakeTextures map[ViewMode]image.Image

func (f fakeTextures) Texture(face ViewMode) (image.Image, bool) {
	img, ok := f[face]
	return img, ok
}
