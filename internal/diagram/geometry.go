package diagram

// Box is the diagram bounding box for one render pass.
type Box struct {
	X, Y  int
	W, H  int
	Scale float64
}

// NewBox returns a box at neutral scale.
func NewBox(x, y, w, h int) Box {
	return Box{X: x, Y: y, W: w, H: h, Scale: 1}
}

// Degenerate reports whether nothing can be drawn inside the box.
func (b Box) Degenerate() bool {
	return b.W <= 0 || b.H <= 0
}

// RX resolves a horizontal ratio to an absolute coordinate. All ratio helpers truncate
// toward zero; adjacent edges only tile when the ratio table accounts for it.
func (b Box) RX(r float64) int { return b.X + int(float64(b.W)*r) }

// RY resolves a vertical ratio to an absolute coordinate.
func (b Box) RY(r float64) int { return b.Y + int(float64(b.H)*r) }

// RW resolves a width ratio.
func (b Box) RW(r float64) int { return int(float64(b.W) * r) }

// RH resolves a height ratio.
func (b Box) RH(r float64) int { return int(float64(b.H) * r) }

// RSize resolves a size ratio (radius, stroke) against the width.
func (b Box) RSize(r float64) int { return b.RW(r) }

// Scaled shrinks the box around its centre by s.
func (b Box) Scaled(s float64) Box {
	w := int(float64(b.W) * s)
	h := int(float64(b.H) * s)
	return Box{
		X:     b.X + (b.W-w)/2,
		Y:     b.Y + (b.H-h)/2,
		W:     w,
		H:     h,
		Scale: b.Scale * s,
	}
}

// Point is an absolute pixel position.
type Point struct {
	X, Y int
}

// Rect is an absolute pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether p lies inside r (right and bottom edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering r and o. An empty side is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by d on every side; negative d grows it.
func (r Rect) Inset(d int) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
