package diagram

import (
	"image/color"
	"math"
)

const (
	arcSegments = 12
	dashLen     = 4
	dashGap     = 3

	pillHeight  = 26
	pillPadding = 10
	arrowLength = 12
)

// fillStadium fills a rect with semicircular ends of radius h/2.
func fillStadium(s Surface, r Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	rad := stadiumRadius(r)
	if mid := r.W - 2*rad; mid > 0 {
		s.FillRect(r.X+rad, r.Y, mid, r.H, c)
	}
	cy := r.Y + r.H/2
	s.FillCircle(r.X+rad, cy, rad, c)
	s.FillCircle(r.X+r.W-rad, cy, rad, c)
}

func strokeStadium(s Surface, r Rect, width int, c color.RGBA) {
	if r.Empty() {
		return
	}
	rad := stadiumRadius(r)
	lx, rx := r.X+rad, r.X+r.W-rad
	cy := r.Y + r.H/2
	s.Line(lx, r.Y, rx, r.Y, width, c)
	s.Line(lx, r.Y+r.H, rx, r.Y+r.H, width, c)
	strokeArc(s, lx, cy, rad, math.Pi/2, 3*math.Pi/2, width, c)
	strokeArc(s, rx, cy, rad, -math.Pi/2, math.Pi/2, width, c)
}

func stadiumRadius(r Rect) int {
	rad := r.H / 2
	rad = min(rad, r.W/2)
	return max(rad, 1)
}

// strokeArc draws an arc from a0 to a1 (radians, y down) with straight segments.
func strokeArc(s Surface, cx, cy, r int, a0, a1 float64, width int, c color.RGBA) {
	step := (a1 - a0) / arcSegments
	px, py := arcPoint(cx, cy, r, a0)
	for i := 1; i <= arcSegments; i++ {
		x, y := arcPoint(cx, cy, r, a0+float64(i)*step)
		s.Line(px, py, x, y, width, c)
		px, py = x, y
	}
}

func arcPoint(cx, cy, r int, a float64) (int, int) {
	return cx + int(math.Round(math.Cos(a)*float64(r))), cy - int(math.Round(math.Sin(a)*float64(r)))
}

// fillRoundRect fills r with corners of radius rad.
func fillRoundRect(s Surface, r Rect, rad int, c color.RGBA) {
	if r.Empty() {
		return
	}
	rad = min(rad, r.W/2, r.H/2)
	if rad <= 0 {
		s.FillRect(r.X, r.Y, r.W, r.H, c)
		return
	}
	s.FillRect(r.X+rad, r.Y, r.W-2*rad, r.H, c)
	s.FillRect(r.X, r.Y+rad, rad, r.H-2*rad, c)
	s.FillRect(r.X+r.W-rad, r.Y+rad, rad, r.H-2*rad, c)
	s.FillCircle(r.X+rad, r.Y+rad, rad, c)
	s.FillCircle(r.X+r.W-rad, r.Y+rad, rad, c)
	s.FillCircle(r.X+rad, r.Y+r.H-rad, rad, c)
	s.FillCircle(r.X+r.W-rad, r.Y+r.H-rad, rad, c)
}

// dashedRect outlines r with short dashes.
func dashedRect(s Surface, r Rect, width int, c color.RGBA) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	for x := x0; x < x1; x += dashLen + dashGap {
		e := min(x+dashLen, x1)
		s.Line(x, y0, e, y0, width, c)
		s.Line(x, y1, e, y1, width, c)
	}
	for y := y0; y < y1; y += dashLen + dashGap {
		e := min(y+dashLen, y1)
		s.Line(x0, y, x0, e, width, c)
		s.Line(x1, y, x1, e, width, c)
	}
}

// strokeEdges outlines the edges of r that are not set in suppressed.
func strokeEdges(s Surface, r Rect, suppressed EdgeMask, width int, c color.RGBA) {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	if suppressed&EdgeTop == 0 {
		s.Line(x0, y0, x1, y0, width, c)
	}
	if suppressed&EdgeRight == 0 {
		s.Line(x1, y0, x1, y1, width, c)
	}
	if suppressed&EdgeBottom == 0 {
		s.Line(x0, y1, x1, y1, width, c)
	}
	if suppressed&EdgeLeft == 0 {
		s.Line(x0, y0, x0, y1, width, c)
	}
}

// arrow draws a line from -> to with a two-stroke head at to.
func arrow(s Surface, from, to Point, width int, c color.RGBA) {
	s.Line(from.X, from.Y, to.X, to.Y, width, c)
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	if dx == 0 && dy == 0 {
		return
	}
	a := math.Atan2(dy, dx)
	for _, side := range [2]float64{-math.Pi / 7, math.Pi / 7} {
		hx := to.X - int(math.Round(math.Cos(a+side)*arrowLength))
		hy := to.Y - int(math.Round(math.Sin(a+side)*arrowLength))
		s.Line(to.X, to.Y, hx, hy, width, c)
	}
}

// pill draws a rounded label with text at (x, y) and returns its rect.
func pill(s Surface, x, y int, text string, bg, fg color.RGBA) Rect {
	w := s.TextWidth(FontSmall, text) + 2*pillPadding
	r := Rect{X: x, Y: y, W: w, H: pillHeight}
	fillRoundRect(s, r, pillHeight/2, bg)
	s.Text(x+pillPadding, y+(pillHeight-FontSmall)/2, FontSmall, text, fg)
	return r
}

// nearestEdgePoint is the point on r's border closest to p, used to start callout lines.
func nearestEdgePoint(r Rect, p Point) Point {
	c := r.Center()
	switch {
	case p.X < r.X:
		return Point{X: r.X, Y: c.Y}
	case p.X > r.X+r.W:
		return Point{X: r.X + r.W, Y: c.Y}
	case p.Y < r.Y:
		return Point{X: c.X, Y: r.Y}
	}
	return Point{X: c.X, Y: r.Y + r.H}
}
