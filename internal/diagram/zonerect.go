package diagram

import "github.com/soar/mapview/internal/controller"

// GridCellRect returns cell (row, col) of surface divided into rows×cols. The first
// W%cols columns and H%rows rows are one pixel larger so the cells tile surface exactly.
// Out-of-range input yields an empty rect.
func GridCellRect(surface Rect, rows, cols, row, col int) Rect {
	if rows <= 0 || cols <= 0 || row < 0 || row >= rows || col < 0 || col >= cols {
		return Rect{}
	}
	x, w := subdivide(surface.X, surface.W, cols, col)
	y, h := subdivide(surface.Y, surface.H, rows, row)
	return Rect{X: x, Y: y, W: w, H: h}
}

func subdivide(origin, extent, n, i int) (pos, size int) {
	base, rem := extent/n, extent%n
	pos = origin + i*base + min(i, rem)
	size = base
	if i < rem {
		size++
	}
	return pos, size
}

// cellAt inverts GridCellRect for a point inside surface.
func cellAt(surface Rect, rows, cols int, p Point) (row, col int, ok bool) {
	if surface.Empty() || !surface.Contains(p) {
		return 0, 0, false
	}
	col = indexAt(surface.X, surface.W, cols, p.X)
	row = indexAt(surface.Y, surface.H, rows, p.Y)
	return row, col, true
}

func indexAt(origin, extent, n, v int) int {
	for i := range n {
		pos, size := subdivide(origin, extent, n, i)
		if v < pos+size {
			return i
		}
	}
	return n - 1
}

func quadrant(r Rect, right, bottom bool) Rect {
	hw, hh := r.W/2, r.H/2
	q := Rect{X: r.X, Y: r.Y, W: hw, H: hh}
	if right {
		q.X += hw
		q.W = r.W - hw
	}
	if bottom {
		q.Y += hh
		q.H = r.H - hh
	}
	return q
}

// FrontCellRect is the rect of front grid cell (row, col).
func (c *Context) FrontCellRect(row, col int) Rect {
	return GridCellRect(c.Screen, controller.FrontGridRows, controller.FrontGridCols, row, col)
}

// BackCellRect is the rect of rear grid cell (row, col).
func (c *Context) BackCellRect(row, col int) Rect {
	return GridCellRect(c.RearPad, controller.RearGridRows, controller.RearGridCols, row, col)
}

// FrontZoneRect resolves a front touch zone. ok is false for rear zones, buttons, unknown
// ids and degenerate boxes.
func (c *Context) FrontZoneRect(zone controller.InputZone) (Rect, bool) {
	if c.Degenerate() {
		return Rect{}, false
	}
	s := c.Screen
	switch {
	case zone.IsFrontGrid():
		row, col, _ := zone.GridCell()
		return c.FrontCellRect(row, col), true
	case zone == controller.InFrontTouchULArc:
		return quadrant(s, false, false), true
	case zone == controller.InFrontTouchURArc:
		return quadrant(s, true, false), true
	case zone == controller.InFrontTouchLLArc:
		return quadrant(s, false, true), true
	case zone == controller.InFrontTouchLRArc:
		return quadrant(s, true, true), true
	case zone == controller.InFrontTouchCenter:
		w := max(1, int(float64(s.W)*c.Layout.FrontCenter))
		h := max(1, int(float64(s.H)*c.Layout.FrontCenter))
		return Rect{X: s.X + (s.W-w)/2, Y: s.Y + (s.H-h)/2, W: w, H: h}, true
	case zone == controller.InFrontTouchAny:
		return s, true
	}
	return Rect{}, false
}

// BackZoneRect resolves a rear touch zone. ok is false for front zones, buttons, unknown
// ids and degenerate boxes.
func (c *Context) BackZoneRect(zone controller.InputZone) (Rect, bool) {
	if c.Degenerate() {
		return Rect{}, false
	}
	p := c.RearPad
	strip := max(1, int(float64(p.W)*c.Layout.RearEdgeStrip))
	switch {
	case zone.IsRearGrid():
		row, col, _ := zone.GridCell()
		return c.BackCellRect(row, col), true
	case zone == controller.InRearTouchUL:
		return quadrant(p, false, false), true
	case zone == controller.InRearTouchUR:
		return quadrant(p, true, false), true
	case zone == controller.InRearTouchLL:
		return quadrant(p, false, true), true
	case zone == controller.InRearTouchLR:
		return quadrant(p, true, true), true
	case zone == controller.InRearTouchLeft:
		return Rect{X: p.X, Y: p.Y, W: strip, H: p.H}, true
	case zone == controller.InRearTouchRight:
		return Rect{X: p.X + p.W - strip, Y: p.Y, W: strip, H: p.H}, true
	case zone == controller.InRearTouchLeftL1:
		// outside the pad, upper half, toward the shoulder
		return Rect{X: p.X - strip, Y: p.Y, W: strip, H: max(1, p.H/2)}, true
	case zone == controller.InRearTouchRightR1:
		return Rect{X: p.X + p.W, Y: p.Y, W: strip, H: max(1, p.H/2)}, true
	case zone == controller.InRearTouchAny:
		return p, true
	}
	return Rect{}, false
}

// ZoneRect dispatches on the zone's surface.
func (c *Context) ZoneRect(zone controller.InputZone) (Rect, bool) {
	switch zone.Surface() {
	case controller.SurfaceFront:
		return c.FrontZoneRect(zone)
	case controller.SurfaceRear:
		return c.BackZoneRect(zone)
	}
	return Rect{}, false
}

// FrontCellAt returns the front grid cell under p.
func (c *Context) FrontCellAt(p Point) (row, col int, ok bool) {
	return cellAt(c.Screen, controller.FrontGridRows, controller.FrontGridCols, p)
}

// BackCellAt returns the rear grid cell under p.
func (c *Context) BackCellAt(p Point) (row, col int, ok bool) {
	return cellAt(c.RearPad, controller.RearGridRows, controller.RearGridCols, p)
}

// ZoneControl returns the control drawn for a zone, if the zone owns one.
func ZoneControl(zone controller.InputZone) (ControlID, bool) {
	switch zone {
	case controller.InL1:
		return ControlL, true
	case controller.InR1:
		return ControlR, true
	case controller.InSelectStart:
		return ControlStart, true
	case controller.InLeftSquare:
		return ControlSquare, true
	case controller.InRightCircle:
		return ControlCircle, true
	case controller.InRearTouchUL:
		return ControlRearUL, true
	case controller.InRearTouchUR:
		return ControlRearUR, true
	case controller.InRearTouchLL:
		return ControlRearLL, true
	case controller.InRearTouchLR:
		return ControlRearLR, true
	}
	return ControlNone, false
}
