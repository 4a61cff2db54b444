package diagram

// ControlID names a drawable physical control.
type ControlID int

const (
	ControlDpad ControlID = iota
	ControlTriangle
	ControlCircle
	ControlCross
	ControlSquare
	ControlL
	ControlR
	ControlLStick
	ControlRStick
	ControlPS
	ControlStart
	ControlSelect
	ControlRearUL
	ControlRearUR
	ControlRearLL
	ControlRearLR
	ControlCount

	ControlNone ControlID = -1
)

var controlNames = [ControlCount]string{
	"dpad", "triangle", "circle", "cross", "square", "l", "r", "lstick", "rstick",
	"ps", "start", "select", "rear_ul", "rear_ur", "rear_ll", "rear_lr",
}

func (id ControlID) Valid() bool {
	return id >= 0 && id < ControlCount
}

func (id ControlID) String() string {
	if !id.Valid() {
		return "none"
	}
	return controlNames[id]
}

// Rear reports whether the control sits on the back face.
func (id ControlID) Rear() bool {
	return id >= ControlRearUL && id <= ControlRearLR
}

// ControlPos is the resolved position of one control. Circular controls use CX, CY and
// Radius; rectangular ones use X, Y, W, H. Both carry a centre.
type ControlPos struct {
	CX, CY     int
	Radius     int
	X, Y, W, H int
	Circular   bool
}

// Bounds returns the control's bounding rect.
func (p ControlPos) Bounds() Rect {
	if p.Circular {
		return Rect{X: p.CX - p.Radius, Y: p.CY - p.Radius, W: 2 * p.Radius, H: 2 * p.Radius}
	}
	return Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Context is the resolved geometry for one box. Build it once per frame.
type Context struct {
	Box       Box
	Layout    *Layout
	Theme     Theme
	LineWidth int

	Body    Rect
	Screen  Rect
	RearPad Rect

	controls [ControlCount]ControlPos
}

// NewContext resolves every control position for box. A nil layout uses DefaultLayout.
func NewContext(box Box, layout *Layout) *Context {
	if layout == nil {
		layout = DefaultLayout()
	}
	c := &Context{
		Box:       box,
		Layout:    layout,
		Theme:     DefaultTheme(),
		LineWidth: max(1, box.RSize(layout.OutlineWidth)),
	}
	l := layout

	c.Body = Rect{X: box.RX(l.BodyX), Y: box.RY(l.BodyY), W: box.RW(l.BodyW), H: box.RH(l.BodyH)}
	c.Screen = Rect{
		X: box.RX(l.ScreenX),
		Y: box.RY(l.ScreenY),
		W: max(1, box.RW(l.ScreenW)),
		H: max(1, box.RH(l.ScreenH)),
	}
	c.RearPad = Rect{
		X: box.RX(l.RearPadX),
		Y: box.RY(l.RearPadY),
		W: max(1, box.RW(l.RearPadW)),
		H: max(1, box.RH(l.RearPadH)),
	}

	circle := func(cx, cy, r float64) ControlPos {
		p := ControlPos{CX: box.RX(cx), CY: box.RY(cy), Radius: box.RSize(r), Circular: true}
		p.X, p.Y, p.W, p.H = p.CX-p.Radius, p.CY-p.Radius, 2*p.Radius, 2*p.Radius
		return p
	}
	rect := func(x, y, w, h float64) ControlPos {
		p := ControlPos{X: box.RX(x), Y: box.RY(y), W: box.RW(w), H: box.RH(h)}
		p.CX, p.CY = p.X+p.W/2, p.Y+p.H/2
		return p
	}

	arm := box.RSize(l.DpadArmLength)
	c.controls[ControlDpad] = ControlPos{
		CX: box.RX(l.DpadCX), CY: box.RY(l.DpadCY), Radius: arm,
		X: box.RX(l.DpadCX) - arm, Y: box.RY(l.DpadCY) - arm, W: 2 * arm, H: 2 * arm,
	}
	c.controls[ControlTriangle] = circle(l.TriangleCX, l.TriangleCY, l.FaceRadius)
	c.controls[ControlCircle] = circle(l.CircleCX, l.CircleCY, l.FaceRadius)
	c.controls[ControlCross] = circle(l.CrossCX, l.CrossCY, l.FaceRadius)
	c.controls[ControlSquare] = circle(l.SquareCX, l.SquareCY, l.FaceRadius)
	c.controls[ControlL] = rect(l.LShoulderX, l.LShoulderY, l.ShoulderW, l.ShoulderH)
	c.controls[ControlR] = rect(l.RShoulderX, l.RShoulderY, l.ShoulderW, l.ShoulderH)
	c.controls[ControlLStick] = circle(l.LStickCX, l.LStickCY, l.StickOuterR)
	c.controls[ControlRStick] = circle(l.RStickCX, l.RStickCY, l.StickOuterR)
	c.controls[ControlPS] = circle(l.PSCX, l.PSCY, l.PSR)
	c.controls[ControlStart] = circle(l.StartCX, l.StartCY, l.SystemR)
	c.controls[ControlSelect] = circle(l.SelectCX, l.SelectCY, l.SystemR)
	for i := range 4 {
		c.controls[ControlRearUL+ControlID(i)] = circle(l.RearZoneCX[i], l.RearZoneCY[i], l.RearZoneR)
	}
	return c
}

// Control returns the position of id. id must be Valid.
func (c *Context) Control(id ControlID) ControlPos {
	return c.controls[id]
}

// Degenerate reports whether the context was built for an empty box.
func (c *Context) Degenerate() bool {
	return c.Box.Degenerate()
}
