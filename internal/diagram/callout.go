package diagram

import "github.com/soar/mapview/internal/controller"

// Callout labels one zone in summary mode. Anchor and Label are box ratios; Label is the
// pill's top-left corner and Anchor is only used when the zone resolves to nothing.
type Callout struct {
	Zone    controller.InputZone
	View    ViewMode
	Text    string
	AnchorX float64
	AnchorY float64
	LabelX  float64
	LabelY  float64
}

// CalloutPage is a contiguous slice of the callout list.
type CalloutPage struct {
	Title string
	View  ViewMode
	Start int
	Count int
}

// Callouts is the static callout list and its pages.
type Callouts struct {
	Items []Callout
	Pages []CalloutPage
}

// DefaultCallouts returns the built-in callout set.
func DefaultCallouts() *Callouts {
	return &Callouts{
		Items: []Callout{
			{controller.InL1, ViewFront, "L1", 0.13, 0.07, 0.22, 0.01},
			{controller.InR1, ViewFront, "R1", 0.87, 0.07, 0.62, 0.01},
			{controller.InSelectStart, ViewFront, "Sel+Start", 0.88, 0.80, 0.66, 0.90},
			{controller.InLeftSquare, ViewFront, "Left+□", 0.845, 0.40, 0.62, 0.30},
			{controller.InRightCircle, ViewFront, "Right+○", 0.935, 0.40, 0.66, 0.50},

			{controller.InRearTouchUL, ViewBack, "Rear UL", 0.36, 0.35, 0.02, 0.22},
			{controller.InRearTouchUR, ViewBack, "Rear UR", 0.64, 0.35, 0.80, 0.22},
			{controller.InRearTouchLL, ViewBack, "Rear LL", 0.36, 0.65, 0.02, 0.70},
			{controller.InRearTouchLR, ViewBack, "Rear LR", 0.64, 0.65, 0.80, 0.70},
			{controller.InRearTouchLeftL1, ViewBack, "Rear L-side", 0.19, 0.35, 0.02, 0.02},
			{controller.InRearTouchRightR1, ViewBack, "Rear R-side", 0.81, 0.35, 0.78, 0.02},

			{controller.InFrontTouchULArc, ViewFront, "Touch UL", 0.35, 0.33, 0.25, 0.02},
			{controller.InFrontTouchURArc, ViewFront, "Touch UR", 0.65, 0.33, 0.60, 0.02},
			{controller.InFrontTouchLLArc, ViewFront, "Touch LL", 0.35, 0.67, 0.25, 0.90},
			{controller.InFrontTouchLRArc, ViewFront, "Touch LR", 0.65, 0.67, 0.60, 0.90},
			{controller.InFrontTouchCenter, ViewFront, "Touch Mid", 0.50, 0.50, 0.42, 0.46},
		},
		Pages: []CalloutPage{
			{Title: "Shoulders & Buttons", View: ViewFront, Start: 0, Count: 5},
			{Title: "Rear Touch", View: ViewBack, Start: 5, Count: 6},
			{Title: "Front Touch", View: ViewFront, Start: 11, Count: 5},
		},
	}
}

// PageCount returns the number of pages.
func (c *Callouts) PageCount() int {
	if c == nil {
		return 0
	}
	return len(c.Pages)
}

// PageView returns the face a page is drawn on.
func (c *Callouts) PageView(page int) ViewMode {
	if c == nil || page < 0 || page >= len(c.Pages) {
		return ViewFront
	}
	return c.Pages[page].View
}

// Page returns the entries of page that belong to view. Out-of-range pages yield nil.
func (c *Callouts) Page(page int, view ViewMode) []Callout {
	if c == nil || page < 0 || page >= len(c.Pages) {
		return nil
	}
	p := c.Pages[page]
	end := min(p.Start+p.Count, len(c.Items))
	var out []Callout
	for i := max(p.Start, 0); i < end; i++ {
		if c.Items[i].View == view {
			out = append(out, c.Items[i])
		}
	}
	return out
}

// CalloutAnchor resolves where a callout arrow points: the control drawn for its zone,
// then the centre of the zone rect, then the static anchor.
func (c *Context) CalloutAnchor(co Callout) Point {
	if id, ok := ZoneControl(co.Zone); ok {
		p := c.Control(id)
		return Point{X: p.CX, Y: p.CY}
	}
	resolve := c.FrontZoneRect
	if co.View == ViewBack {
		resolve = c.BackZoneRect
	}
	if r, ok := resolve(co.Zone); ok {
		return r.Center()
	}
	return Point{X: c.Box.RX(co.AnchorX), Y: c.Box.RY(co.AnchorY)}
}

// CalloutText is the pill text for co under m.
func CalloutText(co Callout, m MappingTable) string {
	out := controller.OutNone
	if m != nil {
		out = m.Output(co.Zone)
	}
	return co.Text + " → " + out.Symbol()
}
