package diagram

import (
	"fmt"
	"image/color"

	"github.com/soar/mapview/internal/controller"
)

const (
	cardRadius = 8
	bothGap    = 10
)

type renderConfig struct {
	layout   *Layout
	theme    Theme
	callouts *Callouts
	textures Textures
	accents  []color.RGBA
}

// RenderOption customises a Render call.
type RenderOption func(*renderConfig)

func WithLayout(l *Layout) RenderOption {
	return func(c *renderConfig) {
		if l != nil {
			c.layout = l
		}
	}
}

func WithTheme(t Theme) RenderOption {
	return func(c *renderConfig) { c.theme = t }
}

func WithCallouts(co *Callouts) RenderOption {
	return func(c *renderConfig) {
		if co != nil {
			c.callouts = co
		}
	}
}

// WithTextures supplies face skins. They are only used when the surface is an ImageSurface.
func WithTextures(t Textures) RenderOption {
	return func(c *renderConfig) { c.textures = t }
}

func WithAccents(p []color.RGBA) RenderOption {
	return func(c *renderConfig) {
		if len(p) > 0 {
			c.accents = p
		}
	}
}

// Render draws one frame of the diagram for st and m into box.
func Render(s Surface, st *State, m MappingTable, box Box, opts ...RenderOption) {
	if s == nil || st == nil || box.Degenerate() {
		return
	}
	cfg := renderConfig{
		layout:   DefaultLayout(),
		theme:    DefaultTheme(),
		callouts: DefaultCallouts(),
		accents:  AccentPalette,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fillRoundRect(s, Rect{X: box.X, Y: box.Y, W: box.W, H: box.H}, cardRadius, cfg.theme.Card)

	accent := st.AccentColor(cfg.accents)
	scaled := box.Scaled(st.FlipScale())
	if scaled.Degenerate() {
		return
	}

	if st.View == ViewBoth {
		renderBoth(s, scaled, accent, &cfg)
		return
	}

	ctx := newThemedContext(scaled, &cfg)
	face := st.View
	drawFace(s, ctx, face, accent, &cfg)

	switch st.Detail {
	case DetailSummary:
		drawSummary(s, ctx, st, m, face, accent, &cfg)
	case DetailFrontMapping:
		if face == ViewFront {
			drawMapping(s, ctx, st, m, face)
		}
	case DetailBackMapping:
		if face == ViewBack {
			drawMapping(s, ctx, st, m, face)
		}
	}

	if id := st.SelectedControl; id.Valid() && id.Rear() == (face == ViewBack) {
		DrawControlHighlight(s, ctx, id, st.Pulse())
	}
}

func newThemedContext(box Box, cfg *renderConfig) *Context {
	ctx := NewContext(box, cfg.layout)
	ctx.Theme = cfg.theme
	return ctx
}

// renderBoth stacks both faces. The per-face scale is BothScale, reduced when two faces
// would not fit the box height.
func renderBoth(s Surface, box Box, accent color.RGBA, cfg *renderConfig) {
	scale := cfg.layout.BothScale
	if fit := float64(box.H-3*bothGap) / float64(2*box.H); scale > fit {
		scale = fit
	}
	w, h := int(float64(box.W)*scale), int(float64(box.H)*scale)
	if w <= 0 || h <= 0 {
		return
	}
	x := box.X + (box.W-w)/2
	top := box.Y + (box.H-2*h-bothGap)/2
	front := Box{X: x, Y: top, W: w, H: h, Scale: box.Scale * scale}
	back := Box{X: x, Y: top + h + bothGap, W: w, H: h, Scale: box.Scale * scale}
	drawFace(s, newThemedContext(front, cfg), ViewFront, accent, cfg)
	drawFace(s, newThemedContext(back, cfg), ViewBack, accent, cfg)
}

// drawFace draws the skin for face when one is available, else the procedural diagram.
func drawFace(s Surface, ctx *Context, face ViewMode, accent color.RGBA, cfg *renderConfig) {
	if cfg.textures != nil {
		if is, ok := s.(ImageSurface); ok {
			if img, ok := cfg.textures.Texture(face); ok && img != nil {
				b := ctx.Box
				is.DrawImage(img, b.X, b.Y, b.W, b.H)
				return
			}
		}
	}
	if face == ViewBack {
		drawBack(s, ctx, accent)
	} else {
		drawFront(s, ctx, accent)
	}
}

var faceButtons = [4]struct {
	id  ControlID
	out controller.Output
}{
	{ControlTriangle, controller.OutTriangle},
	{ControlCircle, controller.OutCircle},
	{ControlCross, controller.OutCross},
	{ControlSquare, controller.OutSquare},
}

func drawFront(s Surface, ctx *Context, accent color.RGBA) {
	t := ctx.Theme
	lw := ctx.LineWidth
	l := ctx.Layout
	b := ctx.Box

	fillStadium(s, ctx.Body, t.Body)

	sc := ctx.Screen
	s.FillRect(sc.X, sc.Y, sc.W, sc.H, t.Screen)
	s.StrokeRect(sc.X, sc.Y, sc.W, sc.H, lw, t.OutlineDim)

	for _, id := range [2]ControlID{ControlL, ControlR} {
		r := ctx.Control(id).Bounds()
		fillRoundRect(s, r, r.H/3, t.Control)
		s.StrokeRect(r.X, r.Y, r.W, r.H, lw, accent)
	}

	strokeStadium(s, ctx.Body, lw, accent)

	d := ctx.Control(ControlDpad)
	aw := b.RSize(l.DpadArmWidth)
	s.FillRect(d.CX-d.Radius, d.CY-aw/2, 2*d.Radius, aw, t.Control)
	s.FillRect(d.CX-aw/2, d.CY-d.Radius, aw, 2*d.Radius, t.Control)
	s.StrokeRect(d.CX-d.Radius, d.CY-aw/2, 2*d.Radius, aw, lw, accent)
	s.StrokeRect(d.CX-aw/2, d.CY-d.Radius, aw, 2*d.Radius, lw, accent)

	for _, fb := range faceButtons {
		p := ctx.Control(fb.id)
		s.FillCircle(p.CX, p.CY, p.Radius, t.Control)
		s.StrokeCircle(p.CX, p.CY, p.Radius, lw, accent)
		drawGlyph(s, p, fb.out, lw)
	}

	inner, dot := b.RSize(l.StickInnerR), max(1, b.RSize(l.StickDotR))
	for _, id := range [2]ControlID{ControlLStick, ControlRStick} {
		p := ctx.Control(id)
		s.StrokeCircle(p.CX, p.CY, p.Radius, lw, t.OutlineDim)
		s.FillCircle(p.CX, p.CY, inner, t.Control)
		s.StrokeCircle(p.CX, p.CY, inner, lw, accent)
		s.FillCircle(p.CX, p.CY, dot, t.OutlineDim)
	}

	ps := ctx.Control(ControlPS)
	s.FillCircle(ps.CX, ps.CY, ps.Radius, t.Control)
	s.StrokeCircle(ps.CX, ps.CY, ps.Radius, lw, accent)
	for _, id := range [2]ControlID{ControlStart, ControlSelect} {
		p := ctx.Control(id)
		s.FillCircle(p.CX, p.CY, p.Radius, t.OutlineDim)
	}
}

// drawGlyph draws the face-button symbol inside p.
func drawGlyph(s Surface, p ControlPos, out controller.Output, lw int) {
	c := OutputColor(out)
	r := max(1, p.Radius/2)
	switch out {
	case controller.OutTriangle:
		top := Point{X: p.CX, Y: p.CY - r}
		left := Point{X: p.CX - r, Y: p.CY + r*2/3}
		right := Point{X: p.CX + r, Y: p.CY + r*2/3}
		s.Line(top.X, top.Y, left.X, left.Y, lw, c)
		s.Line(left.X, left.Y, right.X, right.Y, lw, c)
		s.Line(right.X, right.Y, top.X, top.Y, lw, c)
	case controller.OutCircle:
		s.StrokeCircle(p.CX, p.CY, r, lw, c)
	case controller.OutCross:
		s.Line(p.CX-r, p.CY-r, p.CX+r, p.CY+r, lw, c)
		s.Line(p.CX-r, p.CY+r, p.CX+r, p.CY-r, lw, c)
	case controller.OutSquare:
		s.StrokeRect(p.CX-r, p.CY-r, 2*r, 2*r, lw, c)
	}
}

func drawBack(s Surface, ctx *Context, accent color.RGBA) {
	t := ctx.Theme
	lw := ctx.LineWidth

	fillStadium(s, ctx.Body, t.Body)

	p := ctx.RearPad
	s.FillRect(p.X, p.Y, p.W, p.H, t.Control)
	mx, my := p.X+p.W/2, p.Y+p.H/2
	s.Line(mx, p.Y, mx, p.Y+p.H, lw, t.OutlineDim)
	s.Line(p.X, my, p.X+p.W, my, lw, t.OutlineDim)
	s.StrokeRect(p.X, p.Y, p.W, p.H, lw, accent)

	strokeStadium(s, ctx.Body, lw, accent)

	l := ctx.Layout
	b := ctx.Box
	cx, cy, r := b.RX(l.CameraCX), b.RY(l.CameraCY), max(1, b.RSize(l.CameraR))
	s.FillCircle(cx, cy, r, t.Screen)
	s.StrokeCircle(cx, cy, r, lw, t.OutlineDim)
}

func drawSummary(s Surface, ctx *Context, st *State, m MappingTable, face ViewMode, accent color.RGBA, cfg *renderConfig) {
	t := ctx.Theme
	line := WithAlpha(accent, 255*(0.8+0.2*st.Pulse()))
	for _, co := range cfg.callouts.Page(st.CalloutPage, face) {
		bg := WithAlpha(accent, 230)
		if m == nil || m.Output(co.Zone) == controller.OutNone {
			bg = WithAlpha(t.OutlineDim, 230)
		}
		text := CalloutText(co, m)
		x, y := ctx.Box.RX(co.LabelX), ctx.Box.RY(co.LabelY)
		w := s.TextWidth(FontSmall, text) + 2*pillPadding
		anchor := ctx.CalloutAnchor(co)
		arrow(s, nearestEdgePoint(Rect{X: x, Y: y, W: w, H: pillHeight}, anchor), anchor, max(1, ctx.LineWidth/2+1), line)
		pill(s, x, y, text, bg, t.PillText)
	}

	if n := cfg.callouts.PageCount(); n > 0 && st.CalloutPage >= 0 && st.CalloutPage < n {
		title := fmt.Sprintf("%d/%d %s", st.CalloutPage+1, n, cfg.callouts.Pages[st.CalloutPage].Title)
		tw := s.TextWidth(FontSmall, title)
		b := ctx.Box
		s.Text(b.X+b.W-tw-pillPadding, b.Y+b.H-FontSmall-pillPadding/2, FontSmall, title, t.OutlineDim)
	}
}

var (
	frontNamedZones = []controller.InputZone{
		controller.InFrontTouchAny,
		controller.InFrontTouchULArc,
		controller.InFrontTouchURArc,
		controller.InFrontTouchLLArc,
		controller.InFrontTouchLRArc,
		controller.InFrontTouchCenter,
	}
	backNamedZones = []controller.InputZone{
		controller.InRearTouchAny,
		controller.InRearTouchUL,
		controller.InRearTouchUR,
		controller.InRearTouchLL,
		controller.InRearTouchLR,
		controller.InRearTouchLeft,
		controller.InRearTouchRight,
		controller.InRearTouchLeftL1,
		controller.InRearTouchRightR1,
	}
)

func drawMapping(s Surface, ctx *Context, st *State, m MappingTable, face ViewMode) {
	t := ctx.Theme
	lw := ctx.LineWidth
	pulse := st.Pulse()

	grid := FrontGrid(m)
	cellRect := ctx.FrontCellRect
	zoneRect := ctx.FrontZoneRect
	zoneFor := controller.FrontGridZone
	named := frontNamedZones
	sel := &st.Front
	highlight := DrawFrontZoneHighlight
	if face == ViewBack {
		grid = BackGrid(m)
		cellRect = ctx.BackCellRect
		zoneRect = ctx.BackZoneRect
		zoneFor = controller.RearGridZone
		named = backNamedZones
		sel = &st.Back
		highlight = DrawBackZoneHighlight
	}

	if m != nil {
		for _, z := range named {
			out := m.Output(z)
			if out == controller.OutNone {
				continue
			}
			r, ok := zoneRect(z)
			if !ok {
				continue
			}
			c := OutputColor(out)
			s.FillRect(r.X, r.Y, r.W, r.H, WithAlpha(c, 40))
			s.StrokeRect(r.X, r.Y, r.W, r.H, lw, WithAlpha(c, 160))
			s.Text(r.X+3, r.Y+2, FontSmall, out.Symbol(), c)
		}
	}

	gr := GroupRegions(grid, cellRect)
	for i := range grid.Cells {
		row, col := i/grid.Cols, i%grid.Cols
		r := cellRect(row, col)
		idx := gr.RegionOf[i]
		if idx < 0 {
			dashedRect(s, r, 1, WithAlpha(t.Unmapped, 160))
			continue
		}
		c := OutputColor(gr.Regions[idx].Target)
		s.FillRect(r.X, r.Y, r.W, r.H, WithAlpha(c, 90))
		strokeEdges(s, r, gr.Edges[i], lw, WithAlpha(c, 230))
	}
	for _, reg := range gr.Regions {
		label := reg.Target.Symbol()
		tw := s.TextWidth(FontLabel, label)
		s.Text(reg.Centroid.X-tw/2, reg.Centroid.Y-FontLabel/2, FontLabel, label, t.Text)
	}

	for _, i := range sel.Indices() {
		highlight(s, ctx, zoneFor(i/grid.Cols, i%grid.Cols), pulse)
	}
	if cr := cellRect(sel.Cursor/grid.Cols, sel.Cursor%grid.Cols); !cr.Empty() {
		in := cr.Inset(lw)
		s.StrokeRect(in.X, in.Y, in.W, in.H, lw, WithAlpha(t.Highlight, 150+105*pulse))
	}
	if z := st.SelectedZone; z.Valid() && !z.IsFrontGrid() && !z.IsRearGrid() {
		highlight(s, ctx, z, pulse)
	}
}
