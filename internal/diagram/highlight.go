package diagram

import "github.com/soar/mapview/internal/controller"

// DrawControlHighlight draws a pulsing glow around control id. pulse is State.Pulse, a
// sine in [-1,1]; passing PulsePhase would only ever brighten the glow.
// Invalid ids and degenerate contexts draw nothing.
func DrawControlHighlight(s Surface, ctx *Context, id ControlID, pulse float64) {
	if s == nil || ctx == nil || ctx.Degenerate() || !id.Valid() {
		return
	}
	p := ctx.Control(id)
	lw := ctx.LineWidth
	glow := WithAlpha(ctx.Theme.Highlight, 200+55*pulse)
	ring := WithAlpha(ctx.Theme.Highlight, 100)
	if p.Circular {
		s.StrokeCircle(p.CX, p.CY, p.Radius+lw, 2*lw, glow)
		s.StrokeCircle(p.CX, p.CY, p.Radius+4*lw, lw, ring)
		return
	}
	b := p.Bounds()
	inner := b.Inset(-lw)
	outer := b.Inset(-4 * lw)
	s.StrokeRect(inner.X, inner.Y, inner.W, inner.H, 2*lw, glow)
	s.StrokeRect(outer.X, outer.Y, outer.W, outer.H, lw, ring)
}

// DrawFrontZoneHighlight glows a front touch zone. Rear or unknown zones draw nothing. pulse
// takes the same [-1,1] value as DrawControlHighlight.
func DrawFrontZoneHighlight(s Surface, ctx *Context, zone controller.InputZone, pulse float64) {
	if s == nil || ctx == nil {
		return
	}
	if r, ok := ctx.FrontZoneRect(zone); ok {
		drawZoneGlow(s, ctx, r, pulse)
	}
}

// DrawBackZoneHighlight glows a rear touch zone. Front or unknown zones draw nothing.
func DrawBackZoneHighlight(s Surface, ctx *Context, zone controller.InputZone, pulse float64) {
	if s == nil || ctx == nil {
		return
	}
	if r, ok := ctx.BackZoneRect(zone); ok {
		drawZoneGlow(s, ctx, r, pulse)
	}
}

// DrawRearQuadrantHighlight glows rear quadrant index (0 UL, 1 UR, 2 LL, 3 LR).
func DrawRearQuadrantHighlight(s Surface, ctx *Context, index int, pulse float64) {
	if index < 0 || index > 3 {
		return
	}
	DrawBackZoneHighlight(s, ctx, controller.InRearTouchUL+controller.InputZone(index), pulse)
}

func drawZoneGlow(s Surface, ctx *Context, r Rect, pulse float64) {
	lw := ctx.LineWidth
	h := ctx.Theme.Highlight
	s.FillRect(r.X, r.Y, r.W, r.H, WithAlpha(h, 48))
	s.StrokeRect(r.X, r.Y, r.W, r.H, 2*lw, WithAlpha(h, 150+105*pulse))
	o := r.Inset(-2 * lw)
	s.StrokeRect(o.X, o.Y, o.W, o.H, lw, WithAlpha(h, 100))
}
