package diagram

import (
	"image"
	"image/color"

	"github.com/soar/mapview/internal/controller"
)

// Surface is the drawing backend. Coordinates are absolute pixels; y of Text is the top of
// the text box.
type Surface interface {
	FillRect(x, y, w, h int, c color.RGBA)
	StrokeRect(x, y, w, h, width int, c color.RGBA)
	FillCircle(cx, cy, r int, c color.RGBA)
	StrokeCircle(cx, cy, r, width int, c color.RGBA)
	Line(x0, y0, x1, y1, width int, c color.RGBA)
	TextWidth(size int, s string) int
	Text(x, y, size int, s string, c color.RGBA)
}

// ImageSurface is implemented by surfaces that can blit a texture scaled into a rect.
type ImageSurface interface {
	Surface
	DrawImage(img image.Image, x, y, w, h int)
}

// Textures supplies optional skins for each face.
type Textures interface {
	Texture(face ViewMode) (image.Image, bool)
}

// Font sizes used by the overlay.
const (
	FontLabel = 14
	FontSmall = 11
)

// Theme is the fixed colour set of the diagram.
type Theme struct {
	Background color.RGBA
	Card       color.RGBA
	Body       color.RGBA
	Screen     color.RGBA
	Control    color.RGBA
	Outline    color.RGBA
	OutlineDim color.RGBA
	Highlight  color.RGBA
	Unmapped   color.RGBA
	PillBG     color.RGBA
	PillText   color.RGBA
	Text       color.RGBA
}

// DefaultTheme is the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{0x12, 0x14, 0x1a, 0xff},
		Card:       color.RGBA{0x1e, 0x22, 0x2b, 0xff},
		Body:       color.RGBA{0x2a, 0x2e, 0x38, 0xff},
		Screen:     color.RGBA{0x10, 0x12, 0x18, 0xff},
		Control:    color.RGBA{0x3a, 0x3f, 0x4b, 0xff},
		Outline:    color.RGBA{0x34, 0x90, 0xff, 0xff},
		OutlineDim: color.RGBA{0x5a, 0x63, 0x74, 0xff},
		Highlight:  color.RGBA{0x00, 0xd4, 0xaa, 0xff},
		Unmapped:   color.RGBA{0x70, 0x76, 0x82, 0xff},
		PillBG:     color.RGBA{0x34, 0x90, 0xff, 0xe6},
		PillText:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		Text:       color.RGBA{0xe6, 0xe8, 0xee, 0xff},
	}
}

// OutputPalette is indexed by controller.Output ordinal.
var OutputPalette = [controller.OutCount]color.RGBA{
	controller.OutNone:     {0x70, 0x76, 0x82, 0xff},
	controller.OutUp:       {0xe5, 0x73, 0x73, 0xff},
	controller.OutDown:     {0xf0, 0x62, 0x92, 0xff},
	controller.OutLeft:     {0xba, 0x68, 0xc8, 0xff},
	controller.OutRight:    {0x95, 0x75, 0xcd, 0xff},
	controller.OutTriangle: {0x4d, 0xb6, 0xac, 0xff},
	controller.OutCircle:   {0xef, 0x53, 0x50, 0xff},
	controller.OutCross:    {0x64, 0xb5, 0xf6, 0xff},
	controller.OutSquare:   {0xf4, 0x8f, 0xb1, 0xff},
	controller.OutL1:       {0x81, 0xc7, 0x84, 0xff},
	controller.OutR1:       {0xae, 0xd5, 0x81, 0xff},
	controller.OutL2:       {0xff, 0xb7, 0x4d, 0xff},
	controller.OutR2:       {0xff, 0x8a, 0x65, 0xff},
	controller.OutL3:       {0x4f, 0xc3, 0xf7, 0xff},
	controller.OutR3:       {0x4d, 0xd0, 0xe1, 0xff},
	controller.OutShare:    {0xa1, 0x88, 0x7f, 0xff},
	controller.OutOptions:  {0x90, 0xa4, 0xae, 0xff},
	controller.OutTouchpad: {0xdc, 0xe7, 0x75, 0xff},
	controller.OutPS:       {0xff, 0xd5, 0x4f, 0xff},
}

// OutputColor returns the palette colour of o.
func OutputColor(o controller.Output) color.RGBA {
	if o < 0 || o >= controller.OutCount {
		return OutputPalette[controller.OutNone]
	}
	return OutputPalette[o]
}

// AccentPalette colours the outline per preset.
var AccentPalette = []color.RGBA{
	{0x34, 0x90, 0xff, 0xff},
	{0x00, 0xc8, 0x96, 0xff},
	{0xff, 0x9f, 0x1c, 0xff},
	{0xe0, 0x5a, 0xa0, 0xff},
	{0x8e, 0x7c, 0xff, 0xff},
	{0x5c, 0xc8, 0xe8, 0xff},
}

// PresetAccent picks the accent for a preset by its list position.
func PresetAccent(palette []color.RGBA, id controller.MapID) color.RGBA {
	if len(palette) == 0 {
		return DefaultTheme().Outline
	}
	return palette[controller.PresetIndex(id)%len(palette)]
}

// WithAlpha replaces the alpha of c. a is clamped to [0,255].
func WithAlpha(c color.RGBA, a float64) color.RGBA {
	switch {
	case a < 0:
		a = 0
	case a > 255:
		a = 255
	}
	c.A = uint8(a)
	return c
}

// LerpColor blends a toward b by t in [0,1].
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}
