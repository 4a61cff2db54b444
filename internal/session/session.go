// Package session owns the live diagram state shared by every front end.
package session

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/rasterdraw"
	"github.com/soar/mapview/internal/svgdraw"
)

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	Width, Height int
	Preset        controller.MapID
	View          diagram.ViewMode
	Detail        diagram.DetailMode
	Page          int
	Slots         *controller.CustomSlots
	Layout        *diagram.Layout
	Textures      diagram.Textures
	Clock         diagram.Clock
}

// Session serialises access to one diagram.State and the active map. Websocket clients,
// the tray, the gamepad reader and the frame ticker all go through it.
type Session struct {
	mu sync.Mutex

	clock    diagram.Clock
	state    *diagram.State
	current  *controller.Map
	slots    *controller.CustomSlots
	presets  []controller.Preset
	preset   int
	callouts *diagram.Callouts
	layout   *diagram.Layout
	render   []diagram.RenderOption

	width, height int

	changes  chan struct{}
	minifier *svgdraw.Minifier
}

// New builds a session at the configured preset, view and detail mode.
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = diagram.MonotonicClock{}
	}
	if opts.Width <= 0 {
		opts.Width = 720
	}
	if opts.Height <= 0 {
		opts.Height = 330
	}
	callouts := diagram.DefaultCallouts()

	// Assignments edit the session's own copy of the slots.
	var slots controller.CustomSlots
	if opts.Slots != nil {
		slots = *opts.Slots
	}

	s := &Session{
		clock:    opts.Clock,
		slots:    &slots,
		presets:  controller.Presets(),
		callouts: callouts,
		layout:   opts.Layout,
		width:    opts.Width,
		height:   opts.Height,
		changes:  make(chan struct{}, 1),
		minifier: svgdraw.NewMinifier(),
	}
	s.render = []diagram.RenderOption{
		diagram.WithLayout(opts.Layout),
		diagram.WithCallouts(callouts),
	}
	if opts.Textures != nil {
		s.render = append(s.render, diagram.WithTextures(opts.Textures))
	}

	now := s.clock.NowMicros()
	s.state = diagram.NewState(now)
	s.preset = controller.PresetIndex(opts.Preset)
	s.state.Preset = s.presets[s.preset].ID
	s.state.PrevPreset = s.state.Preset
	s.current = controller.NewMap(s.state.Preset, s.slots)
	s.state.View = opts.View
	s.state.Detail = opts.Detail
	if opts.Page > 0 && opts.Page < callouts.PageCount() {
		s.state.CalloutPage = opts.Page
	}
	return s
}

// Changes delivers a signal after every state-changing command. Signals coalesce.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Size returns the frame size in pixels.
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// Map returns the active map. Maps are replaced, never mutated, so the pointer may be
// kept and compared.
func (s *Session) Map() *controller.Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Presets returns the selectable presets.
func (s *Session) Presets() []controller.Preset {
	return controller.Presets()
}

// Snapshot is the serialisable view of the session state.
type Snapshot struct {
	Preset       controller.MapID     `json:"preset"`
	PresetName   string               `json:"presetName"`
	View         diagram.ViewMode     `json:"view"`
	Detail       diagram.DetailMode   `json:"detail"`
	Page         int                  `json:"page"`
	PageCount    int                  `json:"pageCount"`
	PageTitle    string               `json:"pageTitle"`
	SelectedZone controller.InputZone `json:"selectedZone"`
	Editable     bool                 `json:"editable"`
	Selection    []int                `json:"selection,omitempty"`
	Cursor       int                  `json:"cursor"`
	Animating    bool                 `json:"animating"`
	Bindings     []controller.Binding `json:"bindings,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Update(s.clock.NowMicros())

	st := s.state
	snap := Snapshot{
		Preset:       st.Preset,
		PresetName:   s.presets[s.preset].Name,
		View:         st.View,
		Detail:       st.Detail,
		Page:         st.CalloutPage,
		PageCount:    s.callouts.PageCount(),
		SelectedZone: st.SelectedZone,
		Editable:     isCustom(st.Preset),
		Animating:    st.Flip.Active || st.Tween.Active,
		Bindings:     s.current.Bindings(),
	}
	if st.CalloutPage < len(s.callouts.Pages) {
		snap.PageTitle = s.callouts.Pages[st.CalloutPage].Title
	}
	if sel := st.Selection(); sel != nil {
		snap.Selection = sel.Indices()
		snap.Cursor = sel.Cursor
	}
	return snap
}

func isCustom(id controller.MapID) bool {
	_, ok := controller.CustomSlot(id)
	return ok
}

// Draw renders the current frame onto surf inside box.
func (s *Session) Draw(surf diagram.Surface, box diagram.Box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Update(s.clock.NowMicros())
	diagram.Render(surf, s.state, s.current, box, s.render...)
}

// FrameSVG renders the current frame as a minified SVG document.
func (s *Session) FrameSVG() ([]byte, error) {
	surf := svgdraw.New(s.width, s.height)
	s.Draw(surf, diagram.NewBox(0, 0, s.width, s.height))
	return s.minifier.Minify(surf.Bytes())
}

// FrameImage renders the current frame as a PNG or WebP image.
func (s *Session) FrameImage(f rasterdraw.Format) ([]byte, error) {
	surf, err := rasterdraw.New(s.width, s.height, rasterdraw.DefaultSupersample)
	if err != nil {
		return nil, err
	}
	defer surf.Close()
	s.Draw(surf, diagram.NewBox(0, 0, s.width, s.height))

	var buf bytes.Buffer
	if err := rasterdraw.Encode(&buf, surf.Image(), f); err != nil {
		return nil, fmt.Errorf("session: frame: %w", err)
	}
	return buf.Bytes(), nil
}

// CellAt maps a point of a frame drawn into box to the grid cell under it, when a mapping
// overlay for the shown face is active.
func (s *Session) CellAt(box diagram.Box, p diagram.Point) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Update(s.clock.NowMicros())

	ctx := diagram.NewContext(box.Scaled(st.FlipScale()), s.layout)
	switch {
	case st.Detail == diagram.DetailFrontMapping && st.View == diagram.ViewFront:
		if row, col, ok := ctx.FrontCellAt(p); ok {
			return row*controller.FrontGridCols + col, true
		}
	case st.Detail == diagram.DetailBackMapping && st.View == diagram.ViewBack:
		if row, col, ok := ctx.BackCellAt(p); ok {
			return row*controller.RearGridCols + col, true
		}
	}
	return 0, false
}
