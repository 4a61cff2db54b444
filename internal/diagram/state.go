package diagram

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/soar/mapview/internal/controller"
)

// ViewMode selects which face of the controller is shown.
type ViewMode int

const (
	ViewFront ViewMode = iota
	ViewBack
	ViewBoth
)

var viewNames = []string{"front", "back", "both"}

func (v ViewMode) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "front"
	}
	return viewNames[v]
}

func (v ViewMode) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func ParseViewMode(s string) (ViewMode, error) {
	for i, name := range viewNames {
		if strings.EqualFold(s, name) {
			return ViewMode(i), nil
		}
	}
	return ViewFront, fmt.Errorf("unknown view %q", s)
}

// DetailMode selects the overlay drawn on top of the base diagram.
type DetailMode int

const (
	DetailSummary DetailMode = iota
	DetailFrontMapping
	DetailBackMapping
)

var detailNames = []string{"summary", "front", "back"}

func (d DetailMode) String() string {
	if d < 0 || int(d) >= len(detailNames) {
		return "summary"
	}
	return detailNames[d]
}

func (d DetailMode) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Next cycles Summary -> FrontMapping -> BackMapping -> Summary.
func (d DetailMode) Next() DetailMode {
	return (d + 1) % DetailMode(len(detailNames))
}

func ParseDetailMode(s string) (DetailMode, error) {
	for i, name := range detailNames {
		if strings.EqualFold(s, name) {
			return DetailMode(i), nil
		}
	}
	return DetailSummary, fmt.Errorf("unknown detail mode %q", s)
}

// State is the view/animation state of one diagram. It is not safe for concurrent use.
type State struct {
	View        ViewMode
	Detail      DetailMode
	Preset      controller.MapID
	PrevPreset  controller.MapID
	CalloutPage int

	SelectedControl ControlID
	SelectedZone    controller.InputZone

	Front Selection
	Back  Selection

	Flip       Anim
	Tween      Anim
	PulseStart uint64

	now   uint64
	flipT float64
	tween float64
	phase float64

	// accents is the palette of the last AccentColor call. tweenFrom holds the accent
	// shown when a preset change interrupted a running tween.
	accents   []color.RGBA
	tweenFrom color.RGBA
	fromSet   bool
}

// NewState returns a front/summary state whose pulse starts at now.
func NewState(now uint64) *State {
	return &State{
		SelectedControl: ControlNone,
		Front:           newSelection(controller.FrontGridRows, controller.FrontGridCols),
		Back:            newSelection(controller.RearGridRows, controller.RearGridCols),
		Flip:            Anim{Duration: FlipDuration},
		Tween:           Anim{Duration: TweenDuration},
		PulseStart:      now,
		now:             now,
		flipT:           1,
		tween:           1,
	}
}

// Update advances every animation to now.
func (s *State) Update(now uint64) {
	s.now = now
	s.flipT = s.Flip.Progress(now)
	s.tween = s.Tween.Progress(now)
	s.phase = pulsePhase(now, s.PulseStart)
}

// Now returns the timestamp of the last Update.
func (s *State) Now() uint64 {
	return s.now
}

// SetPreset switches the active preset and restarts the colour tween. Selecting the
// current preset is a no-op and reports false.
func (s *State) SetPreset(id controller.MapID, now uint64) bool {
	if id == s.Preset {
		return false
	}
	if s.Tween.Active && s.accents != nil {
		s.tween = s.Tween.Progress(now)
		s.tweenFrom = s.blend(s.accents)
		s.fromSet = true
	} else {
		s.fromSet = false
	}
	s.PrevPreset = s.Preset
	s.Preset = id
	s.Tween.Begin(now)
	s.tween = 0
	return true
}

// StartFlip restarts the flip animation.
func (s *State) StartFlip(now uint64) {
	s.Flip.Begin(now)
	s.flipT = 0
}

// SetView changes the shown face and flips when it actually changes.
func (s *State) SetView(v ViewMode, now uint64) bool {
	if v == s.View {
		return false
	}
	s.View = v
	s.StartFlip(now)
	return true
}

// SetDetail changes the overlay. The face is left alone.
func (s *State) SetDetail(d DetailMode) {
	s.Detail = d
}

// SelectZone highlights zone and the control that draws it, if any.
func (s *State) SelectZone(zone controller.InputZone) {
	s.SelectedZone = zone
	if id, ok := ZoneControl(zone); ok {
		s.SelectedControl = id
	} else {
		s.SelectedControl = ControlNone
	}
}

// Selection returns the grid selection of the mapping overlay currently shown, or nil
// in summary mode.
func (s *State) Selection() *Selection {
	switch s.Detail {
	case DetailFrontMapping:
		return &s.Front
	case DetailBackMapping:
		return &s.Back
	}
	return nil
}

// FlipScale is the scale applied to the diagram during a flip; 1 when idle.
func (s *State) FlipScale() float64 {
	if !s.Flip.Active {
		return 1
	}
	return flipScale(s.flipT)
}

// PulsePhase is the pulse position in [0,1).
func (s *State) PulsePhase() float64 {
	return s.phase
}

// Pulse is sin(2π·phase).
func (s *State) Pulse() float64 {
	return pulseWave(s.phase)
}

// TweenProgress is the colour tween progress; 1 when idle.
func (s *State) TweenProgress() float64 {
	return s.tween
}

// AccentColor interpolates the accent of the previous preset toward the current one. A
// tween restarted mid-way starts from the colour that was on screen.
func (s *State) AccentColor(palette []color.RGBA) color.RGBA {
	s.accents = palette
	return s.blend(palette)
}

func (s *State) blend(palette []color.RGBA) color.RGBA {
	to := PresetAccent(palette, s.Preset)
	if !s.Tween.Active {
		return to
	}
	from := PresetAccent(palette, s.PrevPreset)
	if s.fromSet {
		from = s.tweenFrom
	}
	return LerpColor(from, to, s.tween)
}
