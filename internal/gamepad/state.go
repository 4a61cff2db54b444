package gamepad

import "math"

// Button is a digital input used for navigation. Stick directions and triggers are
// digitised into buttons too.
type Button uint32

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonSelect
	ButtonStart
	ButtonHome
	ButtonL3
	ButtonR3
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonLT
	ButtonRT
)

var buttonNames = map[Button]string{
	ButtonA:      "a",
	ButtonB:      "b",
	ButtonX:      "x",
	ButtonY:      "y",
	ButtonLB:     "lb",
	ButtonRB:     "rb",
	ButtonSelect: "select",
	ButtonStart:  "start",
	ButtonHome:   "home",
	ButtonL3:     "l3",
	ButtonR3:     "r3",
	ButtonUp:     "up",
	ButtonDown:   "down",
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonLT:     "lt",
	ButtonRT:     "rt",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "unknown"
}

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PadState is one polled sample of the active joystick.
type PadState struct {
	Buttons Button // held buttons, hat included
	Stick   Vector // left stick, y up
	LT, RT  float64
}

// Thresholds for digitising analog inputs. A direction turns on above the on threshold
// and off below the off threshold.
const (
	stickOn    = 0.6
	stickOff   = 0.4
	triggerOn  = 0.5
	triggerOff = 0.3
)

func hysteresis(held bool, v, on, off float64) bool {
	if held {
		return v >= off
	}
	return v >= on
}

// Digital returns the held buttons of s with stick directions and triggers digitised.
// prev supplies the previous digital state for hysteresis.
func (s PadState) Digital(prev Button) Button {
	b := s.Buttons
	axes := []struct {
		btn Button
		v   float64
		on  float64
		off float64
	}{
		{ButtonUp, s.Stick.Y, stickOn, stickOff},
		{ButtonDown, -s.Stick.Y, stickOn, stickOff},
		{ButtonRight, s.Stick.X, stickOn, stickOff},
		{ButtonLeft, -s.Stick.X, stickOn, stickOff},
		{ButtonLT, s.LT, triggerOn, triggerOff},
		{ButtonRT, s.RT, triggerOn, triggerOff},
	}
	for _, a := range axes {
		if hysteresis(prev&a.btn != 0, a.v, a.on, a.off) {
			b |= a.btn
		}
	}
	return b
}

// Pressed returns the buttons held in cur but not in prev.
func Pressed(prev, cur Button) Button {
	return cur &^ prev
}

// Each calls fn for every button set in b, lowest bit first.
func (b Button) Each(fn func(Button)) {
	for b != 0 {
		low := b & -b
		fn(low)
		b &^= low
	}
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// Changed reports whether two samples differ beyond analog noise.
func Changed(old, new_ PadState) bool {
	return old.Buttons != new_.Buttons ||
		!floatEqual(old.Stick.X, new_.Stick.X) ||
		!floatEqual(old.Stick.Y, new_.Stick.Y) ||
		!floatEqual(old.LT, new_.LT) ||
		!floatEqual(old.RT, new_.RT)
}
