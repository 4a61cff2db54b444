package controller

import (
	"fmt"
	"strings"
)

// Output is a logical action on the emulated console pad. The order is stable and is
// used for colour assignment.
type Output int

const (
	OutNone Output = iota
	OutUp
	OutDown
	OutLeft
	OutRight
	OutTriangle
	OutCircle
	OutCross
	OutSquare
	OutL1
	OutR1
	OutL2
	OutR2
	OutL3
	OutR3
	OutShare
	OutOptions
	OutTouchpad
	OutPS
	OutCount
)

var outputNames = [OutCount]string{
	OutNone:     "None",
	OutUp:       "D-Pad Up",
	OutDown:     "D-Pad Down",
	OutLeft:     "D-Pad Left",
	OutRight:    "D-Pad Right",
	OutTriangle: "Triangle",
	OutCircle:   "Circle",
	OutCross:    "Cross",
	OutSquare:   "Square",
	OutL1:       "L1",
	OutR1:       "R1",
	OutL2:       "L2",
	OutR2:       "R2",
	OutL3:       "L3",
	OutR3:       "R3",
	OutShare:    "Share",
	OutOptions:  "Options",
	OutTouchpad: "Touchpad",
	OutPS:       "PS",
}

// Name returns the display name of the output.
func (o Output) Name() string {
	if o < OutNone || o >= OutCount {
		return outputNames[OutNone]
	}
	return outputNames[o]
}

// Symbol returns the short label used inside the diagram; face buttons use their glyph.
func (o Output) Symbol() string {
	switch o {
	case OutTriangle:
		return "△"
	case OutCircle:
		return "○"
	case OutCross:
		return "✕"
	case OutSquare:
		return "□"
	}
	return o.Name()
}

func (o Output) String() string {
	return o.Name()
}

// ParseOutput accepts either the display name or the lower-case key ("l2", "touchpad", "dpad_up").
func ParseOutput(s string) (Output, error) {
	key := outputKey(s)
	for o := OutNone; o < OutCount; o++ {
		if key == outputKey(outputNames[o]) {
			return o, nil
		}
	}
	switch key {
	case "up":
		return OutUp, nil
	case "down":
		return OutDown, nil
	case "left":
		return OutLeft, nil
	case "right":
		return OutRight, nil
	}
	return OutNone, fmt.Errorf("unknown output %q", s)
}

var keyStripper = strings.NewReplacer("-", "", "_", "", " ", "")

func outputKey(s string) string {
	return keyStripper.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func (o Output) MarshalText() ([]byte, error) {
	return []byte(o.Name()), nil
}
