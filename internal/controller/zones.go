package controller

import (
	"fmt"
	"strings"
)

// Touch grid dimensions. Both surfaces use the same subdivision.
const (
	FrontGridRows  = 3
	FrontGridCols  = 6
	FrontGridCount = FrontGridRows * FrontGridCols

	RearGridRows  = 3
	RearGridCols  = 6
	RearGridCount = RearGridRows * RearGridCols
)

// InputZone identifies an addressable physical input that can be bound to an Output.
type InputZone int

const (
	InNone InputZone = iota
	InL1
	InR1
	InSelectStart
	InLeftSquare  // D-pad left + Square chord
	InRightCircle // D-pad right + Circle chord
	InFrontTouchULArc
	InFrontTouchURArc
	InFrontTouchLLArc
	InFrontTouchLRArc
	InFrontTouchCenter
	InFrontTouchAny
	InRearTouchUL
	InRearTouchUR
	InRearTouchLL
	InRearTouchLR
	InRearTouchLeft
	InRearTouchRight
	InRearTouchLeftL1
	InRearTouchRightR1
	InRearTouchAny
	InFrontGridStart
)

const (
	InRearGridStart = InFrontGridStart + FrontGridCount
	InCount         = InRearGridStart + RearGridCount
)

// TouchSurface tells which touch panel a zone lives on.
type TouchSurface int

const (
	SurfaceNone TouchSurface = iota
	SurfaceFront
	SurfaceRear
)

var zoneNames = map[InputZone]string{
	InNone:             "none",
	InL1:               "l1",
	InR1:               "r1",
	InSelectStart:      "select_start",
	InLeftSquare:       "left_square",
	InRightCircle:      "right_circle",
	InFrontTouchULArc:  "front_ul_arc",
	InFrontTouchURArc:  "front_ur_arc",
	InFrontTouchLLArc:  "front_ll_arc",
	InFrontTouchLRArc:  "front_lr_arc",
	InFrontTouchCenter: "front_center",
	InFrontTouchAny:    "front_any",
	InRearTouchUL:      "rear_ul",
	InRearTouchUR:      "rear_ur",
	InRearTouchLL:      "rear_ll",
	InRearTouchLR:      "rear_lr",
	InRearTouchLeft:    "rear_left",
	InRearTouchRight:   "rear_right",
	InRearTouchLeftL1:  "rear_left_l1",
	InRearTouchRightR1: "rear_right_r1",
	InRearTouchAny:     "rear_any",
}

// Valid reports whether z is a defined zone other than InNone.
func (z InputZone) Valid() bool {
	return z > InNone && z < InCount
}

// Surface returns the touch panel z belongs to, or SurfaceNone for buttons.
func (z InputZone) Surface() TouchSurface {
	switch {
	case z >= InFrontTouchULArc && z <= InFrontTouchAny:
		return SurfaceFront
	case z >= InRearTouchUL && z <= InRearTouchAny:
		return SurfaceRear
	case z.IsFrontGrid():
		return SurfaceFront
	case z.IsRearGrid():
		return SurfaceRear
	}
	return SurfaceNone
}

func (z InputZone) IsFrontGrid() bool {
	return z >= InFrontGridStart && z < InRearGridStart
}

func (z InputZone) IsRearGrid() bool {
	return z >= InRearGridStart && z < InCount
}

// FrontGridZone returns the zone for a front grid cell. Out-of-range cells map to InNone.
func FrontGridZone(row, col int) InputZone {
	if row < 0 || row >= FrontGridRows || col < 0 || col >= FrontGridCols {
		return InNone
	}
	return InFrontGridStart + InputZone(row*FrontGridCols+col)
}

// RearGridZone returns the zone for a rear grid cell. Out-of-range cells map to InNone.
func RearGridZone(row, col int) InputZone {
	if row < 0 || row >= RearGridRows || col < 0 || col >= RearGridCols {
		return InNone
	}
	return InRearGridStart + InputZone(row*RearGridCols+col)
}

// GridCell returns the row and column of a grid zone. ok is false for non-grid zones.
func (z InputZone) GridCell() (row, col int, ok bool) {
	switch {
	case z.IsFrontGrid():
		i := int(z - InFrontGridStart)
		return i / FrontGridCols, i % FrontGridCols, true
	case z.IsRearGrid():
		i := int(z - InRearGridStart)
		return i / RearGridCols, i % RearGridCols, true
	}
	return 0, 0, false
}

func (z InputZone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	if row, col, ok := z.GridCell(); ok {
		if z.IsFrontGrid() {
			return fmt.Sprintf("front_grid_r%dc%d", row, col)
		}
		return fmt.Sprintf("rear_grid_r%dc%d", row, col)
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Label is the human readable slot name shown in the UI ("Front A1", "Rear C2").
func (z InputZone) Label() string {
	if row, col, ok := z.GridCell(); ok {
		side := "Front"
		if z.IsRearGrid() {
			side = "Rear"
		}
		return fmt.Sprintf("%s %c%d", side, 'A'+col, row+1)
	}
	switch z {
	case InL1:
		return "Left Shoulder (L1)"
	case InR1:
		return "Right Shoulder (R1)"
	case InSelectStart:
		return "Select + Start"
	case InLeftSquare:
		return "Left + Square"
	case InRightCircle:
		return "Right + Circle"
	case InFrontTouchULArc:
		return "Front Upper Left"
	case InFrontTouchURArc:
		return "Front Upper Right"
	case InFrontTouchLLArc:
		return "Front Lower Left"
	case InFrontTouchLRArc:
		return "Front Lower Right"
	case InFrontTouchCenter:
		return "Front Center"
	case InFrontTouchAny:
		return "Full Front Touch"
	case InRearTouchUL:
		return "Rear Upper Left"
	case InRearTouchUR:
		return "Rear Upper Right"
	case InRearTouchLL:
		return "Rear Lower Left"
	case InRearTouchLR:
		return "Rear Lower Right"
	case InRearTouchLeft:
		return "Rear Left Edge"
	case InRearTouchRight:
		return "Rear Right Edge"
	case InRearTouchLeftL1:
		return "Rear Left (L1 side)"
	case InRearTouchRightR1:
		return "Rear Right (R1 side)"
	case InRearTouchAny:
		return "Full Rear Touch"
	}
	return "None"
}

// ParseInputZone resolves a name produced by String.
func ParseInputZone(s string) (InputZone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for z, name := range zoneNames {
		if name == s {
			return z, nil
		}
	}
	var row, col int
	if _, err := fmt.Sscanf(s, "front_grid_r%dc%d", &row, &col); err == nil {
		if z := FrontGridZone(row, col); z != InNone {
			return z, nil
		}
	}
	if _, err := fmt.Sscanf(s, "rear_grid_r%dc%d", &row, &col); err == nil {
		if z := RearGridZone(row, col); z != InNone {
			return z, nil
		}
	}
	return InNone, fmt.Errorf("unknown input zone %q", s)
}

func (z InputZone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}
