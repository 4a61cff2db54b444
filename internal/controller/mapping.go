package controller

import "fmt"

// MapID identifies a controller map preset.
type MapID int

const (
	Map0   MapID = 0
	Map1   MapID = 1
	Map2   MapID = 2
	Map3   MapID = 3
	Map4   MapID = 4
	Map5   MapID = 5
	Map6   MapID = 6
	Map7   MapID = 7
	Map25  MapID = 25
	Map99  MapID = 99
	Map100 MapID = 100
	Map101 MapID = 101
	Map102 MapID = 102
	Map103 MapID = 103
	Map104 MapID = 104
	Map105 MapID = 105
	Map106 MapID = 106
	Map107 MapID = 107
	Map125 MapID = 125
	Map199 MapID = 199

	MapCustom1 MapID = 201
	MapCustom2 MapID = 202
	MapCustom3 MapID = 203
)

// CustomSlotCount is the number of user-definable preset slots.
const CustomSlotCount = 3

// Profile places the five remappable outputs on input zones. InNone leaves an output unbound.
type Profile struct {
	L3, R3, Touchpad, L2, R2 InputZone
}

// Built-in profiles. Map0 is also the fallback for unknown ids.
var profiles = map[MapID]*Profile{
	Map0:   {L3: InRearTouchLL, R3: InRearTouchLR, Touchpad: InFrontTouchAny, L2: InRearTouchUL, R2: InRearTouchUR},
	Map1:   {L3: InFrontTouchLLArc, R3: InFrontTouchLRArc, Touchpad: InFrontTouchCenter, L2: InFrontTouchULArc, R2: InFrontTouchURArc},
	Map2:   {L3: InRearTouchLeft, R3: InRearTouchRight, Touchpad: InFrontTouchCenter, L2: InFrontTouchLLArc, R2: InFrontTouchLRArc},
	Map3:   {L3: InRearTouchLeft, R3: InRearTouchRight, Touchpad: InFrontTouchCenter, L2: InFrontTouchULArc, R2: InFrontTouchURArc},
	Map4:   {Touchpad: InFrontTouchAny},
	Map5:   {},
	Map6:   {Touchpad: InFrontTouchCenter, L2: InFrontTouchLLArc, R2: InFrontTouchLRArc},
	Map7:   {Touchpad: InFrontTouchCenter, L2: InFrontTouchULArc, R2: InFrontTouchURArc},
	Map25:  {L3: InFrontTouchLLArc, R3: InFrontTouchLRArc, L2: InFrontTouchULArc, R2: InFrontTouchURArc},
	Map99:  {L3: InRearTouchLL, R3: InRearTouchLR, Touchpad: InFrontTouchAny, L2: InRearTouchUL, R2: InRearTouchUR},
	Map100: {L3: InRearTouchUL, R3: InRearTouchUR, Touchpad: InFrontTouchAny, L2: InRearTouchLL, R2: InRearTouchLR},
	Map101: {L3: InFrontTouchULArc, R3: InFrontTouchURArc, Touchpad: InFrontTouchCenter, L2: InFrontTouchLLArc, R2: InFrontTouchLRArc},
	Map102: {L3: InFrontTouchLLArc, R3: InFrontTouchLRArc, Touchpad: InFrontTouchCenter, L2: InRearTouchLeft, R2: InRearTouchRight},
	Map103: {L3: InFrontTouchULArc, R3: InFrontTouchURArc, Touchpad: InFrontTouchCenter, L2: InRearTouchLeft, R2: InRearTouchRight},
	Map104: {Touchpad: InFrontTouchAny},
	Map105: {},
	Map106: {L3: InFrontTouchLLArc, R3: InFrontTouchLRArc, Touchpad: InFrontTouchCenter},
	Map107: {L3: InFrontTouchULArc, R3: InFrontTouchURArc, Touchpad: InFrontTouchCenter},
	Map125: {L3: InFrontTouchULArc, R3: InFrontTouchURArc, L2: InFrontTouchLLArc, R2: InFrontTouchLRArc},
	Map199: {L3: InRearTouchLeftL1, R3: InRearTouchRightR1, Touchpad: InFrontTouchAny, L2: InLeftSquare, R2: InRightCircle},
}

// defaultCustomProfile is used for a custom slot that has no stored bindings.
var defaultCustomProfile = &Profile{
	L3:       InLeftSquare,
	R3:       InRightCircle,
	Touchpad: InFrontTouchAny,
	L2:       InRearTouchLeftL1,
	R2:       InRearTouchRightR1,
}

// GetProfile returns the profile for a built-in id, falling back to Map0.
func GetProfile(id MapID) *Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return profiles[Map0]
}

// Map is the input-to-output table of one preset. The zero value maps everything to OutNone.
type Map struct {
	ID      MapID
	outputs [InCount]Output
	L2      InputZone
	R2      InputZone
}

// Output returns the output bound to zone. A zone that is only referenced by the L2/R2
// slots still reports L2/R2. Out-of-range zones report OutNone.
func (m *Map) Output(zone InputZone) Output {
	if m == nil || zone < InNone || zone >= InCount {
		return OutNone
	}
	out := m.outputs[zone]
	if out == OutNone && zone != InNone {
		if m.L2 == zone {
			return OutL2
		}
		if m.R2 == zone {
			return OutR2
		}
	}
	return out
}

// Set binds zone to out. InNone and out-of-range zones are ignored.
func (m *Map) Set(zone InputZone, out Output) {
	if !zone.Valid() {
		return
	}
	m.outputs[zone] = out
}

// Clear unbinds every zone.
func (m *Map) Clear() {
	m.outputs = [InCount]Output{}
	m.L2 = InNone
	m.R2 = InNone
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	c := *m
	return &c
}

// SyncTriggers re-derives the L2/R2 zones from the explicit bindings. The first zone bound
// to each trigger wins.
func (m *Map) SyncTriggers() {
	m.L2, m.R2 = InNone, InNone
	for z := InNone + 1; z < InCount; z++ {
		switch m.outputs[z] {
		case OutL2:
			if m.L2 == InNone {
				m.L2 = z
			}
		case OutR2:
			if m.R2 == InNone {
				m.R2 = z
			}
		}
	}
}

// Storage captures the explicit bindings of m so NewMap can rebuild it as a custom slot.
func (m *Map) Storage() *Storage {
	s := &Storage{Bindings: make(map[InputZone]Output), L2: m.L2, R2: m.R2}
	for z := InNone + 1; z < InCount; z++ {
		if o := m.outputs[z]; o != OutNone {
			s.Bindings[z] = o
		}
	}
	return s
}

// Binding is one zone/output pair of a Map.
type Binding struct {
	Zone   InputZone `json:"zone"`
	Output Output    `json:"output"`
}

// Bindings lists every bound zone in zone order.
func (m *Map) Bindings() []Binding {
	var out []Binding
	for z := InNone + 1; z < InCount; z++ {
		if o := m.Output(z); o != OutNone {
			out = append(out, Binding{Zone: z, Output: o})
		}
	}
	return out
}

func (m *Map) applyCommon() {
	m.outputs[InL1] = OutL1
	m.outputs[InR1] = OutR1
	m.outputs[InSelectStart] = OutPS
}

func (m *Map) applyProfile(p *Profile) {
	if p.L3 != InNone {
		m.outputs[p.L3] = OutL3
	}
	if p.R3 != InNone {
		m.outputs[p.R3] = OutR3
	}
	if p.Touchpad != InNone {
		m.outputs[p.Touchpad] = OutTouchpad
	}
	m.L2 = p.L2
	m.R2 = p.R2
}

func (m *Map) finishL2R2() {
	if m.L2 != InNone {
		m.outputs[m.L2] = OutL2
	}
	if m.R2 != InNone {
		m.outputs[m.R2] = OutR2
	}
}

// Storage is the persisted form of a custom slot: explicit bindings plus the L2/R2 zones.
type Storage struct {
	Bindings map[InputZone]Output
	L2       InputZone
	R2       InputZone
}

// CustomSlots holds the stored custom presets; a nil entry falls back to the default
// custom profile.
type CustomSlots [CustomSlotCount]*Storage

// CustomSlot returns the slot index for a custom id.
func CustomSlot(id MapID) (int, bool) {
	switch id {
	case MapCustom1:
		return 0, true
	case MapCustom2:
		return 1, true
	case MapCustom3:
		return 2, true
	}
	return 0, false
}

// NewMap builds the table for id. Custom ids read from slots.
func NewMap(id MapID, slots *CustomSlots) *Map {
	m := &Map{ID: id, L2: InNone, R2: InNone}
	m.applyCommon()

	if slot, ok := CustomSlot(id); ok {
		if slots != nil && slots[slot] != nil {
			m.applyStorage(slots[slot])
		} else {
			m.applyProfile(defaultCustomProfile)
			m.finishL2R2()
		}
		return m
	}

	m.applyProfile(GetProfile(id))
	m.finishL2R2()
	return m
}

func (m *Map) applyStorage(s *Storage) {
	for zone, out := range s.Bindings {
		m.Set(zone, out)
	}
	m.L2 = s.L2
	m.R2 = s.R2
	m.finishL2R2()
}

// ParseStorage builds a Storage from zone-name -> output-name pairs as found in config.
func ParseStorage(bindings map[string]string, l2, r2 string) (*Storage, error) {
	s := &Storage{Bindings: make(map[InputZone]Output, len(bindings)), L2: InNone, R2: InNone}
	for zoneName, outName := range bindings {
		zone, err := ParseInputZone(zoneName)
		if err != nil {
			return nil, fmt.Errorf("custom map: %w", err)
		}
		out, err := ParseOutput(outName)
		if err != nil {
			return nil, fmt.Errorf("custom map %s: %w", zoneName, err)
		}
		s.Bindings[zone] = out
	}
	var err error
	if l2 != "" {
		if s.L2, err = ParseInputZone(l2); err != nil {
			return nil, fmt.Errorf("custom map l2: %w", err)
		}
	}
	if r2 != "" {
		if s.R2, err = ParseInputZone(r2); err != nil {
			return nil, fmt.Errorf("custom map r2: %w", err)
		}
	}
	return s, nil
}

// Preset is a selectable entry in the preset list.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ID          MapID  `json:"id"`
}

var presets = []Preset{
	{"Default", "Rear touch upper L2/R2, lower L3/R3", Map0},
	{"Front Arcs", "Front touch corners for L2/R2/L3/R3", Map1},
	{"Rear Edges", "Rear edges L3/R3, lower front corners L2/R2", Map2},
	{"Rear Edges Alt", "Rear edges L3/R3, upper front corners L2/R2", Map3},
	{"Touchpad Only", "Front touch as touchpad, nothing else", Map4},
	{"Bare", "Only shoulders and PS", Map5},
	{"Lower Triggers", "Front centre touchpad, lower front corners L2/R2", Map6},
	{"Upper Triggers", "Front centre touchpad, upper front corners L2/R2", Map7},
	{"Front Corners", "Upper front corners L2/R2, lower L3/R3, no touchpad", Map25},
	{"Classic", "Same layout as Default", Map99},
	{"Rear Swap", "Rear touch upper L3/R3, lower L2/R2", Map100},
	{"Front Swap", "Upper front corners L3/R3, lower L2/R2", Map101},
	{"Rear Triggers", "Rear edges L2/R2, lower front corners L3/R3", Map102},
	{"Rear Triggers Alt", "Rear edges L2/R2, upper front corners L3/R3", Map103},
	{"Touchpad Only Alt", "Front touch as touchpad, nothing else", Map104},
	{"Bare Alt", "Only shoulders and PS", Map105},
	{"Lower Sticks", "Front centre touchpad, lower front corners L3/R3", Map106},
	{"Upper Sticks", "Front centre touchpad, upper front corners L3/R3", Map107},
	{"Front Corners Swap", "Upper front corners L3/R3, lower L2/R2, no touchpad", Map125},
	{"Chords", "D-pad chords for L2/R2, rear strips for L3/R3", Map199},
	{"Custom 1", "Your first custom mapping", MapCustom1},
	{"Custom 2", "Your second custom mapping", MapCustom2},
	{"Custom 3", "Your third custom mapping", MapCustom3},
}

// Presets returns the ordered preset list.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// IsPreset reports whether id names a built-in profile or a custom slot.
func IsPreset(id MapID) bool {
	if _, ok := CustomSlot(id); ok {
		return true
	}
	_, ok := profiles[id]
	return ok
}

// PresetIndex returns the index of id in Presets, or 0 when it is not listed.
func PresetIndex(id MapID) int {
	for i, p := range presets {
		if p.ID == id {
			return i
		}
	}
	return 0
}
