package gamepad

import "math"

// Axis is an analog input read for navigation.
type Axis int

const (
	AxisStickX Axis = iota
	AxisStickY
	AxisLT
	AxisRT
)

// AxisMapping defines how a raw axis index maps to a navigation axis.
type AxisMapping struct {
	Index     int32
	Target    Axis
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw button index maps to a navigation button.
type ButtonMapping struct {
	Index  int32
	Target Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is within the deadzone threshold.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Built-in mappings for common controllers.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisStickX},
		{Index: 1, Target: AxisStickY, Invert: true},
		{Index: 4, Target: AxisLT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLB},
		{Index: 5, Target: ButtonRB},
		{Index: 6, Target: ButtonSelect},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonL3},
		{Index: 9, Target: ButtonR3},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisStickX},
		{Index: 1, Target: AxisStickY, Invert: true},
		{Index: 4, Target: AxisLT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},      // Cross (×)
		{Index: 1, Target: ButtonB},      // Circle (○)
		{Index: 2, Target: ButtonX},      // Square (□)
		{Index: 3, Target: ButtonY},      // Triangle (△)
		{Index: 4, Target: ButtonSelect}, // Share / Create
		{Index: 5, Target: ButtonHome},   // PS button
		{Index: 6, Target: ButtonStart},  // Options
		{Index: 7, Target: ButtonL3},
		{Index: 8, Target: ButtonR3},
		{Index: 9, Target: ButtonLB},     // L1
		{Index: 10, Target: ButtonRB},    // R1
	},
	HasHat: true,
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisStickX},
		{Index: 1, Target: AxisStickY, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLB},
		{Index: 5, Target: ButtonRB},
		{Index: 6, Target: ButtonSelect},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonL3},
		{Index: 9, Target: ButtonR3},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisStickX},
		{Index: 1, Target: AxisStickY, Invert: true},
		{Index: 4, Target: AxisLT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: AxisRT, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLB},
		{Index: 5, Target: ButtonRB},
		{Index: 6, Target: ButtonSelect},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonL3},
		{Index: 9, Target: ButtonR3},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
