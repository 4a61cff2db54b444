package diagram

// Layout is the ratio table the diagram is drawn from. Every value is a fraction of the box
// width (X, W, radii) or height (Y, H). The table is read-only once handed to a Context.
type Layout struct {
	BodyX float64 `mapstructure:"body_x"`
	BodyY float64 `mapstructure:"body_y"`
	BodyW float64 `mapstructure:"body_w"`
	BodyH float64 `mapstructure:"body_h"`

	ScreenX float64 `mapstructure:"screen_x"`
	ScreenY float64 `mapstructure:"screen_y"`
	ScreenW float64 `mapstructure:"screen_w"`
	ScreenH float64 `mapstructure:"screen_h"`

	DpadCX        float64 `mapstructure:"dpad_cx"`
	DpadCY        float64 `mapstructure:"dpad_cy"`
	DpadArmLength float64 `mapstructure:"dpad_arm_length"`
	DpadArmWidth  float64 `mapstructure:"dpad_arm_width"`

	FaceRadius float64 `mapstructure:"face_radius"`
	TriangleCX float64 `mapstructure:"triangle_cx"`
	TriangleCY float64 `mapstructure:"triangle_cy"`
	CircleCX   float64 `mapstructure:"circle_cx"`
	CircleCY   float64 `mapstructure:"circle_cy"`
	CrossCX    float64 `mapstructure:"cross_cx"`
	CrossCY    float64 `mapstructure:"cross_cy"`
	SquareCX   float64 `mapstructure:"square_cx"`
	SquareCY   float64 `mapstructure:"square_cy"`

	StickOuterR float64 `mapstructure:"stick_outer_r"`
	StickInnerR float64 `mapstructure:"stick_inner_r"`
	StickDotR   float64 `mapstructure:"stick_dot_r"`
	LStickCX    float64 `mapstructure:"lstick_cx"`
	LStickCY    float64 `mapstructure:"lstick_cy"`
	RStickCX    float64 `mapstructure:"rstick_cx"`
	RStickCY    float64 `mapstructure:"rstick_cy"`

	ShoulderW  float64 `mapstructure:"shoulder_w"`
	ShoulderH  float64 `mapstructure:"shoulder_h"`
	LShoulderX float64 `mapstructure:"lshoulder_x"`
	LShoulderY float64 `mapstructure:"lshoulder_y"`
	RShoulderX float64 `mapstructure:"rshoulder_x"`
	RShoulderY float64 `mapstructure:"rshoulder_y"`

	PSCX     float64 `mapstructure:"ps_cx"`
	PSCY     float64 `mapstructure:"ps_cy"`
	PSR      float64 `mapstructure:"ps_r"`
	SystemR  float64 `mapstructure:"system_r"`
	StartCX  float64 `mapstructure:"start_cx"`
	StartCY  float64 `mapstructure:"start_cy"`
	SelectCX float64 `mapstructure:"select_cx"`
	SelectCY float64 `mapstructure:"select_cy"`

	RearPadX float64 `mapstructure:"rear_pad_x"`
	RearPadY float64 `mapstructure:"rear_pad_y"`
	RearPadW float64 `mapstructure:"rear_pad_w"`
	RearPadH float64 `mapstructure:"rear_pad_h"`

	// Rear quadrant marker centres, in UL, UR, LL, LR order.
	RearZoneCX [4]float64 `mapstructure:"rear_zone_cx"`
	RearZoneCY [4]float64 `mapstructure:"rear_zone_cy"`
	RearZoneR  float64    `mapstructure:"rear_zone_r"`

	CameraCX float64 `mapstructure:"camera_cx"`
	CameraCY float64 `mapstructure:"camera_cy"`
	CameraR  float64 `mapstructure:"camera_r"`

	OutlineWidth float64 `mapstructure:"outline_width"`

	// RearEdgeStrip is the width of the rear edge zones as a fraction of the pad width.
	RearEdgeStrip float64 `mapstructure:"rear_edge_strip"`
	// FrontCenter is the side of the front centre zone as a fraction of the screen.
	FrontCenter float64 `mapstructure:"front_center"`
	// BothScale is the per-face scale used when both faces are shown stacked.
	BothScale float64 `mapstructure:"both_scale"`
}

// DefaultLayout returns the compiled-in ratio table.
//
// ScreenW carries a small compensation over the nominal 0.6 so the truncated screen edge
// lines up with the body inset at the default 720px width.
func DefaultLayout() *Layout {
	return &Layout{
		BodyX: 0.02, BodyY: 0.10, BodyW: 0.96, BodyH: 0.80,

		ScreenX: 0.20, ScreenY: 0.16, ScreenW: 0.602, ScreenH: 0.68,

		DpadCX: 0.11, DpadCY: 0.40, DpadArmLength: 0.035, DpadArmWidth: 0.022,

		FaceRadius: 0.018,
		TriangleCX: 0.89, TriangleCY: 0.30,
		CircleCX: 0.935, CircleCY: 0.40,
		CrossCX: 0.89, CrossCY: 0.50,
		SquareCX: 0.845, SquareCY: 0.40,

		StickOuterR: 0.028, StickInnerR: 0.018, StickDotR: 0.006,
		LStickCX: 0.13, LStickCY: 0.68,
		RStickCX: 0.87, RStickCY: 0.68,

		ShoulderW: 0.14, ShoulderH: 0.06,
		LShoulderX: 0.06, LShoulderY: 0.04,
		RShoulderX: 0.80, RShoulderY: 0.04,

		PSCX: 0.12, PSCY: 0.84, PSR: 0.012,
		SystemR: 0.009,
		StartCX: 0.90, StartCY: 0.80,
		SelectCX: 0.86, SelectCY: 0.80,

		RearPadX: 0.22, RearPadY: 0.20, RearPadW: 0.56, RearPadH: 0.60,

		RearZoneCX: [4]float64{0.36, 0.64, 0.36, 0.64},
		RearZoneCY: [4]float64{0.35, 0.35, 0.65, 0.65},
		RearZoneR:  0.03,

		CameraCX: 0.85, CameraCY: 0.20, CameraR: 0.01,

		OutlineWidth: 0.004,

		RearEdgeStrip: 0.12,
		FrontCenter:   0.6,
		BothScale:     0.6,
	}
}
