package sim

// Visual is the model's visualization style.
type Visual struct {
	Global    VisualGlobal    `yaml:"global"`
	Headlight VisualHeadlight `yaml:"headlight"`
	Map       VisualMap       `yaml:"map"`
	Scale     VisualScale     `yaml:"scale"`
	RGBA      VisualRGBA      `yaml:"rgba"`
}

// VisualGlobal holds free-camera and highlight settings.
type VisualGlobal struct {
	FovY float64 `yaml:"fovy"` // degrees
	IPD  float64 `yaml:"ipd"`
	Glow float32 `yaml:"glow"`
}

// VisualHeadlight configures the light attached to the viewer.
type VisualHeadlight struct {
	Active   bool       `yaml:"active"`
	Ambient  [3]float32 `yaml:"ambient"`
	Diffuse  [3]float32 `yaml:"diffuse"`
	Specular [3]float32 `yaml:"specular"`
}

// VisualMap holds mappings from physical quantities to visual ones.
type VisualMap struct {
	Force          float64 `yaml:"force"`
	Alpha          float32 `yaml:"alpha"`
	ZNear          float64 `yaml:"znear"`
	ZFar           float64 `yaml:"zfar"`
	ActuatorTendon float64 `yaml:"actuatortendon"`
}

// VisualScale holds decoration sizes relative to Statistic.MeanSize.
type VisualScale struct {
	ForceWidth     float64 `yaml:"forcewidth"`
	ContactWidth   float64 `yaml:"contactwidth"`
	ContactHeight  float64 `yaml:"contactheight"`
	Connect        float64 `yaml:"connect"`
	Com            float64 `yaml:"com"`
	Camera         float64 `yaml:"camera"`
	Light          float64 `yaml:"light"`
	SelectPoint    float64 `yaml:"selectpoint"`
	JointLength    float64 `yaml:"jointlength"`
	JointWidth     float64 `yaml:"jointwidth"`
	ActuatorLength float64 `yaml:"actuatorlength"`
	ActuatorWidth  float64 `yaml:"actuatorwidth"`
	FrameLength    float64 `yaml:"framelength"`
	FrameWidth     float64 `yaml:"framewidth"`
	Constraint     float64 `yaml:"constraint"`
	SliderCrank    float64 `yaml:"slidercrank"`
}

// VisualRGBA is the decoration palette.
type VisualRGBA struct {
	Force            [4]float32 `yaml:"force"`
	Inertia          [4]float32 `yaml:"inertia"`
	Joint            [4]float32 `yaml:"joint"`
	Actuator         [4]float32 `yaml:"actuator"`
	ActuatorNegative [4]float32 `yaml:"actuatornegative"`
	ActuatorPositive [4]float32 `yaml:"actuatorpositive"`
	Com              [4]float32 `yaml:"com"`
	Camera           [4]float32 `yaml:"camera"`
	Light            [4]float32 `yaml:"light"`
	SelectPoint      [4]float32 `yaml:"selectpoint"`
	Connect          [4]float32 `yaml:"connect"`
	ContactPoint     [4]float32 `yaml:"contactpoint"`
	ContactForce     [4]float32 `yaml:"contactforce"`
	ContactFriction  [4]float32 `yaml:"contactfriction"`
	ContactGap       [4]float32 `yaml:"contactgap"`
	RangeFinder      [4]float32 `yaml:"rangefinder"`
	Constraint       [4]float32 `yaml:"constraint"`
	SliderCrank      [4]float32 `yaml:"slidercrank"`
	CrankBroken      [4]float32 `yaml:"crankbroken"`
}

// DefaultVisual returns the standard visualization style.
func DefaultVisual() Visual {
	return Visual{
		Global: VisualGlobal{
			FovY: 45,
			IPD:  0.068,
			Glow: 0.3,
		},
		Headlight: VisualHeadlight{
			Active:   true,
			Ambient:  [3]float32{0.1, 0.1, 0.1},
			Diffuse:  [3]float32{0.4, 0.4, 0.4},
			Specular: [3]float32{0.5, 0.5, 0.5},
		},
		Map: VisualMap{
			Force:          0.005,
			Alpha:          0.3,
			ZNear:          0.01,
			ZFar:           50,
			ActuatorTendon: 2,
		},
		Scale: VisualScale{
			ForceWidth:     0.1,
			ContactWidth:   0.3,
			ContactHeight:  0.1,
			Connect:        0.2,
			Com:            0.4,
			Camera:         0.3,
			Light:          0.3,
			SelectPoint:    0.2,
			JointLength:    1.0,
			JointWidth:     0.1,
			ActuatorLength: 0.7,
			ActuatorWidth:  0.2,
			FrameLength:    1.0,
			FrameWidth:     0.1,
			Constraint:     0.1,
			SliderCrank:    0.2,
		},
		RGBA: VisualRGBA{
			Force:            [4]float32{1, 0.5, 0.5, 1},
			Inertia:          [4]float32{0.8, 0.2, 0.2, 0.6},
			Joint:            [4]float32{0.2, 0.6, 0.8, 1},
			Actuator:         [4]float32{0.2, 0.25, 0.2, 1},
			ActuatorNegative: [4]float32{0.2, 0.6, 0.9, 1},
			ActuatorPositive: [4]float32{0.9, 0.4, 0.2, 1},
			Com:              [4]float32{0.9, 0.9, 0.9, 1},
			Camera:           [4]float32{0.6, 0.9, 0.6, 1},
			Light:            [4]float32{0.6, 0.6, 0.9, 1},
			SelectPoint:      [4]float32{0.9, 0.9, 0.1, 1},
			Connect:          [4]float32{0.2, 0.2, 0.8, 1},
			ContactPoint:     [4]float32{0.9, 0.6, 0.2, 1},
			ContactForce:     [4]float32{0.7, 0.9, 0.9, 1},
			ContactFriction:  [4]float32{0.9, 0.8, 0.4, 1},
			ContactGap:       [4]float32{0.5, 0.8, 0.9, 1},
			RangeFinder:      [4]float32{1, 1, 0.1, 1},
			Constraint:       [4]float32{0.9, 0, 0, 1},
			SliderCrank:      [4]float32{0.5, 0.3, 0.8, 1},
			CrankBroken:      [4]float32{0.9, 0, 0, 1},
		},
	}
}
