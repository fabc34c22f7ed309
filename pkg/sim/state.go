package sim

import "github.com/go-gl/mathgl/mgl64"

// State is the output of one simulation step, in world coordinates.
// Slices are indexed by the id of the entity in the Model.
type State struct {
	// Bodies
	XPos       []mgl64.Vec3
	XMat       []mgl64.Mat3
	XQuat      []mgl64.Quat
	XIPos      []mgl64.Vec3 // center of mass
	XIMat      []mgl64.Mat3 // principal inertia frame
	SubtreeCOM []mgl64.Vec3

	// Joints
	XAnchor []mgl64.Vec3
	XAxis   []mgl64.Vec3

	GeomXPos  []mgl64.Vec3
	GeomXMat  []mgl64.Mat3
	SiteXPos  []mgl64.Vec3
	SiteXMat  []mgl64.Mat3
	CamXPos   []mgl64.Vec3
	CamXMat   []mgl64.Mat3
	LightXPos []mgl64.Vec3
	LightXDir []mgl64.Vec3

	// Actuation
	Ctrl []float64
	Act  []float64

	// Tendon paths: tendon i owns wrap points TenWrapAdr[i] .. +TenWrapNum[i].
	TenWrapAdr []int
	TenWrapNum []int
	WrapObj    []int
	WrapXPos   []mgl64.Vec3

	// Applied force:torque per body
	XfrcApplied [][6]float64

	SensorData []float64
	Contacts   []Contact
}

// Contact is one entry of the solver's contact list.
type Contact struct {
	Pos mgl64.Vec3
	// Frame columns are the normal and the two tangent directions.
	Frame mgl64.Mat3
	Dist  float64
	Dim   int // 1, 3, 4 or 6
	Geom1 int
	Geom2 int
	// Exclude is ContactExcludeConstraint for entries produced by constraints.
	Exclude int
	// EfcAddress is negative when the contact is excluded from the solver.
	EfcAddress int
	// Force is the resolved force:torque in the contact frame.
	Force [6]float64
}

// Included reports whether the contact takes part in the solver.
func (c *Contact) Included() bool {
	return c.EfcAddress >= 0
}

// NewState allocates a state sized for m, with bodies at the origin and
// every rotation at identity.
func NewState(m *Model) *State {
	nbody := len(m.Bodies)
	d := &State{
		XPos:        make([]mgl64.Vec3, nbody),
		XMat:        identities(nbody),
		XQuat:       make([]mgl64.Quat, nbody),
		XIPos:       make([]mgl64.Vec3, nbody),
		XIMat:       identities(nbody),
		SubtreeCOM:  make([]mgl64.Vec3, nbody),
		XAnchor:     make([]mgl64.Vec3, len(m.Joints)),
		XAxis:       make([]mgl64.Vec3, len(m.Joints)),
		GeomXPos:    make([]mgl64.Vec3, len(m.Geoms)),
		GeomXMat:    identities(len(m.Geoms)),
		SiteXPos:    make([]mgl64.Vec3, len(m.Sites)),
		SiteXMat:    identities(len(m.Sites)),
		CamXPos:     make([]mgl64.Vec3, len(m.Cameras)),
		CamXMat:     identities(len(m.Cameras)),
		LightXPos:   make([]mgl64.Vec3, len(m.Lights)),
		LightXDir:   make([]mgl64.Vec3, len(m.Lights)),
		Ctrl:        make([]float64, len(m.Actuators)),
		TenWrapAdr:  make([]int, len(m.Tendons)),
		TenWrapNum:  make([]int, len(m.Tendons)),
		XfrcApplied: make([][6]float64, nbody),
	}
	for i := range d.XQuat {
		d.XQuat[i] = mgl64.QuatIdent()
	}
	for i := range d.LightXDir {
		d.LightXDir[i] = mgl64.Vec3{0, 0, -1}
	}

	na, nsensordata := 0, 0
	for i := range m.Actuators {
		if a := m.Actuators[i].ActAdr; a >= na {
			na = a + 1
		}
	}
	for i := range m.Sensors {
		if a := m.Sensors[i].Adr; a >= nsensordata {
			nsensordata = a + 1
		}
	}
	d.Act = make([]float64, na)
	d.SensorData = make([]float64, nsensordata)
	return d
}

func identities(n int) []mgl64.Mat3 {
	mats := make([]mgl64.Mat3, n)
	for i := range mats {
		mats[i] = mgl64.Ident3()
	}
	return mats
}
