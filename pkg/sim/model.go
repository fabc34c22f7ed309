package sim

import "github.com/go-gl/mathgl/mgl64"

// Model is the static description of a simulation. It is created once at
// load time and never modified afterwards. Body 0 is the world.
type Model struct {
	Bodies     []Body
	Joints     []Joint
	Geoms      []Geom
	Sites      []Site
	Cameras    []Camera
	Lights     []Light
	Meshes     []Mesh
	Skins      []Skin
	Tendons    []Tendon
	Actuators  []Actuator
	Equalities []Equality
	Sensors    []Sensor
	Materials  []Material

	Visual Visual
	Stat   Statistic
}

// Body is a rigid body.
type Body struct {
	Name     string
	ParentID int
	RootID   int
	WeldID   int // 0 when welded to the world
	MocapID  int // -1 unless mocap
	JntAdr   int
	JntNum   int
	Mass     float64
	Inertia  mgl64.Vec3 // principal moments
}

// Joint is a degree-of-freedom group attached to a body.
type Joint struct {
	Name   string
	Type   JointType
	BodyID int
	Group  int
}

// Geom is a collision/visual shape attached to a body.
type Geom struct {
	Name   string
	Type   GeomType
	BodyID int
	Group  int
	Size   mgl64.Vec3
	RGBA   [4]float32
	MatID  int
	DataID int // mesh id for meshes, -1 otherwise
	RBound float64
}

// Site is a marker frame attached to a body.
type Site struct {
	Name   string
	Type   GeomType
	BodyID int
	Group  int
	Size   mgl64.Vec3
	RGBA   [4]float32
	MatID  int
}

// Camera is a model camera.
type Camera struct {
	Name string
	FovY float64 // degrees
	IPD  float64
}

// Light is a model light.
type Light struct {
	Name        string
	Active      bool
	Directional bool
	CastShadow  bool
	Attenuation [3]float32
	Cutoff      float32
	Exponent    float32
	Ambient     [3]float32
	Diffuse     [3]float32
	Specular    [3]float32
}

// Mesh describes mesh data resolvable by the renderer.
type Mesh struct {
	Name        string
	TexCoordAdr int // -1 without texture coordinates
	GraphAdr    int // -1 without convex hull
}

// Skin is a deformable mesh driven by body poses.
type Skin struct {
	Name     string
	MatID    int
	RGBA     [4]float32
	Inflate  float32
	TexCoord bool
	Vert     []float32 // 3 per vertex, bind pose
	Face     []int32   // 3 per face
	Bones    []SkinBone
}

// NumVert returns the number of vertices of the skin.
func (s *Skin) NumVert() int {
	return len(s.Vert) / 3
}

// SkinBone binds a set of skin vertices to a body.
type SkinBone struct {
	BodyID      int
	BindPos     mgl64.Vec3
	BindQuat    mgl64.Quat
	VertIDs     []int32
	VertWeights []float32
}

// Tendon is a spatial tendon.
type Tendon struct {
	Name  string
	Group int
	Width float64
	MatID int
	RGBA  [4]float32
}

// Actuator is a force generator acting through a transmission.
type Actuator struct {
	Name        string
	Group       int
	TrnType     TrnType
	TrnID       [2]int
	DynType     DynType
	CtrlLimited bool
	CtrlRange   [2]float64
	ActLimited  bool
	ActRange    [2]float64
	ActAdr      int // index into State.Act, -1 if stateless
	CrankLength float64
}

// Equality is an equality constraint between two objects.
type Equality struct {
	Name   string
	Type   EqType
	Obj1ID int
	Obj2ID int
	Active bool
	Data   [NumEqData]float64
}

// Sensor is a model sensor.
type Sensor struct {
	Name  string
	Type  SensorType
	ObjID int
	Adr   int // index into State.SensorData
}

// Material holds shading parameters.
type Material struct {
	Name        string
	TexID       int
	TexUniform  bool
	TexRepeat   [2]float32
	Emission    float32
	Specular    float32
	Shininess   float32
	Reflectance float32
	RGBA        [4]float32
}

// Statistic holds model-derived scale information.
type Statistic struct {
	MeanMass float64
	MeanSize float64
	Extent   float64
	Center   mgl64.Vec3
}

// BodyStatic reports whether a body never moves: welded to the world and not mocap.
func (m *Model) BodyStatic(id int) bool {
	b := &m.Bodies[id]
	return b.WeldID == 0 && b.MocapID == -1
}

// Name returns the name of the given entity, or "" if it has none.
func (m *Model) Name(obj ObjType, id int) string {
	valid := func(n int) bool { return id >= 0 && id < n }
	switch obj {
	case ObjBody:
		if valid(len(m.Bodies)) {
			return m.Bodies[id].Name
		}
	case ObjJoint:
		if valid(len(m.Joints)) {
			return m.Joints[id].Name
		}
	case ObjGeom:
		if valid(len(m.Geoms)) {
			return m.Geoms[id].Name
		}
	case ObjSite:
		if valid(len(m.Sites)) {
			return m.Sites[id].Name
		}
	case ObjCamera:
		if valid(len(m.Cameras)) {
			return m.Cameras[id].Name
		}
	case ObjLight:
		if valid(len(m.Lights)) {
			return m.Lights[id].Name
		}
	case ObjMesh:
		if valid(len(m.Meshes)) {
			return m.Meshes[id].Name
		}
	case ObjSkin:
		if valid(len(m.Skins)) {
			return m.Skins[id].Name
		}
	case ObjTendon:
		if valid(len(m.Tendons)) {
			return m.Tendons[id].Name
		}
	case ObjActuator:
		if valid(len(m.Actuators)) {
			return m.Actuators[id].Name
		}
	case ObjEquality:
		if valid(len(m.Equalities)) {
			return m.Equalities[id].Name
		}
	case ObjSensor:
		if valid(len(m.Sensors)) {
			return m.Sensors[id].Name
		}
	case ObjMaterial:
		if valid(len(m.Materials)) {
			return m.Materials[id].Name
		}
	}
	return ""
}

// Count returns the number of entities of the given kind.
func (m *Model) Count(obj ObjType) int {
	switch obj {
	case ObjBody:
		return len(m.Bodies)
	case ObjJoint:
		return len(m.Joints)
	case ObjGeom:
		return len(m.Geoms)
	case ObjSite:
		return len(m.Sites)
	case ObjCamera:
		return len(m.Cameras)
	case ObjLight:
		return len(m.Lights)
	case ObjMesh:
		return len(m.Meshes)
	case ObjSkin:
		return len(m.Skins)
	case ObjTendon:
		return len(m.Tendons)
	case ObjActuator:
		return len(m.Actuators)
	case ObjEquality:
		return len(m.Equalities)
	case ObjSensor:
		return len(m.Sensors)
	case ObjMaterial:
		return len(m.Materials)
	}
	return 0
}

// ID returns the id of the entity with the given name, or -1.
func (m *Model) ID(obj ObjType, name string) int {
	if name == "" {
		return -1
	}
	for id := 0; id < m.Count(obj); id++ {
		if m.Name(obj, id) == name {
			return id
		}
	}
	return -1
}
