// Package sim defines the data contracts of the simulator: the immutable Model,
// the per-step State, and the enumerations both share.
package sim

import "fmt"

// MinVal is the smallest magnitude treated as nonzero.
const MinVal = 1e-15

// ObjType identifies the kind of entity a geom refers back to.
type ObjType int

// Object types.
const (
	ObjUnknown ObjType = iota
	ObjBody
	ObjJoint
	ObjGeom
	ObjSite
	ObjCamera
	ObjLight
	ObjMesh
	ObjSkin
	ObjTendon
	ObjActuator
	ObjEquality
	ObjSensor
	ObjMaterial
)

var objNames = [...]string{
	ObjUnknown:  "unknown",
	ObjBody:     "body",
	ObjJoint:    "joint",
	ObjGeom:     "geom",
	ObjSite:     "site",
	ObjCamera:   "camera",
	ObjLight:    "light",
	ObjMesh:     "mesh",
	ObjSkin:     "skin",
	ObjTendon:   "tendon",
	ObjActuator: "actuator",
	ObjEquality: "equality",
	ObjSensor:   "sensor",
	ObjMaterial: "material",
}

func (o ObjType) String() string {
	if o < 0 || int(o) >= len(objNames) {
		return fmt.Sprintf("ObjType(%d)", int(o))
	}
	return objNames[o]
}

// GeomType is the shape of a model geom or of an abstract scene geom.
// Types after Mesh exist only in scenes.
type GeomType int

// Geom types.
const (
	GeomPlane GeomType = iota
	GeomHField
	GeomSphere
	GeomCapsule
	GeomEllipsoid
	GeomCylinder
	GeomBox
	GeomMesh

	GeomArrow
	GeomArrow1
	GeomArrow2
	GeomLine
	GeomSkin
	GeomLabel

	GeomNone GeomType = 1001
)

var geomNames = map[GeomType]string{
	GeomPlane:     "plane",
	GeomHField:    "hfield",
	GeomSphere:    "sphere",
	GeomCapsule:   "capsule",
	GeomEllipsoid: "ellipsoid",
	GeomCylinder:  "cylinder",
	GeomBox:       "box",
	GeomMesh:      "mesh",
	GeomArrow:     "arrow",
	GeomArrow1:    "arrow1",
	GeomArrow2:    "arrow2",
	GeomLine:      "line",
	GeomSkin:      "skin",
	GeomLabel:     "label",
	GeomNone:      "none",
}

func (g GeomType) String() string {
	if s, ok := geomNames[g]; ok {
		return s
	}
	return fmt.Sprintf("GeomType(%d)", int(g))
}

// ParseGeomType returns the geom type with the given name.
func ParseGeomType(s string) (GeomType, error) {
	for t, name := range geomNames {
		if name == s {
			return t, nil
		}
	}
	return GeomNone, fmt.Errorf("unknown geom type %q", s)
}

// JointType is the kind of a joint.
type JointType int

// Joint types.
const (
	JointFree JointType = iota
	JointBall
	JointSlide
	JointHinge
)

var jointNames = [...]string{"free", "ball", "slide", "hinge"}

func (j JointType) String() string {
	if j < 0 || int(j) >= len(jointNames) {
		return fmt.Sprintf("JointType(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJointType returns the joint type with the given name.
func ParseJointType(s string) (JointType, error) {
	for i, name := range jointNames {
		if name == s {
			return JointType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown joint type %q", s)
}

// TrnType is the transmission kind of an actuator.
type TrnType int

// Transmission types.
const (
	TrnJoint TrnType = iota
	TrnJointInParent
	TrnSliderCrank
	TrnTendon
	TrnSite
	TrnBody
)

var trnNames = [...]string{"joint", "jointinparent", "slidercrank", "tendon", "site", "body"}

func (t TrnType) String() string {
	if t < 0 || int(t) >= len(trnNames) {
		return fmt.Sprintf("TrnType(%d)", int(t))
	}
	return trnNames[t]
}

// ParseTrnType returns the transmission type with the given name.
func ParseTrnType(s string) (TrnType, error) {
	for i, name := range trnNames {
		if name == s {
			return TrnType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transmission type %q", s)
}

// DynType is the activation dynamics of an actuator. DynNone means stateless.
type DynType int

// Dynamics types.
const (
	DynNone DynType = iota
	DynIntegrator
	DynFilter
	DynMuscle
	DynUser
)

var dynNames = [...]string{"none", "integrator", "filter", "muscle", "user"}

func (d DynType) String() string {
	if d < 0 || int(d) >= len(dynNames) {
		return fmt.Sprintf("DynType(%d)", int(d))
	}
	return dynNames[d]
}

// ParseDynType returns the dynamics type with the given name.
func ParseDynType(s string) (DynType, error) {
	for i, name := range dynNames {
		if name == s {
			return DynType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dynamics type %q", s)
}

// EqType is the kind of an equality constraint.
type EqType int

// Equality types.
const (
	EqConnect EqType = iota
	EqWeld
	EqJoint
	EqTendon
	EqDistance
)

var eqNames = [...]string{"connect", "weld", "joint", "tendon", "distance"}

func (e EqType) String() string {
	if e < 0 || int(e) >= len(eqNames) {
		return fmt.Sprintf("EqType(%d)", int(e))
	}
	return eqNames[e]
}

// ParseEqType returns the equality type with the given name.
func ParseEqType(s string) (EqType, error) {
	for i, name := range eqNames {
		if name == s {
			return EqType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown equality type %q", s)
}

// SensorType is the kind of a sensor. Only the rangefinder is visualized.
type SensorType int

// Sensor types.
const (
	SensorTouch SensorType = iota
	SensorAccelerometer
	SensorVelocimeter
	SensorGyro
	SensorForce
	SensorTorque
	SensorRangefinder
	SensorJointPos
	SensorUser
)

var sensorNames = [...]string{
	"touch", "accelerometer", "velocimeter", "gyro", "force", "torque",
	"rangefinder", "jointpos", "user",
}

func (s SensorType) String() string {
	if s < 0 || int(s) >= len(sensorNames) {
		return fmt.Sprintf("SensorType(%d)", int(s))
	}
	return sensorNames[s]
}

// ParseSensorType returns the sensor type with the given name.
func ParseSensorType(s string) (SensorType, error) {
	for i, name := range sensorNames {
		if name == s {
			return SensorType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sensor type %q", s)
}

// Wrap object codes stored in State.WrapObj. Values >= 0 are wrapping geom ids.
const (
	WrapPulley = -2
	WrapSite   = -1
)

// NumEqData is the number of parameters of an equality constraint.
const NumEqData = 11

// ContactExcludeConstraint marks contact entries that carry constraint
// geometry rather than real contacts. They sit at the end of the list.
const ContactExcludeConstraint = 3
