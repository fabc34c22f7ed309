// Package camera derives the stereo eye pair of a scene from an abstract
// camera: a free or tracking orbit around a look-at point, or a fixed
// model camera.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// Camera errors.
var (
	ErrTrackBody   = errors.New("track body id out of range")
	ErrFixedCamera = errors.New("fixed camera id out of range")
	ErrCameraType  = errors.New("unknown camera type")
)

// Type is the camera mode.
type Type int

// Camera modes.
const (
	Free     Type = iota // orbit around LookAt
	Tracking             // orbit around a smoothed body position
	Fixed                // model camera FixedCamID
	User                 // eyes are set by the caller; Update does nothing
)

var typeNames = [...]string{"free", "tracking", "fixed", "user"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType returns the camera mode with the given name.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrCameraType, s)
}

// trackGain is the fraction of the remaining distance to the tracked body
// covered per update.
const trackGain = 0.2

// Elevation limits in degrees.
const (
	MinElevation = -89.0
	MaxElevation = 89.0
)

// Camera is the abstract camera state. Tracking mode moves LookAt, so the
// camera is updated in place.
type Camera struct {
	Type Type

	// Orbit parameters for Free and Tracking
	LookAt    mgl64.Vec3
	Distance  float64
	Azimuth   float64 // degrees
	Elevation float64 // degrees

	TrackBodyID int
	FixedCamID  int
}

// Default returns a free camera two units from the origin.
func Default() Camera {
	return Camera{
		Type:        Free,
		Distance:    2,
		Azimuth:     90,
		Elevation:   -45,
		TrackBodyID: -1,
		FixedCamID:  -1,
	}
}

// DefaultFree returns a free camera looking at the model center from a
// distance that fits the whole model.
func DefaultFree(m *sim.Model) Camera {
	c := Default()
	c.LookAt = m.Stat.Center
	c.Distance = 1.5 * m.Stat.Extent
	return c
}

// Orbit rotates the camera around its look-at point, keeping the
// elevation away from the poles.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth = gomath.Mod(c.Azimuth+dAzimuth, 360)
	c.Elevation = gomath.Min(MaxElevation, gomath.Max(MinElevation, c.Elevation+dElevation))
}

// Zoom scales the distance by 1-delta. The distance stays positive.
func (c *Camera) Zoom(delta float64) {
	c.Distance -= delta * c.Distance
	if c.Distance < sim.MinVal {
		c.Distance = sim.MinVal
	}
}

// frame is the head pose shared by both eyes.
type frame struct {
	head, forward, up, right mgl64.Vec3
	ipd, fovy                float64
}

// Update writes both eye cameras of scn. In tracking mode LookAt first
// moves part of the way toward the tracked subtree's center of mass.
func (c *Camera) Update(m *sim.Model, d *sim.State, scn *scene.Scene) error {
	var f frame

	switch c.Type {
	case User:
		return nil

	case Free, Tracking:
		f.ipd = m.Visual.Global.IPD
		f.fovy = m.Visual.Global.FovY

		if c.Type == Tracking {
			if c.TrackBodyID < 0 || c.TrackBodyID >= len(m.Bodies) {
				return fmt.Errorf("%w: %d", ErrTrackBody, c.TrackBodyID)
			}
			move := d.SubtreeCOM[c.TrackBodyID].Sub(c.LookAt)
			c.LookAt = c.LookAt.Add(move.Mul(trackGain))
		}

		ca, sa := gomath.Cos(mgl64.DegToRad(c.Azimuth)), gomath.Sin(mgl64.DegToRad(c.Azimuth))
		ce, se := gomath.Cos(mgl64.DegToRad(c.Elevation)), gomath.Sin(mgl64.DegToRad(c.Elevation))
		f.forward = mgl64.Vec3{ce * ca, ce * sa, se}
		f.up = mgl64.Vec3{-se * ca, -se * sa, ce}
		f.right = mgl64.Vec3{sa, -ca, 0}
		f.head = c.LookAt.Sub(f.forward.Mul(c.Distance))

	case Fixed:
		if c.FixedCamID < 0 || c.FixedCamID >= len(m.Cameras) {
			return fmt.Errorf("%w: %d", ErrFixedCamera, c.FixedCamID)
		}
		f.ipd = m.Cameras[c.FixedCamID].IPD
		f.fovy = m.Cameras[c.FixedCamID].FovY

		mat := d.CamXMat[c.FixedCamID]
		f.forward = mat.Col(2).Mul(-1)
		f.up = mat.Col(1)
		f.right = mat.Col(0)
		f.head = d.CamXPos[c.FixedCamID]

	default:
		return fmt.Errorf("%w: %v", ErrCameraType, c.Type)
	}

	znear := m.Visual.Map.ZNear * m.Stat.Extent
	zfar := m.Visual.Map.ZFar * m.Stat.Extent
	for view := range scn.Camera {
		offset := -0.5 * f.ipd
		if view == 1 {
			offset = 0.5 * f.ipd
		}
		scn.Camera[view] = eye(f.head.Add(f.right.Mul(offset)), f.forward, f.up, f.fovy, znear, zfar)
	}
	return nil
}

// eye builds one GL camera with a symmetric frustum.
func eye(pos, forward, up mgl64.Vec3, fovy, znear, zfar float64) scene.GLCamera {
	top := float32(znear * gomath.Tan(fovy*gomath.Pi/360))
	return scene.GLCamera{
		Pos:           math.FromVec64(pos),
		Forward:       math.FromVec64(forward),
		Up:            math.FromVec64(up),
		FrustumCenter: 0,
		FrustumTop:    top,
		FrustumBottom: -top,
		FrustumNear:   float32(znear),
		FrustumFar:    float32(zfar),
	}
}
