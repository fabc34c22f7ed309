package scene

import "github.com/Faultbox/simvis/pkg/math"

// GLCamera is one eye of the stereo pair: a head pose and a frustum
// described at the near plane.
type GLCamera struct {
	Pos     math.Vec3
	Forward math.Vec3
	Up      math.Vec3

	FrustumCenter float32 // horizontal offset of the frustum center
	FrustumBottom float32
	FrustumTop    float32
	FrustumNear   float32
	FrustumFar    float32
}

// ViewMatrix returns the world-to-eye transform.
func (c GLCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Pos, c.Pos.Add(c.Forward), c.Up)
}

// ProjectionMatrix returns the frustum projection for a viewport with the
// given width/height ratio.
func (c GLCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	halfWidth := 0.5 * aspect * (c.FrustumTop - c.FrustumBottom)
	return math.Frustum(
		c.FrustumCenter-halfWidth, c.FrustumCenter+halfWidth,
		c.FrustumBottom, c.FrustumTop,
		c.FrustumNear, c.FrustumFar,
	)
}

// Average combines two eyes into a single head camera. Up is
// re-orthogonalized against the averaged forward direction.
func Average(a, b GLCamera) GLCamera {
	forward := a.Forward.Add(b.Forward).Scale(0.5).Normalize()
	up := a.Up.Add(b.Up).Scale(0.5)
	up = up.Sub(forward.Scale(up.Dot(forward))).Normalize()

	return GLCamera{
		Pos:           a.Pos.Add(b.Pos).Scale(0.5),
		Forward:       forward,
		Up:            up,
		FrustumCenter: 0.5 * (a.FrustumCenter + b.FrustumCenter),
		FrustumBottom: 0.5 * (a.FrustumBottom + b.FrustumBottom),
		FrustumTop:    0.5 * (a.FrustumTop + b.FrustumTop),
		FrustumNear:   0.5 * (a.FrustumNear + b.FrustumNear),
		FrustumFar:    0.5 * (a.FrustumFar + b.FrustumFar),
	}
}
