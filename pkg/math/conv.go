package math

import "github.com/go-gl/mathgl/mgl64"

// Simulator state is float64; everything handed to a renderer is float32.

// FromVec64 narrows a simulator vector.
func FromVec64(v mgl64.Vec3) Vec3 {
	return Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// FromMat64 narrows a simulator rotation matrix. Both layouts are column-major.
func FromMat64(m mgl64.Mat3) Mat3 {
	var r Mat3
	for i := range m {
		r[i] = float32(m[i])
	}
	return r
}

// ToVec64 widens v back to simulator precision.
func (v Vec3) ToVec64() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
