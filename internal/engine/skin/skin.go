// Package skin deforms skinned meshes by linear blend skinning.
package skin

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// Update recomputes the vertex positions and normals of every skin in scn
// from the current body poses.
func Update(m *sim.Model, d *sim.State, scn *scene.Scene) {
	for i := range m.Skins {
		Deform(&m.Skins[i], d, &scn.Skins[i])
	}
}

// Deform writes the deformed vertices of s into buf. Bone weights are
// applied as given, without renormalization.
func Deform(s *sim.Skin, d *sim.State, buf *scene.SkinBuffer) {
	clear(buf.Vert)
	clear(buf.Normal)

	for j := range s.Bones {
		bone := &s.Bones[j]
		rot, trans := boneTransform(bone, d.XPos[bone.BodyID], d.XQuat[bone.BodyID])

		for k, vid := range bone.VertIDs {
			w := bone.VertWeights[k]
			v := 3 * int(vid)
			bind := mgl64.Vec3{float64(s.Vert[v]), float64(s.Vert[v+1]), float64(s.Vert[v+2])}
			pos := rot.Mul3x1(bind).Add(trans)

			buf.Vert[v] += w * float32(pos[0])
			buf.Vert[v+1] += w * float32(pos[1])
			buf.Vert[v+2] += w * float32(pos[2])
		}
	}

	computeNormals(s.Face, buf.Vert, buf.Normal)

	if s.Inflate != 0 {
		for k := range buf.Vert {
			buf.Vert[k] += s.Inflate * buf.Normal[k]
		}
	}
}

// boneTransform returns the rigid transform taking bind-pose coordinates
// to the current pose of the bone's body.
func boneTransform(bone *sim.SkinBone, xpos mgl64.Vec3, xquat mgl64.Quat) (mgl64.Mat3, mgl64.Vec3) {
	rot := xquat.Mul(bone.BindQuat.Conjugate()).Mat4().Mat3()
	return rot, xpos.Sub(rot.Mul3x1(bone.BindPos))
}

// computeNormals accumulates area-weighted face normals into each face's
// vertices and normalizes them. Vertices of zero-area faces only keep a
// zero normal.
func computeNormals(face []int32, vert, normal []float32) {
	at := func(buf []float32, i int32) math.Vec3 {
		return math.Vec3{X: buf[3*i], Y: buf[3*i+1], Z: buf[3*i+2]}
	}

	for k := 0; k+2 < len(face); k += 3 {
		v0 := at(vert, face[k])
		nrm := at(vert, face[k+1]).Sub(v0).Cross(at(vert, face[k+2]).Sub(v0))
		for r := 0; r < 3; r++ {
			n := 3 * face[k+r]
			normal[n] += nrm.X
			normal[n+1] += nrm.Y
			normal[n+2] += nrm.Z
		}
	}

	for k := 0; k+2 < len(normal); k += 3 {
		s := math32.Sqrt(normal[k]*normal[k] + normal[k+1]*normal[k+1] + normal[k+2]*normal[k+2])
		scl := 1 / max(float32(sim.MinVal), s)
		normal[k] *= scl
		normal[k+1] *= scl
		normal[k+2] *= scl
	}
}
