package visual

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// addContacts draws contact points, contact frames and contact forces.
func addContacts(p *pass) error {
	if !p.shows(scene.CatDecor) {
		return nil
	}
	showFrame := p.opt.Frame == FrameContact
	if !p.on(FlagContactPoint) && !p.on(FlagContactForce) && !showFrame {
		return nil
	}
	vis := &p.m.Visual

	for i := range p.d.Contacts {
		con := &p.d.Contacts[i]
		normal, t1, t2 := con.Frame.Col(0), con.Frame.Col(1), con.Frame.Col(2)
		// normal along z
		pointMat := mgl64.Mat3FromCols(t1, t2, normal)

		if p.on(FlagContactPoint) {
			g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
			g.Type = sim.GeomCylinder
			w := float32(vis.Scale.ContactWidth * p.scl)
			g.Size = math.Vec3{X: w, Y: w, Z: float32(vis.Scale.ContactHeight * p.scl)}
			g.Pos = math.FromVec64(con.Pos)
			g.Mat = math.FromMat64(pointMat)
			g.RGBA = vis.RGBA.ContactGap
			if con.Included() {
				g.RGBA = vis.RGBA.ContactPoint
			}
			if !p.add(g) {
				return nil
			}
		}

		if showFrame {
			length := vis.Scale.FrameLength * p.scl / 2
			width := vis.Scale.FrameWidth * p.scl / 2
			if !p.addFrame(con.Pos, pointMat, length, width) {
				return nil
			}
		}

		if !con.Included() || !p.on(FlagContactForce) {
			continue
		}
		if !p.addContactForce(con) {
			return nil
		}
	}
	return nil
}

// addContactForce draws the resolved contact force, either as one arrow or
// split into normal and friction arrows. Arrows between two bodies point
// toward the body with the higher id.
func (p *pass) addContactForce(con *sim.Contact) bool {
	vis := &p.m.Visual

	var frc mgl64.Vec3
	copy(frc[:], con.Force[:min(3, con.Dim)])
	if frc.Len() < sim.MinVal {
		return true
	}

	body1 := p.m.Geoms[con.Geom1].BodyID
	body2 := p.m.Geoms[con.Geom2].BodyID
	split := p.on(FlagContactSplit) && con.Dim > 1
	normal, t1, t2 := con.Frame.Col(0), con.Frame.Col(1), con.Frame.Col(2)

	parts := []int{0}
	if split {
		parts = []int{1, 2}
	}
	for _, j := range parts {
		var vec mgl64.Vec3
		switch j {
		case 0:
			vec = con.Frame.Mul3x1(frc)
		case 1:
			vec = normal.Mul(frc[0])
		case 2:
			vec = t1.Mul(frc[1]).Add(t2.Mul(frc[2]))
		}
		vec = vec.Mul(vis.Map.Force / p.m.Stat.MeanMass)
		if body1 > body2 {
			vec = vec.Mul(-1)
		}

		typ := sim.GeomArrow
		if body1 > 0 && body2 > 0 && !split {
			typ = sim.GeomArrow2
		}
		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, typ, vis.Scale.ForceWidth*p.scl, con.Pos, con.Pos.Add(vec))
		g.RGBA = vis.RGBA.ContactForce
		if j == 2 {
			g.RGBA = vis.RGBA.ContactFriction
		}
		if p.opt.Label == LabelContactForce && j == parts[0] {
			g.SetLabel(fmt.Sprintf("%-.3g", frc.Len()))
		}
		if !p.add(g) {
			return false
		}
	}
	return true
}
