package visual

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/sim"
)

// addRangefinders draws the measured ray of every rangefinder that hit
// something.
func addRangefinders(p *pass) error {
	if !p.on(FlagRangefinder) || !p.shows(scene.CatDecor) {
		return nil
	}
	for i := range p.m.Sensors {
		sensor := &p.m.Sensors[i]
		if sensor.Type != sim.SensorRangefinder {
			continue
		}
		dist := p.d.SensorData[sensor.Adr]
		if dist < 0 {
			continue
		}
		sid := sensor.ObjID
		pos := p.d.SiteXPos[sid]

		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, sim.GeomLine, 0.01, pos, pos.Add(p.d.SiteXMat[sid].Col(2).Mul(dist)))
		g.RGBA = p.m.Visual.RGBA.RangeFinder
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// addConstraints draws active connect constraints between their anchor
// points, and distance constraints from the constraint entries at the end
// of the contact list.
func addConstraints(p *pass) error {
	if !p.on(FlagConstraint) || !p.shows(scene.CatDecor) || len(p.m.Equalities) == 0 {
		return nil
	}
	vis := &p.m.Visual
	width := p.scl * vis.Scale.Constraint

	for i := range p.m.Equalities {
		eq := &p.m.Equalities[i]
		if !eq.Active || eq.Type != sim.EqConnect {
			continue
		}
		b1, b2 := eq.Obj1ID, eq.Obj2ID
		start := p.d.XMat[b1].Mul3x1(vec3(eq.Data[0:3])).Add(p.d.XPos[b1])
		end := p.d.XMat[b2].Mul3x1(vec3(eq.Data[3:6])).Add(p.d.XPos[b2])
		if !p.addConstraint(i, width, start, end) {
			return nil
		}
	}

	for j := len(p.d.Contacts) - 1; j >= 0; j-- {
		con := &p.d.Contacts[j]
		if con.Exclude != sim.ContactExcludeConstraint {
			break
		}
		i := -con.EfcAddress - 2
		half := 0.5 * (con.Dist - p.m.Equalities[i].Data[0])
		normal := con.Frame.Col(0)
		if !p.addConstraint(i, width, con.Pos.Add(normal.Mul(half)), con.Pos.Sub(normal.Mul(half))) {
			return nil
		}
	}
	return nil
}

func (p *pass) addConstraint(eq int, width float64, a, b mgl64.Vec3) bool {
	g := p.newGeom(sim.ObjEquality, eq, scene.CatDecor)
	scene.MakeConnector(&g, sim.GeomCapsule, width, a, b)
	g.RGBA = p.m.Visual.RGBA.Constraint
	if p.opt.Label == LabelConstraint {
		g.Label = p.label(sim.ObjEquality, eq)
	}
	return p.add(g)
}

func vec3(s []float64) mgl64.Vec3 {
	return mgl64.Vec3{s[0], s[1], s[2]}
}
