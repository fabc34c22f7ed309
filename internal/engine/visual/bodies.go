package visual

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

func addSkins(p *pass) error {
	if !p.on(FlagSkin) || !p.shows(scene.CatDynamic) {
		return nil
	}
	for i := range p.m.Skins {
		skin := &p.m.Skins[i]
		g := p.newGeom(sim.ObjSkin, i, scene.CatDynamic)
		g.Type = sim.GeomSkin
		g.DataID = i
		if len(skin.Bones) > 0 {
			g.Pos = math.FromVec64(p.d.XPos[skin.Bones[0].BodyID])
		}
		setMaterial(p.m, p.opt, &g, skin.MatID, skin.RGBA)
		if p.pert.SkinSelect == i {
			markSelected(&p.m.Visual, &g)
		}
		g.TexCoord = skin.TexCoord
		if g.RGBA[3] == 0 {
			continue
		}
		if p.opt.Label == LabelSkin {
			g.Label = p.label(sim.ObjSkin, i)
		}
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// inertiaBox returns the half-sizes of the uniform box with the given mass
// and principal moments of inertia.
func inertiaBox(mass float64, inertia mgl64.Vec3, scaleDensity bool) mgl64.Vec3 {
	var sz mgl64.Vec3
	for k := 0; k < 3; k++ {
		a, b := inertia[(k+1)%3], inertia[(k+2)%3]
		sz[k] = gomath.Sqrt((a+b-inertia[k])*6/mass) / 2
	}
	if scaleDensity {
		// box of density 1000 keeps its size
		density := mass / gomath.Max(sim.MinVal, 8*sz[0]*sz[1]*sz[2])
		sz = sz.Mul(gomath.Pow(density*0.001, 1.0/3.0))
	}
	return sz
}

func addInertia(p *pass) error {
	if !p.on(FlagInertia) {
		return nil
	}
	for i := 1; i < len(p.m.Bodies); i++ {
		body := &p.m.Bodies[i]
		cat := p.bodyCategory(i)
		if body.Mass <= sim.MinVal || !p.shows(cat) {
			continue
		}
		sz := inertiaBox(body.Mass, body.Inertia, p.on(FlagSclInertia))
		rgba := p.m.Visual.RGBA.Inertia
		g := scene.InitGeom(sim.GeomBox, &sz, &p.d.XIPos[i], &p.d.XIMat[i], &rgba)
		g.ObjType, g.ObjID, g.Category = sim.ObjBody, i, cat
		if p.pert.Select == i {
			markSelected(&p.m.Visual, &g)
		}
		if p.opt.Label == LabelBody || (p.opt.Label == LabelSelection && p.pert.Select == i) {
			g.Label = p.label(sim.ObjBody, i)
		}
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

func addPerturb(p *pass) error {
	sel := p.pert.Select
	if !p.on(FlagPertObj) || !p.shows(scene.CatDecor) || sel <= 0 {
		return nil
	}
	vis := &p.m.Visual
	refMat := p.pert.RefQuat.Mat4().Mat3()

	if first, second, active := p.pert.hands(PertTranslate); active {
		width := p.scl * vis.Scale.Constraint
		rgba := mixColor(vis.RGBA.Constraint, first, second)

		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, sim.GeomCapsule, width, p.d.XIPos[sel], p.pert.RefPos)
		g.RGBA = rgba
		if !p.add(g) {
			return nil
		}

		sz := mgl64.Vec3{2 * width, 2 * width, 2 * width}
		g = scene.InitGeom(sim.GeomSphere, &sz, &p.pert.RefPos, &refMat, &rgba)
		g.ObjID, g.Category = -1, scene.CatDecor
		if !p.add(g) {
			return nil
		}
	}

	if first, second, active := p.pert.hands(PertRotate); active {
		rgba := mixColor(vis.RGBA.Inertia, first, second)
		sz := mgl64.Vec3{p.scl, p.scl, p.scl}
		g := scene.InitGeom(sim.GeomBox, &sz, &p.d.XIPos[sel], &refMat, &rgba)
		g.ObjID, g.Category = -1, scene.CatDecor
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// addBodyFrames draws the world frame (doubled size) or every body frame.
func addBodyFrames(p *pass) error {
	if !p.shows(scene.CatDecor) {
		return nil
	}
	vs := &p.m.Visual.Scale
	switch p.opt.Frame {
	case FrameWorld:
		p.addFrame(p.d.XPos[0], p.d.XMat[0], 2*vs.FrameLength*p.scl, 2*vs.FrameWidth*p.scl)
	case FrameBody:
		for i := 1; i < len(p.m.Bodies); i++ {
			if !p.shows(p.bodyCategory(i)) {
				continue
			}
			if !p.addFrame(p.d.XPos[i], p.d.XMat[i], vs.FrameLength*p.scl, vs.FrameWidth*p.scl) {
				return nil
			}
		}
	}
	return nil
}

func addSelection(p *pass) error {
	sel := p.pert.Select
	if !p.shows(scene.CatDecor) || sel <= 0 || !p.on(FlagSelect) {
		return nil
	}
	pos := p.d.XMat[sel].Mul3x1(p.pert.LocalPos).Add(p.d.XPos[sel])

	g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
	g.Type = sim.GeomSphere
	r := float32(p.scl * p.m.Visual.Scale.SelectPoint)
	g.Size = math.Vec3{X: r, Y: r, Z: r}
	g.Pos = math.FromVec64(pos)
	g.RGBA = p.m.Visual.RGBA.SelectPoint
	if p.opt.Label == LabelSelPnt {
		lp := p.pert.LocalPos
		g.SetLabel(fmt.Sprintf("%.3f %.3f %.3f (local %.3f %.3f %.3f)",
			pos[0], pos[1], pos[2], lp[0], lp[1], lp[2]))
	}
	p.add(g)
	return nil
}

// addBodyLabels labels bodies with a bare label geom when no inertia box
// carries the label.
func addBodyLabels(p *pass) error {
	lbl := p.opt.Label
	if !p.shows(scene.CatDecor) || (lbl != LabelSelection && lbl != LabelBody) || p.on(FlagInertia) {
		return nil
	}
	for i := 1; i < len(p.m.Bodies); i++ {
		if lbl == LabelSelection && p.pert.Select != i {
			continue
		}
		if !p.shows(p.bodyCategory(i)) {
			continue
		}
		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		g.Type = sim.GeomLabel
		g.Pos = math.FromVec64(p.d.XIPos[i])
		g.Mat = math.FromMat64(p.d.XIMat[i])
		g.Label = p.label(sim.ObjBody, i)
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// addCOM marks the subtree center of mass of every root body.
func addCOM(p *pass) error {
	if !p.on(FlagCOM) || !p.shows(scene.CatDecor) {
		return nil
	}
	r := float32(p.scl * p.m.Visual.Scale.Com)
	for i := 1; i < len(p.m.Bodies); i++ {
		if p.m.Bodies[i].RootID != i {
			continue
		}
		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		g.Type = sim.GeomSphere
		g.Size = math.Vec3{X: r, Y: r, Z: r}
		g.Pos = math.FromVec64(p.d.SubtreeCOM[i])
		g.RGBA = p.m.Visual.RGBA.Com
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// addAutoConnect chains each body's center of mass through its joint
// anchors, last joint first, to the parent's center of mass.
func addAutoConnect(p *pass) error {
	if !p.on(FlagAutoConnect) || !p.shows(scene.CatDecor) {
		return nil
	}
	width := p.scl * p.m.Visual.Scale.Connect
	link := func(a, b mgl64.Vec3) bool {
		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, sim.GeomCapsule, width, a, b)
		g.RGBA = p.m.Visual.RGBA.Connect
		return p.add(g)
	}

	for i := 1; i < len(p.m.Bodies); i++ {
		body := &p.m.Bodies[i]
		if body.ParentID == 0 {
			continue
		}
		cur := p.d.XIPos[i]
		for j := body.JntAdr + body.JntNum - 1; j >= body.JntAdr; j-- {
			nxt := p.d.XAnchor[j]
			if !link(cur, nxt) {
				return nil
			}
			cur = nxt
		}
		if !link(cur, p.d.XIPos[body.ParentID]) {
			return nil
		}
	}
	return nil
}

// addExternalForces draws the force part of every nonzero applied wrench.
func addExternalForces(p *pass) error {
	if !p.shows(scene.CatDecor) || !p.on(FlagPertForce) {
		return nil
	}
	vis := &p.m.Visual
	for i := 1; i < len(p.m.Bodies); i++ {
		xfrc := p.d.XfrcApplied[i]
		frc := mgl64.Vec3{xfrc[0], xfrc[1], xfrc[2]}
		if frc.Len() <= sim.MinVal {
			continue
		}
		pos := p.d.XIPos[i]
		vec := frc.Mul(vis.Map.Force / p.m.Stat.MeanMass)

		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, sim.GeomArrow, vis.Scale.ForceWidth*p.scl, pos, pos.Add(vec))
		g.RGBA = vis.RGBA.Force
		if !p.add(g) {
			return nil
		}
	}
	return nil
}
