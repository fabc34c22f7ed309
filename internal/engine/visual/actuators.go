package visual

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

func addJoints(p *pass) error {
	if !p.on(FlagJoint) || !p.shows(scene.CatDecor) {
		return nil
	}
	vs := &p.m.Visual.Scale
	length := vs.JointLength * p.scl
	width := vs.JointWidth * p.scl

	for i := range p.m.Joints {
		jnt := &p.m.Joints[i]
		if !p.opt.JointGroup.Enabled(jnt.Group) {
			continue
		}
		g := p.newGeom(sim.ObjJoint, i, scene.CatDecor)
		anchor := p.d.XAnchor[i]

		switch jnt.Type {
		case sim.JointFree, sim.JointBall:
			g.Type = sim.GeomBox
			if jnt.Type == sim.JointBall {
				g.Type = sim.GeomSphere
			}
			s := float32(0.3 * length)
			g.Size = math.Vec3{X: s, Y: s, Z: s}
			g.Pos = math.FromVec64(anchor)
			g.Mat = math.FromMat64(p.d.XMat[jnt.BodyID])
		case sim.JointSlide, sim.JointHinge:
			scene.MakeConnector(&g, jointArrow(jnt.Type), width, anchor, anchor.Add(p.d.XAxis[i].Mul(length)))
		default:
			return fmt.Errorf("%w: joint %d has type %v", ErrJointType, i, jnt.Type)
		}

		g.RGBA = p.m.Visual.RGBA.Joint
		if p.opt.Label == LabelJoint {
			g.Label = p.label(sim.ObjJoint, i)
		}
		if !p.add(g) {
			return nil
		}
	}
	return nil
}

// jointArrow is a plain arrow for slide joints and a one-sided arrow for hinges.
func jointArrow(t sim.JointType) sim.GeomType {
	if t == sim.JointSlide {
		return sim.GeomArrow
	}
	return sim.GeomArrow1
}

// actuatorRange extends the actuator's range to three breakpoints
// (negative, neutral, positive) with nonzero spans.
func actuatorRange(a *sim.Actuator, activation bool) [3]float64 {
	rmin, rmax := -1.0, 1.0
	if a.CtrlLimited {
		rmin, rmax = a.CtrlRange[0], a.CtrlRange[1]
	} else if activation && a.ActLimited {
		rmin, rmax = a.ActRange[0], a.ActRange[1]
	}

	var rng [3]float64
	switch {
	case rmin >= 0:
		rng = [3]float64{-1, rmin, rmax}
	case rmax <= 0:
		rng = [3]float64{rmin, rmax, 1}
	default:
		rng = [3]float64{rmin, 0, rmax}
	}

	if rng[1]-rng[0] < sim.MinVal {
		rng[0] = rng[1] - sim.MinVal
	}
	if rng[2]-rng[1] < sim.MinVal {
		rng[2] = rng[1] + sim.MinVal
	}
	return rng
}

// actuatorColor blends the negative, neutral and positive palette entries
// according to where value falls in rng.
func actuatorColor(vis *sim.Visual, rng [3]float64, value float64) [4]float32 {
	act := gomath.Min(rng[2], gomath.Max(rng[0], value))

	var amin, amean, amax float32
	if act <= rng[1] {
		amin = float32((rng[1] - act) / gomath.Max(sim.MinVal, rng[1]-rng[0]))
		amean = 1 - amin
	} else {
		amax = float32((act - rng[1]) / gomath.Max(sim.MinVal, rng[2]-rng[1]))
		amean = 1 - amax
	}

	var rgba [4]float32
	for j := range rgba {
		rgba[j] = amin*vis.RGBA.ActuatorNegative[j] +
			amean*vis.RGBA.Actuator[j] +
			amax*vis.RGBA.ActuatorPositive[j]
	}
	return rgba
}

// actuatorValue is the activation when shown and available, the control otherwise.
func (p *pass) actuatorValue(i int) float64 {
	a := &p.m.Actuators[i]
	if p.on(FlagActivation) && a.DynType != sim.DynNone && a.ActAdr >= 0 {
		return p.d.Act[a.ActAdr]
	}
	return p.d.Ctrl[i]
}

func addActuators(p *pass) error {
	if !p.on(FlagActuator) || !p.shows(scene.CatDecor) {
		return nil
	}
	vis := &p.m.Visual

	for i := range p.m.Actuators {
		act := &p.m.Actuators[i]
		if !p.opt.ActuatorGroup.Enabled(act.Group) {
			continue
		}
		rgba := actuatorColor(vis, actuatorRange(act, p.on(FlagActivation)), p.actuatorValue(i))
		j := act.TrnID[0]

		switch act.TrnType {
		case sim.TrnJoint, sim.TrnJointInParent:
			jt := p.m.Joints[j].Type
			if jt != sim.JointHinge && jt != sim.JointSlide {
				continue
			}
			length := vis.Scale.ActuatorLength * p.scl
			anchor := p.d.XAnchor[j]

			g := p.newGeom(sim.ObjActuator, i, scene.CatDecor)
			scene.MakeConnector(&g, jointArrow(jt), vis.Scale.ActuatorWidth*p.scl,
				anchor, anchor.Add(p.d.XAxis[j].Mul(length)))
			g.RGBA = rgba
			if p.opt.Label == LabelActuator {
				g.Label = p.label(sim.ObjActuator, i)
			}
			if !p.add(g) {
				return nil
			}

		case sim.TrnSite:
			site := &p.m.Sites[j]
			g := p.newGeom(sim.ObjActuator, i, scene.CatDecor)
			g.Type = site.Type
			g.SetSize(site.Size.Mul(1.1))
			g.Pos = math.FromVec64(p.d.SiteXPos[j])
			g.Mat = math.FromMat64(p.d.SiteXMat[j])
			g.RGBA = rgba
			if p.opt.Label == LabelActuator {
				g.Label = p.label(sim.ObjActuator, i)
			}
			if !p.add(g) {
				return nil
			}

		case sim.TrnTendon:
			ten := &p.m.Tendons[j]
			ok := p.eachTendonSegment(j, func(first bool, width float64, a, b mgl64.Vec3) bool {
				g := p.newGeom(sim.ObjActuator, i, scene.CatDecor)
				scene.MakeConnector(&g, sim.GeomCapsule, width*vis.Map.ActuatorTendon, a, b)
				setMaterial(p.m, p.opt, &g, ten.MatID, ten.RGBA)
				g.RGBA = rgba
				if p.opt.Label == LabelActuator && first {
					g.Label = p.label(sim.ObjActuator, i)
				}
				return p.add(g)
			})
			if !ok {
				return nil
			}
		}
	}
	return nil
}

// eachTendonSegment calls fn for every drawable segment of tendon i, with
// the tendon width halved for segments inside a wrapping object. Segments
// touching a pulley break are skipped. It stops when fn returns false.
func (p *pass) eachTendonSegment(i int, fn func(first bool, width float64, a, b mgl64.Vec3) bool) bool {
	d := p.d
	adr, num := d.TenWrapAdr[i], d.TenWrapNum[i]
	for k := adr; k < adr+num-1; k++ {
		o0, o1 := d.WrapObj[k], d.WrapObj[k+1]
		if o0 == sim.WrapPulley || o1 == sim.WrapPulley {
			continue
		}
		width := p.m.Tendons[i].Width
		if o0 >= 0 && o1 >= 0 {
			width *= 0.5
		}
		if !fn(k == adr, width, d.WrapXPos[k], d.WrapXPos[k+1]) {
			return false
		}
	}
	return true
}

func addTendons(p *pass) error {
	if !p.on(FlagTendon) || !p.shows(scene.CatDynamic) {
		return nil
	}
	for i := range p.m.Tendons {
		ten := &p.m.Tendons[i]
		if !p.opt.TendonGroup.Enabled(ten.Group) {
			continue
		}
		ok := p.eachTendonSegment(i, func(first bool, width float64, a, b mgl64.Vec3) bool {
			g := p.newGeom(sim.ObjTendon, i, scene.CatDynamic)
			scene.MakeConnector(&g, sim.GeomCapsule, width, a, b)
			setMaterial(p.m, p.opt, &g, ten.MatID, ten.RGBA)
			if p.opt.Label == LabelTendon && first {
				g.Label = p.label(sim.ObjTendon, i)
			}
			return p.add(g)
		})
		if !ok {
			return nil
		}
	}
	return nil
}

// addSliderCranks draws the slider and the crank rod of every slider-crank
// actuator. The rod end is where a circle of the rod length around the
// crank pin meets the slider axis.
func addSliderCranks(p *pass) error {
	if !p.shows(scene.CatDynamic) {
		return nil
	}
	vis := &p.m.Visual
	for i := range p.m.Actuators {
		act := &p.m.Actuators[i]
		if act.TrnType != sim.TrnSliderCrank {
			continue
		}
		crank, slider := act.TrnID[0], act.TrnID[1]
		rod := act.CrankLength
		axis := p.d.SiteXMat[slider].Col(2)
		base := p.d.SiteXPos[slider]

		vec := p.d.SiteXPos[crank].Sub(base)
		length := vec.Dot(axis)
		det := length*length + rod*rod - vec.Dot(vec)
		broken := false
		if det < 0 {
			det = 0
			broken = true
		}
		length -= gomath.Sqrt(det)
		end := base.Add(axis.Mul(length))

		g := p.newGeom(sim.ObjActuator, i, scene.CatDynamic)
		scene.MakeConnector(&g, sim.GeomCylinder, p.scl*vis.Scale.SliderCrank, base, end)
		g.RGBA = vis.RGBA.SliderCrank
		if p.opt.Label == LabelActuator {
			g.Label = p.label(sim.ObjActuator, i)
		}
		if !p.add(g) {
			return nil
		}

		g = p.newGeom(sim.ObjActuator, i, scene.CatDynamic)
		scene.MakeConnector(&g, sim.GeomCapsule, p.scl*vis.Scale.SliderCrank/2, end, p.d.SiteXPos[crank])
		g.RGBA = vis.RGBA.SliderCrank
		if broken {
			g.RGBA = vis.RGBA.CrankBroken
		}
		if !p.add(g) {
			return nil
		}
	}
	return nil
}
