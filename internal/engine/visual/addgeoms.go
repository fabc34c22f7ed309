package visual

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/internal/logger"
	"github.com/Faultbox/simvis/pkg/sim"
)

// ErrJointType is returned for a joint whose kind cannot be drawn.
var ErrJointType = errors.New("unknown joint type")

// pass carries the inputs of one AddGeoms call through its steps.
type pass struct {
	m       *sim.Model
	d       *sim.State
	opt     *Option
	pert    *Perturb
	catmask scene.Category
	scn     *scene.Scene
	scl     float64 // mean body size
	full    bool
}

// step emits the geoms of one entity category. It stops at the first
// geom that does not fit.
type step struct {
	name string
	emit func(p *pass) error
}

var steps = []step{
	{"skin", addSkins},
	{"inertia", addInertia},
	{"perturb", addPerturb},
	{"frame", addBodyFrames},
	{"selection", addSelection},
	{"bodylabel", addBodyLabels},
	{"joint", addJoints},
	{"actuator", addActuators},
	{"geom", addModelGeoms},
	{"site", addSites},
	{"camera", addCameras},
	{"light", addLights},
	{"tendon", addTendons},
	{"slidercrank", addSliderCranks},
	{"com", addCOM},
	{"autoconnect", addAutoConnect},
	{"rangefinder", addRangefinders},
	{"force", addExternalForces},
	{"constraint", addConstraints},
	{"contact", addContacts},
}

// AddGeoms clears the geoms of scn and fills them with every enabled
// category in catmask. A category that runs out of room is logged once and
// skipped; its name is returned in the overflow list. A nil pert means
// nothing is selected.
func AddGeoms(m *sim.Model, d *sim.State, opt *Option, pert *Perturb, catmask scene.Category, scn *scene.Scene) ([]string, error) {
	if pert == nil {
		def := DefaultPerturb()
		pert = &def
	}
	scn.Geoms = scn.Geoms[:0]
	if !opt.Flags[FlagStatic] {
		catmask &^= scene.CatStatic
	}

	p := &pass{
		m:       m,
		d:       d,
		opt:     opt,
		pert:    pert,
		catmask: catmask,
		scn:     scn,
		scl:     m.Stat.MeanSize,
	}

	var overflow []string
	for _, s := range steps {
		p.full = false
		if err := s.emit(p); err != nil {
			return overflow, err
		}
		if p.full {
			logger.Warn("scene geom buffer full",
				zap.String("category", s.name),
				zap.Int("capacity", scn.MaxGeom))
			overflow = append(overflow, s.name)
		}
	}
	return overflow, nil
}

func (p *pass) on(f Flag) bool {
	return p.opt.Flags[f]
}

func (p *pass) shows(cat scene.Category) bool {
	return p.catmask&cat != 0
}

func (p *pass) bodyCategory(body int) scene.Category {
	if p.m.BodyStatic(body) {
		return scene.CatStatic
	}
	return scene.CatDynamic
}

// newGeom starts a geom with default appearance and the given back-reference.
func (p *pass) newGeom(obj sim.ObjType, id int, cat scene.Category) scene.Geom {
	g := scene.DefaultGeom()
	g.ObjType = obj
	g.ObjID = id
	g.Category = cat
	return g
}

// add appends g, recording overflow when the buffer is full.
func (p *pass) add(g scene.Geom) bool {
	if !p.scn.AddGeom(g) {
		p.full = true
		return false
	}
	return true
}

func (p *pass) label(obj sim.ObjType, id int) string {
	return makeLabel(p.m, obj, id)
}

// addFrame draws the three axes of a frame as red, green and blue cylinders.
func (p *pass) addFrame(pos mgl64.Vec3, mat mgl64.Mat3, length, width float64) bool {
	for j := 0; j < 3; j++ {
		g := p.newGeom(sim.ObjUnknown, -1, scene.CatDecor)
		scene.MakeConnector(&g, sim.GeomCylinder, width, pos, pos.Add(mat.Col(j).Mul(length)))
		g.RGBA = [4]float32{0, 0, 0, 1}
		g.RGBA[j] = 0.9
		if !p.add(g) {
			return false
		}
	}
	return true
}

// addEntityFrame draws a regular-size frame when frame display targets kind.
func (p *pass) addEntityFrame(kind Frame, pos mgl64.Vec3, mat mgl64.Mat3) bool {
	if !p.shows(scene.CatDecor) || p.opt.Frame != kind {
		return true
	}
	vs := &p.m.Visual.Scale
	return p.addFrame(pos, mat, vs.FrameLength*p.scl, vs.FrameWidth*p.scl)
}
