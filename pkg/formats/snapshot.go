package formats

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/simvis/pkg/sim"
)

// ErrSnapshot is returned for snapshot documents that cannot be turned
// into a consistent model and state.
var ErrSnapshot = errors.New("invalid snapshot")

// Snapshot is a model together with the state of one simulation step.
type Snapshot struct {
	Model *sim.Model
	State *sim.State
}

// Pose is a position and orientation relative to the parent body.
type Pose struct {
	Pos  [3]float64  `yaml:"pos"`
	Quat *[4]float64 `yaml:"quat"` // w x y z, identity when omitted
}

func (p Pose) quat() mgl64.Quat {
	if p.Quat == nil {
		return mgl64.QuatIdent()
	}
	q := mgl64.Quat{W: p.Quat[0], V: mgl64.Vec3{p.Quat[1], p.Quat[2], p.Quat[3]}}
	if q.Len() < sim.MinVal {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

type statDoc struct {
	MeanMass float64     `yaml:"meanmass"`
	MeanSize float64     `yaml:"meansize"`
	Extent   float64     `yaml:"extent"`
	Center   *[3]float64 `yaml:"center"`
}

type materialDoc struct {
	Name        string     `yaml:"name"`
	Texture     int        `yaml:"texture"`
	TexRepeat   [2]float32 `yaml:"texrepeat"`
	TexUniform  bool       `yaml:"texuniform"`
	Emission    float32    `yaml:"emission"`
	Specular    float32    `yaml:"specular"`
	Shininess   float32    `yaml:"shininess"`
	Reflectance float32    `yaml:"reflectance"`
	RGBA        [4]float32 `yaml:"rgba"`
}

func (d *materialDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain materialDoc
	*d = materialDoc{
		Texture:   -1,
		TexRepeat: [2]float32{1, 1},
		Specular:  0.5,
		Shininess: 0.5,
		RGBA:      [4]float32{1, 1, 1, 1},
	}
	return n.Decode((*plain)(d))
}

type meshDoc struct {
	Name     string `yaml:"name"`
	TexCoord bool   `yaml:"texcoord"`
	Hull     bool   `yaml:"hull"`
}

type jointDoc struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type"`
	Group int         `yaml:"group"`
	Pos   [3]float64  `yaml:"pos"`
	Axis  *[3]float64 `yaml:"axis"` // z when omitted
}

type bodyDoc struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent"` // world when empty
	Mocap    bool       `yaml:"mocap"`
	Mass     float64    `yaml:"mass"`
	Inertia  [3]float64 `yaml:"inertia"`
	Pose     Pose       `yaml:",inline"`
	Inertial Pose       `yaml:"inertial"`
	Joints   []jointDoc `yaml:"joints"`
	Force    [6]float64 `yaml:"force"`
}

type geomDoc struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Body     string     `yaml:"body"`
	Group    int        `yaml:"group"`
	Size     [3]float64 `yaml:"size"`
	RGBA     [4]float32 `yaml:"rgba"`
	Material string     `yaml:"material"`
	Mesh     string     `yaml:"mesh"`
	RBound   float64    `yaml:"rbound"`
	Pose     Pose       `yaml:",inline"`
}

func (d *geomDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain geomDoc
	*d = geomDoc{Type: "sphere", RGBA: [4]float32{0.5, 0.5, 0.5, 1}}
	return n.Decode((*plain)(d))
}

type cameraDoc struct {
	Name string  `yaml:"name"`
	Body string  `yaml:"body"`
	FovY float64 `yaml:"fovy"`
	IPD  float64 `yaml:"ipd"`
	Pose Pose    `yaml:",inline"`
}

func (d *cameraDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain cameraDoc
	*d = cameraDoc{FovY: 45, IPD: 0.068}
	return n.Decode((*plain)(d))
}

type lightDoc struct {
	Name        string     `yaml:"name"`
	Body        string     `yaml:"body"`
	Active      bool       `yaml:"active"`
	Directional bool       `yaml:"directional"`
	CastShadow  bool       `yaml:"castshadow"`
	Pos         [3]float64 `yaml:"pos"`
	Dir         [3]float64 `yaml:"dir"`
	Attenuation [3]float32 `yaml:"attenuation"`
	Cutoff      float32    `yaml:"cutoff"`
	Exponent    float32    `yaml:"exponent"`
	Ambient     [3]float32 `yaml:"ambient"`
	Diffuse     [3]float32 `yaml:"diffuse"`
	Specular    [3]float32 `yaml:"specular"`
}

func (d *lightDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain lightDoc
	*d = lightDoc{
		Active:      true,
		CastShadow:  true,
		Dir:         [3]float64{0, 0, -1},
		Attenuation: [3]float32{1, 0, 0},
		Cutoff:      45,
		Exponent:    10,
		Diffuse:     [3]float32{0.7, 0.7, 0.7},
		Specular:    [3]float32{0.3, 0.3, 0.3},
	}
	return n.Decode((*plain)(d))
}

type wrapDoc struct {
	Pos  [3]float64 `yaml:"pos"` // world frame
	Wrap string     `yaml:"wrap"`
}

type tendonDoc struct {
	Name     string     `yaml:"name"`
	Group    int        `yaml:"group"`
	Width    float64    `yaml:"width"`
	Material string     `yaml:"material"`
	RGBA     [4]float32 `yaml:"rgba"`
	Path     []wrapDoc  `yaml:"path"`
}

func (d *tendonDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain tendonDoc
	*d = tendonDoc{Width: 0.003, RGBA: [4]float32{0.5, 0.5, 0.5, 1}}
	return n.Decode((*plain)(d))
}

type actuatorDoc struct {
	Name        string      `yaml:"name"`
	Group       int         `yaml:"group"`
	Trn         string      `yaml:"trn"`
	Target      string      `yaml:"target"`
	Slider      string      `yaml:"slider"` // slider site of a slider-crank
	Dyn         string      `yaml:"dyn"`
	CtrlRange   *[2]float64 `yaml:"ctrlrange"` // limited when present
	ActRange    *[2]float64 `yaml:"actrange"`
	CrankLength float64     `yaml:"cranklength"`
	Ctrl        float64     `yaml:"ctrl"`
	Act         float64     `yaml:"act"`
}

type equalityDoc struct {
	Name   string    `yaml:"name"`
	Type   string    `yaml:"type"`
	Obj1   string    `yaml:"obj1"`
	Obj2   string    `yaml:"obj2"`
	Active bool      `yaml:"active"`
	Data   []float64 `yaml:"data"`
}

func (d *equalityDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain equalityDoc
	*d = equalityDoc{Active: true}
	return n.Decode((*plain)(d))
}

type sensorDoc struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Object string  `yaml:"object"`
	Value  float64 `yaml:"value"`
}

type boneDoc struct {
	Body     string      `yaml:"body"`
	BindPos  [3]float64  `yaml:"bindpos"`
	BindQuat *[4]float64 `yaml:"bindquat"`
	Verts    []int32     `yaml:"verts"`
	Weights  []float32   `yaml:"weights"`
}

type skinDoc struct {
	Name     string     `yaml:"name"`
	Material string     `yaml:"material"`
	RGBA     [4]float32 `yaml:"rgba"`
	Inflate  float32    `yaml:"inflate"`
	TexCoord bool       `yaml:"texcoord"`
	Vert     []float32  `yaml:"vert"`
	Face     []int32    `yaml:"face"`
	Bones    []boneDoc  `yaml:"bones"`
}

func (d *skinDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain skinDoc
	*d = skinDoc{RGBA: [4]float32{0.5, 0.5, 0.5, 1}}
	return n.Decode((*plain)(d))
}

type contactDoc struct {
	Pos      [3]float64 `yaml:"pos"`
	Normal   [3]float64 `yaml:"normal"`
	Dist     float64    `yaml:"dist"`
	Dim      int        `yaml:"dim"`
	Geom1    string     `yaml:"geom1"`
	Geom2    string     `yaml:"geom2"`
	Excluded bool       `yaml:"excluded"`
	Equality string     `yaml:"equality"` // distance constraint drawn through this entry
	Force    []float64  `yaml:"force"`
}

func (d *contactDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain contactDoc
	*d = contactDoc{Normal: [3]float64{0, 0, 1}, Dim: 3}
	return n.Decode((*plain)(d))
}

type snapshotDoc struct {
	Statistic  statDoc       `yaml:"statistic"`
	Visual     yaml.Node     `yaml:"visual"`
	Materials  []materialDoc `yaml:"materials"`
	Meshes     []meshDoc     `yaml:"meshes"`
	Bodies     []bodyDoc     `yaml:"bodies"`
	Geoms      []geomDoc     `yaml:"geoms"`
	Sites      []geomDoc     `yaml:"sites"`
	Cameras    []cameraDoc   `yaml:"cameras"`
	Lights     []lightDoc    `yaml:"lights"`
	Tendons    []tendonDoc   `yaml:"tendons"`
	Actuators  []actuatorDoc `yaml:"actuators"`
	Equalities []equalityDoc `yaml:"equalities"`
	Sensors    []sensorDoc   `yaml:"sensors"`
	Skins      []skinDoc     `yaml:"skins"`
	Contacts   []contactDoc  `yaml:"contacts"`
}

// ParseSnapshot parses a YAML snapshot document. Bodies are listed
// parents first and refer to their parent by name; poses are given
// relative to the parent body and converted to world coordinates.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	b := &builder{doc: &doc}
	if err := b.buildModel(); err != nil {
		return nil, err
	}
	if err := b.m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	if err := b.buildState(); err != nil {
		return nil, err
	}
	b.statistic()
	if err := b.d.Validate(b.m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	return &Snapshot{Model: b.m, State: b.d}, nil
}

// ParseSnapshotFile reads and parses a snapshot file.
func ParseSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return ParseSnapshot(data)
}

type builder struct {
	doc *snapshotDoc
	m   *sim.Model
	d   *sim.State
}

// lookup resolves an entity name. An empty name yields none, which is -1
// or the world body for bodies.
func (b *builder) lookup(obj sim.ObjType, name string) (int, error) {
	if name == "" {
		if obj == sim.ObjBody {
			return 0, nil
		}
		return -1, nil
	}
	if id := b.m.ID(obj, name); id >= 0 {
		return id, nil
	}
	return -1, fmt.Errorf("%w: unknown %s %q", ErrSnapshot, obj, name)
}

// require is lookup for references that must name an entity.
func (b *builder) require(obj sim.ObjType, name, owner string) (int, error) {
	if name == "" {
		return -1, fmt.Errorf("%w: %s needs a %s", ErrSnapshot, owner, obj)
	}
	return b.lookup(obj, name)
}

func typeError(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSnapshot, what, err)
}

func (b *builder) buildModel() error {
	doc := b.doc
	m := &sim.Model{
		Bodies: []sim.Body{{Name: "world", MocapID: -1}},
		Visual: sim.DefaultVisual(),
	}
	b.m = m

	if !doc.Visual.IsZero() {
		if err := doc.Visual.Decode(&m.Visual); err != nil {
			return fmt.Errorf("%w: visual: %w", ErrSnapshot, err)
		}
	}

	for _, md := range doc.Materials {
		m.Materials = append(m.Materials, sim.Material{
			Name:        md.Name,
			TexID:       md.Texture,
			TexUniform:  md.TexUniform,
			TexRepeat:   md.TexRepeat,
			Emission:    md.Emission,
			Specular:    md.Specular,
			Shininess:   md.Shininess,
			Reflectance: md.Reflectance,
			RGBA:        md.RGBA,
		})
	}
	for _, md := range doc.Meshes {
		mesh := sim.Mesh{Name: md.Name, TexCoordAdr: -1, GraphAdr: -1}
		if md.TexCoord {
			mesh.TexCoordAdr = 0
		}
		if md.Hull {
			mesh.GraphAdr = 0
		}
		m.Meshes = append(m.Meshes, mesh)
	}

	if err := b.buildBodies(); err != nil {
		return err
	}
	if err := b.buildGeoms(); err != nil {
		return err
	}
	if err := b.buildFixtures(); err != nil {
		return err
	}
	if err := b.buildActuators(); err != nil {
		return err
	}
	if err := b.buildEqualities(); err != nil {
		return err
	}
	if err := b.buildSensors(); err != nil {
		return err
	}
	return b.buildSkins()
}

func (b *builder) buildBodies() error {
	m := b.m
	nmocap := 0
	for _, bd := range b.doc.Bodies {
		if bd.Name == "" || bd.Name == "world" {
			return fmt.Errorf("%w: body needs a name other than world", ErrSnapshot)
		}
		if m.ID(sim.ObjBody, bd.Name) >= 0 {
			return fmt.Errorf("%w: duplicate body %q", ErrSnapshot, bd.Name)
		}
		parent, err := b.lookup(sim.ObjBody, bd.Parent)
		if err != nil {
			return err
		}
		id := len(m.Bodies)

		body := sim.Body{
			Name:     bd.Name,
			ParentID: parent,
			RootID:   id,
			WeldID:   id,
			MocapID:  -1,
			JntAdr:   len(m.Joints),
			JntNum:   len(bd.Joints),
			Mass:     bd.Mass,
			Inertia:  mgl64.Vec3(bd.Inertia),
		}
		if parent != 0 {
			body.RootID = m.Bodies[parent].RootID
		}
		if bd.Mocap {
			body.MocapID = nmocap
			nmocap++
		} else if len(bd.Joints) == 0 {
			body.WeldID = m.Bodies[parent].WeldID
		}

		for _, jd := range bd.Joints {
			typ, err := sim.ParseJointType(jd.Type)
			if err != nil {
				return typeError("joint "+jd.Name, err)
			}
			m.Joints = append(m.Joints, sim.Joint{Name: jd.Name, Type: typ, BodyID: id, Group: jd.Group})
		}
		m.Bodies = append(m.Bodies, body)
	}
	return nil
}

func (b *builder) buildGeoms() error {
	m := b.m
	for _, gd := range b.doc.Geoms {
		typ, err := sim.ParseGeomType(gd.Type)
		if err != nil {
			return typeError("geom "+gd.Name, err)
		}
		body, err := b.lookup(sim.ObjBody, gd.Body)
		if err != nil {
			return err
		}
		mat, err := b.lookup(sim.ObjMaterial, gd.Material)
		if err != nil {
			return err
		}
		mesh := -1
		if typ == sim.GeomMesh {
			if mesh, err = b.require(sim.ObjMesh, gd.Mesh, "mesh geom "+gd.Name); err != nil {
				return err
			}
		}
		m.Geoms = append(m.Geoms, sim.Geom{
			Name:   gd.Name,
			Type:   typ,
			BodyID: body,
			Group:  gd.Group,
			Size:   mgl64.Vec3(gd.Size),
			RGBA:   gd.RGBA,
			MatID:  mat,
			DataID: mesh,
			RBound: gd.RBound,
		})
	}

	for _, sd := range b.doc.Sites {
		typ, err := sim.ParseGeomType(sd.Type)
		if err != nil {
			return typeError("site "+sd.Name, err)
		}
		body, err := b.lookup(sim.ObjBody, sd.Body)
		if err != nil {
			return err
		}
		mat, err := b.lookup(sim.ObjMaterial, sd.Material)
		if err != nil {
			return err
		}
		m.Sites = append(m.Sites, sim.Site{
			Name:   sd.Name,
			Type:   typ,
			BodyID: body,
			Group:  sd.Group,
			Size:   mgl64.Vec3(sd.Size),
			RGBA:   sd.RGBA,
			MatID:  mat,
		})
	}
	return nil
}

// buildFixtures adds cameras, lights and tendons.
func (b *builder) buildFixtures() error {
	m := b.m
	for _, cd := range b.doc.Cameras {
		if _, err := b.lookup(sim.ObjBody, cd.Body); err != nil {
			return err
		}
		m.Cameras = append(m.Cameras, sim.Camera{Name: cd.Name, FovY: cd.FovY, IPD: cd.IPD})
	}
	for _, ld := range b.doc.Lights {
		if _, err := b.lookup(sim.ObjBody, ld.Body); err != nil {
			return err
		}
		m.Lights = append(m.Lights, sim.Light{
			Name:        ld.Name,
			Active:      ld.Active,
			Directional: ld.Directional,
			CastShadow:  ld.CastShadow,
			Attenuation: ld.Attenuation,
			Cutoff:      ld.Cutoff,
			Exponent:    ld.Exponent,
			Ambient:     ld.Ambient,
			Diffuse:     ld.Diffuse,
			Specular:    ld.Specular,
		})
	}
	for _, td := range b.doc.Tendons {
		mat, err := b.lookup(sim.ObjMaterial, td.Material)
		if err != nil {
			return err
		}
		m.Tendons = append(m.Tendons, sim.Tendon{
			Name:  td.Name,
			Group: td.Group,
			Width: td.Width,
			MatID: mat,
			RGBA:  td.RGBA,
		})
	}
	return nil
}

// transmissionTargets maps a transmission type to the kind of entity its
// target names.
var transmissionTargets = map[sim.TrnType]sim.ObjType{
	sim.TrnJoint:         sim.ObjJoint,
	sim.TrnJointInParent: sim.ObjJoint,
	sim.TrnSliderCrank:   sim.ObjSite,
	sim.TrnTendon:        sim.ObjTendon,
	sim.TrnSite:          sim.ObjSite,
	sim.TrnBody:          sim.ObjBody,
}

func (b *builder) buildActuators() error {
	m := b.m
	nact := 0
	for _, ad := range b.doc.Actuators {
		a := sim.Actuator{Name: ad.Name, Group: ad.Group, ActAdr: -1, TrnID: [2]int{-1, -1}, CrankLength: ad.CrankLength}

		trn := ad.Trn
		if trn == "" {
			trn = "joint"
		}
		var err error
		if a.TrnType, err = sim.ParseTrnType(trn); err != nil {
			return typeError("actuator "+ad.Name, err)
		}
		if a.TrnID[0], err = b.require(transmissionTargets[a.TrnType], ad.Target, "actuator "+ad.Name); err != nil {
			return err
		}
		if a.TrnType == sim.TrnSliderCrank {
			if a.TrnID[1], err = b.require(sim.ObjSite, ad.Slider, "slider-crank "+ad.Name); err != nil {
				return err
			}
		}

		if ad.Dyn != "" {
			if a.DynType, err = sim.ParseDynType(ad.Dyn); err != nil {
				return typeError("actuator "+ad.Name, err)
			}
		}
		if a.DynType != sim.DynNone {
			a.ActAdr = nact
			nact++
		}
		if ad.CtrlRange != nil {
			a.CtrlLimited, a.CtrlRange = true, *ad.CtrlRange
		}
		if ad.ActRange != nil {
			a.ActLimited, a.ActRange = true, *ad.ActRange
		}
		m.Actuators = append(m.Actuators, a)
	}
	return nil
}

// equalityTargets maps an equality type to the kind of entity it constrains.
var equalityTargets = map[sim.EqType]sim.ObjType{
	sim.EqConnect:  sim.ObjBody,
	sim.EqWeld:     sim.ObjBody,
	sim.EqJoint:    sim.ObjJoint,
	sim.EqTendon:   sim.ObjTendon,
	sim.EqDistance: sim.ObjGeom,
}

func (b *builder) buildEqualities() error {
	m := b.m
	for _, ed := range b.doc.Equalities {
		typ, err := sim.ParseEqType(ed.Type)
		if err != nil {
			return typeError("equality "+ed.Name, err)
		}
		if len(ed.Data) > sim.NumEqData {
			return fmt.Errorf("%w: equality %q has %d data values, at most %d",
				ErrSnapshot, ed.Name, len(ed.Data), sim.NumEqData)
		}
		eq := sim.Equality{Name: ed.Name, Type: typ, Active: ed.Active}
		copy(eq.Data[:], ed.Data)

		obj := equalityTargets[typ]
		if eq.Obj1ID, err = b.require(obj, ed.Obj1, "equality "+ed.Name); err != nil {
			return err
		}
		if eq.Obj2ID, err = b.lookup(obj, ed.Obj2); err != nil {
			return err
		}
		m.Equalities = append(m.Equalities, eq)
	}
	return nil
}

// sensorTargets maps a sensor type to the kind of entity it is attached
// to. Types missing here have no object.
var sensorTargets = map[sim.SensorType]sim.ObjType{
	sim.SensorTouch:         sim.ObjSite,
	sim.SensorAccelerometer: sim.ObjSite,
	sim.SensorVelocimeter:   sim.ObjSite,
	sim.SensorGyro:          sim.ObjSite,
	sim.SensorForce:         sim.ObjSite,
	sim.SensorTorque:        sim.ObjSite,
	sim.SensorRangefinder:   sim.ObjSite,
	sim.SensorJointPos:      sim.ObjJoint,
}

func (b *builder) buildSensors() error {
	m := b.m
	for i, sd := range b.doc.Sensors {
		typ, err := sim.ParseSensorType(sd.Type)
		if err != nil {
			return typeError("sensor "+sd.Name, err)
		}
		obj := -1
		if target, ok := sensorTargets[typ]; ok {
			if obj, err = b.require(target, sd.Object, "sensor "+sd.Name); err != nil {
				return err
			}
		}
		m.Sensors = append(m.Sensors, sim.Sensor{Name: sd.Name, Type: typ, ObjID: obj, Adr: i})
	}
	return nil
}

func (b *builder) buildSkins() error {
	m := b.m
	for _, kd := range b.doc.Skins {
		mat, err := b.lookup(sim.ObjMaterial, kd.Material)
		if err != nil {
			return err
		}
		skin := sim.Skin{
			Name:     kd.Name,
			MatID:    mat,
			RGBA:     kd.RGBA,
			Inflate:  kd.Inflate,
			TexCoord: kd.TexCoord,
			Vert:     kd.Vert,
			Face:     kd.Face,
		}
		for _, bd := range kd.Bones {
			body, err := b.require(sim.ObjBody, bd.Body, "skin bone")
			if err != nil {
				return err
			}
			skin.Bones = append(skin.Bones, sim.SkinBone{
				BodyID:      body,
				BindPos:     mgl64.Vec3(bd.BindPos),
				BindQuat:    Pose{Quat: bd.BindQuat}.quat(),
				VertIDs:     bd.Verts,
				VertWeights: bd.Weights,
			})
		}
		m.Skins = append(m.Skins, skin)
	}
	return nil
}

// frame is a world pose.
type frame struct {
	pos  mgl64.Vec3
	quat mgl64.Quat
}

func (f frame) compose(p Pose) frame {
	return frame{
		pos:  f.pos.Add(f.quat.Rotate(mgl64.Vec3(p.Pos))),
		quat: f.quat.Mul(p.quat()),
	}
}

func (f frame) mat() mgl64.Mat3 {
	return f.quat.Mat4().Mat3()
}

// buildState runs forward kinematics on the body tree and fills the
// remaining state from the document.
func (b *builder) buildState() error {
	m, doc := b.m, b.doc
	d := sim.NewState(m)
	b.d = d

	frames := make([]frame, len(m.Bodies))
	frames[0] = frame{quat: mgl64.QuatIdent()}
	for k, bd := range doc.Bodies {
		i := k + 1
		f := frames[m.Bodies[i].ParentID].compose(bd.Pose)
		frames[i] = f
		d.XPos[i], d.XQuat[i], d.XMat[i] = f.pos, f.quat, f.mat()

		inertial := f.compose(bd.Inertial)
		d.XIPos[i], d.XIMat[i] = inertial.pos, inertial.mat()
		d.XfrcApplied[i] = bd.Force

		for j, jd := range bd.Joints {
			jid := m.Bodies[i].JntAdr + j
			axis := mgl64.Vec3{0, 0, 1}
			if jd.Axis != nil {
				axis = mgl64.Vec3(*jd.Axis).Normalize()
			}
			d.XAnchor[jid] = f.pos.Add(f.quat.Rotate(mgl64.Vec3(jd.Pos)))
			d.XAxis[jid] = f.quat.Rotate(axis)
		}
	}
	subtreeCOM(m, d)

	for i, gd := range doc.Geoms {
		f := frames[m.Geoms[i].BodyID].compose(gd.Pose)
		d.GeomXPos[i], d.GeomXMat[i] = f.pos, f.mat()
	}
	for i, sd := range doc.Sites {
		f := frames[m.Sites[i].BodyID].compose(sd.Pose)
		d.SiteXPos[i], d.SiteXMat[i] = f.pos, f.mat()
	}
	for i, cd := range doc.Cameras {
		body, _ := b.lookup(sim.ObjBody, cd.Body)
		f := frames[body].compose(cd.Pose)
		d.CamXPos[i], d.CamXMat[i] = f.pos, f.mat()
	}
	for i, ld := range doc.Lights {
		body, _ := b.lookup(sim.ObjBody, ld.Body)
		f := frames[body]
		d.LightXPos[i] = f.pos.Add(f.quat.Rotate(mgl64.Vec3(ld.Pos)))
		d.LightXDir[i] = f.quat.Rotate(mgl64.Vec3(ld.Dir).Normalize())
	}

	for i, td := range doc.Tendons {
		d.TenWrapAdr[i] = len(d.WrapObj)
		d.TenWrapNum[i] = len(td.Path)
		for _, wd := range td.Path {
			obj, err := b.wrapObject(wd.Wrap)
			if err != nil {
				return err
			}
			d.WrapObj = append(d.WrapObj, obj)
			d.WrapXPos = append(d.WrapXPos, mgl64.Vec3(wd.Pos))
		}
	}

	for i, ad := range doc.Actuators {
		d.Ctrl[i] = ad.Ctrl
		if adr := m.Actuators[i].ActAdr; adr >= 0 {
			d.Act[adr] = ad.Act
		}
	}
	for i, sd := range doc.Sensors {
		d.SensorData[m.Sensors[i].Adr] = sd.Value
	}

	for _, cd := range doc.Contacts {
		con, err := b.contact(cd)
		if err != nil {
			return err
		}
		d.Contacts = append(d.Contacts, con)
	}
	return nil
}

func (b *builder) wrapObject(name string) (int, error) {
	switch name {
	case "", "site":
		return sim.WrapSite, nil
	case "pulley":
		return sim.WrapPulley, nil
	}
	return b.lookup(sim.ObjGeom, name)
}

func (b *builder) contact(cd contactDoc) (sim.Contact, error) {
	if len(cd.Force) > 6 {
		return sim.Contact{}, fmt.Errorf("%w: contact force has %d components", ErrSnapshot, len(cd.Force))
	}
	con := sim.Contact{
		Pos:   mgl64.Vec3(cd.Pos),
		Frame: contactFrame(mgl64.Vec3(cd.Normal)),
		Dist:  cd.Dist,
		Dim:   cd.Dim,
	}
	copy(con.Force[:], cd.Force)

	if cd.Equality != "" {
		eq, err := b.lookup(sim.ObjEquality, cd.Equality)
		if err != nil {
			return con, err
		}
		con.Exclude = sim.ContactExcludeConstraint
		con.EfcAddress = -eq - 2
		return con, nil
	}

	var err error
	if con.Geom1, err = b.require(sim.ObjGeom, cd.Geom1, "contact"); err != nil {
		return con, err
	}
	if con.Geom2, err = b.require(sim.ObjGeom, cd.Geom2, "contact"); err != nil {
		return con, err
	}
	if cd.Excluded {
		con.EfcAddress = -1
	}
	return con, nil
}

// contactFrame returns the frame with columns normal, t1, t2 where the
// tangents complete a right-handed basis.
func contactFrame(normal mgl64.Vec3) mgl64.Mat3 {
	if normal.Len() < sim.MinVal {
		normal = mgl64.Vec3{0, 0, 1}
	}
	normal = normal.Normalize()

	// cross with the axis least aligned with the normal
	k := 0
	for j := 1; j < 3; j++ {
		if gomath.Abs(normal[j]) < gomath.Abs(normal[k]) {
			k = j
		}
	}
	var axis mgl64.Vec3
	axis[k] = 1
	t1 := normal.Cross(axis).Normalize()
	t2 := normal.Cross(t1)
	return mgl64.Mat3FromCols(normal, t1, t2)
}

// subtreeCOM accumulates mass-weighted centers from the leaves up. A
// massless subtree keeps its body's center of mass.
func subtreeCOM(m *sim.Model, d *sim.State) {
	mass := make([]float64, len(m.Bodies))
	for i := range m.Bodies {
		mass[i] = m.Bodies[i].Mass
		d.SubtreeCOM[i] = d.XIPos[i].Mul(mass[i])
	}
	for i := len(m.Bodies) - 1; i > 0; i-- {
		p := m.Bodies[i].ParentID
		mass[p] += mass[i]
		d.SubtreeCOM[p] = d.SubtreeCOM[p].Add(d.SubtreeCOM[i])
	}
	for i := range m.Bodies {
		if mass[i] < sim.MinVal {
			d.SubtreeCOM[i] = d.XIPos[i]
			continue
		}
		d.SubtreeCOM[i] = d.SubtreeCOM[i].Mul(1 / mass[i])
	}
}

// statistic fills unset model statistics from the body tree: mean mass of
// the massive bodies, center and extent of the body positions.
func (b *builder) statistic() {
	m, d, sd := b.m, b.d, &b.doc.Statistic
	st := sim.Statistic{MeanMass: sd.MeanMass, MeanSize: sd.MeanSize, Extent: sd.Extent}

	if st.MeanMass <= 0 {
		var total float64
		var n int
		for i := 1; i < len(m.Bodies); i++ {
			if m.Bodies[i].Mass > sim.MinVal {
				total += m.Bodies[i].Mass
				n++
			}
		}
		st.MeanMass = 1
		if n > 0 {
			st.MeanMass = total / float64(n)
		}
	}

	if sd.Center != nil {
		st.Center = mgl64.Vec3(*sd.Center)
	} else if len(m.Bodies) > 1 {
		for i := 1; i < len(m.Bodies); i++ {
			st.Center = st.Center.Add(d.XPos[i])
		}
		st.Center = st.Center.Mul(1 / float64(len(m.Bodies)-1))
	}

	if st.Extent <= 0 {
		for i := 1; i < len(m.Bodies); i++ {
			st.Extent = gomath.Max(st.Extent, 2*d.XPos[i].Sub(st.Center).Len())
		}
		if st.Extent < sim.MinVal {
			st.Extent = 1
		}
	}
	if st.MeanSize <= 0 {
		st.MeanSize = 0.05 * st.Extent
	}
	m.Stat = st
}
