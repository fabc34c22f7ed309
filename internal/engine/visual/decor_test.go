package visual

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/sim"
)

const tol = 1e-5

type wantGeom struct {
	typ   sim.GeomType
	obj   sim.ObjType
	id    int
	pos   mgl64.Vec3
	label string
}

type decorCase struct {
	name  string
	setup func() (*sim.Model, *sim.State, Option, *Perturb)
	mask  scene.Category
	want  []wantGeom
}

func lightsCase() (*sim.Model, *sim.State, Option, *Perturb) {
	m := chain(1)
	m.Lights = []sim.Light{{Name: "lamp", Active: true}, {Name: "off"}, {Name: "spot", Active: true}}
	d := sim.NewState(m)
	d.LightXPos[0] = mgl64.Vec3{0, 0, 2}
	d.LightXPos[1] = mgl64.Vec3{5, 5, 5}
	d.LightXPos[2] = mgl64.Vec3{1, 0, 0}
	opt := DefaultOption()
	opt.Flags[FlagLight] = true
	opt.Label = LabelLight
	return m, d, opt, nil
}

func camerasCase() (*sim.Model, *sim.State, Option, *Perturb) {
	m := chain(2)
	m.Cameras = []sim.Camera{{Name: "eye"}}
	d := sim.NewState(m)
	d.CamXPos[0] = mgl64.Vec3{1, 0, 0}
	opt := DefaultOption()
	opt.Flags[FlagCamera] = true
	opt.Label = LabelCamera
	return m, d, opt, nil
}

func autoConnectCase() (*sim.Model, *sim.State, Option, *Perturb) {
	m := chain(3)
	m.Bodies[2].ParentID = 1
	m.Bodies[2].JntAdr, m.Bodies[2].JntNum = 0, 2
	m.Joints = []sim.Joint{{Type: sim.JointHinge, BodyID: 2}, {Type: sim.JointHinge, BodyID: 2}}
	d := sim.NewState(m)
	d.XIPos[2] = mgl64.Vec3{0, 0, 3}
	d.XAnchor[0] = mgl64.Vec3{0, 0, 1}
	d.XAnchor[1] = mgl64.Vec3{0, 0, 2}
	opt := DefaultOption()
	opt.Flags[FlagAutoConnect] = true
	return m, d, opt, nil
}

func selectPointCase() (*sim.Model, *sim.State, Option, *Perturb) {
	m := chain(2)
	d := sim.NewState(m)
	d.XPos[1] = mgl64.Vec3{1, 0, 0}
	opt := DefaultOption()
	opt.Label = LabelSelPnt
	pert := DefaultPerturb()
	pert.Select = 1
	pert.LocalPos = mgl64.Vec3{0, 0, 1}
	return m, d, opt, &pert
}

func bodyLabelCase(inertia bool) func() (*sim.Model, *sim.State, Option, *Perturb) {
	return func() (*sim.Model, *sim.State, Option, *Perturb) {
		m := chain(3)
		d := sim.NewState(m)
		d.XIPos[1] = mgl64.Vec3{1, 0, 0}
		d.XIPos[2] = mgl64.Vec3{2, 0, 0}
		opt := DefaultOption()
		opt.Label = LabelBody
		opt.Flags[FlagInertia] = inertia
		return m, d, opt, nil
	}
}

func hiddenSkinCase() (*sim.Model, *sim.State, Option, *Perturb) {
	m := chain(2)
	m.Skins = []sim.Skin{
		{Name: "hidden", MatID: -1, RGBA: [4]float32{1, 1, 1, 0}},
		{Name: "cloth", MatID: -1, RGBA: [4]float32{1, 1, 1, 1}},
	}
	d := sim.NewState(m)
	return m, d, DefaultOption(), nil
}

var decorCases = []decorCase{
	{
		name:  "active lights pulled back along direction",
		setup: lightsCase,
		mask:  scene.CatDecor,
		want: []wantGeom{
			{sim.GeomCylinder, sim.ObjLight, 0, mgl64.Vec3{0, 0, 2.0300001}, "lamp"},
			{sim.GeomCylinder, sim.ObjLight, 2, mgl64.Vec3{1, 0, 0.0300001}, "spot"},
		},
	},
	{
		name:  "camera box and lens",
		setup: camerasCase,
		mask:  scene.CatDecor,
		want: []wantGeom{
			{sim.GeomBox, sim.ObjCamera, 0, mgl64.Vec3{1, 0, 0}, "eye"},
			{sim.GeomCylinder, sim.ObjCamera, 0, mgl64.Vec3{1, 0, -0.018}, ""},
		},
	},
	{
		name:  "auto connect walks joints last first",
		setup: autoConnectCase,
		mask:  scene.CatDecor,
		want: []wantGeom{
			{sim.GeomCapsule, sim.ObjUnknown, -1, mgl64.Vec3{0, 0, 2.5}, ""},
			{sim.GeomCapsule, sim.ObjUnknown, -1, mgl64.Vec3{0, 0, 1.5}, ""},
			{sim.GeomCapsule, sim.ObjUnknown, -1, mgl64.Vec3{0, 0, 0.5}, ""},
		},
	},
	{
		name:  "selection point",
		setup: selectPointCase,
		mask:  scene.CatDecor,
		want: []wantGeom{
			{sim.GeomSphere, sim.ObjUnknown, -1, mgl64.Vec3{1, 0, 1},
				"1.000 0.000 1.000 (local 0.000 0.000 1.000)"},
		},
	},
	{
		name:  "body labels without inertia",
		setup: bodyLabelCase(false),
		mask:  scene.CatAll,
		want: []wantGeom{
			{sim.GeomLabel, sim.ObjUnknown, -1, mgl64.Vec3{1, 0, 0}, "body 1"},
			{sim.GeomLabel, sim.ObjUnknown, -1, mgl64.Vec3{2, 0, 0}, "body 2"},
		},
	},
	{
		name:  "body labels on inertia boxes",
		setup: bodyLabelCase(true),
		mask:  scene.CatAll,
		want: []wantGeom{
			{sim.GeomBox, sim.ObjBody, 1, mgl64.Vec3{1, 0, 0}, "body 1"},
			{sim.GeomBox, sim.ObjBody, 2, mgl64.Vec3{2, 0, 0}, "body 2"},
		},
	},
	{
		name:  "transparent skin skipped",
		setup: hiddenSkinCase,
		mask:  scene.CatDynamic,
		want: []wantGeom{
			{sim.GeomSkin, sim.ObjSkin, 1, mgl64.Vec3{}, ""},
		},
	},
}

func TestDecorGeoms(t *testing.T) {
	for _, tc := range decorCases {
		t.Run(tc.name, func(t *testing.T) {
			m, d, opt, pert := tc.setup()
			scn := scene.New(m, 20)

			_, err := AddGeoms(m, d, &opt, pert, tc.mask, scn)
			require.NoError(t, err)
			require.Len(t, scn.Geoms, len(tc.want))

			for i, w := range tc.want {
				g := scn.Geoms[i]
				assert.Equal(t, w.typ, g.Type, "geom %d type", i)
				assert.Equal(t, w.obj, g.ObjType, "geom %d object type", i)
				assert.Equal(t, w.id, g.ObjID, "geom %d object id", i)
				assert.InDelta(t, w.pos[0], float64(g.Pos.X), tol, "geom %d x", i)
				assert.InDelta(t, w.pos[1], float64(g.Pos.Y), tol, "geom %d y", i)
				assert.InDelta(t, w.pos[2], float64(g.Pos.Z), tol, "geom %d z", i)
				assert.Equal(t, w.label, g.Label, "geom %d label", i)
			}
		})
	}
}

func TestLightGeomFacesLight(t *testing.T) {
	m, d, opt, _ := lightsCase()
	scn := scene.New(m, 10)

	_, err := AddGeoms(m, d, &opt, nil, scene.CatDecor, scn)
	require.NoError(t, err)
	require.NotEmpty(t, scn.Geoms)
	axis := scn.Geoms[0].Mat.Col(2)
	assert.InDelta(t, -1, float64(axis.Z), tol)
	assert.Equal(t, m.Visual.RGBA.Light, scn.Geoms[0].RGBA)
}

func TestCameraLensDarker(t *testing.T) {
	m, d, opt, _ := camerasCase()
	scn := scene.New(m, 10)

	_, err := AddGeoms(m, d, &opt, nil, scene.CatDecor, scn)
	require.NoError(t, err)
	require.Len(t, scn.Geoms, 2)

	body, lens := scn.Geoms[0], scn.Geoms[1]
	assert.Equal(t, m.Visual.RGBA.Camera, body.RGBA)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 0.5*m.Visual.RGBA.Camera[k], lens.RGBA[k], 1e-6)
	}
	assert.Equal(t, m.Visual.RGBA.Camera[3], lens.RGBA[3])
	assert.InDelta(t, 0.03, float64(body.Size.X), tol)
}

func TestBodyLabelsFollowSelection(t *testing.T) {
	m, d, opt, _ := bodyLabelCase(false)()
	opt.Label = LabelSelection
	opt.Flags[FlagSelect] = false
	pert := DefaultPerturb()
	pert.Select = 2
	scn := scene.New(m, 10)

	_, err := AddGeoms(m, d, &opt, &pert, scene.CatAll, scn)
	require.NoError(t, err)
	require.Len(t, scn.Geoms, 1)
	assert.Equal(t, "body 2", scn.Geoms[0].Label)
}

func TestAddGeomsClearsScene(t *testing.T) {
	m := chain(2)
	m.Geoms = []sim.Geom{sphere(1), sphere(1)}
	d := sim.NewState(m)
	opt := DefaultOption()
	scn := scene.New(m, 10)

	for i := 0; i < 3; i++ {
		_, err := AddGeoms(m, d, &opt, nil, scene.CatAll, scn)
		require.NoError(t, err)
		require.Len(t, scn.Geoms, 2)
	}
	assert.Equal(t, 1, scn.Geoms[1].SegID)
}

func TestSkinSelection(t *testing.T) {
	m, d, opt, _ := hiddenSkinCase()
	scn := scene.New(m, 10)

	pert := DefaultPerturb()
	_, err := AddGeoms(m, d, &opt, &pert, scene.CatDynamic, scn)
	require.NoError(t, err)
	require.Len(t, scn.Geoms, 1)
	assert.Zero(t, scn.Geoms[0].Emission)

	// the zero value selects skin 0, which is then drawn opaque
	_, err = AddGeoms(m, d, &opt, &Perturb{}, scene.CatDynamic, scn)
	require.NoError(t, err)
	require.Len(t, scn.Geoms, 2)
	assert.Equal(t, 0, scn.Geoms[0].ObjID)
	assert.Equal(t, m.Visual.Global.Glow, scn.Geoms[0].Emission)
	assert.Equal(t, float32(1), scn.Geoms[0].RGBA[3])
}
