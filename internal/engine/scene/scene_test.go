package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

const tol = 1e-5

func assertVec(t *testing.T, want mgl64.Vec3, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want[0], float64(got.X), tol, "x")
	assert.InDelta(t, want[1], float64(got.Y), tol, "y")
	assert.InDelta(t, want[2], float64(got.Z), tol, "z")
}

var connectorPoints = []struct {
	name string
	a, b mgl64.Vec3
}{
	{"along z", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 2}},
	{"along -z", mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 1, -3}},
	{"diagonal", mgl64.Vec3{-1, 2, 0.5}, mgl64.Vec3{3, -1, 2}},
	{"along x", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.25, 0, 0}},
	{"nearly -z", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1e-9, 0, -1}},
}

func TestMakeConnectorCentered(t *testing.T) {
	for _, typ := range []sim.GeomType{sim.GeomCapsule, sim.GeomCylinder} {
		for _, tt := range connectorPoints {
			t.Run(typ.String()+"/"+tt.name, func(t *testing.T) {
				g := DefaultGeom()
				MakeConnector(&g, typ, 0.05, tt.a, tt.b)

				assert.Equal(t, typ, g.Type)
				assertVec(t, tt.a.Add(tt.b).Mul(0.5), g.Pos)
				assert.InDelta(t, 0.5*tt.b.Sub(tt.a).Len(), float64(g.Size.Z), tol)
				assert.InDelta(t, 0.05, float64(g.Size.X), tol)
				assert.InDelta(t, 0.05, float64(g.Size.Y), tol)
			})
		}
	}
}

func TestMakeConnectorArrow(t *testing.T) {
	for _, typ := range []sim.GeomType{sim.GeomArrow, sim.GeomArrow1, sim.GeomArrow2, sim.GeomLine} {
		for _, tt := range connectorPoints {
			t.Run(typ.String()+"/"+tt.name, func(t *testing.T) {
				g := DefaultGeom()
				MakeConnector(&g, typ, 0.1, tt.a, tt.b)

				assert.Equal(t, math.FromVec64(tt.a), g.Pos)
				assert.InDelta(t, tt.b.Sub(tt.a).Len(), float64(g.Size.Z), tol)
			})
		}
	}
}

func TestMakeConnectorOrientation(t *testing.T) {
	for _, tt := range connectorPoints {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGeom()
			MakeConnector(&g, sim.GeomCapsule, 0.1, tt.a, tt.b)

			want := tt.b.Sub(tt.a).Normalize()
			assertVec(t, want, g.Mat.MulVec(math.Vec3{Z: 1}))
		})
	}
}

func TestMakeConnectorDegenerate(t *testing.T) {
	g := DefaultGeom()
	p := mgl64.Vec3{1, 2, 3}
	MakeConnector(&g, sim.GeomCylinder, 0.1, p, p)

	assert.Equal(t, float32(0), g.Size.Z)
	assertVec(t, p, g.Pos)
	assert.Equal(t, math.Identity3(), g.Mat)
}

func TestMakeConnectorInvalidType(t *testing.T) {
	g := DefaultGeom()
	assert.PanicsWithError(t, "invalid geom type for connector: box", func() {
		MakeConnector(&g, sim.GeomBox, 0.1, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	})
}

func TestQuatZ2VecOpposite(t *testing.T) {
	q := QuatZ2Vec(mgl64.Vec3{0, 0, -2})
	assert.InDelta(t, 0, q.W, tol)
	assert.InDelta(t, 1, q.V[0], tol)

	assert.Equal(t, mgl64.QuatIdent(), QuatZ2Vec(mgl64.Vec3{}))
}

func TestInitGeom(t *testing.T) {
	g := InitGeom(sim.GeomBox, nil, nil, nil, nil)
	assert.Equal(t, sim.GeomBox, g.Type)
	assert.Equal(t, math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}, g.Size)
	assert.Equal(t, math.Identity3(), g.Mat)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, g.RGBA)
	assert.Equal(t, -1, g.DataID)
	assert.Equal(t, -1, g.TexID)
	assert.Equal(t, [2]float32{1, 1}, g.TexRepeat)
	assert.Equal(t, float32(0.5), g.Specular)
	assert.Empty(t, g.Label)

	size := mgl64.Vec3{0.2, 0.7, 9}
	rgba := [4]float32{1, 0, 0, 1}
	g = InitGeom(sim.GeomSphere, &size, nil, nil, &rgba)
	assert.Equal(t, math.Vec3{X: 0.2, Y: 0.2, Z: 0.2}, g.Size)
	assert.Equal(t, rgba, g.RGBA)

	g = InitGeom(sim.GeomCapsule, &size, nil, nil, nil)
	assert.InDelta(t, 0.7, float64(g.Size.Z), tol)
	assert.InDelta(t, 0.2, float64(g.Size.Y), tol)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", TruncateLabel("short"))

	long := strings.Repeat("a", 98) + "é"
	got := TruncateLabel(long)
	assert.LessOrEqual(t, len(got), MaxLabel)
	assert.Equal(t, strings.Repeat("a", 98), got)

	assert.Len(t, TruncateLabel(strings.Repeat("b", 300)), MaxLabel)
}

func TestAddGeomBounded(t *testing.T) {
	s := New(&sim.Model{}, 3)
	for i := 0; i < 3; i++ {
		require.True(t, s.AddGeom(DefaultGeom()))
	}
	assert.True(t, s.Full())
	assert.False(t, s.AddGeom(DefaultGeom()))
	assert.Len(t, s.Geoms, 3)
	for i, g := range s.Geoms {
		assert.Equal(t, i, g.SegID)
	}

	s.Clear()
	assert.Empty(t, s.Geoms)
	assert.Equal(t, 3, cap(s.Geoms))
}

func TestNewAllocatesSkins(t *testing.T) {
	m := &sim.Model{Skins: []sim.Skin{{Vert: make([]float32, 12)}}}
	s := New(m, 0)
	assert.Equal(t, DefaultMaxGeom, s.MaxGeom)
	require.Len(t, s.Skins, 1)
	assert.Len(t, s.Skins[0].Vert, 12)
	assert.Len(t, s.Skins[0].Normal, 12)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "static|decor", (CatStatic | CatDecor).String())
	c, err := ParseCategory("dynamic")
	require.NoError(t, err)
	assert.Equal(t, CatDynamic, c)
	_, err = ParseCategory("other")
	assert.Error(t, err)
}

func TestAverageCamera(t *testing.T) {
	left := GLCamera{Pos: math.Vec3{X: -1}, Forward: math.Vec3{Y: 1}, Up: math.Vec3{Z: 1}, FrustumTop: 1, FrustumBottom: -1}
	right := left
	right.Pos = math.Vec3{X: 1}

	avg := Average(left, right)
	assert.Equal(t, math.Vec3{}, avg.Pos)
	assert.Equal(t, math.Vec3{Y: 1}, avg.Forward)
	assert.Equal(t, math.Vec3{Z: 1}, avg.Up)
	assert.Equal(t, float32(1), avg.FrustumTop)
}

func TestGLCameraMatrices(t *testing.T) {
	c := GLCamera{
		Pos:           math.Vec3{Z: 5},
		Forward:       math.Vec3{Z: -1},
		Up:            math.Vec3{Y: 1},
		FrustumTop:    1,
		FrustumBottom: -1,
		FrustumNear:   1,
		FrustumFar:    10,
	}

	origin := c.ViewMatrix().TransformPoint([3]float32{})
	assert.InDeltaSlice(t, []float32{0, 0, -5}, origin[:], tol)

	proj := c.ProjectionMatrix(1)
	nearTop := proj.TransformPoint([3]float32{0, 1, -1})
	assert.InDeltaSlice(t, []float32{0, 1, -1}, nearTop[:], tol)
	farTop := proj.TransformPoint([3]float32{0, 10, -10})
	assert.InDeltaSlice(t, []float32{0, 1, 1}, farTop[:], tol)
}
