package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

func TestMakeLights(t *testing.T) {
	m := &sim.Model{
		Bodies: []sim.Body{{Name: "world", MocapID: -1}},
		Lights: []sim.Light{
			{Name: "sun", Active: true, Directional: true, Attenuation: [3]float32{1, 0, 0}, Cutoff: 45},
			{Name: "off", Active: false},
			{Name: "spot", Active: true, CastShadow: true, Attenuation: [3]float32{1, 0.1, 0}, Cutoff: 30, Exponent: 10},
		},
		Visual: sim.DefaultVisual(),
	}
	d := sim.NewState(m)
	d.LightXPos[2] = mgl64.Vec3{0, 0, 3}

	scn := scene.New(m, 10)
	MakeLights(m, d, scn)
	require.Len(t, scn.Lights, 3)

	head := scn.Lights[0]
	assert.True(t, head.Headlight)
	assert.True(t, head.Directional)
	assert.False(t, head.CastShadow)
	assert.Equal(t, m.Visual.Headlight.Diffuse, head.Diffuse)

	sun := scn.Lights[1]
	assert.True(t, sun.Directional)
	assert.Equal(t, [3]float32{}, sun.Attenuation)
	assert.Zero(t, sun.Cutoff)

	spot := scn.Lights[2]
	assert.True(t, spot.CastShadow)
	assert.Equal(t, float32(30), spot.Cutoff)
	assert.Equal(t, float32(10), spot.Exponent)
	assert.Equal(t, math.Vec3{Z: 3}, spot.Pos)
	assert.Equal(t, math.Vec3{Z: -1}, spot.Dir)

	// rebuilding does not accumulate
	MakeLights(m, d, scn)
	assert.Len(t, scn.Lights, 3)
}

func TestMakeLightsCapacity(t *testing.T) {
	m := &sim.Model{
		Bodies: []sim.Body{{Name: "world", MocapID: -1}},
		Lights: make([]sim.Light, scene.MaxLights+20),
		Visual: sim.DefaultVisual(),
	}
	for i := range m.Lights {
		m.Lights[i].Active = true
	}
	d := sim.NewState(m)
	scn := scene.New(m, 1)

	MakeLights(m, d, scn)
	assert.Len(t, scn.Lights, scene.MaxLights)
	assert.True(t, scn.Lights[0].Headlight)

	m.Visual.Headlight.Active = false
	MakeLights(m, d, scn)
	assert.Len(t, scn.Lights, scene.MaxLights)
	assert.False(t, scn.Lights[0].Headlight)
}
