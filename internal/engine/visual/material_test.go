package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/sim"
)

func TestSetMaterial(t *testing.T) {
	m := chain(1)
	m.Materials = []sim.Material{{
		Name:      "steel",
		TexID:     4,
		TexRepeat: [2]float32{2, 3},
		Emission:  0.1,
		Specular:  0.9,
		RGBA:      [4]float32{0.1, 0.2, 0.3, 1},
	}}
	opt := DefaultOption()
	explicit := [4]float32{1, 0, 0, 0.5}

	g := scene.DefaultGeom()
	setMaterial(m, &opt, &g, -1, explicit)
	assert.Equal(t, explicit, g.RGBA)
	assert.Equal(t, -1, g.TexID)
	assert.Equal(t, [2]float32{}, g.TexRepeat)

	g = scene.DefaultGeom()
	setMaterial(m, &opt, &g, 0, unsetRGBA)
	assert.Equal(t, m.Materials[0].RGBA, g.RGBA)
	assert.Equal(t, 4, g.TexID)
	assert.Equal(t, [2]float32{2, 3}, g.TexRepeat)
	assert.Equal(t, float32(0.9), g.Specular)

	g = scene.DefaultGeom()
	setMaterial(m, &opt, &g, 0, explicit)
	assert.Equal(t, explicit, g.RGBA)
	assert.Equal(t, float32(0.1), g.Emission)

	opt.Flags[FlagTexture] = false
	g = scene.DefaultGeom()
	setMaterial(m, &opt, &g, 0, unsetRGBA)
	assert.Equal(t, -1, g.TexID)
}

func TestSetMaterialTransparent(t *testing.T) {
	m := chain(1)
	opt := DefaultOption()
	opt.Flags[FlagTransparent] = true
	rgba := [4]float32{1, 1, 1, 1}

	g := scene.DefaultGeom()
	g.Category = scene.CatDynamic
	setMaterial(m, &opt, &g, -1, rgba)
	assert.Equal(t, m.Visual.Map.Alpha, g.RGBA[3])

	g = scene.DefaultGeom()
	g.Category = scene.CatStatic
	setMaterial(m, &opt, &g, -1, rgba)
	assert.Equal(t, float32(1), g.RGBA[3])
}

func TestMixColor(t *testing.T) {
	ref := [4]float32{1, 0.5, 0.2, 0.8}

	assert.Equal(t, [4]float32{1, 0.5, 0.2, 0.8}, mixColor(ref, true, false))
	assert.Equal(t, [4]float32{0.5, 1, 0.2, 0.8}, mixColor(ref, false, true))
	assert.Equal(t, [4]float32{1, 1, 0.2, 0.8}, mixColor(ref, true, true))
	assert.Equal(t, [4]float32{0, 0, 0.2, 0.8}, mixColor(ref, false, false))
}

func TestMarkSelected(t *testing.T) {
	vis := sim.DefaultVisual()
	g := scene.DefaultGeom()
	g.RGBA[3] = 0.2
	g.Emission = 0.1

	markSelected(&vis, &g)
	assert.Equal(t, float32(1), g.RGBA[3])
	assert.InDelta(t, 0.1+vis.Global.Glow, g.Emission, 1e-6)
}

func TestMakeLabel(t *testing.T) {
	m := chain(3)
	m.Bodies[1].Name = "arm"

	assert.Equal(t, "arm", makeLabel(m, sim.ObjBody, 1))
	assert.Equal(t, "body 2", makeLabel(m, sim.ObjBody, 2))
}
