package visual

import (
	"fmt"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/sim"
)

// unsetRGBA is the model color meaning "not specified".
var unsetRGBA = [4]float32{0.5, 0.5, 0.5, 1}

// setMaterial merges material matID (or -1) and the explicit color rgba
// into g. The explicit color wins unless it is unset and a material exists.
func setMaterial(m *sim.Model, opt *Option, g *scene.Geom, matID int, rgba [4]float32) {
	if matID >= 0 {
		mat := &m.Materials[matID]
		g.TexRepeat = mat.TexRepeat
		g.RGBA = mat.RGBA
		g.TexUniform = mat.TexUniform
		g.Emission = mat.Emission
		g.Specular = mat.Specular
		g.Shininess = mat.Shininess
		g.Reflectance = mat.Reflectance
	} else {
		g.TexRepeat = [2]float32{}
	}

	if rgba != unsetRGBA || matID < 0 {
		g.RGBA = rgba
	}

	if opt.Flags[FlagTexture] && matID >= 0 {
		g.TexID = m.Materials[matID].TexID
	}

	if opt.Flags[FlagTransparent] && g.Category == scene.CatDynamic {
		g.RGBA[3] *= m.Visual.Map.Alpha
	}
}

// markSelected highlights a geom of the selected body.
func markSelected(vis *sim.Visual, g *scene.Geom) {
	g.Emission += vis.Global.Glow
	g.RGBA[3] = 1
}

// mixColor builds the perturbation color: red and green channels show
// which of the two hands is active.
func mixColor(ref [4]float32, first, second bool) [4]float32 {
	var rgba [4]float32
	if first {
		rgba[0] = ref[0]
		rgba[1] = ref[1]
	}
	if second {
		rgba[0] = max(rgba[0], ref[1])
		rgba[1] = max(rgba[1], ref[0])
	}
	rgba[2] = ref[2]
	rgba[3] = ref[3]
	return rgba
}

// makeLabel returns the entity name, or "<kind> <id>" for unnamed entities.
func makeLabel(m *sim.Model, obj sim.ObjType, id int) string {
	if name := m.Name(obj, id); name != "" {
		return scene.TruncateLabel(name)
	}
	return fmt.Sprintf("%s %d", obj, id)
}
