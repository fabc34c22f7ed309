// Package lighting collects the light sources of a scene.
package lighting

import (
	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// MakeLights rebuilds the light list of scn: the headlight first when the
// model enables it, then every active model light while there is room.
func MakeLights(m *sim.Model, d *sim.State, scn *scene.Scene) {
	scn.Lights = scn.Lights[:0]

	if hl := &m.Visual.Headlight; hl.Active {
		scn.AddLight(scene.Light{
			Headlight:   true,
			Directional: true,
			Ambient:     hl.Ambient,
			Diffuse:     hl.Diffuse,
			Specular:    hl.Specular,
		})
	}

	for i := range m.Lights {
		ml := &m.Lights[i]
		if !ml.Active {
			continue
		}
		l := scene.Light{
			Directional: ml.Directional,
			CastShadow:  ml.CastShadow,
			Ambient:     ml.Ambient,
			Diffuse:     ml.Diffuse,
			Specular:    ml.Specular,
			Pos:         math.FromVec64(d.LightXPos[i]),
			Dir:         math.FromVec64(d.LightXDir[i]),
		}
		// spot and point lights only
		if !ml.Directional {
			l.Attenuation = ml.Attenuation
			l.Exponent = ml.Exponent
			l.Cutoff = ml.Cutoff
		}
		if !scn.AddLight(l) {
			return
		}
	}
}
