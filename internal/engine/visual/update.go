package visual

import (
	"fmt"

	"github.com/Faultbox/simvis/internal/engine/camera"
	"github.com/Faultbox/simvis/internal/engine/lighting"
	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/internal/engine/skin"
	"github.com/Faultbox/simvis/pkg/sim"
)

// UpdateScene regenerates scn from the current state: geoms, lights, the
// stereo camera pair and, when enabled, deformed skins. It returns the
// categories that did not fit in the geom buffer.
func UpdateScene(m *sim.Model, d *sim.State, opt *Option, pert *Perturb, cam *camera.Camera,
	catmask scene.Category, scn *scene.Scene) ([]string, error) {
	overflow, err := AddGeoms(m, d, opt, pert, catmask, scn)
	if err != nil {
		return overflow, fmt.Errorf("add geoms: %w", err)
	}

	lighting.MakeLights(m, d, scn)

	if err := cam.Update(m, d, scn); err != nil {
		return overflow, fmt.Errorf("update camera: %w", err)
	}

	if opt.Flags[FlagSkin] {
		skin.Update(m, d, scn)
	}
	return overflow, nil
}
