package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/simvis/internal/engine/camera"
	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/internal/engine/visual"
	"github.com/Faultbox/simvis/pkg/sim"
)

// ErrConfig is returned for settings that do not name a valid option.
var ErrConfig = errors.New("invalid config")

// CategoryMask combines the configured categories.
func (c *SceneConfig) CategoryMask() (scene.Category, error) {
	var mask scene.Category
	for _, name := range c.Categories {
		cat, err := scene.ParseCategory(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		mask |= cat
	}
	return mask, nil
}

// Option builds visualization options from the defaults and the
// configured overrides.
func (c *VisualConfig) Option() (visual.Option, error) {
	opt := visual.DefaultOption()
	if err := opt.Set(true, c.Enable...); err != nil {
		return opt, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := opt.Set(false, c.Disable...); err != nil {
		return opt, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	var err error
	if c.Label != "" {
		if opt.Label, err = visual.ParseLabel(c.Label); err != nil {
			return opt, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	if c.Frame != "" {
		if opt.Frame, err = visual.ParseFrame(c.Frame); err != nil {
			return opt, fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}

	groups := []struct {
		dst *visual.Groups
		src []int
	}{
		{&opt.GeomGroup, c.GeomGroups},
		{&opt.SiteGroup, c.SiteGroups},
		{&opt.JointGroup, c.JointGroups},
		{&opt.TendonGroup, c.TendonGroups},
		{&opt.ActuatorGroup, c.ActuatorGroups},
	}
	for _, g := range groups {
		if g.src == nil {
			continue
		}
		*g.dst = visual.Groups{}
		for _, n := range g.src {
			if n < 0 || n >= visual.NumGroups {
				return opt, fmt.Errorf("%w: group %d out of range", ErrConfig, n)
			}
			g.dst[n] = true
		}
	}
	return opt, nil
}

// Camera builds the abstract camera for model m, resolving body and
// camera names.
func (c *CameraConfig) Camera(m *sim.Model) (camera.Camera, error) {
	cam := camera.DefaultFree(m)
	typ, err := camera.ParseType(c.Mode)
	if err != nil {
		return cam, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	cam.Type = typ
	cam.Azimuth = c.Azimuth
	cam.Elevation = c.Elevation
	if c.Distance > 0 {
		cam.Distance = c.Distance
	}

	switch typ {
	case camera.Tracking:
		if cam.TrackBodyID = m.ID(sim.ObjBody, c.TrackBody); cam.TrackBodyID < 0 {
			return cam, fmt.Errorf("%w: no body %q to track", ErrConfig, c.TrackBody)
		}
		cam.LookAt = m.Stat.Center
	case camera.Fixed:
		if cam.FixedCamID = m.ID(sim.ObjCamera, c.FixedCamera); cam.FixedCamID < 0 {
			return cam, fmt.Errorf("%w: no camera %q", ErrConfig, c.FixedCamera)
		}
	}
	return cam, nil
}
