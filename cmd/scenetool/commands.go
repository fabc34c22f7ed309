package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/simvis/internal/config"
	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/internal/engine/visual"
	"github.com/Faultbox/simvis/internal/logger"
	"github.com/Faultbox/simvis/pkg/formats"
	"github.com/Faultbox/simvis/pkg/sim"
)

var errUsage = errors.New("missing snapshot argument")

func loadSnapshot(args []string) (*formats.Snapshot, error) {
	if len(args) < 1 {
		return nil, errUsage
	}
	snap, err := formats.ParseSnapshotFile(args[0])
	if err != nil {
		return nil, err
	}
	logger.Info("snapshot loaded",
		zap.String("path", args[0]),
		zap.Int("bodies", len(snap.Model.Bodies)),
		zap.Int("geoms", len(snap.Model.Geoms)),
		zap.Int("contacts", len(snap.State.Contacts)))
	return snap, nil
}

func cmdInfo(_ *config.Config, args []string) error {
	snap, err := loadSnapshot(args)
	if err != nil {
		return err
	}
	m, d := snap.Model, snap.State

	fmt.Printf("Snapshot: %s\n", args[0])
	fmt.Printf("Extent:   %.3f\n", m.Stat.Extent)
	fmt.Printf("Center:   %.3f %.3f %.3f\n", m.Stat.Center[0], m.Stat.Center[1], m.Stat.Center[2])
	fmt.Println()
	fmt.Println("Entities:")
	for obj := sim.ObjBody; obj <= sim.ObjMaterial; obj++ {
		if n := m.Count(obj); n > 0 {
			fmt.Printf("  %-10s %d\n", obj, n)
		}
	}
	fmt.Printf("  %-10s %d\n", "contact", len(d.Contacts))
	return nil
}

// build runs one scene update with the configured options.
func build(cfg *config.Config, snap *formats.Snapshot) (*scene.Scene, []string, error) {
	m, d := snap.Model, snap.State

	opt, err := cfg.Visual.Option()
	if err != nil {
		return nil, nil, err
	}
	mask, err := cfg.Scene.CategoryMask()
	if err != nil {
		return nil, nil, err
	}
	cam, err := cfg.Camera.Camera(m)
	if err != nil {
		return nil, nil, err
	}

	scn := scene.New(m, cfg.Scene.MaxGeom)
	overflow, err := visual.UpdateScene(m, d, &opt, nil, &cam, mask, scn)
	if err != nil {
		return nil, nil, err
	}
	logger.Sugar.Debugf("scene updated: %d/%d geoms, %d lights, overflow %v",
		len(scn.Geoms), scn.MaxGeom, len(scn.Lights), overflow)
	return scn, overflow, nil
}

func cmdUpdate(cfg *config.Config, args []string) error {
	snap, err := loadSnapshot(args)
	if err != nil {
		return err
	}
	scn, overflow, err := build(cfg, snap)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "#\tTYPE\tCATEGORY\tOBJECT\tPOS\tLABEL\n")
	for i := range scn.Geoms {
		g := &scn.Geoms[i]
		fmt.Fprintf(w, "%d\t%v\t%v\t%s\t%.3f %.3f %.3f\t%s\n",
			g.SegID, g.Type, g.Category, objectName(g.ObjType, g.ObjID),
			g.Pos.X, g.Pos.Y, g.Pos.Z, g.Label)
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("Lights: %d\n", len(scn.Lights))
	for i := range scn.Lights {
		l := &scn.Lights[i]
		fmt.Printf("  %d: pos %.3f %.3f %.3f dir %.3f %.3f %.3f headlight=%v directional=%v\n",
			i, l.Pos.X, l.Pos.Y, l.Pos.Z, l.Dir.X, l.Dir.Y, l.Dir.Z, l.Headlight, l.Directional)
	}

	fmt.Println("Cameras:")
	for i, c := range scn.Camera {
		fmt.Printf("  eye %d: pos %.3f %.3f %.3f forward %.3f %.3f %.3f near %.4f far %.2f\n",
			i, c.Pos.X, c.Pos.Y, c.Pos.Z, c.Forward.X, c.Forward.Y, c.Forward.Z, c.FrustumNear, c.FrustumFar)
	}

	if len(overflow) > 0 {
		fmt.Fprintf(os.Stderr, "\n(geom buffer of %d full; skipped: %v)\n", scn.MaxGeom, overflow)
	}
	return nil
}

func cmdDump(cfg *config.Config, args []string) error {
	snap, err := loadSnapshot(args)
	if err != nil {
		return err
	}
	scn, overflow, err := build(cfg, snap)
	if err != nil {
		return err
	}

	return writeSummary(os.Stdout, summarize(scn, overflow))
}

func objectName(obj sim.ObjType, id int) string {
	if id < 0 {
		return "-"
	}
	return fmt.Sprintf("%s %d", obj, id)
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", args[0])
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}
