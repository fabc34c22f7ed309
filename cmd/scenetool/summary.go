package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/simvis/internal/engine/scene"
)

type geomSummary struct {
	Type     string     `yaml:"type"`
	Category string     `yaml:"category"`
	Object   string     `yaml:"object"`
	Size     [3]float32 `yaml:"size,flow"`
	Pos      [3]float32 `yaml:"pos,flow"`
	RGBA     [4]float32 `yaml:"rgba,flow"`
	Label    string     `yaml:"label,omitempty"`
}

type lightSummary struct {
	Pos         [3]float32 `yaml:"pos,flow"`
	Dir         [3]float32 `yaml:"dir,flow"`
	Headlight   bool       `yaml:"headlight,omitempty"`
	Directional bool       `yaml:"directional,omitempty"`
	CastShadow  bool       `yaml:"castshadow,omitempty"`
}

type eyeSummary struct {
	Pos     [3]float32 `yaml:"pos,flow"`
	Forward [3]float32 `yaml:"forward,flow"`
	Up      [3]float32 `yaml:"up,flow"`
	Near    float32    `yaml:"near"`
	Far     float32    `yaml:"far"`
	Top     float32    `yaml:"top"`
}

type sceneSummary struct {
	Capacity int            `yaml:"capacity"`
	Overflow []string       `yaml:"overflow,omitempty"`
	Geoms    []geomSummary  `yaml:"geoms"`
	Lights   []lightSummary `yaml:"lights"`
	Eyes     []eyeSummary   `yaml:"eyes"`
	Skins    []int          `yaml:"skin_vertices,omitempty,flow"`
}

func summarize(scn *scene.Scene, overflow []string) sceneSummary {
	s := sceneSummary{Capacity: scn.MaxGeom, Overflow: overflow}
	for i := range scn.Geoms {
		g := &scn.Geoms[i]
		s.Geoms = append(s.Geoms, geomSummary{
			Type:     g.Type.String(),
			Category: g.Category.String(),
			Object:   objectName(g.ObjType, g.ObjID),
			Size:     g.Size.Array(),
			Pos:      g.Pos.Array(),
			RGBA:     g.RGBA,
			Label:    g.Label,
		})
	}
	for i := range scn.Lights {
		l := &scn.Lights[i]
		s.Lights = append(s.Lights, lightSummary{
			Pos:         l.Pos.Array(),
			Dir:         l.Dir.Array(),
			Headlight:   l.Headlight,
			Directional: l.Directional,
			CastShadow:  l.CastShadow,
		})
	}
	for _, c := range scn.Camera {
		s.Eyes = append(s.Eyes, eyeSummary{
			Pos:     c.Pos.Array(),
			Forward: c.Forward.Array(),
			Up:      c.Up.Array(),
			Near:    c.FrustumNear,
			Far:     c.FrustumFar,
			Top:     c.FrustumTop,
		})
	}
	for _, skin := range scn.Skins {
		s.Skins = append(s.Skins, len(skin.Vert)/3)
	}
	return s
}

// writeSummary encodes s as YAML and flushes it to w.
func writeSummary(w io.Writer, s sceneSummary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		enc.Close()
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush scene: %w", err)
	}
	return nil
}
