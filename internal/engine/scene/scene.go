// Package scene holds the renderer-agnostic output of a visualization pass:
// a bounded list of abstract geoms, the light list, a stereo camera pair
// and deformed skin buffers.
package scene

import (
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// MaxLights is the capacity of the light list.
const MaxLights = 100

// DefaultMaxGeom is the geom capacity used when none is configured.
const DefaultMaxGeom = 1000

// Light is a light source ready for the renderer.
type Light struct {
	Pos         math.Vec3
	Dir         math.Vec3
	Attenuation [3]float32
	Cutoff      float32
	Exponent    float32
	Ambient     [3]float32
	Diffuse     [3]float32
	Specular    [3]float32
	Headlight   bool
	Directional bool
	CastShadow  bool
}

// SkinBuffer holds deformed positions and normals of one skin, 3 floats
// per vertex.
type SkinBuffer struct {
	Vert   []float32
	Normal []float32
}

// Scene is owned by the caller and repopulated in place on every update.
type Scene struct {
	MaxGeom int
	Geoms   []Geom
	Lights  []Light
	Camera  [2]GLCamera // left and right eye
	Skins   []SkinBuffer
}

// New allocates a scene for m with room for maxGeom geoms. The buffers are
// never reallocated afterwards.
func New(m *sim.Model, maxGeom int) *Scene {
	if maxGeom <= 0 {
		maxGeom = DefaultMaxGeom
	}
	s := &Scene{
		MaxGeom: maxGeom,
		Geoms:   make([]Geom, 0, maxGeom),
		Lights:  make([]Light, 0, MaxLights),
		Skins:   make([]SkinBuffer, len(m.Skins)),
	}
	for i := range m.Skins {
		n := len(m.Skins[i].Vert)
		s.Skins[i] = SkinBuffer{
			Vert:   make([]float32, n),
			Normal: make([]float32, n),
		}
	}
	return s
}

// AddGeom appends g and assigns its sequence id. It returns false, leaving
// the scene unchanged, when the buffer is full.
func (s *Scene) AddGeom(g Geom) bool {
	if len(s.Geoms) >= s.MaxGeom {
		return false
	}
	g.SegID = len(s.Geoms)
	s.Geoms = append(s.Geoms, g)
	return true
}

// Full reports whether no more geoms fit.
func (s *Scene) Full() bool {
	return len(s.Geoms) >= s.MaxGeom
}

// AddLight appends l if the light list has room.
func (s *Scene) AddLight(l Light) bool {
	if len(s.Lights) >= MaxLights {
		return false
	}
	s.Lights = append(s.Lights, l)
	return true
}

// Clear empties the geom and light lists, keeping their storage.
func (s *Scene) Clear() {
	s.Geoms = s.Geoms[:0]
	s.Lights = s.Lights[:0]
}

// CountCategory returns the number of geoms whose category is in mask.
func (s *Scene) CountCategory(mask Category) int {
	n := 0
	for i := range s.Geoms {
		if s.Geoms[i].Category&mask != 0 {
			n++
		}
	}
	return n
}
