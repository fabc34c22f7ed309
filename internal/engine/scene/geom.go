package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// ErrConnectorType is raised when a connector is requested for a shape
// that cannot span two points.
var ErrConnectorType = errors.New("invalid geom type for connector")

// MaxLabel is the longest label in bytes.
const MaxLabel = 99

// Category classifies geoms for caller-side filtering.
type Category int

// Geom categories. They combine as a bit mask.
const (
	CatStatic  Category = 1
	CatDynamic Category = 2
	CatDecor   Category = 4
	CatAll              = CatStatic | CatDynamic | CatDecor
)

// String returns the category name, or a "|" joined list for masks.
func (c Category) String() string {
	switch c {
	case CatStatic:
		return "static"
	case CatDynamic:
		return "dynamic"
	case CatDecor:
		return "decor"
	case CatAll:
		return "all"
	case 0:
		return "none"
	}
	s := ""
	for _, bit := range []Category{CatStatic, CatDynamic, CatDecor} {
		if c&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += bit.String()
		}
	}
	return s
}

// ParseCategory returns the category with the given name.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "static":
		return CatStatic, nil
	case "dynamic":
		return CatDynamic, nil
	case "decor":
		return CatDecor, nil
	case "all":
		return CatAll, nil
	}
	return 0, fmt.Errorf("unknown geom category %q", name)
}

// Geom is an abstract render primitive.
type Geom struct {
	Type   sim.GeomType
	DataID int // mesh, plane or skin reference; -1 for none

	// Back-reference to the model entity
	ObjType  sim.ObjType
	ObjID    int
	Category Category
	SegID    int // position in the scene geom list

	TexID      int
	TexUniform bool
	TexCoord   bool
	TexRepeat  [2]float32

	Size math.Vec3
	Pos  math.Vec3
	Mat  math.Mat3
	RGBA [4]float32

	Emission    float32
	Specular    float32
	Shininess   float32
	Reflectance float32

	Label       string
	ModelRBound float32
}

var defaultGeom = Geom{
	Type:      sim.GeomNone,
	DataID:    -1,
	ObjType:   sim.ObjUnknown,
	ObjID:     -1,
	TexID:     -1,
	TexRepeat: [2]float32{1, 1},
	Size:      math.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
	Mat:       math.Identity3(),
	RGBA:      [4]float32{0.5, 0.5, 0.5, 1},
	Specular:  0.5,
	Shininess: 0.5,
}

// DefaultGeom returns the default appearance every geom starts from.
func DefaultGeom() Geom {
	return defaultGeom
}

// InitGeom returns a geom of the given type. Nil arguments keep their
// defaults; all appearance fields are always reset.
func InitGeom(typ sim.GeomType, size, pos *mgl64.Vec3, mat *mgl64.Mat3, rgba *[4]float32) Geom {
	g := defaultGeom
	g.Type = typ
	if size != nil {
		g.SetSize(*size)
	}
	if pos != nil {
		g.Pos = math.FromVec64(*pos)
	}
	if mat != nil {
		g.Mat = math.FromMat64(*mat)
	}
	if rgba != nil {
		g.RGBA = *rgba
	}
	return g
}

// SetSize interprets a model size vector according to the geom type:
// spheres use size[0] as a uniform radius, capsules and cylinders use
// radius and half-length, everything else takes all three components.
func (g *Geom) SetSize(size mgl64.Vec3) {
	switch g.Type {
	case sim.GeomSphere:
		r := float32(size[0])
		g.Size = math.Vec3{X: r, Y: r, Z: r}
	case sim.GeomCapsule, sim.GeomCylinder:
		r := float32(size[0])
		g.Size = math.Vec3{X: r, Y: r, Z: float32(size[1])}
	default:
		g.Size = math.FromVec64(size)
	}
}

// SetLabel stores s, truncated to MaxLabel bytes on a rune boundary.
func (g *Geom) SetLabel(s string) {
	g.Label = TruncateLabel(s)
}

// TruncateLabel shortens s to at most MaxLabel bytes without splitting a rune.
func TruncateLabel(s string) string {
	if len(s) <= MaxLabel {
		return s
	}
	n := MaxLabel
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// MakeConnector turns g into a shape spanning points a and b. Capsules and
// cylinders are centered between the points with half-length size; arrows
// and lines start at a with full length. Only the shape fields are set.
// Panics with ErrConnectorType for shapes that cannot connect points.
func MakeConnector(g *Geom, typ sim.GeomType, width float64, a, b mgl64.Vec3) {
	switch typ {
	case sim.GeomCapsule, sim.GeomCylinder,
		sim.GeomArrow, sim.GeomArrow1, sim.GeomArrow2, sim.GeomLine:
	default:
		panic(fmt.Errorf("%w: %v", ErrConnectorType, typ))
	}

	dif := b.Sub(a)
	g.Type = typ
	g.Size = math.Vec3{X: float32(width), Y: float32(width), Z: float32(dif.Len())}

	if typ == sim.GeomCapsule || typ == sim.GeomCylinder {
		g.Pos = math.FromVec64(a.Add(b).Mul(0.5))
		g.Size.Z *= 0.5
	} else {
		g.Pos = math.FromVec64(a)
	}

	g.Mat = math.FromMat64(QuatZ2Vec(dif).Mat4().Mat3())
}

// QuatZ2Vec returns the shortest-arc rotation taking the z axis to vec.
// A zero vec gives identity; -z gives a half turn about x.
func QuatZ2Vec(vec mgl64.Vec3) mgl64.Quat {
	n := vec.Len()
	if n < sim.MinVal {
		return mgl64.QuatIdent()
	}
	v := vec.Mul(1 / n)

	axis := mgl64.Vec3{0, 0, 1}.Cross(v)
	s := axis.Len()
	if s < sim.MinVal {
		if v[2] < 0 {
			return mgl64.Quat{W: 0, V: mgl64.Vec3{1, 0, 0}}
		}
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(gomath.Atan2(s, v[2]), axis.Mul(1/s))
}
