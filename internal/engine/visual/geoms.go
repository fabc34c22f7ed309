package visual

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/simvis/internal/engine/scene"
	"github.com/Faultbox/simvis/pkg/math"
	"github.com/Faultbox/simvis/pkg/sim"
)

// maxPlaneGrid is the grid resolution of an infinite plane.
const maxPlaneGrid = 200

func addModelGeoms(p *pass) error {
	planeID := -1
	for i := range p.m.Geoms {
		mg := &p.m.Geoms[i]
		if mg.Type == sim.GeomPlane {
			planeID++
		}
		cat := p.bodyCategory(mg.BodyID)
		if !p.shows(cat) || !p.opt.GeomGroup.Enabled(mg.Group) {
			continue
		}

		g := scene.InitGeom(mg.Type, &mg.Size, &p.d.GeomXPos[i], &p.d.GeomXMat[i], nil)
		g.ObjType, g.ObjID, g.Category = sim.ObjGeom, i, cat
		g.DataID = mg.DataID
		g.ModelRBound = float32(mg.RBound)
		setMaterial(p.m, p.opt, &g, mg.MatID, mg.RGBA)
		if mg.Type == sim.GeomMesh && mg.DataID >= 0 && p.m.Meshes[mg.DataID].TexCoordAdr >= 0 {
			g.TexCoord = true
		}
		if g.RGBA[3] == 0 {
			continue
		}
		if p.pert.Select > 0 && p.pert.Select == mg.BodyID {
			markSelected(&p.m.Visual, &g)
		}
		if p.opt.Label == LabelGeom {
			g.Label = p.label(sim.ObjGeom, i)
		}

		switch mg.Type {
		case sim.GeomMesh:
			// 2*id is the mesh itself, 2*id+1 its convex hull
			g.DataID *= 2
			if p.m.Meshes[mg.DataID].GraphAdr >= 0 && p.on(FlagConvexHull) {
				g.DataID++
			}
		case sim.GeomPlane:
			g.DataID = planeID
			g.Pos = math.FromVec64(p.planePos(mg, p.d.GeomXPos[i], p.d.GeomXMat[i]))
		}

		if !p.add(g) {
			return nil
		}
		if !p.addEntityFrame(FrameGeom, p.d.GeomXPos[i], p.d.GeomXMat[i]) {
			return nil
		}
	}
	return nil
}

// planePos moves an infinite plane under the midpoint of the two eyes,
// snapped to a multiple of its texture or grid spacing so the pattern does
// not slide with the camera.
func (p *pass) planePos(mg *sim.Geom, pos mgl64.Vec3, mat mgl64.Mat3) mgl64.Vec3 {
	if mg.Size[0] > 0 && mg.Size[1] > 0 {
		return pos
	}
	cam := &p.scn.Camera
	head := cam[0].Pos.Add(cam[1].Pos).Scale(0.5).ToVec64()
	vec := head.Sub(pos)
	zfar := p.m.Visual.Map.ZFar * p.m.Stat.Extent

	for k := 0; k < 2; k++ {
		if mg.Size[k] > 0 {
			continue
		}
		var step float64
		if mg.MatID >= 0 && p.m.Materials[mg.MatID].TexRepeat[k] > 0 {
			step = 2 / float64(p.m.Materials[mg.MatID].TexRepeat[k])
		} else {
			step = 2.1 * zfar / (maxPlaneGrid - 2)
		}
		ax := mat.Col(k)
		dx := vec.Dot(ax)
		dx = 2 * step * gomath.Round(0.5*dx/step)
		pos = pos.Add(ax.Mul(dx))
	}
	return pos
}

func addSites(p *pass) error {
	for i := range p.m.Sites {
		site := &p.m.Sites[i]
		cat := p.bodyCategory(site.BodyID)
		if !p.shows(cat) || !p.opt.SiteGroup.Enabled(site.Group) {
			continue
		}

		g := scene.InitGeom(site.Type, &site.Size, &p.d.SiteXPos[i], &p.d.SiteXMat[i], nil)
		g.ObjType, g.ObjID, g.Category = sim.ObjSite, i, cat
		setMaterial(p.m, p.opt, &g, site.MatID, site.RGBA)
		if g.RGBA[3] == 0 {
			continue
		}
		if p.pert.Select > 0 && p.pert.Select == site.BodyID {
			markSelected(&p.m.Visual, &g)
		}
		if p.opt.Label == LabelSite {
			g.Label = p.label(sim.ObjSite, i)
		}
		if !p.add(g) {
			return nil
		}
		if !p.addEntityFrame(FrameSite, p.d.SiteXPos[i], p.d.SiteXMat[i]) {
			return nil
		}
	}
	return nil
}

// addCameras draws each model camera as a box with a darker lens cylinder
// in front of it.
func addCameras(p *pass) error {
	if !p.on(FlagCamera) || !p.shows(scene.CatDecor) {
		return nil
	}
	vis := &p.m.Visual
	s := p.scl * vis.Scale.Camera

	for i := range p.m.Cameras {
		pos, mat := p.d.CamXPos[i], p.d.CamXMat[i]

		g := p.newGeom(sim.ObjCamera, i, scene.CatDecor)
		g.Type = sim.GeomBox
		g.Size = math.Vec3{X: float32(s), Y: float32(0.8 * s), Z: float32(0.4 * s)}
		g.Pos = math.FromVec64(pos)
		g.Mat = math.FromMat64(mat)
		g.RGBA = vis.RGBA.Camera
		if p.opt.Label == LabelCamera {
			g.Label = p.label(sim.ObjCamera, i)
		}
		if !p.add(g) {
			return nil
		}

		lens := p.newGeom(sim.ObjCamera, i, scene.CatDecor)
		lens.Type = sim.GeomCylinder
		lens.Size = math.Vec3{X: float32(0.4 * s), Y: float32(0.4 * s), Z: float32(0.3 * s)}
		lens.Pos = math.FromVec64(pos.Sub(mat.Col(2).Mul(0.6 * s)))
		lens.Mat = math.FromMat64(mat)
		lens.RGBA = vis.RGBA.Camera
		for k := 0; k < 3; k++ {
			lens.RGBA[k] *= 0.5
		}
		if !p.add(lens) {
			return nil
		}

		if !p.addEntityFrame(FrameCamera, pos, mat) {
			return nil
		}
	}
	return nil
}

// addLights draws each active model light as a cylinder pointing along the
// light, pulled back slightly so it does not shadow its own light.
func addLights(p *pass) error {
	if !p.on(FlagLight) || !p.shows(scene.CatDecor) {
		return nil
	}
	vis := &p.m.Visual
	s := p.scl * vis.Scale.Light

	for i := range p.m.Lights {
		if !p.m.Lights[i].Active {
			continue
		}
		dir := p.d.LightXDir[i]
		mat := scene.QuatZ2Vec(dir).Mat4().Mat3()

		g := p.newGeom(sim.ObjLight, i, scene.CatDecor)
		g.Type = sim.GeomCylinder
		g.Size = math.Vec3{X: float32(0.8 * s), Y: float32(0.8 * s), Z: float32(s)}
		g.Pos = math.FromVec64(p.d.LightXPos[i].Add(dir.Mul(-s - 0.0001)))
		g.Mat = math.FromMat64(mat)
		g.RGBA = vis.RGBA.Light
		if p.opt.Label == LabelLight {
			g.Label = p.label(sim.ObjLight, i)
		}
		if !p.add(g) {
			return nil
		}

		if !p.addEntityFrame(FrameLight, p.d.LightXPos[i], mat) {
			return nil
		}
	}
	return nil
}
