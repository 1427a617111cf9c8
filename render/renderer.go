package render

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/camera"
	"github.com/lixenwraith/vi-classroom/scene"
	"github.com/lixenwraith/vi-classroom/vmath"
)

// Options tunes the shadow passes
type Options struct {
	Shadows        bool
	ContactShadows bool

	// ShadowFactor scales floor colour under a projected shadow
	ShadowFactor float64
	// ContactFactor scales floor colour per contact ring
	ContactFactor float64
	ContactRings  int
}

// DefaultOptions enables both shadow kinds
func DefaultOptions() Options {
	return Options{
		Shadows:        true,
		ContactShadows: true,
		ShadowFactor:   0.62,
		ContactFactor:  0.85,
		ContactRings:   3,
	}
}

// FrameStats describes the work done for one frame
type FrameStats struct {
	Triangles int // triangles that produced pixels
	Culled    int // triangles rejected by facing or clipping
	Shadows   int // shadow pixels written
}

// Renderer draws scenes into framebuffers. It caches tessellated geometry and
// is not safe for concurrent use.
type Renderer struct {
	opts Options
	geom geometryCache
}

// NewRenderer creates a renderer with the given options
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts, geom: make(geometryCache)}
}

// Options returns the active options
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
}

type drawItem struct {
	group *scene.Group
	mesh  *scene.Mesh
	world mgl64.Mat4
	depth float64 // view distance of the mesh origin, for transparent sorting
}

// Render draws the scene as seen by cam into fb
func (r *Renderer) Render(fb *Framebuffer, s *scene.Scene, cam camera.Camera) FrameStats {
	var stats FrameStats
	l := s.Layout
	fb.Clear(FromColorful(l.Palette.Background))

	w, h := fb.Size()
	if w == 0 || h == 0 {
		return stats
	}
	ras := newRasterizer(w, h)
	vp := cam.ViewProjection(fb.Aspect())
	toLight := vmath.SafeNormalize(l.Light.Position)

	var receivers, opaque, transparent []drawItem
	for _, g := range s.Groups {
		for _, m := range g.Meshes {
			world := g.World(m)
			it := drawItem{group: g, mesh: m, world: world}
			switch {
			case m.Material.Transparent():
				it.depth = mgl64.TransformCoordinate(mgl64.Vec3{}, world).Sub(cam.Position).Len()
				transparent = append(transparent, it)
			case m.ReceiveShadow && !m.CastShadow:
				receivers = append(receivers, it)
			default:
				opaque = append(opaque, it)
			}
		}
	}

	for _, it := range receivers {
		r.drawMesh(fb, ras, vp, it, toLight, l.Light, &stats)
	}
	if r.opts.Shadows {
		r.drawPlanarShadows(fb, ras, vp, s, toLight, &stats)
	}
	if r.opts.ContactShadows {
		r.drawContactShadows(fb, ras, vp, s, &stats)
	}
	for _, it := range opaque {
		r.drawMesh(fb, ras, vp, it, toLight, l.Light, &stats)
	}

	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].depth > transparent[j].depth
	})
	for _, it := range transparent {
		r.drawMesh(fb, ras, vp, it, toLight, l.Light, &stats)
	}
	return stats
}

func (r *Renderer) drawMesh(fb *Framebuffer, ras *rasterizer, vp mgl64.Mat4, it drawItem, toLight mgl64.Vec3, light scene.Light, stats *FrameStats) {
	mat := it.mesh.Material
	alpha := mat.Opacity
	for _, tri := range r.geom.get(it.mesh) {
		var v [3]mgl64.Vec3
		for i := range tri.V {
			v[i] = mgl64.TransformCoordinate(tri.V[i], it.world)
		}
		n := vmath.FaceNormal(v[0], v[1], v[2])
		diffuse := math.Max(0, n.Dot(toLight)) * light.Intensity
		c := Shade(mat.Color, light.Ambient, diffuse)

		var plot PlotFunc
		if mat.Transparent() {
			plot = func(x, y int, z float64) { fb.BlendPlot(x, y, z, c, alpha) }
		} else {
			plot = func(x, y int, z float64) { fb.Plot(x, y, z, c) }
		}
		if ras.Draw(vp, v, true, plot) {
			stats.Triangles++
		} else {
			stats.Culled++
		}
	}
}
