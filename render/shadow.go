package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/scene"
	"github.com/lixenwraith/vi-classroom/vmath"
)

const (
	shadowLift  = 0.002
	contactLift = 0.003
	shadowBias  = 2e-3
	contactSegs = 20
)

// drawPlanarShadows flattens every shadow caster onto the floor along the
// light direction. One mask pass covers all casters so overlaps darken once.
func (r *Renderer) drawPlanarShadows(fb *Framebuffer, ras *rasterizer, vp mgl64.Mat4, s *scene.Scene, toLight mgl64.Vec3, stats *FrameStats) {
	dir := toLight.Mul(-1)
	factor := r.opts.ShadowFactor
	plot := func(x, y int, z float64) {
		if fb.Darken(x, y, z, shadowBias, factor) {
			stats.Shadows++
		}
	}

	fb.BeginMask()
	for _, g := range s.Groups {
		for _, m := range g.Meshes {
			if !m.CastShadow {
				continue
			}
			world := g.World(m)
			for _, tri := range r.geom.get(m) {
				var v [3]mgl64.Vec3
				ok := true
				for i := range tri.V {
					p := mgl64.TransformCoordinate(tri.V[i], world)
					v[i], ok = vmath.ProjectOntoPlaneY(p, dir, shadowLift)
					if !ok {
						break
					}
				}
				if ok {
					ras.Draw(vp, v, false, plot)
				}
			}
		}
	}
}

// drawContactShadows stamps nested discs under grounded groups; each ring is
// its own mask pass so the centre ends up darkest
func (r *Renderer) drawContactShadows(fb *Framebuffer, ras *rasterizer, vp mgl64.Mat4, s *scene.Scene, stats *FrameStats) {
	rings := max(1, r.opts.ContactRings)
	factor := r.opts.ContactFactor
	plot := func(x, y int, z float64) {
		if fb.Darken(x, y, z, shadowBias, factor) {
			stats.Shadows++
		}
	}

	for _, g := range s.Groups {
		if g.ContactRadius <= 0 {
			continue
		}
		centre := mgl64.Vec3{g.Position.X(), contactLift, g.Position.Z()}
		for k := 0; k < rings; k++ {
			radius := vmath.Lerp(g.ContactRadius, 0, float64(k)/float64(rings))
			fb.BeginMask()
			for _, tri := range disc(centre, radius, contactSegs) {
				ras.Draw(vp, tri.V, false, plot)
			}
		}
	}
}

// disc returns a horizontal triangle fan
func disc(centre mgl64.Vec3, radius float64, segs int) []Triangle {
	tris := make([]Triangle, 0, segs)
	for i := 0; i < segs; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segs)
		a1 := 2 * math.Pi * float64(i+1) / float64(segs)
		p0 := centre.Add(mgl64.Vec3{radius * math.Cos(a0), 0, radius * math.Sin(a0)})
		p1 := centre.Add(mgl64.Vec3{radius * math.Cos(a1), 0, radius * math.Sin(a1)})
		tris = append(tris, Triangle{[3]mgl64.Vec3{centre, p1, p0}})
	}
	return tris
}
