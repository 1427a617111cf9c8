package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// screenVert is a vertex after perspective divide and viewport mapping
type screenVert struct {
	x, y, z float64
	// nx, ny are NDC coordinates used for facing tests
	nx, ny float64
}

// PlotFunc receives every covered pixel with its interpolated depth
type PlotFunc func(x, y int, z float64)

// clipNear clips a clip-space polygon against z >= -w (the near plane)
func clipNear(in []mgl64.Vec4, out []mgl64.Vec4) []mgl64.Vec4 {
	out = out[:0]
	n := len(in)
	for i := 0; i < n; i++ {
		a, b := in[i], in[(i+1)%n]
		da, db := a.Z()+a.W(), b.Z()+b.W()
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, a.Add(b.Sub(a).Mul(t)))
		}
	}
	return out
}

// rasterizer converts clip-space triangles to pixels for one framebuffer size
type rasterizer struct {
	width, height int
	clipA, clipB  []mgl64.Vec4
	screen        []screenVert
}

func newRasterizer(width, height int) *rasterizer {
	return &rasterizer{
		width:  width,
		height: height,
		clipA:  make([]mgl64.Vec4, 0, 8),
		clipB:  make([]mgl64.Vec4, 0, 8),
		screen: make([]screenVert, 0, 8),
	}
}

// Draw transforms a world triangle by mvp and plots covered pixels.
// With cull set, triangles whose CCW side faces away are skipped.
// Returns false when nothing was rasterised.
func (r *rasterizer) Draw(mvp mgl64.Mat4, v [3]mgl64.Vec3, cull bool, plot PlotFunc) bool {
	r.clipA = r.clipA[:0]
	for i := range v {
		r.clipA = append(r.clipA, mvp.Mul4x1(v[i].Vec4(1)))
	}
	poly := clipNear(r.clipA, r.clipB)
	r.clipB = poly
	if len(poly) < 3 {
		return false
	}

	r.screen = r.screen[:0]
	for _, c := range poly {
		w := c.W()
		if w < 1e-9 {
			w = 1e-9
		}
		nx, ny, nz := c.X()/w, c.Y()/w, c.Z()/w
		r.screen = append(r.screen, screenVert{
			x:  (nx + 1) * 0.5 * float64(r.width),
			y:  (1 - ny) * 0.5 * float64(r.height),
			z:  nz,
			nx: nx,
			ny: ny,
		})
	}

	if cull {
		a, b, c := r.screen[0], r.screen[1], r.screen[2]
		area := (b.nx-a.nx)*(c.ny-a.ny) - (c.nx-a.nx)*(b.ny-a.ny)
		if area <= 0 {
			return false
		}
	}

	drawn := false
	for i := 1; i+1 < len(r.screen); i++ {
		if r.fill(r.screen[0], r.screen[i], r.screen[i+1], plot) {
			drawn = true
		}
	}
	return drawn
}

func edge(a, b screenVert, px, py float64) float64 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// fill scans the triangle's bounding box sampling pixel centres
func (r *rasterizer) fill(a, b, c screenVert, plot PlotFunc) bool {
	area := edge(a, b, c.x, c.y)
	if math.Abs(area) < 1e-12 {
		return false
	}
	inv := 1 / area

	minX := max(0, int(math.Floor(min(a.x, b.x, c.x))))
	maxX := min(r.width-1, int(math.Ceil(max(a.x, b.x, c.x))))
	minY := max(0, int(math.Floor(min(a.y, b.y, c.y))))
	maxY := min(r.height-1, int(math.Ceil(max(a.y, b.y, c.y))))

	drawn := false
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b, c, px, py) * inv
			w1 := edge(c, a, px, py) * inv
			w2 := edge(a, b, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}
			plot(x, y, z)
			drawn = true
		}
	}
	return drawn
}
