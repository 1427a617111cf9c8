package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/scene"
)

// Triangle is three counter-clockwise (seen from outside) vertices
type Triangle struct {
	V [3]mgl64.Vec3
}

type geomKey struct {
	shape    scene.Shape
	size     mgl64.Vec3
	segments int
}

// geometryCache tessellates each distinct primitive once
type geometryCache map[geomKey][]Triangle

func (gc geometryCache) get(m *scene.Mesh) []Triangle {
	k := geomKey{m.Shape, m.Size, m.Segments}
	if tris, ok := gc[k]; ok {
		return tris
	}
	var tris []Triangle
	switch m.Shape {
	case scene.ShapeBox:
		tris = tessellateBox(m.Size)
	case scene.ShapeSphere:
		tris = tessellateSphere(m.Size.X(), m.Segments)
	case scene.ShapePlane:
		tris = tessellatePlane(m.Size.X(), m.Size.Y())
	}
	gc[k] = tris
	return tris
}

// quad emits two triangles for the face centred at c spanned by u and v;
// u x v points outward
func quad(dst []Triangle, c, u, v mgl64.Vec3) []Triangle {
	a := c.Sub(u).Sub(v)
	b := c.Add(u).Sub(v)
	d := c.Add(u).Add(v)
	e := c.Sub(u).Add(v)
	return append(dst, Triangle{[3]mgl64.Vec3{a, b, d}}, Triangle{[3]mgl64.Vec3{a, d, e}})
}

func tessellateBox(size mgl64.Vec3) []Triangle {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	x := mgl64.Vec3{hx, 0, 0}
	y := mgl64.Vec3{0, hy, 0}
	z := mgl64.Vec3{0, 0, hz}

	tris := make([]Triangle, 0, 12)
	tris = quad(tris, x, y, z)
	tris = quad(tris, x.Mul(-1), z, y)
	tris = quad(tris, y, z, x)
	tris = quad(tris, y.Mul(-1), x, z)
	tris = quad(tris, z, x, y)
	tris = quad(tris, z.Mul(-1), y, x)
	return tris
}

func tessellatePlane(w, h float64) []Triangle {
	return quad(nil, mgl64.Vec3{}, mgl64.Vec3{w / 2, 0, 0}, mgl64.Vec3{0, h / 2, 0})
}

func tessellateSphere(r float64, segments int) []Triangle {
	if segments < 3 {
		segments = scene.DefaultSegments
	}
	lat, lon := segments, segments

	point := func(i, j int) mgl64.Vec3 {
		theta := math.Pi * float64(i) / float64(lat)
		phi := 2 * math.Pi * float64(j) / float64(lon)
		return mgl64.Vec3{
			r * math.Sin(theta) * math.Cos(phi),
			r * math.Cos(theta),
			r * math.Sin(theta) * math.Sin(phi),
		}
	}

	tris := make([]Triangle, 0, 2*lat*lon)
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			if i != 0 {
				tris = append(tris, outward(Triangle{[3]mgl64.Vec3{a, b, d}}))
			}
			if i != lat-1 {
				tris = append(tris, outward(Triangle{[3]mgl64.Vec3{b, c, d}}))
			}
		}
	}
	return tris
}

// outward flips a triangle of an origin-centred convex mesh to face away from the origin
func outward(t Triangle) Triangle {
	n := t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
	centroid := t.V[0].Add(t.V[1]).Add(t.V[2])
	if n.Dot(centroid) < 0 {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	return t
}
