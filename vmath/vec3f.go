package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SafeNormalize returns the unit vector, or zero for a zero-length input
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// FaceNormal returns the unit normal of a counter-clockwise triangle
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return SafeNormalize(b.Sub(a).Cross(c.Sub(a)))
}

// ProjectOntoPlaneY casts p along dir onto the horizontal plane at height y.
// ok is false when dir is parallel to the plane or points away from it.
func ProjectOntoPlaneY(p, dir mgl64.Vec3, y float64) (mgl64.Vec3, bool) {
	if dir.Y() > -Epsilon {
		return mgl64.Vec3{}, false
	}
	s := (y - p.Y()) / dir.Y()
	if s < 0 {
		s = 0
	}
	return p.Add(dir.Mul(s)), true
}
