package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Spherical is an offset from an orbit target in spherical coordinates.
// Theta is the azimuth around +Y measured from +Z toward +X; Phi is the polar
// angle from +Y.
type Spherical struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// SphericalFromOffset converts a cartesian offset (eye - target)
func SphericalFromOffset(v mgl64.Vec3) Spherical {
	r := v.Len()
	if r < Epsilon {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X(), v.Z()),
		Phi:    math.Atan2(math.Hypot(v.X(), v.Z()), v.Y()),
	}
}

// Offset converts back to a cartesian offset from the target
func (s Spherical) Offset() mgl64.Vec3 {
	sinPhi := math.Sin(s.Phi)
	return mgl64.Vec3{
		s.Radius * sinPhi * math.Sin(s.Theta),
		s.Radius * math.Cos(s.Phi),
		s.Radius * sinPhi * math.Cos(s.Theta),
	}
}

// Clamped restricts the polar angle and radius to the given ranges
func (s Spherical) Clamped(minPhi, maxPhi, minRadius, maxRadius float64) Spherical {
	s.Phi = Clamp(s.Phi, minPhi, maxPhi)
	s.Radius = Clamp(s.Radius, minRadius, maxRadius)
	return s
}
