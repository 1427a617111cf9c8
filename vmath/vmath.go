// Package vmath holds the small float64 helpers shared by the camera, scene
// and rasteriser. Vectors and matrices are mgl64 types.
package vmath

// Epsilon is the tolerance used for degenerate geometry checks
const Epsilon = 1e-9

// Lerp linearly interpolates from a to b by t (t is not clamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps to [0, 1]
func Saturate(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Smoothstep is the cubic Hermite ramp between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Saturate((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
