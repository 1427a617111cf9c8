// Package camera provides a perspective camera and orbit controls around a
// target point.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/vmath"
)

// Camera is a perspective camera looking at Target
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FovY     float64 // degrees
	Near     float64
	Far      float64
}

// Default returns the reference classroom view
func Default() Camera {
	return Camera{
		Position: mgl64.Vec3{8, 6, 12},
		Target:   mgl64.Vec3{0, 1.5, -5},
		FovY:     60,
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the world-to-camera matrix
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a viewport aspect ratio
func (c Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Forward is the unit view direction
func (c Camera) Forward() mgl64.Vec3 {
	return vmath.SafeNormalize(c.Target.Sub(c.Position))
}

// Distance from the camera to its target
func (c Camera) Distance() float64 {
	return c.Target.Sub(c.Position).Len()
}

// Orbit limits
const (
	MinPolar    = 0.01
	MaxPolar    = math.Pi - 0.01
	MinDistance = 2.0
	MaxDistance = 60.0
)
