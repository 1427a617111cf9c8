package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLerpClamp(t *testing.T) {
	assert.InDelta(t, -0.825, Lerp(-0.4, -1.25, 0.5), 1e-12)
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 0.25, Saturate(0.25))
	assert.Equal(t, 0.5, Smoothstep(0, 1, 0.5))
	assert.Equal(t, 1.0, Smoothstep(1, 1, 2))
}

func TestSphericalRoundTrip(t *testing.T) {
	tests := []mgl64.Vec3{
		{8, 4.5, 17},
		{0, 10, 0.001},
		{-3, -2, 5},
		{0.0005, -10, 0},
	}
	for _, v := range tests {
		got := SphericalFromOffset(v).Offset()
		assert.True(t, got.ApproxEqualThreshold(v, 1e-9), "got %v want %v", got, v)
	}
}

func TestSphericalNearPole(t *testing.T) {
	s := SphericalFromOffset(mgl64.Vec3{0, 10, 0.001})
	assert.InDelta(t, 1e-4, s.Phi, 1e-12)
	got := s.Offset()
	assert.InDelta(t, 0.001, got.Z(), 1e-15)
	assert.InDelta(t, 10, got.Y(), 1e-12)
}

func TestSphericalClamp(t *testing.T) {
	s := Spherical{Radius: 100, Theta: 1, Phi: math.Pi}.Clamped(0.01, math.Pi-0.01, 2, 60)
	assert.Equal(t, 60.0, s.Radius)
	assert.InDelta(t, math.Pi-0.01, s.Phi, 1e-12)
}

func TestProjectOntoPlaneY(t *testing.T) {
	p, ok := ProjectOntoPlaneY(mgl64.Vec3{1, 2, 0}, mgl64.Vec3{-1, -1, 0}, 0)
	assert.True(t, ok)
	assert.True(t, p.ApproxEqual(mgl64.Vec3{-1, 0, 0}))

	_, ok = ProjectOntoPlaneY(mgl64.Vec3{1, 2, 0}, mgl64.Vec3{1, 0, 0}, 0)
	assert.False(t, ok)
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	assert.True(t, n.ApproxEqual(mgl64.Vec3{0, 0, 1}))
	assert.Equal(t, mgl64.Vec3{}, FaceNormal(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}))
}
