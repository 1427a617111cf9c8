package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestDefaultProjectsTargetToCentre(t *testing.T) {
	c := Default()
	clip := c.ViewProjection(16.0 / 9.0).Mul4x1(c.Target.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-9)
	assert.InDelta(t, 0, ndc.Y(), 1e-9)
	assert.Greater(t, clip.W(), 0.0)
}

func TestRotateKeepsDistance(t *testing.T) {
	o := NewOrbitControls(Default())
	d := o.Camera().Distance()

	for i := 0; i < 50; i++ {
		o.StepRight()
		o.StepUp()
	}
	assert.InDelta(t, d, o.Camera().Distance(), 1e-9)
	assert.True(t, o.Camera().Target.ApproxEqual(Default().Target))
}

func TestRotateClampsPolar(t *testing.T) {
	o := NewOrbitControls(Default())
	o.Rotate(0, -10)

	off := o.Camera().Position.Sub(o.Camera().Target)
	phi := math.Acos(off.Y() / off.Len())
	assert.InDelta(t, MinPolar, phi, 1e-9)
}

func TestZoomClamps(t *testing.T) {
	o := NewOrbitControls(Default())
	o.Zoom(1e-6)
	assert.InDelta(t, MinDistance, o.Camera().Distance(), 1e-9)
	o.Zoom(1e6)
	assert.InDelta(t, MaxDistance, o.Camera().Distance(), 1e-9)
	o.Zoom(-1)
	assert.InDelta(t, MaxDistance, o.Camera().Distance(), 1e-9)
}

func TestPanMovesTargetAndEye(t *testing.T) {
	o := NewOrbitControls(Default())
	before := o.Camera()
	o.Pan(1, 0.5)
	after := o.Camera()

	assert.InDelta(t, before.Distance(), after.Distance(), 1e-9)
	assert.False(t, after.Target.ApproxEqual(before.Target))

	o.Reset()
	assert.Equal(t, before, o.Camera())
}

func TestProjectionFallbackAspect(t *testing.T) {
	c := Default()
	assert.Equal(t, c.Projection(1), c.Projection(0))
	assert.NotEqual(t, mgl64.Mat4{}, c.View())
}
