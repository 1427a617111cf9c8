package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/vmath"
)

// OrbitControls rotates, zooms and pans a camera around its target.
// Not safe for concurrent use; the render loop owns it.
type OrbitControls struct {
	cam     Camera
	initial Camera

	RotateStep float64 // radians per keyboard step
	ZoomStep   float64 // multiplicative distance factor per step
	PanStep    float64 // world units per keyboard step
	DragScale  float64 // radians per dragged cell
}

// NewOrbitControls wraps a camera; Reset returns to this camera
func NewOrbitControls(c Camera) *OrbitControls {
	return &OrbitControls{
		cam:        c,
		initial:    c,
		RotateStep: 0.08,
		ZoomStep:   1.1,
		PanStep:    0.5,
		DragScale:  0.03,
	}
}

// Camera returns the current camera
func (o *OrbitControls) Camera() Camera {
	return o.cam
}

func (o *OrbitControls) spherical() vmath.Spherical {
	return vmath.SphericalFromOffset(o.cam.Position.Sub(o.cam.Target))
}

func (o *OrbitControls) apply(s vmath.Spherical) {
	s = s.Clamped(MinPolar, MaxPolar, MinDistance, MaxDistance)
	o.cam.Position = o.cam.Target.Add(s.Offset())
}

// Rotate orbits by azimuth and polar deltas in radians
func (o *OrbitControls) Rotate(dTheta, dPhi float64) {
	s := o.spherical()
	s.Theta += dTheta
	s.Phi += dPhi
	o.apply(s)
}

// Zoom scales the target distance; factor < 1 moves closer
func (o *OrbitControls) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	s := o.spherical()
	s.Radius *= factor
	o.apply(s)
}

// Pan moves camera and target together in the camera's screen plane
func (o *OrbitControls) Pan(dx, dy float64) {
	fwd := o.cam.Forward()
	right := vmath.SafeNormalize(fwd.Cross(mgl64.Vec3{0, 1, 0}))
	up := vmath.SafeNormalize(right.Cross(fwd))
	delta := right.Mul(dx).Add(up.Mul(dy))
	o.cam.Position = o.cam.Position.Add(delta)
	o.cam.Target = o.cam.Target.Add(delta)
}

// Drag converts a pointer drag in cells into a rotation
func (o *OrbitControls) Drag(dxCells, dyCells int) {
	o.Rotate(-float64(dxCells)*o.DragScale, -float64(dyCells)*o.DragScale)
}

// StepLeft and friends are the keyboard bindings
func (o *OrbitControls) StepLeft()  { o.Rotate(-o.RotateStep, 0) }
func (o *OrbitControls) StepRight() { o.Rotate(o.RotateStep, 0) }
func (o *OrbitControls) StepUp()    { o.Rotate(0, -o.RotateStep) }
func (o *OrbitControls) StepDown()  { o.Rotate(0, o.RotateStep) }
func (o *OrbitControls) ZoomIn()    { o.Zoom(1 / o.ZoomStep) }
func (o *OrbitControls) ZoomOut()   { o.Zoom(o.ZoomStep) }

// Reset restores the camera the controls were created with
func (o *OrbitControls) Reset() {
	o.cam = o.initial
}
