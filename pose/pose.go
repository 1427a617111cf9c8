// Package pose computes per-frame joint offsets for classroom actors.
//
// Every function here is pure: the result depends only on elapsed time and the
// actor phase, so replaying (t, phase) always yields the same pose. The raise-hand
// gate is the one decision that is taken once per actor at construction.
package pose

import "math"

// Amplitude and rest constants for the periodic motions
const (
	// HeadAmplitudeSimple is the head tilt amplitude of the simple variant
	HeadAmplitudeSimple = 0.05
	// HeadAmplitudeDetailed is the head tilt amplitude of the detailed variant
	HeadAmplitudeDetailed = 0.12

	BodyBobAmplitude = 0.02
	BodyBobRate      = 1.2

	// ArmRestAngle is the static rest rotation of a student arm about X
	ArmRestAngle = -0.4
	// ArmRaisedAngle is the fully raised rotation of a gated left arm
	ArmRaisedAngle = -1.25
	RaiseRate      = 1.4

	RightArmSway = 0.15
	RightArmRate = 1.6

	TeacherArmRest  = -0.3
	TeacherArmSwing = 0.35
	TeacherArmRate  = 1.7

	// RaiseHandModulus selects every fifth phase as a hand raiser
	RaiseHandModulus = 5
)

// HeadTilt returns the head rotation about the lateral axis
func HeadTilt(t, phase, amplitude float64) float64 {
	return math.Sin(t+phase) * amplitude
}

// BodyBob returns the vertical body offset (detailed variant only)
func BodyBob(t, phase float64) float64 {
	return math.Sin(t*BodyBobRate+phase) * BodyBobAmplitude
}

// RaiseHandGate reports whether an actor with this phase raises its left hand.
// Call once at construction and keep the result for the actor's lifetime.
func RaiseHandGate(phase int) bool {
	return phase%RaiseHandModulus == 0
}

// RaiseBlend returns the 0..1 oscillation used to blend the left arm between
// rest and raised
func RaiseBlend(t, phase float64) float64 {
	return math.Sin(t*RaiseRate+phase)*0.5 + 0.5
}

// LeftArmRotation returns the left arm rotation about X.
// An ungated arm reports exactly 0, not ArmRestAngle.
func LeftArmRotation(t, phase float64, gated bool) float64 {
	if !gated {
		return 0
	}
	k := RaiseBlend(t, phase)
	return ArmRestAngle + k*(ArmRaisedAngle-ArmRestAngle)
}

// RightArmRotation returns the always-on right arm sway
func RightArmRotation(t, phase float64) float64 {
	return ArmRestAngle + math.Sin(t*RightArmRate+phase)*RightArmSway
}

// TeacherRightArmRotation returns the teacher's right arm swing
func TeacherRightArmRotation(t float64) float64 {
	return TeacherArmRest + math.Sin(t*TeacherArmRate)*TeacherArmSwing
}
