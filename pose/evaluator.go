package pose

import (
	"fmt"

	"github.com/pkg/errors"
)

// Variant selects the animation detail level
type Variant uint8

const (
	// VariantSimple animates only student heads
	VariantSimple Variant = iota
	// VariantDetailed adds body bob, arm raise/sway and the teacher arm
	VariantDetailed
)

// TeacherPhase is the fixed phase of the single teacher actor
const TeacherPhase = 0

func (v Variant) String() string {
	switch v {
	case VariantSimple:
		return "simple"
	case VariantDetailed:
		return "detailed"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ParseVariant maps a config name to a Variant
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "simple", "":
		return VariantSimple, nil
	case "detailed":
		return VariantDetailed, nil
	}
	return 0, errors.Errorf("unknown variant %q", s)
}

// HeadAmplitude returns the fixed head tilt amplitude for the variant
func (v Variant) HeadAmplitude() float64 {
	if v == VariantDetailed {
		return HeadAmplitudeDetailed
	}
	return HeadAmplitudeSimple
}

// Evaluator produces poses for one variant; the zero value is the simple variant
type Evaluator struct {
	Variant Variant
}

// NewEvaluator returns an evaluator for the given variant
func NewEvaluator(v Variant) Evaluator {
	return Evaluator{Variant: v}
}

// Student evaluates a student rig at time t.
// gated must be the value of RaiseHandGate(phase) captured at construction.
func (e Evaluator) Student(t float64, phase int, gated bool) Pose {
	p := float64(phase)

	var out Pose
	out.Set(JointHead, HeadTilt(t, p, e.Variant.HeadAmplitude()))
	if e.Variant != VariantDetailed {
		return out
	}
	out.Set(JointBody, BodyBob(t, p))
	out.Set(JointLeftArm, LeftArmRotation(t, p, gated))
	out.Set(JointRightArm, RightArmRotation(t, p))
	return out
}

// Teacher evaluates the teacher rig at time t
func (e Evaluator) Teacher(t float64) Pose {
	var out Pose
	if e.Variant == VariantDetailed {
		out.Set(JointRightArm, TeacherRightArmRotation(t))
	}
	return out
}
