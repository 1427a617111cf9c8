package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/pose"
)

// Role distinguishes students from the teacher
type Role uint8

const (
	RoleStudent Role = iota
	RoleTeacher
)

func (r Role) String() string {
	if r == RoleTeacher {
		return "teacher"
	}
	return "student"
}

// Actor is an animated rig. It exclusively owns its joint meshes: the
// evaluator returns a pose and only Apply writes the joint transforms.
type Actor struct {
	ID    string
	Role  Role
	Row   int
	Col   int
	Phase int

	// Gated is RaiseHandGate(Phase), fixed at construction
	Gated bool

	Group *Group

	joints [pose.JointCount]*Mesh
	rest   [pose.JointCount]mgl64.Vec3
}

// StudentPhase is the grid-derived phase of a student
func StudentPhase(row, col, cols int) int {
	return row*cols + col
}

func newStudentActor(row, col, cols int, g *Group) *Actor {
	phase := StudentPhase(row, col, cols)
	return &Actor{
		ID:    fmt.Sprintf("student-%d-%d", row, col),
		Role:  RoleStudent,
		Row:   row,
		Col:   col,
		Phase: phase,
		Gated: pose.RaiseHandGate(phase),
		Group: g,
	}
}

func newTeacherActor(g *Group) *Actor {
	return &Actor{
		ID:    "teacher",
		Role:  RoleTeacher,
		Row:   -1,
		Col:   -1,
		Phase: pose.TeacherPhase,
		Group: g,
	}
}

// bind attaches a mesh as a joint and records its rest position
func (a *Actor) bind(j pose.Joint, m *Mesh) {
	a.joints[j] = m
	a.rest[j] = m.Position
}

// Joint returns the mesh bound to a joint, nil when the rig lacks it
func (a *Actor) Joint(j pose.Joint) *Mesh {
	if j >= pose.JointCount {
		return nil
	}
	return a.joints[j]
}

// Apply writes a pose into the owned joint transforms.
// Joints the pose does not drive keep their current transform.
func (a *Actor) Apply(p pose.Pose) {
	p.Each(func(j pose.Joint, v float64) {
		m := a.joints[j]
		if m == nil {
			return
		}
		switch j.Kind() {
		case pose.RotationX:
			m.Rotation[0] = v
		case pose.OffsetY:
			m.Position = a.rest[j].Add(mgl64.Vec3{0, v, 0})
		}
	})
}

// Evaluate computes this actor's pose at time t
func (a *Actor) Evaluate(e pose.Evaluator, t float64) pose.Pose {
	if a.Role == RoleTeacher {
		return e.Teacher(t)
	}
	return e.Student(t, a.Phase, a.Gated)
}
