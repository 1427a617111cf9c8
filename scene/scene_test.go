package scene

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-classroom/pose"
)

func detailedLayout() Layout {
	l := DefaultLayout()
	l.Variant = pose.VariantDetailed
	return l
}

func TestBuildDefaultGrid(t *testing.T) {
	s := Build(DefaultLayout())

	require.Len(t, s.Actors, 13)
	assert.Equal(t, RoleTeacher, s.Actors[0].Role)

	gated := map[int]bool{}
	for _, a := range s.Actors[1:] {
		assert.Equal(t, RoleStudent, a.Role)
		assert.Equal(t, a.Row*4+a.Col, a.Phase)
		assert.Equal(t, pose.RaiseHandGate(a.Phase), a.Gated)
		if a.Gated {
			gated[a.Phase] = true
		}
	}
	assert.Equal(t, map[int]bool{0: true, 5: true, 10: true}, gated)
	assert.Equal(t, 3, s.RaisingHands())
}

func TestStudentPlacement(t *testing.T) {
	s := Build(DefaultLayout())

	a := s.Actor("student-2-3")
	require.NotNil(t, a)
	assert.Equal(t, 11, a.Phase)
	assert.False(t, a.Gated)
	assert.True(t, a.Group.Position.ApproxEqual(mgl64.Vec3{4.5, 0, 7.4}))

	var desk *Group
	for _, g := range s.Groups {
		if g.Name == "desk-2-3" {
			desk = g
		}
	}
	require.NotNil(t, desk)
	assert.True(t, desk.Position.ApproxEqual(mgl64.Vec3{4.5, 0, 8}))
}

func TestChairsOnlyInDetailedVariant(t *testing.T) {
	count := func(s *Scene) int {
		n := 0
		for _, g := range s.Groups {
			if strings.HasPrefix(g.Name, "chair-") {
				n++
			}
		}
		return n
	}
	assert.Zero(t, count(Build(DefaultLayout())))
	assert.Equal(t, 12, count(Build(detailedLayout())))
}

func TestSimpleUpdateTiltsHeadsOnly(t *testing.T) {
	s := Build(DefaultLayout())
	s.Update(1.25)

	for _, a := range s.Actors {
		if a.Role != RoleStudent {
			continue
		}
		head := a.Joint(pose.JointHead)
		assert.InDelta(t, pose.HeadTilt(1.25, float64(a.Phase), pose.HeadAmplitudeSimple), head.Rotation.X(), 1e-12)
		assert.Equal(t, pose.ArmRestAngle, a.Joint(pose.JointLeftArm).Rotation.X())
		assert.Equal(t, pose.ArmRestAngle, a.Joint(pose.JointRightArm).Rotation.X())
		assert.Equal(t, 0.8, a.Joint(pose.JointBody).Position.Y())
	}
}

func TestDetailedUpdateAppliesAllJoints(t *testing.T) {
	s := Build(detailedLayout())
	s.Update(0)

	raiser := s.Actor("student-0-0")
	require.NotNil(t, raiser)
	assert.InDelta(t, -0.825, raiser.Joint(pose.JointLeftArm).Rotation.X(), 1e-12)
	assert.InDelta(t, -0.4, raiser.Joint(pose.JointRightArm).Rotation.X(), 1e-12)

	// ungated arms snap to 0 rather than the -0.4 rest angle
	rester := s.Actor("student-0-1")
	require.NotNil(t, rester)
	assert.Zero(t, rester.Joint(pose.JointLeftArm).Rotation.X())

	teacher := s.Actor("teacher")
	require.NotNil(t, teacher)
	assert.InDelta(t, -0.3, teacher.Joint(pose.JointRightArm).Rotation.X(), 1e-12)
}

func TestTeacherHeadAndBodyStayAtRest(t *testing.T) {
	for _, l := range []Layout{DefaultLayout(), detailedLayout()} {
		s := Build(l)
		teacher := s.Actor("teacher")
		require.NotNil(t, teacher)
		assert.Equal(t, pose.TeacherPhase, teacher.Phase)

		head := *teacher.Joint(pose.JointHead)
		body := *teacher.Joint(pose.JointBody)
		for _, ts := range []float64{0.3, 1.7, 42} {
			s.Update(ts)
			assert.Equal(t, head.Rotation, teacher.Joint(pose.JointHead).Rotation, l.Variant.String())
			assert.Equal(t, body.Position, teacher.Joint(pose.JointBody).Position, l.Variant.String())
		}
	}
}

func TestBodyBobIsOffsetFromRest(t *testing.T) {
	s := Build(detailedLayout())
	a := s.Actor("student-1-2")
	require.NotNil(t, a)

	for _, ts := range []float64{0.3, 7, 0.3} {
		s.Update(ts)
		want := 0.8 + pose.BodyBob(ts, float64(a.Phase))
		assert.InDelta(t, want, a.Joint(pose.JointBody).Position.Y(), 1e-12)
	}
}

func TestUpdateIsReplayable(t *testing.T) {
	s := Build(detailedLayout())
	s.Update(4.2)
	first := snapshotJoints(s)
	s.Update(9.9)
	s.Update(4.2)
	assert.Equal(t, first, snapshotJoints(s))
}

func TestOnFrameOrder(t *testing.T) {
	s := Build(DefaultLayout())
	var got []float64
	s.OnFrame(func(t float64) { got = append(got, t) })
	s.Update(1)
	s.Update(2)
	assert.Equal(t, []float64{1, 2}, got)
}

func TestMeshLocalTransform(t *testing.T) {
	m := &Mesh{Position: mgl64.Vec3{1, 2, 3}}
	p := mgl64.TransformCoordinate(mgl64.Vec3{}, m.Local())
	assert.True(t, p.ApproxEqual(mgl64.Vec3{1, 2, 3}))

	g := &Group{Position: mgl64.Vec3{10, 0, 0}}
	p = mgl64.TransformCoordinate(mgl64.Vec3{}, g.World(m))
	assert.True(t, p.ApproxEqual(mgl64.Vec3{11, 2, 3}))
}

func snapshotJoints(s *Scene) []mgl64.Vec3 {
	var out []mgl64.Vec3
	for _, a := range s.Actors {
		for j := pose.Joint(0); j < pose.JointCount; j++ {
			if m := a.Joint(j); m != nil {
				out = append(out, m.Rotation, m.Position)
			}
		}
	}
	return out
}
