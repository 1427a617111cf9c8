package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/vi-classroom/pose"
)

const (
	deskOpacity = 0.5

	studentContactRadius = 0.45
	teacherContactRadius = 0.6
	deskContactRadius    = 0.85
)

// Build constructs the classroom for a layout. Actors are created once here and
// live as long as the returned scene.
func Build(l Layout) *Scene {
	s := newScene(l)
	p := l.Palette

	s.addGroup(buildRoom(l))

	blackboard := &Group{Name: "blackboard"}
	blackboard.Add(casting(box("blackboard", 8, 2.5, 0.1, mgl64.Vec3{0, 2.2, -l.Room.Depth/2 + 0.05}, Solid(p.Blackboard)))...)
	s.addGroup(blackboard)

	podium := &Group{Name: "podium"}
	top := box("podium", 2, 1, 1, mgl64.Vec3{0, 0.5, -4.5}, Solid(p.Podium))
	top.CastShadow, top.ReceiveShadow = true, true
	podium.Add(top)
	s.addGroup(podium)

	s.addActor(buildTeacher(l))

	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			s.addGroup(buildDesk(l, r, c))
			if l.Variant == pose.VariantDetailed {
				s.addGroup(buildChair(l, r, c))
			}
			s.addActor(buildStudent(l, r, c))
		}
	}
	return s
}

func buildRoom(l Layout) *Group {
	p := l.Palette
	w, d, h := l.Room.Width, l.Room.Depth, l.Room.Height

	floor := plane("floor", w, d, mgl64.Vec3{}, mgl64.Vec3{-math.Pi / 2, 0, 0}, Material{Color: p.Floor, Opacity: 1, Roughness: 0.9})
	floor.ReceiveShadow = true

	g := &Group{Name: "room"}
	return g.Add(
		floor,
		plane("back-wall", w, h, mgl64.Vec3{0, h / 2, -d / 2}, mgl64.Vec3{}, Solid(p.Wall)),
		plane("left-wall", d, h, mgl64.Vec3{-w / 2, h / 2, 0}, mgl64.Vec3{0, math.Pi / 2, 0}, Solid(p.Wall)),
		plane("right-wall", d, h, mgl64.Vec3{w / 2, h / 2, 0}, mgl64.Vec3{0, -math.Pi / 2, 0}, Solid(p.Wall)),
		plane("ceiling", w, d, mgl64.Vec3{0, h, 0}, mgl64.Vec3{math.Pi / 2, 0, 0}, Solid(p.Ceiling)),
	)
}

func buildDesk(l Layout, row, col int) *Group {
	p := l.Palette
	g := &Group{
		Name:     fmt.Sprintf("desk-%d-%d", row, col),
		Position: l.DeskPosition(row, col),
	}
	body := Material{Color: p.DeskBody, Opacity: deskOpacity, Roughness: 1}
	g.Add(casting(
		box("desk-top", 1.4, 0.1, 0.8, mgl64.Vec3{0, 0.75, 0}, Solid(p.DeskTop)),
		box("desk-body", 1.4, 0.7, 0.8, mgl64.Vec3{0, 0.35, 0}, body),
	)...)
	if l.Variant == pose.VariantDetailed {
		g.ContactRadius = deskContactRadius
	}
	return g
}

// buildChair places a chair on the blackboard side of the student
func buildChair(l Layout, row, col int) *Group {
	mat := Solid(l.Palette.Chair)
	g := &Group{
		Name:     fmt.Sprintf("chair-%d-%d", row, col),
		Position: l.StudentPosition(row, col).Add(mgl64.Vec3{0, 0, -0.55}),
	}
	g.Add(casting(
		box("chair-seat", 0.5, 0.06, 0.5, mgl64.Vec3{0, 0.45, 0}, mat),
		box("chair-back", 0.5, 0.5, 0.06, mgl64.Vec3{0, 0.73, -0.22}, mat),
	)...)
	for i, off := range [4][2]float64{{-0.2, -0.2}, {0.2, -0.2}, {-0.2, 0.2}, {0.2, 0.2}} {
		g.Add(casting(box(fmt.Sprintf("chair-leg-%d", i), 0.05, 0.42, 0.05, mgl64.Vec3{off[0], 0.21, off[1]}, mat))...)
	}
	return g
}

func buildStudent(l Layout, row, col int) *Actor {
	p := l.Palette
	g := &Group{
		Name:     fmt.Sprintf("student-%d-%d", row, col),
		Position: l.StudentPosition(row, col),
	}
	a := newStudentActor(row, col, l.Cols, g)

	cloth := Solid(p.Student)
	body := box("body", 0.6, 1.2, 0.4, mgl64.Vec3{0, 0.8, 0}, cloth)
	head := sphere("head", 0.28, mgl64.Vec3{0, 1.5, 0}, Solid(p.Skin))
	left := box("left-arm", 0.12, 0.5, 0.12, mgl64.Vec3{-0.35, 0.9, -0.1}, cloth)
	right := box("right-arm", 0.12, 0.5, 0.12, mgl64.Vec3{0.35, 0.9, -0.1}, cloth)
	left.Rotation[0] = pose.ArmRestAngle
	right.Rotation[0] = pose.ArmRestAngle
	g.Add(casting(body, head, left, right)...)

	a.bind(pose.JointHead, head)
	a.bind(pose.JointBody, body)
	a.bind(pose.JointLeftArm, left)
	a.bind(pose.JointRightArm, right)

	if l.Variant == pose.VariantDetailed {
		g.ContactRadius = studentContactRadius
	}
	return a
}

func buildTeacher(l Layout) *Actor {
	p := l.Palette
	g := &Group{Name: "teacher", Position: mgl64.Vec3{0, 0, -5.2}}
	a := newTeacherActor(g)

	body := box("body", 0.9, 1.6, 0.5, mgl64.Vec3{0, 1.0, 0}, Solid(p.Teacher))
	head := sphere("head", 0.35, mgl64.Vec3{0, 1.9, 0}, Solid(p.TeacherSkin))
	g.Add(casting(body, head)...)
	a.bind(pose.JointHead, head)
	a.bind(pose.JointBody, body)

	if l.Variant == pose.VariantDetailed {
		sleeve := Solid(p.Teacher)
		left := box("left-arm", 0.16, 0.7, 0.16, mgl64.Vec3{-0.55, 1.3, 0}, sleeve)
		right := box("right-arm", 0.16, 0.7, 0.16, mgl64.Vec3{0.55, 1.3, 0}, sleeve)
		left.Rotation[0] = pose.TeacherArmRest
		right.Rotation[0] = pose.TeacherArmRest
		g.Add(casting(left, right)...)
		a.bind(pose.JointLeftArm, left)
		a.bind(pose.JointRightArm, right)
		g.ContactRadius = teacherContactRadius
	}
	return a
}
