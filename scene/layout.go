package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-classroom/pose"
)

// Room is the bounding box of the classroom shell
type Room struct {
	Width  float64
	Depth  float64
	Height float64
}

// Palette holds every material colour used by the builder
type Palette struct {
	Background  colorful.Color
	Floor       colorful.Color
	Wall        colorful.Color
	Ceiling     colorful.Color
	Blackboard  colorful.Color
	Podium      colorful.Color
	DeskTop     colorful.Color
	DeskBody    colorful.Color
	Chair       colorful.Color
	Student     colorful.Color
	Skin        colorful.Color
	Teacher     colorful.Color
	TeacherSkin colorful.Color
}

// Light is the scene lighting rig
type Light struct {
	Ambient   float64
	Intensity float64
	Position  mgl64.Vec3 // directional light shines from here toward the origin
}

// Layout is everything the builder needs to construct the classroom
type Layout struct {
	Rows   int
	Cols   int
	Step   float64
	XStart float64
	ZStart float64

	// StudentOffsetZ places a student relative to its desk
	StudentOffsetZ float64

	Room    Room
	Variant pose.Variant
	Palette Palette
	Light   Light
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultPalette returns the reference classroom colours
func DefaultPalette() Palette {
	return Palette{
		Background:  hex("#bfd1e5"),
		Floor:       hex("#8b8b8b"),
		Wall:        hex("#f0f0f0"),
		Ceiling:     hex("#dddddd"),
		Blackboard:  hex("#113a2d"),
		Podium:      hex("#9c6b3f"),
		DeskTop:     hex("#b08968"),
		DeskBody:    hex("#8d6b4f"),
		Chair:       hex("#6b4f3a"),
		Student:     hex("#2a9d8f"),
		Skin:        hex("#ffd7b5"),
		Teacher:     hex("#3456d1"),
		TeacherSkin: hex("#ffcc99"),
	}
}

// DefaultLayout returns the reference 3x4 classroom
func DefaultLayout() Layout {
	return Layout{
		Rows:           3,
		Cols:           4,
		Step:           3,
		XStart:         -4.5,
		ZStart:         2,
		StudentOffsetZ: -0.6,
		Room:           Room{Width: 20, Depth: 14, Height: 6},
		Variant:        pose.VariantSimple,
		Palette:        DefaultPalette(),
		Light: Light{
			Ambient:   0.45,
			Intensity: 1,
			Position:  mgl64.Vec3{5, 10, 5},
		},
	}
}

// DeskPosition returns the world position of the desk at a grid cell
func (l Layout) DeskPosition(row, col int) mgl64.Vec3 {
	return mgl64.Vec3{l.XStart + float64(col)*l.Step, 0, l.ZStart + float64(row)*l.Step}
}

// StudentPosition returns the world position of the student at a grid cell
func (l Layout) StudentPosition(row, col int) mgl64.Vec3 {
	return l.DeskPosition(row, col).Add(mgl64.Vec3{0, 0, l.StudentOffsetZ})
}
