// Package scene describes the classroom as a flat list of groups of primitive
// meshes, plus the animated actors that own some of those meshes as joints.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Shape is a primitive geometry kind
type Shape uint8

const (
	// ShapeBox is an axis-aligned box centred on the origin; Size is (w, h, d)
	ShapeBox Shape = iota
	// ShapeSphere is a UV sphere; Size.X is the radius
	ShapeSphere
	// ShapePlane lies in XY facing +Z; Size is (w, h, 0)
	ShapePlane
)

// DefaultSegments is the sphere tessellation used by the classroom
const DefaultSegments = 16

// Material is a flat-shaded surface description
type Material struct {
	Color     colorful.Color
	Opacity   float64 // 1 is opaque
	Roughness float64
	Metalness float64
}

// Transparent reports whether the material needs blending
func (m Material) Transparent() bool {
	return m.Opacity < 1
}

// Solid returns an opaque material of the given colour
func Solid(c colorful.Color) Material {
	return Material{Color: c, Opacity: 1, Roughness: 1}
}

// Mesh is one primitive with a local transform relative to its group
type Mesh struct {
	Name     string
	Shape    Shape
	Size     mgl64.Vec3
	Segments int

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles, XYZ order

	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// Local returns T * Rx * Ry * Rz
func (m *Mesh) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	r := mgl64.HomogRotate3DX(m.Rotation.X()).
		Mul4(mgl64.HomogRotate3DY(m.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(m.Rotation.Z()))
	return t.Mul4(r)
}

// Group positions a set of meshes in world space
type Group struct {
	Name     string
	Position mgl64.Vec3
	Meshes   []*Mesh

	// ContactRadius is the footprint of the soft contact shadow; 0 disables it
	ContactRadius float64
}

// Add appends meshes and returns the group for chaining
func (g *Group) Add(meshes ...*Mesh) *Group {
	g.Meshes = append(g.Meshes, meshes...)
	return g
}

// World returns the world matrix of a mesh in this group
func (g *Group) World(m *Mesh) mgl64.Mat4 {
	return mgl64.Translate3D(g.Position.X(), g.Position.Y(), g.Position.Z()).Mul4(m.Local())
}

func box(name string, w, h, d float64, pos mgl64.Vec3, mat Material) *Mesh {
	return &Mesh{
		Name:     name,
		Shape:    ShapeBox,
		Size:     mgl64.Vec3{w, h, d},
		Position: pos,
		Material: mat,
	}
}

func sphere(name string, r float64, pos mgl64.Vec3, mat Material) *Mesh {
	return &Mesh{
		Name:     name,
		Shape:    ShapeSphere,
		Size:     mgl64.Vec3{r, r, r},
		Segments: DefaultSegments,
		Position: pos,
		Material: mat,
	}
}

func plane(name string, w, h float64, pos, rot mgl64.Vec3, mat Material) *Mesh {
	return &Mesh{
		Name:     name,
		Shape:    ShapePlane,
		Size:     mgl64.Vec3{w, h, 0},
		Position: pos,
		Rotation: rot,
		Material: mat,
	}
}

func casting(meshes ...*Mesh) []*Mesh {
	for _, m := range meshes {
		m.CastShadow = true
	}
	return meshes
}
