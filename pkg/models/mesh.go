// Package models provides triangle meshes and builds scene graphs from
// glTF documents.
package models

import (
	"image/color"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Faces     []Face
	Material  Material

	// Axis-aligned bounds, updated by CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle as three indices into Mesh.Positions.
type Face struct {
	V [3]int
}

// Material is the subset of a glTF PBR material a wireframe needs.
type Material struct {
	Name      string
	BaseColor math3d.Vec4 // RGBA in 0-1
	Metallic  float64
	Roughness float64
}

// DefaultMaterial is white, fully rough and non-metallic, the glTF default.
var DefaultMaterial = Material{BaseColor: math3d.V4(1, 1, 1, 1), Roughness: 1}

// Color returns the base colour as 8-bit RGBA.
func (m Material) Color() color.RGBA {
	c := m.BaseColor
	return color.RGBA{unit8(c.R()), unit8(c.G()), unit8(c.B()), unit8(c.A())}
}

func unit8(v float64) uint8 {
	return uint8(max(0, min(1, v))*255 + 0.5)
}

var _ gfx.Geometry = (*Mesh)(nil)

// NewMesh creates an empty mesh with the default material.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, Material: DefaultMaterial}
}

// AddVertex appends a position and returns its index.
func (m *Mesh) AddVertex(p math3d.Vec3) int {
	m.Positions = append(m.Positions, p)
	return len(m.Positions) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}})
}

// CalculateBounds recomputes the axis-aligned bounds.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}
	m.BoundsMin, m.BoundsMax = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the centre of the bounds.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the extent of the bounds.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Bounds returns the axis-aligned bounds.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// BoundingSphere returns a sphere centred on the bounds that encloses every
// vertex. An empty mesh has a negative radius.
func (m *Mesh) BoundingSphere() math3d.Sphere {
	if len(m.Positions) == 0 {
		return math3d.Sphere{Radius: -1}
	}
	c := m.Center()
	var r float64
	for _, p := range m.Positions {
		r = max(r, p.Distance(c))
	}
	return math3d.NewSphere(c, r)
}

// Transform moves every vertex by mat and updates the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Positions {
		m.Positions[i] = mat.MulPoint(p)
	}
	m.CalculateBounds()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Positions = append([]math3d.Vec3(nil), m.Positions...)
	c.Faces = append([]Face(nil), m.Faces...)
	return &c
}

// VertexCount returns the number of positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Position returns vertex i.
func (m *Mesh) Position(i int) math3d.Vec3 {
	return m.Positions[i]
}

// GetFace returns the indices of face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// NewCube creates an axis-aligned cube of the given edge length centred on
// the origin.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	for i := range 8 {
		m.AddVertex(math3d.V3(
			pick(i&1 != 0, h, -h),
			pick(i&2 != 0, h, -h),
			pick(i&4 != 0, h, -h),
		))
	}
	// Two triangles per side, counter-clockwise seen from outside.
	for _, q := range [6][4]int{
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
	} {
		m.AddFace(q[0], q[1], q[2])
		m.AddFace(q[0], q[2], q[3])
	}
	m.CalculateBounds()
	return m
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
