// Package gfx defines the command destination consumed by the dispatch
// traversal and the typed operations that are recorded into it.
//
// A CommandBuffer receives two kinds of calls:
//   - SetMatrices uploads the composed transform state (projection and
//     model-view) that subsequent draws must use.
//   - Record appends a single operation: a state binding or a draw.
//
// The traversal guarantees that the most recent SetMatrices call reflects
// the transform in effect for every draw recorded after it.
package gfx

import (
	"fmt"
	"image/color"

	"github.com/taigrr/vista/pkg/math3d"
)

// CommandBuffer is the destination for state uploads and operations.
// Implementations are used by one traversal at a time and need no locking.
type CommandBuffer interface {
	SetMatrices(projection, modelView math3d.Mat4)
	Record(op Op)
}

// OpKind identifies the type of an operation.
type OpKind uint8

const (
	// State operations
	OpBindPipeline OpKind = iota // Select a pipeline by name
	OpSetColor                   // Set the current draw colour

	// Draw operations
	OpDraw        // Non-indexed draw
	OpDrawIndexed // Indexed draw
	OpDrawMesh    // Draw a mesh's triangles
)

var opKindNames = [...]string{
	OpBindPipeline: "BindPipeline",
	OpSetColor:     "SetColor",
	OpDraw:         "Draw",
	OpDrawIndexed:  "DrawIndexed",
	OpDrawMesh:     "DrawMesh",
}

// String returns the operation name.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", k)
}

// IsDraw reports whether the kind submits geometry.
func (k OpKind) IsDraw() bool {
	return k >= OpDraw && k <= OpDrawMesh
}

// Op is a single recorded operation.
type Op interface {
	Kind() OpKind
}

// Geometry is the triangle data a DrawMesh operation submits.
type Geometry interface {
	VertexCount() int
	TriangleCount() int
	Position(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// BindPipeline selects a named pipeline.
type BindPipeline struct {
	Name string
}

// SetColor sets the colour used by subsequent draws.
type SetColor struct {
	Color color.RGBA
}

// Draw issues a non-indexed draw.
type Draw struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// DrawIndexed issues an indexed draw.
type DrawIndexed struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	VertexOffset  int32
	FirstInstance uint32
}

// DrawMesh draws every triangle of Mesh.
type DrawMesh struct {
	Mesh Geometry
}

func (BindPipeline) Kind() OpKind { return OpBindPipeline }
func (SetColor) Kind() OpKind     { return OpSetColor }
func (Draw) Kind() OpKind         { return OpDraw }
func (DrawIndexed) Kind() OpKind  { return OpDrawIndexed }
func (DrawMesh) Kind() OpKind     { return OpDrawMesh }

func (o BindPipeline) String() string { return fmt.Sprintf("BindPipeline(%q)", o.Name) }

func (o SetColor) String() string {
	return fmt.Sprintf("SetColor(%d,%d,%d,%d)", o.Color.R, o.Color.G, o.Color.B, o.Color.A)
}

func (o Draw) String() string {
	return fmt.Sprintf("Draw(vertices=%d instances=%d first=%d firstInstance=%d)",
		o.VertexCount, o.InstanceCount, o.FirstVertex, o.FirstInstance)
}

func (o DrawIndexed) String() string {
	return fmt.Sprintf("DrawIndexed(indices=%d instances=%d first=%d offset=%d firstInstance=%d)",
		o.IndexCount, o.InstanceCount, o.FirstIndex, o.VertexOffset, o.FirstInstance)
}

func (o DrawMesh) String() string {
	if o.Mesh == nil {
		return "DrawMesh(nil)"
	}
	return fmt.Sprintf("DrawMesh(triangles=%d)", o.Mesh.TriangleCount())
}
