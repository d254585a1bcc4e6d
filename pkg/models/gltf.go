package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/scene"
	"github.com/taigrr/vista/pkg/state"
)

// LoadScene opens a .gltf or .glb file and builds its scene graph.
func LoadScene(path string) (scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	root, err := BuildScene(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return root, nil
}

// BuildScene converts the document's default scene into a scene graph.
//
// Every glTF node becomes a MatrixTransform. Every triangle primitive
// becomes a CullNode bounded by its vertices, holding a StateGroup that sets
// the material colour around a single DrawMesh command. A mesh or node
// referenced several times is built once and shared.
//
// When the document has no scenes, every node that is nobody's child is a
// root. Node hierarchies that contain a cycle are rejected.
func BuildScene(doc *gltf.Document) (scene.Node, error) {
	b := &sceneBuilder{
		doc:    doc,
		nodes:  make(map[int]scene.Node),
		meshes: make(map[int]scene.Node),
		state:  make([]visitState, len(doc.Nodes)),
	}

	roots, err := b.roots()
	if err != nil {
		return nil, err
	}

	group := scene.NewGroup()
	for _, idx := range roots {
		n, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		group.AddChild(n)
	}
	return group, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	visited
)

type sceneBuilder struct {
	doc    *gltf.Document
	nodes  map[int]scene.Node
	meshes map[int]scene.Node
	state  []visitState
}

func (b *sceneBuilder) roots() ([]int, error) {
	doc := b.doc
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("scene %d out of range", idx)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(child) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i, isChild := range child {
		if !isChild {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

func (b *sceneBuilder) node(idx int) (scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	switch b.state[idx] {
	case visiting:
		return nil, fmt.Errorf("node %d: cycle in node hierarchy", idx)
	case visited:
		// Several parents; glTF forbids it, the scene graph allows sharing.
		return b.nodes[idx], nil
	}
	b.state[idx] = visiting

	n := b.doc.Nodes[idx]
	t := scene.NewMatrixTransform(nodeMatrix(n))

	if n.Mesh != nil {
		m, err := b.mesh(*n.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", idx, err)
		}
		t.AddChild(m)
	}
	for _, c := range n.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		t.AddChild(child)
	}

	b.state[idx] = visited
	b.nodes[idx] = t
	return t, nil
}

// nodeMatrix returns the node's local transform: its matrix when one is
// given, otherwise translation * rotation * scale.
func nodeMatrix(n *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(n.MatrixOrDefault())
	if m != math3d.Identity() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math3d.Compose(
		math3d.V3(t[0], t[1], t[2]),
		math3d.V4(r[0], r[1], r[2], r[3]),
		math3d.V3(s[0], s[1], s[2]),
	)
}

func (b *sceneBuilder) mesh(idx int) (scene.Node, error) {
	if n, ok := b.meshes[idx]; ok {
		return n, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}

	gm := b.doc.Meshes[idx]
	var parts []scene.Node
	for i, prim := range gm.Primitives {
		m, err := b.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		if m == nil || len(m.Faces) == 0 {
			continue
		}
		m.Name = gm.Name
		parts = append(parts, MeshNode(m))
	}

	var n scene.Node
	if len(parts) == 1 {
		n = parts[0]
	} else {
		n = scene.NewGroup(parts...)
	}
	b.meshes[idx] = n
	return n, nil
}

// MeshNode wraps m in the standard leaf subtree:
// CullNode(bound) -> StateGroup(colour) -> Commands(DrawMesh).
func MeshNode(m *Mesh) scene.Node {
	colour := state.Bind{SlotID: state.SlotMaterial, Op: gfx.SetColor{Color: m.Material.Color()}}
	return scene.NewCullNode(m.BoundingSphere(),
		scene.NewStateGroup([]state.StateCommand{colour},
			scene.NewCommands(scene.NewDraw(gfx.DrawMesh{Mesh: m})),
		),
	)
}

// primitive reads a triangle primitive. Other modes return nil.
func (b *sceneBuilder) primitive(prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return nil, nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	positions, err := readVec3Accessor(b.doc, posIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	m := NewMesh("")
	m.Positions = positions
	if prim.Indices != nil {
		indices, err := readIndices(b.doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			a, bb, c := indices[i], indices[i+1], indices[i+2]
			if max(a, bb, c) >= len(positions) {
				return nil, fmt.Errorf("index %d out of range", max(a, bb, c))
			}
			m.AddFace(a, bb, c)
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			m.AddFace(i, i+1, i+2)
		}
	}

	if prim.Material != nil {
		m.Material = b.material(*prim.Material)
	}
	m.CalculateBounds()
	return m, nil
}

func (b *sceneBuilder) material(idx int) Material {
	if idx < 0 || idx >= len(b.doc.Materials) {
		return DefaultMaterial
	}
	gm := b.doc.Materials[idx]
	mat := DefaultMaterial
	mat.Name = gm.Name
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		mat.BaseColor = math3d.V4(c[0], c[1], c[2], c[3])
		mat.Metallic = pbr.MetallicFactorOrDefault()
		mat.Roughness = pbr.RoughnessFactorOrDefault()
	}
	return mat
}

// readVec3Accessor reads a float VEC3 accessor.
func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acc, data, stride, err := accessorBytes(doc, idx)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", acc.Type)
	}
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", acc.ComponentType)
	}
	if stride == 0 {
		stride = 12
	}
	if err := checkRange(data, acc.Count, stride, 12); err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[o:])),
			float64(readFloat32(data[o+4:])),
			float64(readFloat32(data[o+8:])),
		)
	}
	return out, nil
}

// readIndices reads an unsigned SCALAR accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acc, data, stride, err := accessorBytes(doc, idx)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", acc.Type)
	}

	var size int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index type %v", acc.ComponentType)
	}
	if stride == 0 {
		stride = size
	}
	if err := checkRange(data, acc.Count, stride, size); err != nil {
		return nil, err
	}

	out := make([]int, acc.Count)
	for i := range out {
		o := i * stride
		switch size {
		case 1:
			out[i] = int(data[o])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(data[o:]))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(data[o:]))
		}
	}
	return out, nil
}

// accessorBytes returns the accessor and its bytes, starting at its first
// element, with the buffer view's stride.
func accessorBytes(doc *gltf.Document, idx int) (*gltf.Accessor, []byte, int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, nil, 0, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := doc.Accessors[idx]
	if acc.BufferView == nil {
		return nil, nil, 0, fmt.Errorf("accessor %d has no buffer view", idx)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, nil, 0, fmt.Errorf("buffer view %d out of range", *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, nil, 0, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	buf := doc.Buffers[view.Buffer]
	if buf.Data == nil {
		return nil, nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	start := view.ByteOffset + acc.ByteOffset
	end := view.ByteOffset + view.ByteLength
	if start > end || end > len(buf.Data) {
		return nil, nil, 0, fmt.Errorf("accessor %d exceeds its buffer", idx)
	}
	return acc, buf.Data[start:end], view.ByteStride, nil
}

func checkRange(data []byte, count, stride, elem int) error {
	if count == 0 {
		return nil
	}
	if need := (count-1)*stride + elem; need > len(data) {
		return fmt.Errorf("accessor needs %d bytes, view has %d", need, len(data))
	}
	return nil
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
