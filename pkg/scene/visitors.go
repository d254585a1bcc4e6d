package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/state"
)

// Counter counts the nodes reached on every path of a graph, without
// culling. A shared node is counted once per path.
type Counter struct {
	Groups       int
	QuadGroups   int
	LODs         int
	CullGroups   int
	CullNodes    int
	Transforms   int
	StateGroups  int
	CommandLists int
	Commands     int
}

// Count walks root and returns the totals.
func Count(root Node) Counter {
	var c Counter
	if root != nil {
		root.Accept(&c)
	}
	return c
}

// Total returns the number of nodes visited.
func (c *Counter) Total() int {
	return c.Groups + c.QuadGroups + c.LODs + c.CullGroups + c.CullNodes +
		c.Transforms + c.StateGroups + c.CommandLists + c.Commands
}

func (c *Counter) String() string {
	return fmt.Sprintf("nodes=%d cull=%d transforms=%d states=%d commands=%d",
		c.Total(), c.CullGroups+c.CullNodes, c.Transforms, c.StateGroups, c.Commands)
}

func (c *Counter) VisitGroup(g *Group)                     { c.Groups++; g.Traverse(c) }
func (c *Counter) VisitQuadGroup(g *QuadGroup)             { c.QuadGroups++; g.Traverse(c) }
func (c *Counter) VisitLOD(l *LOD)                         { c.LODs++; l.Traverse(c) }
func (c *Counter) VisitCullGroup(g *CullGroup)             { c.CullGroups++; g.Traverse(c) }
func (c *Counter) VisitCullNode(n *CullNode)               { c.CullNodes++; n.Traverse(c) }
func (c *Counter) VisitMatrixTransform(t *MatrixTransform) { c.Transforms++; t.Traverse(c) }
func (c *Counter) VisitStateGroup(g *StateGroup)           { c.StateGroups++; g.Traverse(c) }
func (c *Counter) VisitCommands(l *Commands)               { c.CommandLists++; l.Traverse(c) }
func (c *Counter) VisitCommand(Command)                    { c.Commands++ }

// ComputeBound returns a sphere in root's frame enclosing every cull bound
// and every DrawMesh geometry reachable from root. The result has a negative
// radius when nothing in the graph has extent.
func ComputeBound(root Node) math3d.Sphere {
	b := &boundVisitor{
		model: state.NewMatrixStack(math3d.Identity()),
		bound: math3d.Sphere{Radius: -1},
	}
	if root != nil {
		root.Accept(b)
	}
	return b.bound
}

type boundVisitor struct {
	model state.MatrixStack
	bound math3d.Sphere
}

func (b *boundVisitor) add(s math3d.Sphere) {
	if s.Valid() {
		b.bound = b.bound.Expand(s.Transform(b.model.Top()))
	}
}

func (b *boundVisitor) VisitGroup(g *Group)         { g.Traverse(b) }
func (b *boundVisitor) VisitQuadGroup(g *QuadGroup) { g.Traverse(b) }

func (b *boundVisitor) VisitLOD(l *LOD) {
	b.add(l.Bound)
	l.Traverse(b)
}

func (b *boundVisitor) VisitCullGroup(g *CullGroup) {
	b.add(g.Bound)
	g.Traverse(b)
}

func (b *boundVisitor) VisitCullNode(n *CullNode) {
	b.add(n.Bound)
	n.Traverse(b)
}

func (b *boundVisitor) VisitMatrixTransform(t *MatrixTransform) {
	b.model.Push(t.Matrix)
	defer b.model.Pop()
	t.Traverse(b)
}

func (b *boundVisitor) VisitStateGroup(g *StateGroup) { g.Traverse(b) }
func (b *boundVisitor) VisitCommands(c *Commands)     { c.Traverse(b) }

func (b *boundVisitor) VisitCommand(c Command) {
	d, ok := c.(*Draw)
	if !ok {
		return
	}
	if m, ok := d.Op.(gfx.DrawMesh); ok && m.Mesh != nil {
		b.add(GeometryBound(m.Mesh))
	}
}

// GeometryBound returns the sphere centred on the axis-aligned bounds of
// g's positions. Empty geometry yields a negative radius.
func GeometryBound(g gfx.Geometry) math3d.Sphere {
	n := g.VertexCount()
	if n == 0 {
		return math3d.Sphere{Radius: -1}
	}
	lo := math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := range n {
		p := g.Position(i)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	center := lo.Add(hi).Scale(0.5)
	var r float64
	for i := range n {
		r = max(r, g.Position(i).Distance(center))
	}
	return math3d.NewSphere(center, r)
}
