// Package scene provides the node kinds of the scene graph and the Visitor
// interface used to traverse them.
//
// Traversal is double dispatch: a visitor calls node.Accept(v), the node
// calls the visitor method for its own kind, and the visitor decides whether
// and how to continue into the children with node.Traverse(v).
//
// Graphs are directed and acyclic. A node may be referenced by several
// parents; it is then visited once per path, which is how instancing works.
// Cycles are not detected here: whoever builds the graph must not create
// them.
package scene

import (
	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/state"
)

// Node is an element of the scene graph.
type Node interface {
	// Accept calls the visitor method matching the node's kind.
	Accept(v Visitor)
	// Traverse accepts v on every child in declared order.
	Traverse(v Visitor)
}

// Visitor has one method per node kind.
type Visitor interface {
	VisitGroup(g *Group)
	VisitQuadGroup(g *QuadGroup)
	VisitLOD(l *LOD)
	VisitCullGroup(g *CullGroup)
	VisitCullNode(n *CullNode)
	VisitMatrixTransform(t *MatrixTransform)
	VisitStateGroup(g *StateGroup)
	VisitCommands(c *Commands)
	VisitCommand(c Command)
}

// Command is a leaf that records itself into a command buffer.
type Command interface {
	Node
	Dispatch(cb gfx.CommandBuffer)
}

// Group is a node with an ordered list of children.
type Group struct {
	Children []Node
}

// NewGroup creates a group with the given children.
func NewGroup(children ...Node) *Group {
	return &Group{Children: children}
}

// AddChild appends a child.
func (g *Group) AddChild(n Node) {
	g.Children = append(g.Children, n)
}

func (g *Group) Accept(v Visitor) { v.VisitGroup(g) }

func (g *Group) Traverse(v Visitor) {
	for _, c := range g.Children {
		c.Accept(v)
	}
}

// QuadGroup is a group with exactly four child slots. Nil slots are skipped.
type QuadGroup struct {
	Children [4]Node
}

func (g *QuadGroup) Accept(v Visitor) { v.VisitQuadGroup(g) }

func (g *QuadGroup) Traverse(v Visitor) {
	for _, c := range g.Children {
		if c != nil {
			c.Accept(v)
		}
	}
}

// LODChild is one level of detail and the minimum screen-space ratio at
// which it is meant to be shown.
type LODChild struct {
	MinScreenRatio float64
	Node           Node
}

// LOD holds alternative levels of detail of the same content. Level
// selection happens upstream; traversal visits every level in order.
type LOD struct {
	Bound    math3d.Sphere
	Children []LODChild
}

func (l *LOD) Accept(v Visitor) { v.VisitLOD(l) }

func (l *LOD) Traverse(v Visitor) {
	for _, c := range l.Children {
		if c.Node != nil {
			c.Node.Accept(v)
		}
	}
}

// CullGroup is a group whose children are skipped when Bound, expressed in
// the group's local frame, is outside the view frustum.
type CullGroup struct {
	Bound    math3d.Sphere
	Children []Node
}

// NewCullGroup creates a cull group.
func NewCullGroup(bound math3d.Sphere, children ...Node) *CullGroup {
	return &CullGroup{Bound: bound, Children: children}
}

// AddChild appends a child.
func (g *CullGroup) AddChild(n Node) {
	g.Children = append(g.Children, n)
}

func (g *CullGroup) Accept(v Visitor) { v.VisitCullGroup(g) }

func (g *CullGroup) Traverse(v Visitor) {
	for _, c := range g.Children {
		c.Accept(v)
	}
}

// CullNode is a CullGroup with exactly one child.
type CullNode struct {
	Bound math3d.Sphere
	Child Node
}

// NewCullNode creates a cull node.
func NewCullNode(bound math3d.Sphere, child Node) *CullNode {
	return &CullNode{Bound: bound, Child: child}
}

func (n *CullNode) Accept(v Visitor) { v.VisitCullNode(n) }

func (n *CullNode) Traverse(v Visitor) {
	if n.Child != nil {
		n.Child.Accept(v)
	}
}

// MatrixTransform places its children in a local frame: Matrix maps local
// coordinates into the parent's frame.
type MatrixTransform struct {
	Matrix   math3d.Mat4
	Children []Node
}

// NewMatrixTransform creates a transform node.
func NewMatrixTransform(m math3d.Mat4, children ...Node) *MatrixTransform {
	return &MatrixTransform{Matrix: m, Children: children}
}

// AddChild appends a child.
func (t *MatrixTransform) AddChild(n Node) {
	t.Children = append(t.Children, n)
}

func (t *MatrixTransform) Accept(v Visitor) { v.VisitMatrixTransform(t) }

func (t *MatrixTransform) Traverse(v Visitor) {
	for _, c := range t.Children {
		c.Accept(v)
	}
}

// StateGroup applies StateCommands for the duration of its subtree.
type StateGroup struct {
	StateCommands []state.StateCommand
	Children      []Node
}

// NewStateGroup creates a state group.
func NewStateGroup(cmds []state.StateCommand, children ...Node) *StateGroup {
	return &StateGroup{StateCommands: cmds, Children: children}
}

// AddChild appends a child.
func (g *StateGroup) AddChild(n Node) {
	g.Children = append(g.Children, n)
}

// PushTo makes every state command current in s.
func (g *StateGroup) PushTo(s *state.State) {
	for _, c := range g.StateCommands {
		s.PushState(c)
	}
}

// PopFrom reverts what PushTo applied, in reverse order.
func (g *StateGroup) PopFrom(s *state.State) {
	for i := len(g.StateCommands) - 1; i >= 0; i-- {
		s.PopState(g.StateCommands[i])
	}
}

func (g *StateGroup) Accept(v Visitor) { v.VisitStateGroup(g) }

func (g *StateGroup) Traverse(v Visitor) {
	for _, c := range g.Children {
		c.Accept(v)
	}
}

// Commands is an ordered list of commands dispatched together.
type Commands struct {
	Children []Command
}

// NewCommands creates a command list.
func NewCommands(cmds ...Command) *Commands {
	return &Commands{Children: cmds}
}

// AddChild appends a command.
func (c *Commands) AddChild(cmd Command) {
	c.Children = append(c.Children, cmd)
}

func (c *Commands) Accept(v Visitor) { v.VisitCommands(c) }

func (c *Commands) Traverse(v Visitor) {
	for _, cmd := range c.Children {
		cmd.Accept(v)
	}
}

// Dispatch records every command in order.
func (c *Commands) Dispatch(cb gfx.CommandBuffer) {
	for _, cmd := range c.Children {
		cmd.Dispatch(cb)
	}
}

// Draw is a Command that records a single operation.
type Draw struct {
	Op gfx.Op
}

// NewDraw creates a Draw command.
func NewDraw(op gfx.Op) *Draw {
	return &Draw{Op: op}
}

func (d *Draw) Accept(v Visitor) { v.VisitCommand(d) }

func (d *Draw) Traverse(Visitor) {}

// Dispatch records d.Op.
func (d *Draw) Dispatch(cb gfx.CommandBuffer) { cb.Record(d.Op) }
