package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/state"
)

// trace records the order in which nodes are visited.
type trace struct {
	names []string
}

func (t *trace) VisitGroup(g *Group)         { t.names = append(t.names, "group"); g.Traverse(t) }
func (t *trace) VisitQuadGroup(g *QuadGroup) { t.names = append(t.names, "quad"); g.Traverse(t) }
func (t *trace) VisitLOD(l *LOD)             { t.names = append(t.names, "lod"); l.Traverse(t) }
func (t *trace) VisitCullGroup(g *CullGroup) { t.names = append(t.names, "cullgroup"); g.Traverse(t) }
func (t *trace) VisitCullNode(n *CullNode)   { t.names = append(t.names, "cullnode"); n.Traverse(t) }
func (t *trace) VisitMatrixTransform(m *MatrixTransform) {
	t.names = append(t.names, "transform")
	m.Traverse(t)
}
func (t *trace) VisitStateGroup(g *StateGroup) { t.names = append(t.names, "state"); g.Traverse(t) }
func (t *trace) VisitCommands(c *Commands)     { t.names = append(t.names, "commands"); c.Traverse(t) }
func (t *trace) VisitCommand(c Command) {
	d := c.(*Draw)
	t.names = append(t.names, d.Op.(gfx.BindPipeline).Name)
}

type sink struct {
	ops []gfx.Op
}

func (s *sink) SetMatrices(_, _ math3d.Mat4) {}
func (s *sink) Record(op gfx.Op)              { s.ops = append(s.ops, op) }

func draw(name string) *Draw {
	return NewDraw(gfx.BindPipeline{Name: name})
}

func TestAcceptDispatchesByKind(t *testing.T) {
	unit := math3d.NewSphere(math3d.Zero3(), 1)
	root := NewGroup(
		&QuadGroup{Children: [4]Node{draw("q0"), nil, draw("q2"), nil}},
		&LOD{Bound: unit, Children: []LODChild{{MinScreenRatio: 0.5, Node: draw("hi")}, {Node: draw("lo")}}},
		NewCullGroup(unit, draw("c0"), draw("c1")),
		NewCullNode(unit, draw("n")),
		NewMatrixTransform(math3d.Identity(), draw("m")),
		NewStateGroup(nil, draw("s")),
		NewCommands(draw("x"), draw("y")),
	)

	var tr trace
	root.Accept(&tr)

	assert.Equal(t, []string{
		"group",
		"quad", "q0", "q2",
		"lod", "hi", "lo",
		"cullgroup", "c0", "c1",
		"cullnode", "n",
		"transform", "m",
		"state", "s",
		"commands", "x", "y",
	}, tr.names)
}

func TestSharedSubtreeVisitedPerPath(t *testing.T) {
	shared := draw("shared")
	root := NewGroup(
		NewMatrixTransform(math3d.Translate(math3d.V3(-1, 0, 0)), shared),
		NewMatrixTransform(math3d.Translate(math3d.V3(1, 0, 0)), shared),
	)

	c := Count(root)
	assert.Equal(t, 2, c.Commands)
	assert.Equal(t, 2, c.Transforms)
	assert.Equal(t, 5, c.Total())
}

func TestAddChild(t *testing.T) {
	g := NewGroup()
	g.AddChild(draw("a"))
	cg := NewCullGroup(math3d.NewSphere(math3d.Zero3(), 1))
	cg.AddChild(draw("b"))
	mt := NewMatrixTransform(math3d.Identity())
	mt.AddChild(draw("c"))
	sg := NewStateGroup(nil)
	sg.AddChild(draw("d"))
	cmds := NewCommands()
	cmds.AddChild(draw("e"))

	g.AddChild(cg)
	g.AddChild(mt)
	g.AddChild(sg)
	g.AddChild(cmds)

	var tr trace
	g.Accept(&tr)
	assert.Equal(t, []string{"group", "a", "cullgroup", "b", "transform", "c", "state", "d", "commands", "e"}, tr.names)
}

func TestCommandsDispatchInOrder(t *testing.T) {
	cmds := NewCommands(draw("a"), draw("b"), draw("c"))
	var s sink
	cmds.Dispatch(&s)

	require.Len(t, s.ops, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, gfx.BindPipeline{Name: name}, s.ops[i])
	}
}

func TestStateGroupPushPop(t *testing.T) {
	pipeline := state.Bind{SlotID: state.SlotPipeline, Op: gfx.BindPipeline{Name: "lines"}}
	material := state.Bind{SlotID: state.SlotMaterial, Op: gfx.SetColor{}}
	sg := NewStateGroup([]state.StateCommand{pipeline, material})

	s := state.New()
	sg.PushTo(s)
	assert.Equal(t, pipeline, s.Current(state.SlotPipeline))
	assert.Equal(t, material, s.Current(state.SlotMaterial))

	sg.PopFrom(s)
	assert.Nil(t, s.Current(state.SlotPipeline))
	assert.Nil(t, s.Current(state.SlotMaterial))
}

func TestNilChildrenSkipped(t *testing.T) {
	var tr trace
	(&QuadGroup{}).Accept(&tr)
	(&CullNode{}).Accept(&tr)
	(&LOD{Children: []LODChild{{}}}).Accept(&tr)
	assert.Equal(t, []string{"quad", "cullnode", "lod"}, tr.names)
}
