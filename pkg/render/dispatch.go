package render

import (
	"context"
	"log/slog"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/scene"
	"github.com/taigrr/vista/pkg/state"
)

// DispatchVisitor walks a scene graph and records the state changes and
// commands of every visible subtree into a CommandBuffer.
//
// Culling is done in the local frame of each cull node: the clip-space unit
// volume is transformed by projection * view * model into a cached
// polytope, which is recomputed only when a matrix changed since the last
// test. Runs of cull nodes under the same transform share one computation.
//
// Projection and view must be set before Apply. A DispatchVisitor is used by
// one goroutine at a time.
type DispatchVisitor struct {
	state *state.State
	cb    gfx.CommandBuffer

	unit           math3d.Polytope
	frustum        math3d.Polytope
	frustumDirty   bool
	frustumVersion uint64 // State.MatrixVersion the frustum was built from
	culling        bool

	stats  CullingStats
	logger *slog.Logger
}

var _ scene.Visitor = (*DispatchVisitor)(nil)

// NewDispatchVisitor creates a visitor recording into cb.
func NewDispatchVisitor(cb gfx.CommandBuffer, opts ...Option) *DispatchVisitor {
	if cb == nil {
		panic("render: nil command buffer")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.state == nil {
		o.state = state.New()
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	unit := UnitFrustum(o.depthPlanes)
	return &DispatchVisitor{
		state:        o.state,
		cb:           cb,
		unit:         unit,
		frustum:      make(math3d.Polytope, 0, len(unit)),
		frustumDirty: true,
		culling:      !o.noCulling,
		logger:       o.logger,
	}
}

// State returns the traversal state. Changes made to its matrix stacks
// between or during traversals are picked up by the next culling test.
func (v *DispatchVisitor) State() *state.State {
	return v.state
}

// SetProjectionMatrix replaces the projection stack with m.
func (v *DispatchVisitor) SetProjectionMatrix(m math3d.Mat4) {
	v.state.Projection.Set(m)
	v.frustumDirty = true
}

// SetViewMatrix replaces the view stack with m.
func (v *DispatchVisitor) SetViewMatrix(m math3d.Mat4) {
	v.state.View.Set(m)
	v.frustumDirty = true
}

// Apply traverses the graph rooted at n.
func (v *DispatchVisitor) Apply(n scene.Node) {
	n.Accept(v)
}

// Reset prepares the visitor for another frame into the same command
// buffer: the model stack returns to identity, every binding is uploaded
// again by the next dispatch, and the frustum is recomputed on first use.
// Projection, view and statistics are kept.
func (v *DispatchVisitor) Reset() {
	v.state.Model.Set(math3d.Identity())
	v.state.MarkDirty()
	v.frustumDirty = true
}

// Stats returns the counters accumulated since the last ResetStats.
func (v *DispatchVisitor) Stats() CullingStats {
	return v.stats
}

// ResetStats zeroes the counters.
func (v *DispatchVisitor) ResetStats() {
	v.stats = CullingStats{}
}

// Frustum returns the culling volume in the current local frame,
// recomputing it if the matrices changed. The slice is reused by the
// visitor and must not be retained.
func (v *DispatchVisitor) Frustum() math3d.Polytope {
	if v.stale() {
		v.updateFrustum()
	}
	return v.frustum
}

// stale reports whether a matrix changed since the frustum was built,
// through the visitor or directly on the State.
func (v *DispatchVisitor) stale() bool {
	return v.frustumDirty || v.frustumVersion != v.state.MatrixVersion()
}

func (v *DispatchVisitor) updateFrustum() {
	pmv := v.state.ModelViewProjection()
	v.frustum = LocalFrustum(v.unit, pmv, v.frustum)
	v.frustumDirty = false
	v.frustumVersion = v.state.MatrixVersion()
	v.stats.FrustumUpdates++
	if v.logger.Enabled(context.Background(), slog.LevelDebug) {
		v.logger.Debug("frustum updated", "depth", v.state.Model.Len())
	}
}

// visible tests bound against the frustum of the current local frame.
func (v *DispatchVisitor) visible(bound math3d.Sphere) bool {
	if !v.culling {
		v.stats.Passed++
		return true
	}
	v.stats.Tested++
	if math3d.Intersect(v.Frustum(), bound) {
		v.stats.Passed++
		return true
	}
	v.stats.Culled++
	if v.logger.Enabled(context.Background(), slog.LevelDebug) {
		v.logger.Debug("culled", "center", bound.Center, "radius", bound.Radius)
	}
	return false
}

func (v *DispatchVisitor) dispatchState() {
	if v.state.Dispatch(v.cb) {
		v.stats.StateDispatches++
	}
}

func (v *DispatchVisitor) VisitGroup(g *scene.Group) {
	g.Traverse(v)
}

func (v *DispatchVisitor) VisitQuadGroup(g *scene.QuadGroup) {
	g.Traverse(v)
}

// VisitLOD traverses every level; selection is made before traversal.
func (v *DispatchVisitor) VisitLOD(l *scene.LOD) {
	l.Traverse(v)
}

func (v *DispatchVisitor) VisitCullGroup(g *scene.CullGroup) {
	if v.visible(g.Bound) {
		g.Traverse(v)
	}
}

func (v *DispatchVisitor) VisitCullNode(n *scene.CullNode) {
	if v.visible(n.Bound) {
		n.Traverse(v)
	}
}

// VisitMatrixTransform traverses the children in the transform's frame.
// The model matrix is popped on every exit path, including a panic.
func (v *DispatchVisitor) VisitMatrixTransform(t *scene.MatrixTransform) {
	v.state.Model.Push(t.Matrix)
	v.frustumDirty = true
	defer func() {
		v.state.Model.Pop()
		v.frustumDirty = true
	}()

	t.Traverse(v)
}

// VisitStateGroup applies the group's state commands for the duration of
// its subtree.
func (v *DispatchVisitor) VisitStateGroup(g *scene.StateGroup) {
	g.PushTo(v.state)
	defer g.PopFrom(v.state)

	g.Traverse(v)
}

// VisitCommands uploads pending state once, then records every command.
func (v *DispatchVisitor) VisitCommands(c *scene.Commands) {
	v.dispatchState()
	for _, cmd := range c.Children {
		cmd.Dispatch(v.cb)
		v.stats.CommandsDispatched++
	}
}

func (v *DispatchVisitor) VisitCommand(c scene.Command) {
	v.dispatchState()
	c.Dispatch(v.cb)
	v.stats.CommandsDispatched++
}
