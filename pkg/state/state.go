package state

import (
	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
)

// State is the mutable context of one dispatch pass.
//
// The projection and view stacks start empty and must be Set before any
// node that reads them is visited. The model stack starts at identity so
// nodes outside any MatrixTransform are in the view's world frame.
type State struct {
	Projection MatrixStack
	View       MatrixStack
	Model      MatrixStack

	stacks []StateStack
	dirty  bool // a state stack changed
	upload bool // matrices must be uploaded even if no stack changed
}

// New creates a State with empty projection and view stacks and an
// identity model stack.
func New() *State {
	return &State{
		Model:  NewMatrixStack(math3d.Identity()),
		upload: true,
	}
}

// Dirty reports whether Dispatch has pending work.
func (s *State) Dirty() bool {
	return s.dirty || s.matricesDirty()
}

func (s *State) matricesDirty() bool {
	return s.upload || s.Projection.Dirty() || s.View.Dirty() || s.Model.Dirty()
}

// MatrixVersion changes whenever any of the three matrix stacks does.
func (s *State) MatrixVersion() uint64 {
	return s.Projection.Version() + s.View.Version() + s.Model.Version()
}

// MarkDirty forces the next Dispatch to upload the matrices and every
// non-empty state stack.
func (s *State) MarkDirty() {
	s.upload = true
	s.dirty = true
	for i := range s.stacks {
		s.stacks[i].dirty = true
	}
}

// PushState makes c current in its slot.
func (s *State) PushState(c StateCommand) {
	s.stack(c.Slot()).Push(c)
	s.dirty = true
}

// PopState restores the previous command in c's slot.
func (s *State) PopState(c StateCommand) {
	s.stack(c.Slot()).Pop()
	s.dirty = true
}

// Current returns the command current in slot, or nil.
func (s *State) Current(slot int) StateCommand {
	if slot < 0 || slot >= len(s.stacks) {
		return nil
	}
	return s.stacks[slot].Top()
}

func (s *State) stack(slot int) *StateStack {
	if slot < 0 {
		panic("state: negative state slot")
	}
	for len(s.stacks) <= slot {
		s.stacks = append(s.stacks, StateStack{})
	}
	return &s.stacks[slot]
}

// ModelView returns view * model.
func (s *State) ModelView() math3d.Mat4 {
	return s.View.Top().Mul(s.Model.Top())
}

// ModelViewProjection returns projection * view * model.
func (s *State) ModelViewProjection() math3d.Mat4 {
	return s.Projection.Top().Mul(s.ModelView())
}

// Dispatch uploads pending state to cb. When nothing changed since the last
// call it records nothing and returns false. Otherwise the current command
// of every changed slot is recorded, the matrices are uploaded if any stack
// changed, all dirty flags are cleared, and true is returned.
func (s *State) Dispatch(cb gfx.CommandBuffer) bool {
	if !s.Dirty() {
		return false
	}

	for i := range s.stacks {
		s.stacks[i].record(cb)
	}

	if s.matricesDirty() {
		cb.SetMatrices(s.Projection.Top(), s.ModelView())
	}

	s.Projection.Clean()
	s.View.Clean()
	s.Model.Clean()
	s.dirty = false
	s.upload = false
	return true
}
