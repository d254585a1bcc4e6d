package state

import (
	"fmt"

	"github.com/taigrr/vista/pkg/gfx"
)

// Well-known state slots. Commands in the same slot replace each other;
// commands in different slots are independent.
const (
	SlotPipeline = iota
	SlotMaterial
	SlotDescriptor
)

// StateCommand is a state change applied by a StateGroup for the duration
// of its subtree.
type StateCommand interface {
	// Slot selects the stack the command is pushed onto.
	Slot() int
	// Record writes the state change into cb.
	Record(cb gfx.CommandBuffer)
}

// Bind is a StateCommand that records a fixed operation.
type Bind struct {
	SlotID int
	Op     gfx.Op
}

// Slot returns b.SlotID.
func (b Bind) Slot() int { return b.SlotID }

// Record records b.Op.
func (b Bind) Record(cb gfx.CommandBuffer) { cb.Record(b.Op) }

func (b Bind) String() string {
	return fmt.Sprintf("Bind(slot=%d, %v)", b.SlotID, b.Op.Kind())
}

// StateStack is the stack of state commands for one slot.
type StateStack struct {
	stack []StateCommand
	dirty bool
}

// Push makes c the current command.
func (s *StateStack) Push(c StateCommand) {
	s.stack = append(s.stack, c)
	s.dirty = true
}

// Pop restores the previous command. Popping an empty stack panics.
func (s *StateStack) Pop() {
	if len(s.stack) == 0 {
		panic("state: pop of empty state stack")
	}
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	s.dirty = true
}

// Top returns the current command, or nil when the stack is empty.
func (s *StateStack) Top() StateCommand {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Len returns the stack depth.
func (s *StateStack) Len() int {
	return len(s.stack)
}

// Dirty reports whether the stack changed since it was last recorded.
func (s *StateStack) Dirty() bool {
	return s.dirty
}

// record writes the current command into cb if the stack is dirty.
func (s *StateStack) record(cb gfx.CommandBuffer) {
	if !s.dirty {
		return
	}
	if top := s.Top(); top != nil {
		top.Record(cb)
	}
	s.dirty = false
}
