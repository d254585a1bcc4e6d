// Package state holds the traversal state of a dispatch pass: the
// projection, view and model matrix stacks and the per-slot stacks of
// state commands, together with the dirty tracking that decides when
// pending state must be uploaded to a command buffer.
package state

import "github.com/taigrr/vista/pkg/math3d"

// MatrixStack is a stack of accumulated transforms.
// Push composes the new matrix with the current top, so the top is always
// the full local-to-root transform of the subtree being visited.
type MatrixStack struct {
	stack   []math3d.Mat4
	dirty   bool
	version uint64
}

// NewMatrixStack creates a stack holding m as its only entry.
func NewMatrixStack(m math3d.Mat4) MatrixStack {
	return MatrixStack{stack: []math3d.Mat4{m}, dirty: true}
}

// Set replaces the whole content of the stack with m.
func (s *MatrixStack) Set(m math3d.Mat4) {
	s.stack = append(s.stack[:0], m)
	s.dirty = true
	s.version++
}

// Push pushes Top() * m, or m itself when the stack is empty.
func (s *MatrixStack) Push(m math3d.Mat4) {
	if n := len(s.stack); n > 0 {
		m = s.stack[n-1].Mul(m)
	}
	s.stack = append(s.stack, m)
	s.dirty = true
	s.version++
}

// Pop removes the top entry. Popping an empty stack panics.
func (s *MatrixStack) Pop() {
	if len(s.stack) == 0 {
		panic("state: pop of empty matrix stack")
	}
	s.stack = s.stack[:len(s.stack)-1]
	s.dirty = true
	s.version++
}

// Top returns the current transform. Reading an empty stack panics; the
// projection and view stacks must be set before traversal starts.
func (s *MatrixStack) Top() math3d.Mat4 {
	if len(s.stack) == 0 {
		panic("state: top of empty matrix stack")
	}
	return s.stack[len(s.stack)-1]
}

// Len returns the stack depth.
func (s *MatrixStack) Len() int {
	return len(s.stack)
}

// Dirty reports whether the stack changed since the last Clean.
func (s *MatrixStack) Dirty() bool {
	return s.dirty
}

// Version counts every Set, Push and Pop. Unlike the dirty flag it is never
// cleared, so a cache keyed on it cannot miss a change that was uploaded
// in between.
func (s *MatrixStack) Version() uint64 {
	return s.version
}

// Clean clears the dirty flag.
func (s *MatrixStack) Clean() {
	s.dirty = false
}
