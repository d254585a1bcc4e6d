// Package recording provides a gfx.CommandBuffer that captures state
// uploads and operations as typed entries instead of executing them.
//
// Entries are stored in call order and can be inspected, printed, or
// replayed into another destination:
//
//	rec := recording.NewRecorder()
//	v := render.NewDispatchVisitor(rec)
//	v.SetProjectionMatrix(proj)
//	v.SetViewMatrix(view)
//	v.Apply(root)
//	r := rec.Finish()
//	r.Playback(canvas)
//
// The Recorder is not safe for concurrent use.
package recording

import (
	"fmt"
	"io"
	"strings"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
)

// EntryType identifies what an Entry captured.
type EntryType uint8

const (
	EntryMatrices EntryType = iota // SetMatrices call
	EntryOp                        // Record call
)

var entryTypeNames = [...]string{
	EntryMatrices: "SetMatrices",
	EntryOp:       "Record",
}

// String returns the entry type name.
func (t EntryType) String() string {
	if int(t) < len(entryTypeNames) {
		return entryTypeNames[t]
	}
	return fmt.Sprintf("EntryType(%d)", t)
}

// Entry is one captured call.
type Entry struct {
	Type       EntryType
	Projection math3d.Mat4 // EntryMatrices only
	ModelView  math3d.Mat4 // EntryMatrices only
	Op         gfx.Op      // EntryOp only
}

// String formats the entry for logs.
func (e Entry) String() string {
	if e.Type == EntryMatrices {
		t := e.ModelView.Translation()
		return fmt.Sprintf("SetMatrices(modelView.t=(%.3g, %.3g, %.3g))", t.X, t.Y, t.Z)
	}
	if s, ok := e.Op.(fmt.Stringer); ok {
		return s.String()
	}
	return e.Op.Kind().String()
}

// Recorder captures calls made against it.
type Recorder struct {
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{entries: make([]Entry, 0, 64)}
}

// SetMatrices captures a state upload.
func (r *Recorder) SetMatrices(projection, modelView math3d.Mat4) {
	r.entries = append(r.entries, Entry{
		Type:       EntryMatrices,
		Projection: projection,
		ModelView:  modelView,
	})
}

// Record captures an operation.
func (r *Recorder) Record(op gfx.Op) {
	r.entries = append(r.entries, Entry{Type: EntryOp, Op: op})
}

// Entries returns the captured entries in call order. The slice is owned by
// the Recorder and is invalidated by Reset.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// Len returns the number of captured entries.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Count returns how many entries of type t were captured.
func (r *Recorder) Count(t EntryType) int {
	n := 0
	for _, e := range r.entries {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Ops returns the captured operations in order.
func (r *Recorder) Ops() []gfx.Op {
	var ops []gfx.Op
	for _, e := range r.entries {
		if e.Type == EntryOp {
			ops = append(ops, e.Op)
		}
	}
	return ops
}

// CountOp returns how many operations of kind k were captured.
func (r *Recorder) CountOp(k gfx.OpKind) int {
	n := 0
	for _, e := range r.entries {
		if e.Type == EntryOp && e.Op.Kind() == k {
			n++
		}
	}
	return n
}

// Reset discards all entries, keeping the allocated storage.
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}

// Finish returns an immutable Recording of the entries captured so far.
// The Recorder may keep recording afterwards.
func (r *Recorder) Finish() *Recording {
	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return &Recording{entries: entries}
}

// WriteTo writes one line per entry.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	return writeEntries(w, r.entries)
}

// Recording is an immutable list of captured entries.
type Recording struct {
	entries []Entry
}

// Entries returns the recorded entries. Callers must not modify them.
func (r *Recording) Entries() []Entry {
	return r.entries
}

// Playback replays every entry into cb in the original order.
func (r *Recording) Playback(cb gfx.CommandBuffer) {
	for _, e := range r.entries {
		switch e.Type {
		case EntryMatrices:
			cb.SetMatrices(e.Projection, e.ModelView)
		case EntryOp:
			cb.Record(e.Op)
		}
	}
}

// WriteTo writes one line per entry.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	return writeEntries(w, r.entries)
}

func writeEntries(w io.Writer, entries []Entry) (int64, error) {
	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%4d  %s\n", i, e)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
