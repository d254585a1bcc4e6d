package recording

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
)

func TestRecorderCapturesInOrder(t *testing.T) {
	rec := NewRecorder()
	proj := math3d.Perspective(1, 1, 0.1, 10)
	mv := math3d.Translate(math3d.V3(1, 2, 3))

	rec.Record(gfx.BindPipeline{Name: "flat"})
	rec.SetMatrices(proj, mv)
	rec.Record(gfx.Draw{VertexCount: 3, InstanceCount: 1})

	entries := rec.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, EntryOp, entries[0].Type)
	assert.Equal(t, gfx.BindPipeline{Name: "flat"}, entries[0].Op)
	assert.Equal(t, EntryMatrices, entries[1].Type)
	assert.Equal(t, proj, entries[1].Projection)
	assert.Equal(t, mv, entries[1].ModelView)
	assert.Equal(t, gfx.OpDraw, entries[2].Op.Kind())

	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, 1, rec.Count(EntryMatrices))
	assert.Equal(t, 2, rec.Count(EntryOp))
	assert.Equal(t, 1, rec.CountOp(gfx.OpDraw))
	assert.Equal(t, 0, rec.CountOp(gfx.OpDrawMesh))
	assert.Len(t, rec.Ops(), 2)
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	rec.Record(gfx.Draw{VertexCount: 3})
	rec.Reset()

	assert.Zero(t, rec.Len())
	assert.Empty(t, rec.Ops())
}

func TestRecordingIsSnapshot(t *testing.T) {
	rec := NewRecorder()
	rec.Record(gfx.SetColor{Color: color.RGBA{255, 0, 0, 255}})
	r := rec.Finish()

	rec.Record(gfx.Draw{VertexCount: 6})
	assert.Len(t, r.Entries(), 1)
	assert.Equal(t, 2, rec.Len())
}

func TestRecordingPlayback(t *testing.T) {
	src := NewRecorder()
	src.SetMatrices(math3d.Identity(), math3d.ScaleUniform(2))
	src.Record(gfx.DrawIndexed{IndexCount: 36, InstanceCount: 1})
	src.Record(gfx.Draw{VertexCount: 3, InstanceCount: 1})

	dst := NewRecorder()
	src.Finish().Playback(dst)

	assert.Equal(t, src.Entries(), dst.Entries())
}

func TestRecorderWriteTo(t *testing.T) {
	rec := NewRecorder()
	rec.SetMatrices(math3d.Identity(), math3d.Translate(math3d.V3(1, 0, 0)))
	rec.Record(gfx.BindPipeline{Name: "wire"})
	rec.Record(gfx.Draw{VertexCount: 3, InstanceCount: 1})

	var buf bytes.Buffer
	n, err := rec.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "SetMatrices")
	assert.Contains(t, lines[1], `BindPipeline("wire")`)
	assert.Contains(t, lines[2], "Draw(vertices=3")
}

func TestEntryTypeString(t *testing.T) {
	assert.Equal(t, "SetMatrices", EntryMatrices.String())
	assert.Equal(t, "Record", EntryOp.String())
	assert.Equal(t, "EntryType(9)", EntryType(9).String())
}
