package render

import (
	"image/color"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
)

// Bounded is implemented by geometry that knows its local bounds.
type Bounded interface {
	Bounds() (lo, hi math3d.Vec3)
}

// CanvasStats counts what a Canvas drew since the last Clear.
type CanvasStats struct {
	Uploads   int // SetMatrices calls
	Meshes    int // DrawMesh ops drawn
	Skipped   int // DrawMesh ops whose bounds were off screen
	Triangles int
	Other     int // draws without geometry
}

// Canvas is a CommandBuffer that rasterizes DrawMesh operations as
// wireframe into a Framebuffer, using the last uploaded matrices and the
// last SetColor.
type Canvas struct {
	fb       *Framebuffer
	mvp      math3d.Mat4
	color    color.RGBA
	pipeline string
	stats    CanvasStats
}

var _ gfx.CommandBuffer = (*Canvas)(nil)

// DefaultColor is the draw colour before any SetColor.
var DefaultColor = RGB(0, 255, 128)

// NewCanvas creates a canvas drawing into fb.
func NewCanvas(fb *Framebuffer) *Canvas {
	return &Canvas{fb: fb, mvp: math3d.Identity(), color: DefaultColor}
}

// Framebuffer returns the target framebuffer.
func (c *Canvas) Framebuffer() *Framebuffer {
	return c.fb
}

// SetFramebuffer retargets the canvas, e.g. after a resize.
func (c *Canvas) SetFramebuffer(fb *Framebuffer) {
	c.fb = fb
}

// Clear fills the framebuffer with bg and resets the colour and counters.
func (c *Canvas) Clear(bg color.RGBA) {
	c.fb.Clear(bg)
	c.color = DefaultColor
	c.pipeline = ""
	c.stats = CanvasStats{}
}

// Stats returns the counters since the last Clear.
func (c *Canvas) Stats() CanvasStats {
	return c.stats
}

// Pipeline returns the name of the last bound pipeline.
func (c *Canvas) Pipeline() string {
	return c.pipeline
}

func (c *Canvas) SetMatrices(projection, modelView math3d.Mat4) {
	c.mvp = projection.Mul(modelView)
	c.stats.Uploads++
}

func (c *Canvas) Record(op gfx.Op) {
	switch op := op.(type) {
	case gfx.SetColor:
		c.color = op.Color
	case gfx.BindPipeline:
		c.pipeline = op.Name
	case gfx.DrawMesh:
		if op.Mesh != nil {
			c.drawMesh(op.Mesh)
		}
	default:
		if op.Kind().IsDraw() {
			c.stats.Other++
		}
	}
}

func (c *Canvas) drawMesh(g gfx.Geometry) {
	if b, ok := g.(Bounded); ok {
		lo, hi := b.Bounds()
		if !IntersectAABB(ExtractFrustum(c.mvp), NewAABB(lo, hi)) {
			c.stats.Skipped++
			return
		}
	}
	c.stats.Meshes++

	w, h := float64(c.fb.Width), float64(c.fb.Height)
	for i := range g.TriangleCount() {
		face := g.GetFace(i)
		var pts [3][2]int
		var ok [3]bool
		for k, idx := range face {
			pts[k], ok[k] = c.toScreen(g.Position(idx), w, h)
		}
		for k := range 3 {
			j := (k + 1) % 3
			if ok[k] && ok[j] {
				c.fb.DrawLine(pts[k][0], pts[k][1], pts[j][0], pts[j][1], c.color)
			}
		}
		c.stats.Triangles++
	}
}

// maxNDC bounds how far off screen a projected point may be and still be
// drawn; the framebuffer clips what remains per pixel.
const maxNDC = 16

// toScreen projects p to pixels. Points behind the eye or far off screen
// are rejected.
func (c *Canvas) toScreen(p math3d.Vec3, w, h float64) ([2]int, bool) {
	clip := c.mvp.MulVec4(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return [2]int{}, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -maxNDC || ndc.X > maxNDC || ndc.Y < -maxNDC || ndc.Y > maxNDC {
		return [2]int{}, false
	}
	return [2]int{
		int((ndc.X + 1) * 0.5 * w),
		int((1 - ndc.Y) * 0.5 * h),
	}, true
}
