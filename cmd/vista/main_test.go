package main

import (
	"math"
	"testing"

	"github.com/taigrr/vista/pkg/gfx"
	"github.com/taigrr/vista/pkg/math3d"
	"github.com/taigrr/vista/pkg/recording"
	"github.com/taigrr/vista/pkg/render"
	"github.com/taigrr/vista/pkg/scene"
	"github.com/taigrr/vista/pkg/state"
)

func TestGridScene(t *testing.T) {
	root := gridScene(3)
	c := scene.Count(root)
	if c.Transforms != 9 {
		t.Errorf("transforms = %d, want 9", c.Transforms)
	}
	if c.CullNodes != 9 || c.Commands != 9 {
		t.Errorf("cull nodes = %d, commands = %d, want 9 each", c.CullNodes, c.Commands)
	}

	b := scene.ComputeBound(root)
	if !b.Valid() || b.Radius < 2 {
		t.Errorf("bound = %+v", b)
	}
}

func TestGridFramedIsFullyVisible(t *testing.T) {
	root := gridScene(4)
	camera := render.NewCamera()
	camera.Frame(scene.ComputeBound(root))

	rec := recording.NewRecorder()
	v := render.NewDispatchVisitor(rec)
	camera.Apply(v)
	v.Apply(root)

	if got := rec.CountOp(gfx.OpDrawMesh); got != 16 {
		t.Errorf("DrawMesh ops = %d, want 16", got)
	}
	if s := v.Stats(); s.Culled != 0 {
		t.Errorf("culled = %d, want 0", s.Culled)
	}
}

func TestOrbitDecays(t *testing.T) {
	o := newOrbit(60, 10, 2)
	o.impulse(0.1, 0, 0)
	start := o.Yaw.Position
	for range 600 {
		o.update()
	}
	if o.Yaw.Position <= start {
		t.Errorf("yaw did not advance: %v", o.Yaw.Position)
	}
	if math.Abs(o.Yaw.Velocity) > 1e-3 {
		t.Errorf("velocity = %v, want ~0", o.Yaw.Velocity)
	}

	o.reset()
	if o.Yaw.Position != 0.6 || o.Zoom.Position != 1 {
		t.Errorf("reset = %+v", o)
	}
}

func TestOrbitClamps(t *testing.T) {
	o := newOrbit(60, 10, 2)
	o.Pitch.Position = 5
	o.Zoom.Position = -1
	o.update()
	if o.Pitch.Position >= math.Pi/2 {
		t.Errorf("pitch = %v, want below pi/2", o.Pitch.Position)
	}
	if o.Zoom.Position < 0.05 {
		t.Errorf("zoom = %v, want >= 0.05", o.Zoom.Position)
	}

	c := render.NewCamera()
	o.apply(c)
	if c.Distance < c.Near {
		t.Errorf("distance %v inside near plane %v", c.Distance, c.Near)
	}
}

func TestCullingToggleSharesState(t *testing.T) {
	root := gridScene(4)
	camera := render.NewCamera()
	camera.Frame(scene.ComputeBound(root))

	rec := recording.NewRecorder()
	shared := state.New()
	culled := render.NewDispatchVisitor(rec, render.WithState(shared))
	unculled := render.NewDispatchVisitor(rec, render.WithoutCulling(), render.WithState(shared))

	camera.Apply(culled)
	culled.Apply(root)

	// Slide the camera far sideways while culling is off, then switch back.
	camera.SetTarget(camera.Target.Add(math3d.V3(1000, 0, 0)))
	camera.Apply(unculled)
	unculled.Reset()
	unculled.Apply(root)

	rec.Reset()
	culled.ResetStats()
	culled.Apply(root)
	if got := rec.CountOp(gfx.OpDrawMesh); got != 0 {
		t.Errorf("DrawMesh ops = %d, want 0 with the grid out of view", got)
	}
	if s := culled.Stats(); s.Culled != 16 {
		t.Errorf("culled = %d, want 16", s.Culled)
	}
}
