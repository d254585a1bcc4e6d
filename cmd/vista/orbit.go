package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/vista/pkg/render"
)

// axis is one orbit parameter whose velocity decays on a critically damped
// spring.
type axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func newAxis(fps int, position float64) axis {
	return axis{
		Position:  position,
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *axis) update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// orbit drives a render.Camera around the scene: yaw and pitch spin with
// momentum, zoom scales the framed distance.
type orbit struct {
	Yaw, Pitch, Zoom axis
	fps              int
	baseDistance     float64
	radius           float64
}

func newOrbit(fps int, baseDistance, radius float64) *orbit {
	o := &orbit{fps: fps, baseDistance: baseDistance, radius: radius}
	o.reset()
	return o
}

func (o *orbit) reset() {
	o.Yaw = newAxis(o.fps, 0.6)
	o.Pitch = newAxis(o.fps, 0.35)
	o.Zoom = newAxis(o.fps, 1)
}

func (o *orbit) impulse(yaw, pitch, zoom float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
	o.Zoom.Velocity += zoom
}

func (o *orbit) update() {
	o.Yaw.update()
	o.Pitch.update()
	o.Zoom.update()

	const maxPitch = math.Pi/2 - 0.05
	o.Pitch.Position = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch.Position))
	o.Zoom.Position = math.Max(0.05, math.Min(20, o.Zoom.Position))
}

// apply moves the camera and keeps the clip planes around the scene.
func (o *orbit) apply(c *render.Camera) {
	d := o.baseDistance * o.Zoom.Position
	c.SetClipPlanes(math.Max(d-o.radius, o.radius*0.01)/2, (d+o.radius)*2)
	c.SetOrbit(o.Yaw.Position, o.Pitch.Position, d)
}
