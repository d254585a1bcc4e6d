package render

import (
	"math"

	"github.com/taigrr/vista/pkg/math3d"
)

// Camera orbits a target point. View and projection are cached and rebuilt
// only after a setter changed their inputs.
type Camera struct {
	Target   math3d.Vec3
	Distance float64
	Yaw      float64 // around Y, radians
	Pitch    float64 // around X, radians

	FOV         float64 // vertical, radians
	AspectRatio float64
	Near        float64
	Far         float64

	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

const maxPitch = math.Pi/2 - 0.01

// NewCamera creates a camera 10 units from the origin looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Distance:    10,
		FOV:         math.Pi / 3,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetTarget sets the orbit centre.
func (c *Camera) SetTarget(t math3d.Vec3) {
	c.Target = t
	c.viewDirty = true
}

// SetOrbit sets yaw, pitch and distance. Pitch is clamped short of the
// poles and distance to the near plane.
func (c *Camera) SetOrbit(yaw, pitch, distance float64) {
	c.Yaw = yaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
	c.Distance = math.Max(distance, c.Near)
	c.viewDirty = true
}

// SetAspectRatio sets width / height.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetClipPlanes sets the near and far distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Frame places the target at the centre of bound and backs off until the
// whole sphere fits in the vertical field of view. The clip planes are
// widened to contain it.
func (c *Camera) Frame(bound math3d.Sphere) {
	if !bound.Valid() {
		return
	}
	r := math.Max(bound.Radius, 1e-3)
	c.Target = bound.Center
	c.Distance = r / math.Sin(c.FOV/2)
	c.Near = math.Max(c.Distance-r, 1e-3) / 2
	c.Far = (c.Distance + r) * 2
	c.viewDirty = true
	c.projDirty = true
}

// Position returns the eye position.
func (c *Camera) Position() math3d.Vec3 {
	offset := math3d.V3(
		math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
	return c.Target.Add(offset.Scale(c.Distance))
}

// ViewMatrix returns the world-to-eye transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position(), c.Target, math3d.Up())
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Frustum returns the world-space view volume.
func (c *Camera) Frustum() math3d.Polytope {
	return ExtractFrustum(c.ViewProjectionMatrix())
}

// Apply sets v's projection and view from the camera.
func (c *Camera) Apply(v *DispatchVisitor) {
	v.SetProjectionMatrix(c.ProjectionMatrix())
	v.SetViewMatrix(c.ViewMatrix())
}

// WorldToScreen projects a world point to pixel coordinates. visible is
// false for points outside the clip volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	return project(c.ViewProjectionMatrix(), p, width, height)
}

func project(m math3d.Mat4, p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := m.MulVec4(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y, ndc.Z, true
}
