// Package render implements the dispatch traversal of a scene graph, with
// lazy view-frustum culling, and the software destinations it draws into.
package render

import (
	"github.com/taigrr/vista/pkg/math3d"
)

// Plane indices of a six-plane frustum. Every normal points inward.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// UnitFrustum returns the clip-space culling volume: the four side planes
// x = ±w and y = ±w, plus z = ±w when depth is set.
func UnitFrustum(depth bool) math3d.Polytope {
	p := math3d.Polytope{
		FrustumLeft:   math3d.NewPlane(1, 0, 0, 1),
		FrustumRight:  math3d.NewPlane(-1, 0, 0, 1),
		FrustumBottom: math3d.NewPlane(0, 1, 0, 1),
		FrustumTop:    math3d.NewPlane(0, -1, 0, 1),
	}
	if depth {
		p = append(p, math3d.NewPlane(0, 0, 1, 1), math3d.NewPlane(0, 0, -1, 1))
	}
	return p
}

// LocalFrustum transforms unit by m into dst and normalizes every plane, so
// plane distances are in the units of m's source frame. dst's storage is
// reused.
func LocalFrustum(unit math3d.Polytope, m math3d.Mat4, dst math3d.Polytope) math3d.Polytope {
	dst = unit.Transform(m, dst)
	for i := range dst {
		dst[i] = dst[i].Normalize()
	}
	return dst
}

// ExtractFrustum returns the six normalized planes of the volume m maps
// onto the clip cube. For a view-projection matrix the planes are in world
// space; for a model-view-projection they are in the model's frame.
func ExtractFrustum(m math3d.Mat4) math3d.Polytope {
	return LocalFrustum(UnitFrustum(true), m, make(math3d.Polytope, 0, 6))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from its corners.
func NewAABB(lo, hi math3d.Vec3) AABB {
	return AABB{Min: lo, Max: hi}
}

// Center returns the box centre.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Sphere returns the sphere circumscribing the box.
func (b AABB) Sphere() math3d.Sphere {
	return math3d.NewSphere(b.Center(), b.Max.Sub(b.Min).Len()/2)
}

// IntersectAABB reports whether box intersects or lies inside p. For each
// plane only the corner furthest along the normal is tested.
func IntersectAABB(p math3d.Polytope, box AABB) bool {
	for _, pl := range p {
		n := pl.Normal()
		corner := math3d.V3(
			pick(n.X >= 0, box.Max.X, box.Min.X),
			pick(n.Y >= 0, box.Max.Y, box.Min.Y),
			pick(n.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if pl.Distance(corner) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
