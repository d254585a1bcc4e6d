package math3d

// Plane is a half-space boundary Ax + By + Cz + D = 0 stored as (A, B, C, D).
// Points with a positive plane equation lie on the inner side.
type Plane Vec4

// NewPlane creates a plane from its equation coefficients.
func NewPlane(a, b, c, d float64) Plane {
	return Plane{a, b, c, d}
}

// Normal returns (A, B, C).
func (p Plane) Normal() Vec3 {
	return Vec3{p[0], p[1], p[2]}
}

// Offset returns D.
func (p Plane) Offset() float64 {
	return p[3]
}

// Distance evaluates the plane equation at point. For a normalized plane
// this is the signed distance: positive on the inner side.
func (p Plane) Distance(point Vec3) float64 {
	return p[0]*point.X + p[1]*point.Y + p[2]*point.Z + p[3]
}

// Transform returns p * m, treating the plane as a row vector.
// If m maps frame A into frame B and p is expressed in frame B, the result
// is the same plane expressed in frame A, so clip-space planes multiplied by
// a model-view-projection matrix become local-space planes.
func (p Plane) Transform(m Mat4) Plane {
	var out Plane
	for col := range 4 {
		out[col] = p[0]*m[col*4] + p[1]*m[col*4+1] + p[2]*m[col*4+2] + p[3]*m[col*4+3]
	}
	return out
}

// Normalize scales the plane so its normal has unit length.
func (p Plane) Normalize() Plane {
	l := p.Normal().Len()
	if l == 0 {
		return p
	}
	return Plane(Vec4(p).Scale(1 / l))
}
