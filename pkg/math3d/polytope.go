package math3d

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float64
}

// NewSphere creates a Sphere.
func NewSphere(center Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Valid reports whether the sphere has a non-negative radius.
// The zero-radius sphere is a valid point bound.
func (s Sphere) Valid() bool {
	return s.Radius >= 0
}

// Transform returns a sphere enclosing s after m is applied.
func (s Sphere) Transform(m Mat4) Sphere {
	return Sphere{Center: m.MulPoint(s.Center), Radius: s.Radius * m.MaxScale()}
}

// Expand returns the smallest sphere around s that also encloses o.
// Invalid spheres are treated as empty.
func (s Sphere) Expand(o Sphere) Sphere {
	switch {
	case !o.Valid():
		return s
	case !s.Valid():
		return o
	}
	d := o.Center.Sub(s.Center)
	dist := d.Len()
	if dist+o.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= o.Radius {
		return o
	}
	radius := (dist + s.Radius + o.Radius) / 2
	center := s.Center.Add(d.Scale((radius - s.Radius) / dist))
	return Sphere{Center: center, Radius: radius}
}

// Polytope is a convex volume: the intersection of the inner half-spaces
// of its planes.
type Polytope []Plane

// Transform writes every plane multiplied by m into dst, reusing its
// storage, and returns it.
func (p Polytope) Transform(m Mat4, dst Polytope) Polytope {
	dst = dst[:0]
	for _, pl := range p {
		dst = append(dst, pl.Transform(m))
	}
	return dst
}

// Intersect reports whether s intersects or lies inside the polytope.
// The sphere is rejected as soon as it lies entirely on the outer side of a
// single plane; a sphere touching a plane exactly is accepted.
func Intersect(p Polytope, s Sphere) bool {
	for _, pl := range p {
		if pl.Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}
