package math3d

import "math"

// Vec4 is a four component vector. Position (X, Y, Z, W), colour (R, G, B, A)
// and texture coordinate (S, T, P, Q) accessors all name the same four slots.
type Vec4 [4]float64

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Len returns the number of components.
func (v Vec4) Len() int { return len(v) }

func (v Vec4) X() float64 { return v[0] }
func (v Vec4) Y() float64 { return v[1] }
func (v Vec4) Z() float64 { return v[2] }
func (v Vec4) W() float64 { return v[3] }

func (v Vec4) R() float64 { return v[0] }
func (v Vec4) G() float64 { return v[1] }
func (v Vec4) B() float64 { return v[2] }
func (v Vec4) A() float64 { return v[3] }

func (v Vec4) S() float64 { return v[0] }
func (v Vec4) T() float64 { return v[1] }
func (v Vec4) P() float64 { return v[2] }
func (v Vec4) Q() float64 { return v[3] }

func (v *Vec4) SetX(x float64) { v[0] = x }
func (v *Vec4) SetY(y float64) { v[1] = y }
func (v *Vec4) SetZ(z float64) { v[2] = z }
func (v *Vec4) SetW(w float64) { v[3] = w }

func (v *Vec4) SetR(r float64) { v[0] = r }
func (v *Vec4) SetG(g float64) { v[1] = g }
func (v *Vec4) SetB(b float64) { v[2] = b }
func (v *Vec4) SetA(a float64) { v[3] = a }

func (v *Vec4) SetS(s float64) { v[0] = s }
func (v *Vec4) SetT(t float64) { v[1] = t }
func (v *Vec4) SetP(p float64) { v[2] = p }
func (v *Vec4) SetQ(q float64) { v[3] = q }

// Set assigns all four components.
func (v *Vec4) Set(x, y, z, w float64) {
	*v = Vec4{x, y, z, w}
}

// Equal reports whether all four components are pairwise equal.
func (v Vec4) Equal(o Vec4) bool {
	return v[0] == o[0] && v[1] == o[1] && v[2] == o[2] && v[3] == o[3]
}

// Less reports whether v orders strictly before o, comparing components
// lexicographically from index 0 to 3.
func (v Vec4) Less(o Vec4) bool {
	for i := range v {
		if v[i] < o[i] {
			return true
		}
		if v[i] > o[i] {
			return false
		}
	}
	return false
}

// Negate returns -v.
func (v Vec4) Negate() Vec4 {
	return Vec4{-v[0], -v[1], -v[2], -v[3]}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Scale returns the scalar product.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Div divides every component by s.
func (v Vec4) Div(s float64) Vec4 {
	return v.Scale(1 / s)
}

// Dot returns the dot product.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Length returns the Euclidean length over all four components.
func (v Vec4) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector. The zero vector is returned unchanged.
func (v Vec4) Normalize() Vec4 {
	l := v.Length()
	if l == 0 {
		return Vec4{}
	}
	return v.Scale(1 / l)
}

// Lerp returns linear interpolation.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return a.Add(b.Sub(a).Scale(t))
}

// Vec3 returns the X, Y, Z portion.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// PerspectiveDivide returns Vec3 after dividing by W.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v[3] == 0 {
		return v.Vec3()
	}
	return Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}
