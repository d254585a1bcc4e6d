package render

import (
	"math"
	"testing"

	"github.com/taigrr/vista/pkg/math3d"
)

// gribbHartmann extracts the planes directly from the rows of m.
func gribbHartmann(m math3d.Mat4) math3d.Polytope {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	planes := math3d.Polytope{
		math3d.Plane(r3.Add(r0)),
		math3d.Plane(r3.Sub(r0)),
		math3d.Plane(r3.Add(r1)),
		math3d.Plane(r3.Sub(r1)),
		math3d.Plane(r3.Add(r2)),
		math3d.Plane(r3.Sub(r2)),
	}
	for i := range planes {
		planes[i] = planes[i].Normalize()
	}
	return planes
}

func TestUnitFrustum(t *testing.T) {
	if got := len(UnitFrustum(false)); got != 4 {
		t.Errorf("side planes = %d, want 4", got)
	}
	p := UnitFrustum(true)
	if len(p) != 6 {
		t.Fatalf("all planes = %d, want 6", len(p))
	}
	want := [6]math3d.Plane{
		FrustumLeft:   {1, 0, 0, 1},
		FrustumRight:  {-1, 0, 0, 1},
		FrustumBottom: {0, 1, 0, 1},
		FrustumTop:    {0, -1, 0, 1},
		FrustumNear:   {0, 0, 1, 1},
		FrustumFar:    {0, 0, -1, 1},
	}
	for i, pl := range p {
		if pl != want[i] {
			t.Errorf("plane %d = %v, want %v", i, pl, want[i])
		}
	}
}

func TestExtractFrustumMatchesRowExtraction(t *testing.T) {
	matrices := map[string]math3d.Mat4{
		"perspective": math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100),
		"orbit": math3d.Perspective(math.Pi/4, 1, 1, 50).Mul(
			math3d.LookAt(math3d.V3(3, 4, 5), math3d.Zero3(), math3d.Up())),
		"model": math3d.Perspective(math.Pi/2, 1.5, 0.5, 20).Mul(
			math3d.Translate(math3d.V3(1, -2, -8))).Mul(math3d.RotateY(0.7)).Mul(math3d.ScaleUniform(3)),
		"ortho": math3d.Orthographic(-4, 4, -3, 3, 1, 10),
	}
	for name, m := range matrices {
		t.Run(name, func(t *testing.T) {
			got := ExtractFrustum(m)
			want := gribbHartmann(m)
			for i := range want {
				for k := range 4 {
					if math.Abs(got[i][k]-want[i][k]) > 1e-9 {
						t.Fatalf("plane %d = %v, want %v", i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestLocalFrustumReusesStorage(t *testing.T) {
	unit := UnitFrustum(true)
	dst := make(math3d.Polytope, 0, 6)
	got := LocalFrustum(unit, math3d.Perspective(1, 1, 1, 10), dst)
	if &got[:1][0] != &dst[:1][0] {
		t.Error("LocalFrustum allocated new storage")
	}
	for i, pl := range got {
		if l := pl.Normal().Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
}

func TestWorldFrustumDistances(t *testing.T) {
	// 90 degree view: the side planes pass through the eye at 45 degrees.
	f := ExtractFrustum(math3d.Perspective(math.Pi/2, 1, 1, 100))

	tests := []struct {
		name  string
		point math3d.Vec3
		plane int
		want  float64
	}{
		{"near plane", math3d.V3(0, 0, -3), FrustumNear, 2},
		{"far plane", math3d.V3(0, 0, -40), FrustumFar, 60},
		{"left plane", math3d.V3(0, 0, -10), FrustumLeft, 10 / math.Sqrt2},
		{"outside right", math3d.V3(20, 0, -10), FrustumRight, -10 / math.Sqrt2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := f[tc.plane].Distance(tc.point)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("distance = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	f := ExtractFrustum(math3d.Perspective(math.Pi/3, 1, 0.1, 100))

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"in front", NewAABB(math3d.V3(-1, -1, -6), math3d.V3(1, 1, -4)), true},
		{"behind", NewAABB(math3d.V3(-1, -1, 4), math3d.V3(1, 1, 6)), false},
		{"straddling near", NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1)), true},
		{"beyond far", NewAABB(math3d.V3(-1, -1, -300), math3d.V3(1, 1, -200)), false},
		{"far left", NewAABB(math3d.V3(-100, -1, -6), math3d.V3(-90, 1, -4)), false},
		{"enclosing", NewAABB(math3d.V3(-500, -500, -500), math3d.V3(500, 500, 500)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IntersectAABB(f, tc.box); got != tc.want {
				t.Errorf("IntersectAABB = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAABBSphere(t *testing.T) {
	s := NewAABB(math3d.V3(-1, -2, -2), math3d.V3(1, 2, 2)).Sphere()
	if s.Center != math3d.Zero3() {
		t.Errorf("center = %v", s.Center)
	}
	if math.Abs(s.Radius-3) > 1e-12 {
		t.Errorf("radius = %v, want 3", s.Radius)
	}
}

func BenchmarkExtractFrustum(b *testing.B) {
	m := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100)
	for b.Loop() {
		_ = ExtractFrustum(m)
	}
}

func BenchmarkLocalFrustum(b *testing.B) {
	unit := UnitFrustum(true)
	m := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100).Mul(math3d.Translate(math3d.V3(0, 0, -5)))
	dst := make(math3d.Polytope, 0, len(unit))
	for b.Loop() {
		dst = LocalFrustum(unit, m, dst)
	}
}

func BenchmarkIntersectAABB(b *testing.B) {
	f := ExtractFrustum(math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 100))
	visible := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))
	culled := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 15))

	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = IntersectAABB(f, visible)
		}
	})
	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = IntersectAABB(f, culled)
		}
	})
}
