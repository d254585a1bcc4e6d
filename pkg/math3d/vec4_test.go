package math3d

import (
	"math"
	"testing"
)

func TestVec4AliasesShareStorage(t *testing.T) {
	var v Vec4
	v.SetX(1)
	v.SetG(2)
	v.SetP(3)
	v.SetW(4)

	want := V4(1, 2, 3, 4)
	if v != want {
		t.Fatalf("v = %v, want %v", v, want)
	}

	views := []struct {
		name       string
		a, b, c, d float64
	}{
		{"xyzw", v.X(), v.Y(), v.Z(), v.W()},
		{"rgba", v.R(), v.G(), v.B(), v.A()},
		{"stpq", v.S(), v.T(), v.P(), v.Q()},
		{"index", v[0], v[1], v[2], v[3]},
	}
	for _, tc := range views {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a != 1 || tc.b != 2 || tc.c != 3 || tc.d != 4 {
				t.Errorf("%s = (%v, %v, %v, %v), want (1, 2, 3, 4)", tc.name, tc.a, tc.b, tc.c, tc.d)
			}
		})
	}

	v.SetQ(9)
	if v.A() != 9 || v.W() != 9 {
		t.Errorf("SetQ did not update the shared slot: A=%v W=%v", v.A(), v.W())
	}
	if v.Len() != 4 {
		t.Errorf("Len() = %d, want 4", v.Len())
	}
}

func TestVec4Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec4
		want bool
	}{
		{"identical", V4(1, 2, 3, 4), V4(1, 2, 3, 4), true},
		{"first differs", V4(0, 2, 3, 4), V4(1, 2, 3, 4), false},
		{"second differs", V4(1, 0, 3, 4), V4(1, 2, 3, 4), false},
		{"third differs", V4(1, 2, 0, 4), V4(1, 2, 3, 4), false},
		{"last differs", V4(1, 2, 3, 0), V4(1, 2, 3, 4), false},
		{"zero", Vec4{}, V4(0, 0, 0, 0), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal = %v, want %v", got, tc.want)
			}
			if got := tc.a == tc.b; got != tc.want {
				t.Errorf("== = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec4Less(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec4
		want bool
	}{
		{"equal is not less", V4(1, 2, 3, 4), V4(1, 2, 3, 4), false},
		{"first component decides", V4(0, 9, 9, 9), V4(1, 0, 0, 0), true},
		{"first component greater", V4(2, 0, 0, 0), V4(1, 9, 9, 9), false},
		{"second breaks tie", V4(1, 1, 9, 9), V4(1, 2, 0, 0), true},
		{"third breaks tie", V4(1, 2, 2, 9), V4(1, 2, 3, 0), true},
		{"last breaks tie", V4(1, 2, 3, 3), V4(1, 2, 3, 4), true},
		{"last greater", V4(1, 2, 3, 5), V4(1, 2, 3, 4), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Less(tc.b); got != tc.want {
				t.Errorf("%v.Less(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestVec4Arithmetic(t *testing.T) {
	a := V4(1, 2, 3, 4)
	b := V4(4, 3, 2, 1)

	if got := a.Add(b); got != V4(5, 5, 5, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V4(-3, -1, 1, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Negate(); got != V4(-1, -2, -3, -4) {
		t.Errorf("Negate = %v", got)
	}
	if got := a.Scale(2); got != V4(2, 4, 6, 8) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Div(2); got != V4(0.5, 1, 1.5, 2) {
		t.Errorf("Div = %v", got)
	}
	if got := a.Dot(b); got != 20 {
		t.Errorf("Dot = %v, want 20", got)
	}
	if got := V4(1, 1, 1, 1).Length(); got != 2 {
		t.Errorf("Length = %v, want 2", got)
	}
}

func TestVec4Normalize(t *testing.T) {
	n := V4(3, 0, 4, 0).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if math.Abs(n.X()-0.6) > 1e-12 || math.Abs(n.Z()-0.8) > 1e-12 {
		t.Errorf("normalized = %v, want (0.6, 0, 0.8, 0)", n)
	}
	if z := (Vec4{}).Normalize(); z != (Vec4{}) {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	if got := V4(2, 4, 6, 2).PerspectiveDivide(); got != V3(1, 2, 3) {
		t.Errorf("PerspectiveDivide = %v", got)
	}
	if got := V4(2, 4, 6, 0).PerspectiveDivide(); got != V3(2, 4, 6) {
		t.Errorf("PerspectiveDivide with w=0 = %v", got)
	}
}
