package math3d

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross x", V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{"parallel", V3(2, 2, 2), V3(1, 1, 1), V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Cross(tc.b); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("expected unit length, got %v", n.Len())
	}
	if !n.ApproxEqual(V3(0.6, 0, 0.8), 1e-12) {
		t.Errorf("got %v", n)
	}

	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := V3(1, -2, 3)
	b := V3(-1, 2, 0)

	if got := a.Min(b); got != V3(-1, -2, 0) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != V3(1, 2, 3) {
		t.Errorf("Max = %v", got)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Negate(); got != V3(-1, -2, -3) {
		t.Errorf("Negate = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
}
