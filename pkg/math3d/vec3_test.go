package math3d

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), V3(5, -3, 9)},
		{"sub", a.Sub(b), V3(-3, 7, -3)},
		{"mul", a.Mul(b), V3(4, -10, 18)},
		{"scale", a.Scale(2), V3(2, 4, 6)},
		{"negate", a.Negate(), V3(-1, -2, -3)},
		{"cross x*y", V3(1, 0, 0).Cross(V3(0, 1, 0)), V3(0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.ApproxEqual(tc.expected, 1e-12) {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("dot = %v, want 12", d)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}
	if math.Abs(n.Y-0.6) > 1e-12 || math.Abs(n.Z-0.8) > 1e-12 {
		t.Errorf("normalize = %v, want (0, 0.6, 0.8)", n)
	}

	if z := Zero3().Normalize(); z != Zero3() {
		t.Errorf("zero vector normalized to %v", z)
	}
}

func TestVec3Reflect(t *testing.T) {
	tests := []struct {
		name     string
		dir      Vec3
		normal   Vec3
		expected Vec3
	}{
		{"straight down", V3(0, -1, 0), V3(0, 1, 0), V3(0, 1, 0)},
		{"45 degrees", V3(1, -1, 0).Normalize(), V3(0, 1, 0), V3(1, 1, 0).Normalize()},
		{"grazing", V3(1, 0, 0), V3(0, 1, 0), V3(1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.dir.Reflect(tc.normal)
			if !got.ApproxEqual(tc.expected, 1e-12) {
				t.Errorf("Reflect(%v, %v) = %v, want %v", tc.dir, tc.normal, got, tc.expected)
			}
		})
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(V3(1, 1, 1), V3(0, 0, -1))
	if p := r.At(2); !p.ApproxEqual(V3(1, 1, -1), 1e-12) {
		t.Errorf("At(2) = %v", p)
	}

	n := r.Nudge(1e-4)
	if math.Abs(n.Origin.Z-(1-1e-4)) > 1e-12 {
		t.Errorf("Nudge origin = %v", n.Origin)
	}
	if n.Direction != r.Direction {
		t.Errorf("Nudge changed direction to %v", n.Direction)
	}
}
