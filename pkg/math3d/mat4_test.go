package math3d

import (
	"math"
	"testing"
)

func TestMat4Transforms(t *testing.T) {
	quarterY := [4]float64{0, math.Sin(math.Pi / 4), 0, math.Cos(math.Pi / 4)}

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"translate point", Translate(V3(1, 2, 3)).MulVec3(V3(1, 1, 1)), V3(2, 3, 4)},
		{"translate ignores direction", Translate(V3(1, 2, 3)).MulVec3Dir(V3(0, 1, 0)), V3(0, 1, 0)},
		{"scale", Scale(V3(2, 3, 4)).MulVec3(V3(1, 1, 1)), V3(2, 3, 4)},
		{"quaternion quarter turn", FromQuaternion(quarterY).MulVec3Dir(V3(0, 0, -1)), V3(-1, 0, 0)},
		{"axis quarter turn", Rotate(V3(0, 1, 0), math.Pi/2).MulVec3Dir(V3(0, 0, -1)), V3(-1, 0, 0)},
		{"trs", TRS(V3(0, 5, 0), quarterY, V3(2, 2, 2)).MulVec3(V3(0, 0, -1)), V3(-2, 5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.got.ApproxEqual(tc.expected, 1e-9) {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := TRS(V3(1, 2, 3), [4]float64{0, 0, 0, 1}, V3(1, 2, 1))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
	if o := m.MulVec3(Zero3()); o != V3(1, 2, 3) {
		t.Errorf("origin maps to %v, want the translation", o)
	}
	var zero Mat4
	if !zero.IsZero() || m.IsZero() {
		t.Error("IsZero mismatch")
	}
}
