package scene

import (
	"math"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func testScene() *Scene {
	s := New()
	s.AddPrimitive(NewSphere(math3d.V3(0, 0, 0), 1, matte))
	s.AddPrimitive(NewSphere(math3d.V3(0, 0, -4), 1, matte))
	s.AddPrimitive(NewPlane(math3d.V3(0, 0, -10), math3d.V3(0, 0, 1), matte))
	s.AddLight(NewPointLight(math3d.V3(0, 0, 10), White, 1))
	return s
}

func TestNearestHitPicksClosest(t *testing.T) {
	s := testScene()

	prim, hit, ok := s.NearestHit(math3d.NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)))
	if !ok {
		t.Fatal("expected a hit")
	}
	if prim != &s.Primitives()[0] {
		t.Errorf("hit primitive %v, want the first sphere", prim.Point)
	}
	if math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", hit.Distance)
	}
}

func TestNearestHitMissesWhenPointingAway(t *testing.T) {
	s := testScene()

	directions := []math3d.Vec3{
		math3d.V3(0, 0, 1),
		math3d.V3(1, 0, 0.01).Normalize(),
		math3d.V3(0, -1, 0.5).Normalize(),
	}
	for _, d := range directions {
		if _, _, ok := s.NearestHit(math3d.NewRay(math3d.V3(0, 0, 5), d)); ok {
			t.Errorf("ray along %v should miss everything", d)
		}
	}
}

func TestNearestHitTieGoesToFirst(t *testing.T) {
	s := New()
	s.AddPrimitive(NewPlane(math3d.V3(0, 0, 0), math3d.V3(0, 0, 1), Material{Color: RGB(1, 0, 0)}))
	s.AddPrimitive(NewPlane(math3d.V3(0, 0, 0), math3d.V3(0, 0, -1), Material{Color: RGB(0, 1, 0)}))

	prim, _, ok := s.NearestHit(math3d.NewRay(math3d.V3(0, 0, 3), math3d.V3(0, 0, -1)))
	if !ok {
		t.Fatal("expected a hit")
	}
	if prim.Color() != RGB(1, 0, 0) {
		t.Errorf("tie resolved to %v, want the first plane", prim.Color())
	}
}

func TestEmptySceneMisses(t *testing.T) {
	if _, _, ok := New().NearestHit(math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))); ok {
		t.Error("empty scene reported a hit")
	}
}

func TestFrozenSceneRejectsChanges(t *testing.T) {
	s := testScene()
	s.Freeze()
	if !s.Frozen() {
		t.Fatal("Frozen() = false after Freeze")
	}

	defer func() {
		if recover() == nil {
			t.Error("AddPrimitive on a frozen scene did not panic")
		}
	}()
	s.AddPrimitive(NewSphere(math3d.Zero3(), 1, matte))
}

func TestLights(t *testing.T) {
	p := NewPointLight(math3d.V3(0, 0, 10), White, 2)
	d := NewDirectionalLight(math3d.V3(0, 0, -3), White, -1)

	from := math3d.V3(0, 0, 1)
	if got := p.ShadowRay(from); !got.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("point ShadowRay = %v", got)
	}
	if got := p.Distance(from); math.Abs(got-9) > 1e-12 {
		t.Errorf("point Distance = %v, want 9", got)
	}
	if got := d.ShadowRay(from); !got.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
		t.Errorf("directional ShadowRay = %v", got)
	}
	if !math.IsInf(d.Distance(from), 1) {
		t.Errorf("directional Distance = %v, want +Inf", d.Distance(from))
	}
	if d.Brightness != 0 {
		t.Errorf("negative brightness not clamped: %v", d.Brightness)
	}
}

func TestColorClamp(t *testing.T) {
	tests := []struct {
		in, want Color
	}{
		{RGB(0.5, 0.2, 0.1), RGB(0.5, 0.2, 0.1)},
		{RGB(1.5, -0.2, 1), RGB(1, 0, 1)},
		{RGB(math.NaN(), math.Inf(1), math.Inf(-1)), RGB(0, 1, 0)},
	}
	for _, tc := range tests {
		if got := tc.in.Clamp(); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func BenchmarkNearestHit(b *testing.B) {
	s := testScene()
	ray := math3d.NewRay(math3d.V3(0.3, 0.2, 5), math3d.V3(0, 0, -1))

	for b.Loop() {
		_, _, _ = s.NearestHit(ray)
	}
}
