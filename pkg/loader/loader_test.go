package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/taigrr/lumen/pkg/scene"
)

func TestLoadDispatch(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		primitives int
		wantErr    error
	}{
		{name: "demo", path: "", primitives: DemoSpheres + 3},
		{name: "yaml", path: filepath.Join("testdata", "showcase.yaml"), primitives: 4},
		{name: "gltf", path: filepath.Join("testdata", "nodes.gltf"), primitives: 2},
		{name: "unknown extension", path: "scene.obj", wantErr: ErrUnsupportedFormat},
		{name: "bad yaml", path: filepath.Join("testdata", "bad.yaml"), wantErr: ErrUnknownPrimitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Load(tt.path, 1)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got := len(sc.Primitives()); got != tt.primitives {
				t.Errorf("got %d primitives, want %d", got, tt.primitives)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join("testdata", "missing.yaml"), 0); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDemoDeterministic(t *testing.T) {
	a, b := Demo(42), Demo(42)
	pa, pb := a.Primitives(), b.Primitives()
	if len(pa) != len(pb) {
		t.Fatalf("lengths differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Errorf("primitive %d differs between runs with the same seed", i)
		}
	}

	c := Demo(43)
	if c.Primitives()[1] == pa[1] {
		t.Error("different seeds produced the same first sphere")
	}
}

func TestDemoLayout(t *testing.T) {
	sc := Demo(7)
	prims := sc.Primitives()

	if prims[0].Kind != scene.Cylinder || prims[0].Reflectivity() != 0.5 {
		t.Errorf("first primitive = %v, want the mirrored cylinder", prims[0].Kind)
	}
	for i := 1; i <= DemoSpheres; i++ {
		p := prims[i]
		if p.Kind != scene.Sphere {
			t.Fatalf("primitive %d kind = %v, want sphere", i, p.Kind)
		}
		if p.Point.X < -5 || p.Point.X >= 5 || p.Point.Y < 0 || p.Point.Y >= 10 || p.Point.Z < -5 || p.Point.Z >= 5 {
			t.Errorf("sphere %d center %v out of the demo box", i, p.Point)
		}
		if p.Radius < 0.01 || p.Radius >= 1 {
			t.Errorf("sphere %d radius %v out of range", i, p.Radius)
		}
	}
	floor, back := prims[DemoSpheres+1], prims[DemoSpheres+2]
	if floor.Kind != scene.Plane || back.Kind != scene.Plane {
		t.Error("last two primitives should be the floor and back wall")
	}
	if len(sc.Lights()) != 1 {
		t.Errorf("got %d lights, want 1", len(sc.Lights()))
	}
}

func TestBundledScenesLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no bundled scenes")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			sc, err := Load(path, 0)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(sc.Primitives()) == 0 || len(sc.Lights()) == 0 {
				t.Error("bundled scene should have primitives and lights")
			}
		})
	}
}
