package scene

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Scene is an unordered collection of primitives and lights.
//
// A scene is built single-threaded and then frozen when rendering starts.
// After that it is only read, so any number of goroutines may query it
// without locking.
type Scene struct {
	primitives []Primitive
	lights     []Light
	frozen     bool
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddPrimitive appends a primitive. It panics once the scene is frozen.
func (s *Scene) AddPrimitive(p Primitive) {
	s.mustBeMutable()
	s.primitives = append(s.primitives, p)
}

// AddLight appends a light. It panics once the scene is frozen.
func (s *Scene) AddLight(l Light) {
	s.mustBeMutable()
	s.lights = append(s.lights, l)
}

// Freeze forbids further changes. Renderers call it before sharing the scene
// with their workers.
func (s *Scene) Freeze() {
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *Scene) Frozen() bool {
	return s.frozen
}

func (s *Scene) mustBeMutable() {
	if s.frozen {
		panic("scene: modified after rendering started")
	}
}

// Primitives returns the primitives in insertion order. The slice must not be
// modified.
func (s *Scene) Primitives() []Primitive {
	return s.primitives
}

// Lights returns the lights in insertion order. The slice must not be
// modified.
func (s *Scene) Lights() []Light {
	return s.lights
}

// NearestHit intersects ray with every primitive and returns the closest
// hit. Ties go to the primitive added first.
func (s *Scene) NearestHit(ray math3d.Ray) (*Primitive, Hit, bool) {
	var (
		closest *Primitive
		nearest Hit
	)
	best := math.Inf(1)
	for i := range s.primitives {
		p := &s.primitives[i]
		hit, ok := p.Intersect(ray)
		if ok && hit.Distance < best {
			best = hit.Distance
			closest = p
			nearest = hit
		}
	}
	return closest, nearest, closest != nil
}
