package loader

import (
	"math/rand"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

// DemoSpheres is how many random spheres Demo scatters.
const DemoSpheres = 20

// Demo builds the default scene: a tilted mirror cylinder, twenty random
// spheres, an orange floor, a green mirrored back wall and one white point
// light. The same seed always produces the same scene.
func Demo(seed int64) *scene.Scene {
	rng := rand.New(rand.NewSource(seed))
	sc := scene.New()

	sc.AddPrimitive(scene.NewCylinder(
		math3d.V3(0, 5, 0),
		math3d.V3(1, 0, 1),
		0.5,
		scene.Material{Color: scene.RGB(0.5, 0.5, 0.8), Reflectivity: 0.5},
	))

	between := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	for range DemoSpheres {
		center := math3d.V3(between(-5, 5), between(0, 10), between(-5, 5))
		radius := between(0.01, 1)
		color := scene.RGB(rng.Float64(), rng.Float64(), rng.Float64())
		sc.AddPrimitive(scene.NewSphere(center, radius, scene.Material{
			Color:        color,
			Reflectivity: rng.Float64(),
		}))
	}

	sc.AddPrimitive(scene.NewPlane(
		math3d.V3(0, 0, -5),
		math3d.V3(0, 0, 1),
		scene.Material{Color: scene.RGB(1, 0.5, 0.2)},
	))
	sc.AddPrimitive(scene.NewPlane(
		math3d.V3(0, 10, 0),
		math3d.V3(0, -1, 0),
		scene.Material{Color: scene.RGB(0, 0.5, 0), Reflectivity: 0.5},
	))

	sc.AddLight(scene.NewPointLight(math3d.V3(-5, 0, 4.9), scene.White, 1))
	return sc
}
