// Package render turns a scene into packed pixels: the recursive shader, the
// pinhole camera and the continuous row-streaming render loop.
package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/scene"
)

const (
	// ShadowEpsilon is how far secondary rays start from the surface they
	// leave, so they do not re-hit it.
	ShadowEpsilon = 1e-4

	// Shininess is the Phong exponent of the specular highlight.
	Shininess = 10

	// MaxDepth caps the reflection depth budget.
	MaxDepth = 10
)

// Shade traces ray through sc and returns its color clamped to [0, 1].
//
// Direct light (diffuse and specular) is applied only to surfaces with
// reflectivity below 1; perfect mirrors show nothing but what they reflect.
// depth is the number of reflection bounces still allowed; it is capped at
// MaxDepth and negative values count as 0.
func Shade(sc *scene.Scene, ray math3d.Ray, depth int) scene.Color {
	return shade(sc, ray, clampDepth(depth), nil)
}

func clampDepth(depth int) int {
	return max(0, min(depth, MaxDepth))
}

// shade is Shade with an optional call counter.
func shade(sc *scene.Scene, ray math3d.Ray, depth int, calls *int) scene.Color {
	if calls != nil {
		*calls++
	}

	prim, hit, ok := sc.NearestHit(ray)
	if !ok {
		return scene.Black
	}

	color := scene.Black
	reflectivity := prim.Reflectivity()

	if reflectivity < 1 {
		lights := sc.Lights()
		for i := range lights {
			diffuse, specular, lit := illuminate(sc, prim, hit, &lights[i], ray.Direction)
			if lit {
				color = color.Add(diffuse).Add(specular)
			}
		}
	}

	if reflectivity > 0 && depth > 0 {
		bounce := math3d.NewRay(hit.Position, ray.Direction.Reflect(hit.Normal)).Nudge(ShadowEpsilon)
		color = color.Add(shade(sc, bounce, depth-1, calls).Scale(reflectivity))
	}

	return color.Clamp()
}

// illuminate returns the diffuse and specular contribution of one light at a
// hit. lit is false when another primitive sits between the hit and the light.
func illuminate(sc *scene.Scene, prim *scene.Primitive, hit scene.Hit, light *scene.Light, view math3d.Vec3) (diffuse, specular scene.Color, lit bool) {
	toLight := light.ShadowRay(hit.Position)
	shadow := math3d.NewRay(hit.Position, toLight).Nudge(ShadowEpsilon)
	if _, blocker, ok := sc.NearestHit(shadow); ok && blocker.Distance < light.Distance(shadow.Origin) {
		return scene.Black, scene.Black, false
	}

	intensity := light.Color.Scale(light.Brightness)

	lambert := math.Max(hit.Normal.Dot(toLight), 0)
	diffuse = intensity.Scale(lambert).Mul(prim.Color())

	// Mirror of the incoming light direction against the camera direction.
	mirrored := toLight.Negate().Reflect(hit.Normal)
	phong := math.Pow(math.Max(mirrored.Dot(view.Negate()), 0), Shininess)
	specular = intensity.Scale(phong)

	return diffuse, specular, true
}
