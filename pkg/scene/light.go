package scene

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// LightKind identifies a light source variant.
type LightKind int

const (
	PointLight       LightKind = iota // finite position, rays diverge
	DirectionalLight                  // infinitely far, parallel rays
)

func (k LightKind) String() string {
	if k == DirectionalLight {
		return "directional"
	}
	return "point"
}

// Light is a point or directional light source.
type Light struct {
	Kind       LightKind
	Position   math3d.Vec3 // point lights
	Direction  math3d.Vec3 // directional lights: direction the light travels
	Color      Color
	Brightness float64
}

// NewPointLight creates a light at position.
func NewPointLight(position math3d.Vec3, c Color, brightness float64) Light {
	return Light{Kind: PointLight, Position: position, Color: c, Brightness: math.Max(brightness, 0)}
}

// NewDirectionalLight creates a light whose rays all travel along direction.
func NewDirectionalLight(direction math3d.Vec3, c Color, brightness float64) Light {
	return Light{Kind: DirectionalLight, Direction: direction.Normalize(), Color: c, Brightness: math.Max(brightness, 0)}
}

// ShadowRay returns the unit direction from p toward the light.
func (l *Light) ShadowRay(p math3d.Vec3) math3d.Vec3 {
	if l.Kind == DirectionalLight {
		return l.Direction.Negate()
	}
	return l.Position.Sub(p).Normalize()
}

// Distance returns how far the light is from p. Directional lights are
// infinitely far away.
func (l *Light) Distance(p math3d.Vec3) float64 {
	if l.Kind == DirectionalLight {
		return math.Inf(1)
	}
	return l.Position.Distance(p)
}
