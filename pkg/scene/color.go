// Package scene holds the geometric primitives, light sources and the
// nearest-hit query the shader runs against.
package scene

import "math"

// Color is a linear RGB triple. Channels are nominally in [0, 1] but
// intermediate sums may exceed that range until Clamp is applied.
type Color struct {
	R, G, B float64
}

// RGB creates a Color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Black is the color of a ray that hits nothing.
var Black = Color{}

// White is full intensity on every channel.
var White = Color{1, 1, 1}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Clamp limits every channel to [0, 1]. NaN channels become 0.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, 1)
}
