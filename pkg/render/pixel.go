package render

import (
	"image/color"
	"math"

	"github.com/taigrr/lumen/pkg/scene"
)

// Pack encodes a color as 0x00RRGGBB, each channel round(v*255) after
// clamping to [0, 1].
func Pack(c scene.Color) uint32 {
	c = c.Clamp()
	return uint32(math.Round(c.R*255))<<16 |
		uint32(math.Round(c.G*255))<<8 |
		uint32(math.Round(c.B*255))
}

// Unpack splits a packed pixel into its 8-bit channels.
func Unpack(p uint32) (r, g, b uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p)
}

// PackedRGBA converts a packed pixel to an opaque color.RGBA.
func PackedRGBA(p uint32) color.RGBA {
	r, g, b := Unpack(p)
	return color.RGBA{r, g, b, 255}
}
