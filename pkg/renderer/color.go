package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// linearToSRGB applies the sRGB transfer function to a linear value in [0, 1]
func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// toByte maps [0, 1] to [0, 255] with rounding
func toByte(v float64) uint8 {
	return uint8(math.Max(0, math.Min(1, v))*255 + 0.5)
}

// vec3ToColor converts a linear color to 8-bit sRGB with clamping
func vec3ToColor(linear core.Vec3) color.RGBA {
	linear = linear.Clamp(0.0, 1.0)

	return color.RGBA{
		R: toByte(linearToSRGB(linear.X)),
		G: toByte(linearToSRGB(linear.Y)),
		B: toByte(linearToSRGB(linear.Z)),
		A: 255,
	}
}
