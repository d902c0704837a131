package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// bakeTexture fills a width x height texture by evaluating texel for every
// pixel. Row 0 is the top of the texture (v = 1).
func bakeTexture(width, height int, texel func(x, y int) core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels = append(pixels, texel(x, y))
		}
	}
	return NewImageTexture(width, height, pixels)
}

// normalized maps i in [0, n) to [0, 1]; a single texel maps to 0
func normalized(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// NewCheckerboardTexture bakes alternating squares of checkSize texels
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	checkSize = max(1, checkSize)
	return bakeTexture(width, height, func(x, y int) core.Vec3 {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1
		}
		return color2
	})
}

// NewUVDebugTexture shows texture coordinates as colors: U in red, V in green
func NewUVDebugTexture(width, height int) *ImageTexture {
	return bakeTexture(width, height, func(x, y int) core.Vec3 {
		return core.NewVec3(normalized(x, width), 1-normalized(y, height), 0)
	})
}

// NewGradientTexture blends from color1 at the top to color2 at the bottom
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	return bakeTexture(width, height, func(x, y int) core.Vec3 {
		t := normalized(y, height)
		return color1.Multiply(1 - t).Add(color2.Multiply(t))
	})
}
