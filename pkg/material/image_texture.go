package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image of linear RGB values
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor
// lookup. Coordinates outside [0, 1) wrap around.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := wrap(int(math.Floor(uv.X*float64(t.Width))), t.Width)
	y := wrap(int(math.Floor((1.0-uv.Y)*float64(t.Height))), t.Height)

	return t.Pixels[y*t.Width+x]
}

// wrap maps any index into [0, n)
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
