package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// Convert from OKLAB to linear RGB
	// Using simplified approximation for OKLAB to RGB conversion
	// This is not perfectly accurate but good enough for our purposes

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewMaterialsScene creates a grid of spheres sweeping the material
// parameters: metals along the back row, glossy dielectrics in the middle
// and glass in front, roughness increasing from left to right.
func NewMaterialsScene() (*Scene, error) {
	const columns = 6

	b := NewBuilder().
		Name("materials", "Sphere grid sweeping roughness across metal, glossy and glass").
		CameraConfig(geometry.CameraConfig{
			Position: core.NewVec3(2.5, 4, 9),
			LookAt:   core.NewVec3(2.5, 0.4, 1),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      40.0,
		}).
		GlobalIllumination(core.NewVec3(1, 1, 1), 0.8).
		RenderHints(RenderHints{Width: 480, Height: 270})

	checker := material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.2, 0.2))
	ground := NewGroundQuad(core.NewVec3(2.5, 0, 1), 40.0)
	b.Triangles(ground[:], material.NewTexturedLambertian(checker))

	// Warm area light above the grid
	b.Sphere(core.NewVec3(-4, 10, 4), 3, material.NewEmissive(core.NewVec3(1.0, 0.9, 0.8), 6.0))

	const radius = 0.4
	for i := 0; i < columns; i++ {
		// OKLCH hue sweep with constant lightness and chroma
		hue := float64(i) / float64(columns) * 360.0
		color := oklchToRGB(0.7, 0.15, hue)

		roughness := float64(i) / float64(columns-1)
		x := float64(i)

		b.Sphere(core.NewVec3(x, radius, -1), radius, material.NewMetal(color, roughness))
		b.Sphere(core.NewVec3(x, radius, 1), radius, material.NewGlossy(color, material.DefaultIOR, roughness))
		b.Sphere(core.NewVec3(x, radius, 3), radius, material.NewGlass(core.NewVec3(1, 1, 1), material.DefaultIOR, roughness))
	}

	return b.Build()
}
