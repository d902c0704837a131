package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewCornellScene creates a classic Cornell box with an emissive ceiling
// panel, a mirror sphere, a glass sphere and a rotated diffuse block.
func NewCornellScene() (*Scene, error) {
	// Cornell box dimensions (standard 555x555x555 units)
	const boxSize = 555.0

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(1.0, 0.95, 0.85), 15.0)

	corner := func(x, y, z float64) core.Vec3 {
		return core.NewVec3(x*boxSize, y*boxSize, z*boxSize)
	}

	b := NewBuilder().
		Name("cornell", "Cornell box with two spheres and a block").
		CameraConfig(geometry.CameraConfig{
			Position: core.NewVec3(278, 278, -800), // Outside the open front of the box
			LookAt:   core.NewVec3(278, 278, 0),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      40.0,
		}).
		RenderHints(RenderHints{Width: 400, Height: 400, SamplesPerPixel: 150, MaxReflections: 8})

	// Walls are wound so their geometric normals face into the box
	b.Quad(corner(0, 0, 0), corner(0, 0, 1), corner(1, 0, 1), corner(1, 0, 0), white) // floor
	b.Quad(corner(0, 1, 0), corner(1, 1, 0), corner(1, 1, 1), corner(0, 1, 1), white) // ceiling
	b.Quad(corner(0, 0, 1), corner(0, 1, 1), corner(1, 1, 1), corner(1, 0, 1), white) // back
	b.Quad(corner(0, 0, 0), corner(0, 1, 0), corner(0, 1, 1), corner(0, 0, 1), red)   // left
	b.Quad(corner(1, 0, 0), corner(1, 0, 1), corner(1, 1, 1), corner(1, 1, 0), green) // right

	// Ceiling light, slightly below the ceiling
	lightSize := 200.0
	lo := (boxSize - lightSize) / 2.0
	hi := lo + lightSize
	y := boxSize - 1
	b.Quad(
		core.NewVec3(lo, y, lo),
		core.NewVec3(hi, y, lo),
		core.NewVec3(hi, y, hi),
		core.NewVec3(lo, y, hi),
		light,
	)

	b.Sphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.0))
	b.Sphere(core.NewVec3(370, 90, 351), 90, material.NewGlass(core.NewVec3(1, 1, 1), material.DefaultIOR, 0.0))
	b.Box(
		core.NewVec3(380, 60, 150),
		core.NewVec3(60, 60, 60),
		core.NewVec3(0, 0.3, 0),
		white,
	)

	return b.Build()
}
