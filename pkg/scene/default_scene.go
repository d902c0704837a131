package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGroundQuad creates a large horizontal quad centered at the given point
// with its geometric normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64) [2]*geometry.Triangle {
	// Corner at the bottom-left of the quad; u along Z, v along X so u × v = +Y
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v)
}

// NewSpheresScene creates the default scene: a few spheres of different
// materials on a large ground quad under a sky-colored global illumination
func NewSpheresScene() (*Scene, error) {
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glossyRed := material.NewGlossy(core.NewVec3(0.65, 0.25, 0.2), material.DefaultIOR, 0.1)
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewGlass(core.NewVec3(1, 1, 1), material.DefaultIOR, 0.0)
	sun := material.NewEmissive(core.NewVec3(1.0, 0.93, 0.87), 15.0)

	b := NewBuilder().
		Name("spheres", "Spheres of different materials on a ground plane").
		CameraConfig(geometry.CameraConfig{
			Position: core.NewVec3(0, 0.75, 2),
			LookAt:   core.NewVec3(0, 0.5, -1),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      40.0,
		}).
		GlobalIllumination(core.NewVec3(0.5, 0.7, 1.0), 0.6).
		RenderHints(RenderHints{Width: 400, Height: 225})

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 1000.0)
	b.Triangles(ground[:], lambertianGreen)

	b.Sphere(core.NewVec3(0, 0.5, -1), 0.5, glossyRed)
	b.Sphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	b.Sphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	b.Sphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	// Glass shell with a blue sphere inside
	b.Sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)
	b.Sphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	b.Sphere(core.NewVec3(30, 30.5, 15), 10, sun)

	return b.Build()
}
