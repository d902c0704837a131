package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Builder assembles a scene one object at a time.
// Methods return the builder so calls can be chained.
type Builder struct {
	name               string
	description        string
	cameraConfig       geometry.CameraConfig
	globalIllumination core.Vec3
	objects            []*geometry.Object
	render             *RenderHints
}

// NewBuilder creates a builder with a camera at the origin looking down +Z
func NewBuilder() *Builder {
	return &Builder{
		cameraConfig: geometry.CameraConfig{
			Position:  core.NewVec3(0, 0, 0),
			Direction: core.NewVec3(0, 0, 1),
			Up:        core.NewVec3(0, 1, 0),
			FOV:       geometry.DefaultFOV,
		},
	}
}

// Name sets the scene name and description
func (b *Builder) Name(name, description string) *Builder {
	b.name = name
	b.description = description
	return b
}

// Camera places the camera at position looking along direction
func (b *Builder) Camera(position, direction core.Vec3) *Builder {
	b.cameraConfig.Position = position
	b.cameraConfig.Direction = direction
	return b
}

// CameraConfig replaces the whole camera configuration
func (b *Builder) CameraConfig(config geometry.CameraConfig) *Builder {
	b.cameraConfig = config
	return b
}

// GlobalIllumination sets the radiance of escaping rays to color * intensity
func (b *Builder) GlobalIllumination(color core.Vec3, intensity float64) *Builder {
	b.globalIllumination = color.Multiply(intensity)
	return b
}

// RenderHints sets the render defaults the scene suggests
func (b *Builder) RenderHints(hints RenderHints) *Builder {
	b.render = &hints
	return b
}

// Object adds a surface with the given material
func (b *Builder) Object(surface geometry.Surface, mat material.Material) *Builder {
	b.objects = append(b.objects, geometry.NewObject(surface, mat))
	return b
}

// Objects adds already assembled objects
func (b *Builder) Objects(objects ...*geometry.Object) *Builder {
	b.objects = append(b.objects, objects...)
	return b
}

// Sphere adds a sphere
func (b *Builder) Sphere(center core.Vec3, radius float64, mat material.Material) *Builder {
	return b.Object(geometry.NewSphere(center, radius), mat)
}

// Triangle adds a single triangle
func (b *Builder) Triangle(v0, v1, v2 core.Vec3, mat material.Material) *Builder {
	return b.Object(geometry.NewTriangle(v0, v1, v2), mat)
}

// Quad adds the quadrilateral v0 v1 v2 v3 as triangles (v0,v1,v2) and (v0,v2,v3)
func (b *Builder) Quad(v0, v1, v2, v3 core.Vec3, mat material.Material) *Builder {
	for _, triangle := range geometry.QuadFromVertices(v0, v1, v2, v3) {
		b.Object(triangle, mat)
	}
	return b
}

// Box adds an oriented box made of 12 triangles
func (b *Builder) Box(center, size, rotation core.Vec3, mat material.Material) *Builder {
	for _, triangle := range geometry.NewBox(center, size, rotation) {
		b.Object(triangle, mat)
	}
	return b
}

// Triangles adds each triangle as its own object sharing one material
func (b *Builder) Triangles(triangles []*geometry.Triangle, mat material.Material) *Builder {
	for _, triangle := range triangles {
		b.Object(triangle, mat)
	}
	return b
}

// Build creates the scene and its BVH.
// It fails with geometry.ErrNoObjects when nothing was added.
func (b *Builder) Build() (*Scene, error) {
	s, err := New(b.cameraConfig, b.globalIllumination, b.objects)
	if err != nil {
		return nil, err
	}
	s.Name = b.name
	s.Description = b.description
	s.Render = b.render
	return s, nil
}
