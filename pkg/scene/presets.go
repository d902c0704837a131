package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnknownPreset is returned by NewPreset for names not in Presets()
var ErrUnknownPreset = errors.New("scene: unknown preset")

// Preset is a scene built in code
type Preset struct {
	Name        string
	Description string
	New         func() (*Scene, error)
}

var presets = []Preset{
	{Name: "spheres", Description: "Spheres of different materials on a ground plane", New: NewSpheresScene},
	{Name: "cornell", Description: "Cornell box with two spheres and a block", New: NewCornellScene},
	{Name: "furnace", Description: "White diffuse sphere under uniform illumination", New: NewFurnaceScene},
	{Name: "materials", Description: "Sphere grid sweeping roughness across metal, glossy and glass", New: NewMaterialsScene},
}

// Presets lists the built-in scenes
func Presets() []Preset {
	result := make([]Preset, len(presets))
	copy(result, presets)
	return result
}

// NewPreset builds the built-in scene with the given name
func NewPreset(name string) (*Scene, error) {
	for _, preset := range presets {
		if preset.Name == name {
			return preset.New()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// NewFurnaceScene creates a white Lambertian sphere in front of the camera
// with unit global illumination. Every pixel converges to exactly 1.
func NewFurnaceScene() (*Scene, error) {
	return NewBuilder().
		Name("furnace", "White diffuse sphere under uniform illumination").
		CameraConfig(geometry.CameraConfig{
			Position: core.NewVec3(0, 0, -3),
			LookAt:   core.NewVec3(0, 0, 0),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      45.0,
		}).
		GlobalIllumination(core.NewVec3(1, 1, 1), 1.0).
		Sphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(1, 1, 1))).
		Build()
}
