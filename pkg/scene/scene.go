package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering.
// A built scene is never modified, so it can be shared by render workers.
type Scene struct {
	Name               string
	Description        string
	Camera             *geometry.Camera
	CameraConfig       geometry.CameraConfig
	GlobalIllumination core.Vec3 // Radiance returned for escaping rays
	Objects            []*geometry.Object
	BVH                *geometry.BVH // Acceleration structure for ray-object intersection
	Render             *RenderHints  // Optional render defaults carried by scene files
}

// RenderHints are render settings a scene file may suggest.
// Zero fields mean "no preference".
type RenderHints struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxReflections  int
}

// New creates a scene and builds its BVH
func New(cameraConfig geometry.CameraConfig, globalIllumination core.Vec3, objects []*geometry.Object) (*Scene, error) {
	bvh, err := geometry.NewBVH(objects)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	return &Scene{
		Camera:             geometry.NewCamera(cameraConfig),
		CameraConfig:       cameraConfig,
		GlobalIllumination: globalIllumination,
		Objects:            objects,
		BVH:                bvh,
	}, nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// Bounds returns the box enclosing every object
func (s *Scene) Bounds() core.BoundingBox {
	if s.BVH == nil {
		return core.EmptyBox()
	}
	return s.BVH.BoundingBox()
}
