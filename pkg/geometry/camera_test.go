package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCamera_CenterRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position: core.NewVec3(1, 2, 3),
		LookAt:   core.NewVec3(1, 2, 10),
		FOV:      45,
	})

	ray := camera.GetRay(0.5, 0.5)
	if ray.Origin != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected origin (1,2,3), got %v", ray.Origin)
	}
	if !vecClose(ray.Direction, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected center ray along +Z, got %v", ray.Direction)
	}
}

func TestCamera_Corners(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		Direction:   core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         90,
		AspectRatio: 2,
	})

	// Looking down -Z with +Y up, right is +X
	topLeft := camera.GetRay(0, 0).Direction
	expected := core.NewVec3(-2, 1, -1).Normalize()
	if !vecClose(topLeft, expected, 1e-9) {
		t.Errorf("Expected top-left ray %v, got %v", expected, topLeft)
	}

	bottomRight := camera.GetRay(1, 1).Direction
	expected = core.NewVec3(2, -1, -1).Normalize()
	if !vecClose(bottomRight, expected, 1e-9) {
		t.Errorf("Expected bottom-right ray %v, got %v", expected, bottomRight)
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	camera := NewCamera(CameraConfig{Direction: core.NewVec3(0, 0, 1), FOV: 60})

	top := camera.GetRay(0.5, 0).Direction
	bottom := camera.GetRay(0.5, 1).Direction
	angle := math.Acos(top.Dot(bottom)) * 180 / math.Pi
	if math.Abs(angle-60) > 1e-9 {
		t.Errorf("Expected vertical field of view 60, got %f", angle)
	}
}

func TestCamera_Defaults(t *testing.T) {
	camera := NewCamera(CameraConfig{Direction: core.NewVec3(0, 1, 0)})
	config := camera.Config()

	if config.FOV != DefaultFOV {
		t.Errorf("Expected default FOV %f, got %f", DefaultFOV, config.FOV)
	}
	if config.AspectRatio != 1 {
		t.Errorf("Expected default aspect 1, got %f", config.AspectRatio)
	}

	// Up parallel to the view direction still yields valid rays
	ray := camera.GetRay(0.25, 0.75)
	if math.IsNaN(ray.Direction.X) || math.Abs(ray.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected a valid unit direction, got %v", ray.Direction)
	}

	wide := camera.WithAspectRatio(3)
	if wide.Config().AspectRatio != 3 || wide.Config().Direction != config.Direction {
		t.Errorf("Expected aspect 3 with the same pose, got %+v", wide.Config())
	}
}

func TestCamera_Deterministic(t *testing.T) {
	camera := NewCamera(CameraConfig{Position: core.NewVec3(0, 1, -3), LookAt: core.NewVec3(0, 0, 0)})
	if camera.GetRay(0.3, 0.6) != camera.GetRay(0.3, 0.6) {
		t.Error("Expected identical rays for identical inputs")
	}
}
