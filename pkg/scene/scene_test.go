package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestNew_NoObjects(t *testing.T) {
	_, err := New(geometry.CameraConfig{}, core.Vec3{}, nil)
	if !errors.Is(err, geometry.ErrNoObjects) {
		t.Errorf("Expected ErrNoObjects, got %v", err)
	}

	_, err = NewBuilder().Build()
	if !errors.Is(err, geometry.ErrNoObjects) {
		t.Errorf("Expected ErrNoObjects from empty builder, got %v", err)
	}
}

func TestBuilder(t *testing.T) {
	white := material.NewLambertian(core.NewVec3(1, 1, 1))

	s, err := NewBuilder().
		Name("test", "builder test").
		Camera(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)).
		GlobalIllumination(core.NewVec3(1, 0.5, 0.25), 2).
		Sphere(core.NewVec3(0, 0, 0), 1, white).
		Triangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), white).
		Quad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0), white).
		Box(core.NewVec3(3, 0, 0), core.NewVec3(1, 1, 1), core.Vec3{}, white).
		Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if s.Name != "test" || s.Description != "builder test" {
		t.Errorf("Expected name and description to carry over, got %q %q", s.Name, s.Description)
	}
	if s.GlobalIllumination != core.NewVec3(2, 1, 0.5) {
		t.Errorf("Expected global illumination (2,1,0.5), got %v", s.GlobalIllumination)
	}
	// 1 sphere + 1 triangle + 2 quad halves + 12 box triangles
	if got := s.GetPrimitiveCount(); got != 16 {
		t.Errorf("Expected 16 objects, got %d", got)
	}
	if s.BVH == nil || s.Camera == nil {
		t.Fatal("Expected BVH and camera to be built")
	}
	if s.Render != nil {
		t.Errorf("Expected no render hints, got %+v", s.Render)
	}

	bounds := s.Bounds()
	if bounds.Min != core.NewVec3(-1, -1, -1) || bounds.Max != core.NewVec3(4, 1, 1) {
		t.Errorf("Expected bounds (-1,-1,-1)-(4,1,1), got %v", bounds)
	}

	hit, ok := s.BVH.ClosestHit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected the camera axis to hit the sphere")
	}
	if math.Abs(hit.Distance-4) > 1e-9 {
		t.Errorf("Expected hit at distance 4, got %f", hit.Distance)
	}
}

func TestPresets(t *testing.T) {
	expected := []string{"spheres", "cornell", "furnace", "materials"}

	list := Presets()
	if len(list) != len(expected) {
		t.Fatalf("Expected %d presets, got %d", len(expected), len(list))
	}

	for i, name := range expected {
		if list[i].Name != name {
			t.Errorf("Expected preset %d to be %q, got %q", i, name, list[i].Name)
		}

		t.Run(name, func(t *testing.T) {
			s, err := NewPreset(name)
			if err != nil {
				t.Fatalf("NewPreset(%q) error: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected preset to contain objects")
			}
			stats := s.BVH.Stats()
			if stats.Leaves != s.GetPrimitiveCount() {
				t.Errorf("Expected %d leaves, got %d", s.GetPrimitiveCount(), stats.Leaves)
			}
		})
	}
}

func TestNewPreset_Unknown(t *testing.T) {
	_, err := NewPreset("does-not-exist")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("Expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresets_ReturnsCopy(t *testing.T) {
	list := Presets()
	list[0].Name = "changed"
	if Presets()[0].Name == "changed" {
		t.Error("Expected Presets() to return a copy")
	}
}

func TestCornellScene_CameraLooksIntoBox(t *testing.T) {
	s, err := NewCornellScene()
	if err != nil {
		t.Fatalf("NewCornellScene() error: %v", err)
	}

	// The center ray passes through the open front and hits something inside
	hit, ok := s.BVH.ClosestHit(s.Camera.GetRay(0.5, 0.5))
	if !ok {
		t.Fatal("Expected center ray to hit the box")
	}
	if hit.Position.Z < 0 || hit.Position.Z > 555 {
		t.Errorf("Expected hit inside the box, got %v", hit.Position)
	}
}

func TestNewGroundQuad(t *testing.T) {
	ground := NewGroundQuad(core.NewVec3(2, 1, -3), 10)

	tests := []struct {
		name   string
		origin core.Vec3
		hit    bool
	}{
		{"center", core.NewVec3(2, 5, -3), true},
		{"near corner", core.NewVec3(-2.9, 5, 1.9), true},
		{"outside", core.NewVec3(8, 5, -3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, -1, 0))
			var hit core.Intersection
			found := false
			for _, tri := range ground[:] {
				if h, ok := tri.Intersect(ray); ok {
					hit, found = h, true
				}
			}
			if found != tt.hit {
				t.Fatalf("Expected hit=%v, got %v", tt.hit, found)
			}
			if !found {
				return
			}
			if math.Abs(hit.Position.Y-1) > 1e-9 {
				t.Errorf("Expected hit at height 1, got %v", hit.Position)
			}
			if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
				t.Errorf("Expected upward normal, got %v", hit.Normal)
			}
		})
	}
}
