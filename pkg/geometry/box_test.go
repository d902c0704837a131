package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewAxisAlignedBox(t *testing.T) {
	triangles := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3))
	if len(triangles) != 12 {
		t.Fatalf("Expected 12 triangles, got %d", len(triangles))
	}

	bounds := core.EmptyBox()
	for _, triangle := range triangles {
		bounds = bounds.Union(triangle.BoundingBox())
	}
	expected := core.NewAxisAligned(-1, 1, -2, 2, -3, 3)
	if bounds != expected {
		t.Errorf("Expected bounds %v, got %v", expected, bounds)
	}
}

func TestNewBox_GeometricNormalsPointOutward(t *testing.T) {
	center := core.NewVec3(1, 1, 1)
	triangles := NewBox(center, core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0, math.Pi/4, 0))

	for i, triangle := range triangles {
		v0, v1, v2 := triangle.Vertices()
		normal := triangle.Edge1.Cross(triangle.Edge2)
		faceCenter := v0.Add(v1).Add(v2).Multiply(1.0 / 3)
		if normal.Dot(faceCenter.Subtract(center)) <= 0 {
			t.Errorf("Triangle %d: expected outward winding, normal %v", i, normal)
		}
	}
}

func TestNewBox_RayHitsNearFace(t *testing.T) {
	triangles := NewAxisAlignedBox(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0.3, -0.2, -5), core.NewVec3(0, 0, 1))

	closest := math.Inf(1)
	for _, triangle := range triangles {
		if hit, ok := triangle.Intersect(ray); ok && hit.Distance < closest {
			closest = hit.Distance
		}
	}
	if math.Abs(closest-4) > 1e-9 {
		t.Errorf("Expected closest hit at 4, got %f", closest)
	}
}
