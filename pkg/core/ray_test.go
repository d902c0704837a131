package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 10000; i++ {
		direction := NewVec3(
			(random.Float64()*2-1)*math.Pow(10, float64(random.Intn(8)-4)),
			(random.Float64()*2-1)*math.Pow(10, float64(random.Intn(8)-4)),
			(random.Float64()*2-1)*math.Pow(10, float64(random.Intn(8)-4)),
		)
		if direction.IsZero() {
			continue
		}

		ray := NewRay(NewVec3(1, 2, 3), direction)
		if math.Abs(ray.Direction.Length()-1.0) > 1e-5 {
			t.Fatalf("Expected unit direction for input %v, got length %f", direction, ray.Direction.Length())
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 0, 10))
	point := ray.At(4)
	expected := NewVec3(1, 0, 4)
	if point.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}

func TestNewRayTowards(t *testing.T) {
	ray := NewRayTowards(NewVec3(0, 0, 0), NewVec3(0, 5, 0))
	if ray.Direction != NewVec3(0, 1, 0) {
		t.Errorf("Expected direction (0,1,0), got %v", ray.Direction)
	}
}
