package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_MinMaxAxis(t *testing.T) {
	a := NewVec3(1, 5, -2)
	b := NewVec3(3, -1, 0)

	if got := a.Min(b); got != NewVec3(1, -1, -2) {
		t.Errorf("Expected min (1,-1,-2), got %v", got)
	}
	if got := a.Max(b); got != NewVec3(3, 5, 0) {
		t.Errorf("Expected max (3,5,0), got %v", got)
	}
	for axis, expected := range []float64{1, 5, -2} {
		if got := a.Axis(axis); got != expected {
			t.Errorf("Axis %d: expected %f, got %f", axis, expected, got)
		}
	}
}

func TestVec3_ClampAndAverage(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", v)
	}
	if avg := NewVec3(0.3, 0.6, 0.9).Average(); math.Abs(avg-0.6) > 1e-12 {
		t.Errorf("Expected average 0.6, got %f", avg)
	}
}
