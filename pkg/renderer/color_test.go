package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLinearToSRGB(t *testing.T) {
	tests := []struct {
		linear   float64
		expected float64
	}{
		{0, 0},
		{1, 1},
		{0.0031308, 0.0404500},
		{0.001, 0.01292},
		{0.5, 0.7353570},
		{0.2140, 0.5},
	}

	for _, tt := range tests {
		got := linearToSRGB(tt.linear)
		if math.Abs(got-tt.expected) > 1e-4 {
			t.Errorf("linearToSRGB(%f): expected %f, got %f", tt.linear, tt.expected, got)
		}
	}
}

func TestLinearToSRGB_Monotonic(t *testing.T) {
	previous := -1.0
	for i := 0; i <= 1000; i++ {
		value := linearToSRGB(float64(i) / 1000)
		if value < previous {
			t.Fatalf("Expected monotonic curve, value at %d dropped from %f to %f", i, previous, value)
		}
		previous = value
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		linear   core.Vec3
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"overexposed clamps", core.NewVec3(7, 1.5, 100), color.RGBA{255, 255, 255, 255}},
		{"negative clamps", core.NewVec3(-1, 0, -0.5), color.RGBA{0, 0, 0, 255}},
		{"mid grey", core.NewVec3(0.5, 0.5, 0.5), color.RGBA{188, 188, 188, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vec3ToColor(tt.linear); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
