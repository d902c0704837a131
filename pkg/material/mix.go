package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	// Clamp ratio to valid range
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// Sample delegates to one of the two materials
func (m *Mix) Sample(tracer Tracer, hit core.Intersection) core.Vec3 {
	if tracer.Sampler().Get1D() < m.Ratio {
		return m.Material2.Sample(tracer, hit)
	}
	return m.Material1.Sample(tracer, hit)
}
