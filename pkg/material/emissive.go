package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material. It terminates the path.
type Emissive struct {
	Color     ColorSource // Emitted color, possibly textured
	Intensity float64     // Scale applied to the color
}

// NewEmissive creates a new emissive material
func NewEmissive(color core.Vec3, intensity float64) *Emissive {
	return &Emissive{Color: NewSolidColor(color), Intensity: intensity}
}

// NewTexturedEmissive creates an emissive material whose color comes from a texture
func NewTexturedEmissive(texture ColorSource, intensity float64) *Emissive {
	return &Emissive{Color: texture, Intensity: intensity}
}

// Sample returns the emitted radiance without tracing further
func (e *Emissive) Sample(tracer Tracer, hit core.Intersection) core.Vec3 {
	return e.Color.Evaluate(hit.UV, hit.Position).Multiply(e.Intensity)
}
