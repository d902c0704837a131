package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewMetal creates a rough metal. Roughness 0 is a perfect mirror.
func NewMetal(albedo core.Vec3, roughness float64) *Reflective {
	return NewReflective(NewSolidColor(albedo), 1.0, roughness, true, false)
}

// NewTexturedMetal creates a rough metal whose color comes from a texture
func NewTexturedMetal(albedo ColorSource, roughness float64) *Reflective {
	return NewReflective(albedo, 1.0, roughness, true, false)
}

// reflectVector calculates the reflection of a vector v off a surface with normal n
func reflectVector(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
