package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultIOR is the index of refraction used when none is given
const DefaultIOR = 1.5

// NewGlossy creates an opaque dielectric: a Fresnel-weighted specular
// layer over a diffuse base
func NewGlossy(albedo core.Vec3, ior, roughness float64) *Reflective {
	return NewReflective(NewSolidColor(albedo), ior, roughness, false, false)
}

// NewTexturedGlossy creates a glossy material whose color comes from a texture
func NewTexturedGlossy(albedo ColorSource, ior, roughness float64) *Reflective {
	return NewReflective(albedo, ior, roughness, false, false)
}

// NewGlass creates a transparent dielectric
func NewGlass(tint core.Vec3, ior, roughness float64) *Reflective {
	return NewReflective(NewSolidColor(tint), ior, roughness, false, true)
}

// dielectricF0 returns the reflectance at normal incidence
func dielectricF0(ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	return r0 * r0
}

// refractVector refracts the unit direction i through the unit normal m
// facing i, with eta = eta_incident / eta_transmitted. It reports false on
// total internal reflection.
func refractVector(i, m core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := -i.Dot(m)
	sin2T := eta * eta * (1.0 - cosI*cosI)
	if sin2T > 1.0 {
		return core.Vec3{}, false
	}
	cosT := math.Sqrt(1.0 - sin2T)
	return i.Multiply(eta).Add(m.Multiply(eta*cosI - cosT)), true
}
