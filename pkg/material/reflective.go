package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Reflective is the GGX microfacet material. Depending on its flags it
// behaves as a glossy dielectric, a rough metal or rough glass.
type Reflective struct {
	Color       ColorSource // Base color, possibly textured
	IOR         float64     // Index of refraction of the inside medium
	Roughness   float64     // GGX alpha in [0, 1]
	Metallic    bool        // Metals have no diffuse or transmitted part
	Transparent bool        // Transmit light that is not reflected
}

// NewReflective creates a GGX material from all its parameters
func NewReflective(color ColorSource, ior, roughness float64, metallic, transparent bool) *Reflective {
	return &Reflective{
		Color:       color,
		IOR:         ior,
		Roughness:   clamp01(roughness),
		Metallic:    metallic,
		Transparent: transparent,
	}
}

// Sample picks a single scattering event, weighted by the Fresnel term:
// specular reflection, refraction, absorption or diffuse reflection.
// Degenerate configurations contribute no radiance.
func (r *Reflective) Sample(tracer Tracer, hit core.Intersection) core.Vec3 {
	sampler := tracer.Sampler()
	color := r.Color.Evaluate(hit.UV, hit.Position)

	i := hit.Incident
	n := hit.FacingNormal()
	m := sampleGGXNormal(n, r.Roughness, sampler.Get2D())

	var f0 float64
	if r.Metallic {
		f0 = color.Average()
	} else {
		f0 = dielectricF0(r.IOR)
	}

	iDotM := i.Dot(m)
	if sampler.Get1D() < fresnelSchlick(f0, iDotM) {
		o := reflectVector(i, m)
		if o.Dot(m) <= 0 || o.Dot(n) <= 0 {
			return core.Vec3{}
		}
		weight := microfacetWeight(i, o, m, n, r.Roughness)
		return tracer.Trace(core.NewRay(hit.Position, o)).MultiplyVec(color).Multiply(weight)
	}

	if r.Transparent {
		// Entering: air to material. Leaving: material to air.
		eta := r.IOR
		if hit.FrontFace() {
			eta = 1.0 / r.IOR
		}
		if iDotM >= 0 {
			return core.Vec3{}
		}
		t, ok := refractVector(i, m, eta)
		if !ok || t.Dot(n) >= 0 {
			return core.Vec3{}
		}
		weight := microfacetWeight(i, t, m, n, r.Roughness)
		return tracer.Trace(core.NewRay(hit.Position, t)).MultiplyVec(color).Multiply(weight)
	}

	if r.Metallic {
		return core.Vec3{}
	}

	return sampleDiffuse(tracer, hit, color)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
