package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Sample traces a cosine-weighted bounce. The cosine term and the sampling
// density cancel, leaving albedo times incoming radiance.
func (l *Lambertian) Sample(tracer Tracer, hit core.Intersection) core.Vec3 {
	return sampleDiffuse(tracer, hit, l.Albedo.Evaluate(hit.UV, hit.Position))
}

// sampleDiffuse traces one cosine-weighted bounce on the ray's side of the surface
func sampleDiffuse(tracer Tracer, hit core.Intersection, albedo core.Vec3) core.Vec3 {
	direction := core.SampleCosineHemisphere(hit.FacingNormal(), tracer.Sampler().Get2D())
	incoming := tracer.Trace(core.NewRay(hit.Position, direction))
	return albedo.MultiplyVec(incoming)
}
