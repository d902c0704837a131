package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Tracer is the recursion handle a material uses to follow a new ray.
// It is implemented by the path tracer and owned by a single worker.
type Tracer interface {
	// Trace returns the radiance arriving along ray
	Trace(ray core.Ray) core.Vec3

	// Sampler returns the random stream of the current path
	Sampler() core.Sampler
}

// Material computes the outgoing radiance at a surface hit.
// Materials are immutable and shared by every object that uses them.
type Material interface {
	Sample(tracer Tracer, hit core.Intersection) core.Vec3
}
