package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// PathTracer implements unidirectional path tracing by plain recursion:
// materials call back into Trace for every bounce. Recursion depth is
// bounded by maxReflections.
type PathTracer struct {
	scene          *scene.Scene
	sampler        core.Sampler
	maxReflections int
	reflections    int
	traversal      geometry.TraversalStats
}

// NewPathTracer creates a path tracer with a fresh reflection counter
func NewPathTracer(s *scene.Scene, sampler core.Sampler, maxReflections int) *PathTracer {
	return &PathTracer{
		scene:          s,
		sampler:        sampler,
		maxReflections: maxReflections,
	}
}

// Trace returns the radiance arriving along ray. Rays that escape the scene,
// and rays past the reflection limit, receive the global illumination.
func (pt *PathTracer) Trace(ray core.Ray) core.Vec3 {
	if pt.reflections > pt.maxReflections {
		return pt.scene.GlobalIllumination
	}
	pt.reflections++

	hit, isHit := pt.scene.BVH.ClosestHitCounted(ray, &pt.traversal)
	if !isHit {
		return pt.scene.GlobalIllumination
	}

	return hit.Object.Material.Sample(pt, hit.Intersection)
}

// Sampler returns the random stream of the current path
func (pt *PathTracer) Sampler() core.Sampler {
	return pt.sampler
}

// Reset clears the reflection counter
func (pt *PathTracer) Reset() {
	pt.reflections = 0
}

// TraversalStats returns the intersection tests made since the tracer was
// created. Reset does not clear them.
func (pt *PathTracer) TraversalStats() geometry.TraversalStats {
	return pt.traversal
}

// Reflections returns the number of trace calls past the depth check
func (pt *PathTracer) Reflections() int {
	return pt.reflections
}
