package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator estimates the radiance arriving along a ray. Implementations
// carry per-path state and must not be shared between goroutines.
type Integrator interface {
	material.Tracer

	// Reset prepares the integrator for a new path
	Reset()

	// Reflections returns the number of trace calls that reached the scene
	// since the last Reset
	Reflections() int

	// TraversalStats returns the BVH tests made over the integrator's lifetime
	TraversalStats() geometry.TraversalStats
}

// New creates the default integrator for a scene
func New(s *scene.Scene, sampler core.Sampler, maxReflections int) Integrator {
	return NewPathTracer(s, sampler, maxReflections)
}
