package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Surface is implemented by every primitive the BVH can index.
// The set of implementations is closed: *Sphere and *Triangle.
type Surface interface {
	BoundingBox() core.BoundingBox
	Intersect(ray core.Ray) (core.Intersection, bool)
}
