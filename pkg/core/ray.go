package core

// Epsilon is the minimum hit distance accepted by intersection tests.
// Anything closer is treated as the surface the ray just left.
const Epsilon = 1e-5

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray. The direction is always normalized.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewRayTowards creates a ray starting at src pointing at dest
func NewRayTowards(src, dest Vec3) Ray {
	return NewRay(src, dest.Subtract(src))
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
