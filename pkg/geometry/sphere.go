package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (core.Intersection, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Ray direction is unit length, so a == 1
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return core.Intersection{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one (ray starts inside)
	distance := -halfB - sqrtD
	if distance <= core.Epsilon {
		distance = -halfB + sqrtD
		if distance <= core.Epsilon {
			return core.Intersection{}, false
		}
	}

	position := ray.At(distance)
	normal := position.Subtract(s.Center).Normalize()

	return core.Intersection{
		Distance: distance,
		Position: position,
		Incident: ray.Direction,
		Normal:   normal,
		UV:       sphereUV(normal),
	}, true
}

// sphereUV maps a unit normal to spherical texture coordinates
func sphereUV(n core.Vec3) core.Vec2 {
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 - math.Asin(math.Max(-1, math.Min(1, n.Y)))/math.Pi
	return core.NewVec2(u, v)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.BoundingBox {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewBoundingBox(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
