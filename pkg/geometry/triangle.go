package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// determinantEpsilon rejects rays (nearly) parallel to the triangle plane
const determinantEpsilon = 1e-12

// Triangle represents a single triangle stored as one vertex plus two edges.
// Per-vertex normals are optional; without them the geometric normal is used.
type Triangle struct {
	V0           core.Vec3    // First vertex
	Edge1, Edge2 core.Vec3    // V1 - V0 and V2 - V0
	Normals      [3]core.Vec3 // Per-vertex normals, valid when smooth is set
	UVs          [3]core.Vec2 // Per-vertex texture coordinates
	smooth       bool
	bbox         core.BoundingBox
}

// defaultUVs is used when a triangle has no texture coordinates
var defaultUVs = [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// NewTriangle creates a flat triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return NewTriangleWithUVs(v0, v1, v2, defaultUVs)
}

// NewTriangleWithUVs creates a flat triangle with texture coordinates
func NewTriangleWithUVs(v0, v1, v2 core.Vec3, uvs [3]core.Vec2) *Triangle {
	return &Triangle{
		V0:    v0,
		Edge1: v1.Subtract(v0),
		Edge2: v2.Subtract(v0),
		UVs:   uvs,
		bbox:  core.NewBoxFromPoints(v0, v1, v2),
	}
}

// NewSmoothTriangle creates a triangle with per-vertex normals and texture coordinates
func NewSmoothTriangle(vertices [3]core.Vec3, normals [3]core.Vec3, uvs [3]core.Vec2) *Triangle {
	t := NewTriangleWithUVs(vertices[0], vertices[1], vertices[2], uvs)
	for i, n := range normals {
		t.Normals[i] = n.Normalize()
	}
	t.smooth = true
	return t
}

// Vertices returns the three corners of the triangle
func (t *Triangle) Vertices() (core.Vec3, core.Vec3, core.Vec3) {
	return t.V0, t.V0.Add(t.Edge1), t.V0.Add(t.Edge2)
}

// Smooth reports whether the triangle carries per-vertex normals
func (t *Triangle) Smooth() bool {
	return t.smooth
}

// Barycentric runs the Möller-Trumbore test and returns the hit distance
// together with the barycentric weights (u, v). The weight of V0 is 1-u-v.
func (t *Triangle) Barycentric(ray core.Ray) (distance, u, v, det float64, ok bool) {
	h := ray.Direction.Cross(t.Edge2)
	det = t.Edge1.Dot(h)

	// Ray lies in (or parallel to) the triangle plane
	if math.Abs(det) < determinantEpsilon {
		return 0, 0, 0, det, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, det, false
	}

	q := s.Cross(t.Edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, det, false
	}

	distance = f * t.Edge2.Dot(q)
	if distance <= core.Epsilon {
		return 0, 0, 0, det, false
	}

	return distance, u, v, det, true
}

// Intersect tests if a ray intersects with the triangle
func (t *Triangle) Intersect(ray core.Ray) (core.Intersection, bool) {
	distance, u, v, det, ok := t.Barycentric(ray)
	if !ok {
		return core.Intersection{}, false
	}
	w := 1.0 - u - v

	var normal core.Vec3
	if t.smooth {
		normal = t.Normals[0].Multiply(w).
			Add(t.Normals[1].Multiply(u)).
			Add(t.Normals[2].Multiply(v)).
			Normalize()
	} else {
		// det = -D·(e1×e2), so a positive determinant means the
		// geometric normal already faces the ray origin
		normal = t.Edge1.Cross(t.Edge2).Normalize()
		if det < 0 {
			normal = normal.Negate()
		}
	}

	uv := t.UVs[0].Multiply(w).
		Add(t.UVs[1].Multiply(u)).
		Add(t.UVs[2].Multiply(v))

	return core.Intersection{
		Distance: distance,
		Position: ray.At(distance),
		Incident: ray.Direction,
		Normal:   normal,
		UV:       uv,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.BoundingBox {
	return t.bbox
}
