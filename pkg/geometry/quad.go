package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// quadUVs are the texture coordinates of the four quad corners in order
var quadUVs = [4]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// NewQuad creates a parallelogram from a corner point and two edge vectors.
// Quads are not a primitive; they are split into two triangles.
func NewQuad(corner, u, v core.Vec3) [2]*Triangle {
	return QuadFromVertices(corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v))
}

// QuadFromVertices splits the quadrilateral v0-v1-v2-v3 along the v0-v2 diagonal
func QuadFromVertices(v0, v1, v2, v3 core.Vec3) [2]*Triangle {
	return [2]*Triangle{
		NewTriangleWithUVs(v0, v1, v2, [3]core.Vec2{quadUVs[0], quadUVs[1], quadUVs[2]}),
		NewTriangleWithUVs(v0, v2, v3, [3]core.Vec2{quadUVs[0], quadUVs[2], quadUVs[3]}),
	}
}
