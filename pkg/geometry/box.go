package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewBox creates the 12 triangles of a box with the given center and
// half-extents, rotated (radians around X, Y, Z in that order) about its center.
// Size represents half-extents, so a size of (1,1,1) creates a 2x2x2 box.
func NewBox(center, size, rotation core.Vec3) []*Triangle {
	// The 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = rotateVertex(corners[i].MultiplyVec(size), rotation).Add(center)
	}

	// Faces wound counter-clockwise when seen from outside
	faces := [6][4]int{
		{4, 5, 6, 7}, // front (Z+)
		{1, 0, 3, 2}, // back (Z-)
		{5, 1, 2, 6}, // right (X+)
		{0, 4, 7, 3}, // left (X-)
		{7, 6, 2, 3}, // top (Y+)
		{0, 1, 5, 4}, // bottom (Y-)
	}

	triangles := make([]*Triangle, 0, 12)
	for _, f := range faces {
		quad := QuadFromVertices(corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]])
		triangles = append(triangles, quad[0], quad[1])
	}
	return triangles
}

// NewAxisAlignedBox creates a box without rotation
func NewAxisAlignedBox(center, size core.Vec3) []*Triangle {
	return NewBox(center, size, core.Vec3{})
}
