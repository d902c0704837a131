package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TriangleMesh is indexed triangle data as produced by the mesh loaders.
// Normals and UVs are optional; when present they are indexed like Vertices.
type TriangleMesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3
	UVs      []core.Vec2
	Faces    []int // Each group of 3 indices forms a triangle
}

// MeshTransform is applied to mesh vertices before triangles are created.
// Vertices are scaled, then rotated (radians around X, Y, Z), then offset.
type MeshTransform struct {
	Scale    float64
	Rotation core.Vec3
	Offset   core.Vec3
}

// Point transforms a position. A zero scale is treated as 1.
func (t *MeshTransform) Point(p core.Vec3) core.Vec3 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return rotateVertex(p.Multiply(scale), t.Rotation).Add(t.Offset)
}

// Direction transforms a normal. Uniform scaling does not change directions.
func (t *MeshTransform) Direction(d core.Vec3) core.Vec3 {
	return rotateVertex(d, t.Rotation)
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// Triangles expands the mesh into independent triangles
func (m *TriangleMesh) Triangles(transform *MeshTransform) ([]*Triangle, error) {
	if len(m.Faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(m.Faces))
	}
	hasNormals := len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0
	hasUVs := len(m.UVs) == len(m.Vertices) && len(m.UVs) > 0

	vertices := m.Vertices
	normals := m.Normals
	if transform != nil {
		vertices = make([]core.Vec3, len(m.Vertices))
		for i, vertex := range m.Vertices {
			vertices[i] = transform.Point(vertex)
		}
		if hasNormals {
			normals = make([]core.Vec3, len(m.Normals))
			for i, normal := range m.Normals {
				normals[i] = transform.Direction(normal)
			}
		}
	}

	triangles := make([]*Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Faces); i += 3 {
		idx := [3]int{m.Faces[i], m.Faces[i+1], m.Faces[i+2]}
		for _, index := range idx {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i/3, index, len(vertices))
			}
		}

		uvs := defaultUVs
		if hasUVs {
			uvs = [3]core.Vec2{m.UVs[idx[0]], m.UVs[idx[1]], m.UVs[idx[2]]}
		}

		if hasNormals {
			triangles = append(triangles, NewSmoothTriangle(
				[3]core.Vec3{vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]},
				[3]core.Vec3{normals[idx[0]], normals[idx[1]], normals[idx[2]]},
				uvs,
			))
		} else {
			triangles = append(triangles, NewTriangleWithUVs(vertices[idx[0]], vertices[idx[1]], vertices[idx[2]], uvs))
		}
	}

	return triangles, nil
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	// Rotation around X axis
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	// Rotation around Y axis
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	// Rotation around Z axis
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
