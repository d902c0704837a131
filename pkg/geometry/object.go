package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Object pairs a surface with the material used to shade it.
// Objects are the unit the BVH indexes.
type Object struct {
	Surface  Surface
	Material material.Material
}

// NewObject creates a new object
func NewObject(surface Surface, mat material.Material) *Object {
	return &Object{Surface: surface, Material: mat}
}

// Hit is a ray intersection together with the object that produced it
type Hit struct {
	core.Intersection
	Object *Object
}

// Intersect tests the object's surface and tags the result with the object
func (o *Object) Intersect(ray core.Ray) (*Hit, bool) {
	intersection, ok := o.Surface.Intersect(ray)
	if !ok {
		return nil, false
	}
	return &Hit{Intersection: intersection, Object: o}, true
}

// BoundingBox returns the bounding box of the object's surface
func (o *Object) BoundingBox() core.BoundingBox {
	return o.Surface.BoundingBox()
}
