package core

import "math"

// BoundingBox represents an axis-aligned bounding box.
// The empty box has Min = +Inf and Max = -Inf and is the identity for Union.
type BoundingBox struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBoundingBox creates a box from min and max corners
func NewBoundingBox(min, max Vec3) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// NewAxisAligned creates a box from per-axis extents
func NewAxisAligned(xmin, xmax, ymin, ymax, zmin, zmax float64) BoundingBox {
	return BoundingBox{
		Min: NewVec3(xmin, ymin, zmin),
		Max: NewVec3(xmax, ymax, zmax),
	}
}

// EmptyBox returns the box that contains nothing
func EmptyBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewBoxFromPoints creates a box that bounds all given points
func NewBoxFromPoints(points ...Vec3) BoundingBox {
	box := EmptyBox()
	for _, point := range points {
		box = box.AddPoint(point)
	}
	return box
}

// IsEmpty reports whether the box contains no points
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Union returns a box that bounds both boxes
func Union(a, b BoundingBox) BoundingBox {
	return BoundingBox{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Union returns a box that bounds this box and another
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return Union(b, other)
}

// AddPoint returns the box grown to include p
func (b BoundingBox) AddPoint(p Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Size returns the extent of the box along each axis
func (b BoundingBox) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Subtract(b.Min)
}

// Volume returns the volume of the box (0 when empty)
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// SurfaceArea returns the surface area of the box (0 when empty)
func (b BoundingBox) SurfaceArea() float64 {
	size := b.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Centroid returns the center point of the box
func (b BoundingBox) Centroid() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b BoundingBox) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Contains reports whether other lies entirely inside this box
func (b BoundingBox) Contains(other BoundingBox) bool {
	if other.IsEmpty() {
		return true
	}
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

// ContainsPoint reports whether p lies inside or on the box
func (b BoundingBox) ContainsPoint(p Vec3) bool {
	return b.Contains(BoundingBox{Min: p, Max: p})
}

// Intersects tests if a ray hits the box using the slab method
func (b BoundingBox) Intersects(ray Ray) bool {
	_, hit := b.Entry(ray)
	return hit
}

// Entry returns the parametric distance at which the ray enters the box.
// The distance is negative when the ray origin is inside the box.
func (b BoundingBox) Entry(ray Ray) (float64, bool) {
	if b.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := b.Min.Axis(axis)
		max := b.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Ray is parallel to this slab
		if direction == 0 {
			if origin < min || origin > max {
				return 0, false
			}
			continue
		}

		t1 := (min - origin) / direction
		t2 := (max - origin) / direction

		tMin = math.Max(tMin, math.Min(t1, t2))
		tMax = math.Min(tMax, math.Max(t1, t2))
	}

	if tMin <= tMax && tMax > 0 {
		return tMin, true
	}
	return 0, false
}
