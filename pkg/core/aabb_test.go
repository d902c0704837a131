package core

import (
	"math"
	"math/rand"
	"testing"
)

func randomBox(random *rand.Rand) BoundingBox {
	a := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	b := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	return NewBoundingBox(a.Min(b), a.Max(b))
}

func TestBoundingBox_UnionProperties(t *testing.T) {
	random := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		a := randomBox(random)
		b := randomBox(random)

		u := Union(a, b)
		if !u.Contains(a) || !u.Contains(b) {
			t.Fatalf("Expected union %v to contain %v and %v", u, a, b)
		}
		if Union(b, a) != u {
			t.Fatalf("Expected union to be commutative: %v vs %v", u, Union(b, a))
		}
		if Union(EmptyBox(), a) != a {
			t.Fatalf("Expected union with empty box to be identity, got %v for %v", Union(EmptyBox(), a), a)
		}
		if a.Union(EmptyBox()) != a {
			t.Fatalf("Expected right identity, got %v for %v", a.Union(EmptyBox()), a)
		}
	}
}

func TestBoundingBox_EmptyBox(t *testing.T) {
	empty := EmptyBox()
	if !empty.IsEmpty() {
		t.Error("Expected empty box to report empty")
	}
	if empty.SurfaceArea() != 0 {
		t.Errorf("Expected zero surface area for empty box, got %f", empty.SurfaceArea())
	}
	if empty.Volume() != 0 {
		t.Errorf("Expected zero volume for empty box, got %f", empty.Volume())
	}

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if empty.Intersects(ray) {
		t.Error("Expected no ray to hit the empty box")
	}
}

func TestBoundingBox_Measures(t *testing.T) {
	box := NewAxisAligned(0, 2, 0, 3, 0, 4)

	if got := box.Volume(); got != 24 {
		t.Errorf("Expected volume 24, got %f", got)
	}
	if got := box.SurfaceArea(); got != 52 {
		t.Errorf("Expected surface area 52, got %f", got)
	}
	if got := box.Centroid(); got != NewVec3(1, 1.5, 2) {
		t.Errorf("Expected centroid (1,1.5,2), got %v", got)
	}
	if got := box.LongestAxis(); got != 2 {
		t.Errorf("Expected longest axis 2, got %d", got)
	}
}

func TestBoundingBox_AddPoint(t *testing.T) {
	box := EmptyBox().AddPoint(NewVec3(1, 2, 3))
	if box.Min != NewVec3(1, 2, 3) || box.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected degenerate box at (1,2,3), got %v", box)
	}

	box = box.AddPoint(NewVec3(-1, 5, 0))
	expected := NewAxisAligned(-1, 1, 2, 5, 0, 3)
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}
	if !box.ContainsPoint(NewVec3(0, 3, 1)) {
		t.Error("Expected box to contain (0,3,1)")
	}
}

func TestBoundingBox_Intersects(t *testing.T) {
	box := NewAxisAligned(-1, 1, -1, 1, -1, 1)

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight hit", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3)), true},
		{"diagonal hit", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
		{"diagonal miss", NewRay(NewVec3(-5, 5, -5), NewVec3(1, 1, 1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), true},
		{"parallel outside slab", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), false},
		{"parallel outside two slabs", NewRay(NewVec3(2, 2, -5), NewVec3(0, 0, 1)), false},
		{"box behind ray", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Intersects(tt.ray); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestBoundingBox_Entry(t *testing.T) {
	box := NewAxisAligned(-1, 1, -1, 1, -1, 1)

	entry, hit := box.Entry(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)))
	if !hit {
		t.Fatal("Expected hit")
	}
	if math.Abs(entry-4) > 1e-12 {
		t.Errorf("Expected entry distance 4, got %f", entry)
	}

	entry, hit = box.Entry(NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1)))
	if !hit {
		t.Fatal("Expected hit from inside")
	}
	if entry >= 0 {
		t.Errorf("Expected negative entry distance from inside the box, got %f", entry)
	}
}

func TestBoundingBox_FlatBox(t *testing.T) {
	// A triangle lying in the z=0 plane has a zero-thickness box
	box := NewBoxFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))

	if !box.Intersects(NewRay(NewVec3(0.2, 0.2, -1), NewVec3(0, 0, 1))) {
		t.Error("Expected perpendicular ray to hit flat box")
	}
	if box.SurfaceArea() != 2 {
		t.Errorf("Expected surface area 2 for unit flat box, got %f", box.SurfaceArea())
	}
}
