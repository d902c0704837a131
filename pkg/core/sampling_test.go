package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.05, 0.3, -0.9).Normalize(),
	}

	for _, n := range normals {
		tangent, bitangent := OrthonormalBasis(n)

		if math.Abs(tangent.Length()-1) > 1e-9 || math.Abs(bitangent.Length()-1) > 1e-9 {
			t.Errorf("Expected unit basis vectors for %v, got lengths %f and %f", n, tangent.Length(), bitangent.Length())
		}
		if math.Abs(tangent.Dot(n)) > 1e-9 || math.Abs(bitangent.Dot(n)) > 1e-9 || math.Abs(tangent.Dot(bitangent)) > 1e-9 {
			t.Errorf("Expected orthogonal basis for %v, got tangent %v bitangent %v", n, tangent, bitangent)
		}
	}
}

func TestSampleCosineHemisphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	normal := NewVec3(0.3, -0.5, 0.8).Normalize()

	sumCos := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		cos := dir.Dot(normal)
		if cos < 0 {
			t.Fatalf("Expected direction in hemisphere around %v, got %v", normal, dir)
		}
		sumCos += cos
	}

	// E[cos] for a cosine-weighted hemisphere is 2/3
	mean := sumCos / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine near 0.667, got %f", mean)
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	sampler := NewRandomSampler(random)

	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		dir := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		sum = sum.Add(dir)
	}

	if mean := sum.Multiply(1.0 / n); mean.Length() > 0.03 {
		t.Errorf("Expected mean direction near zero, got %v", mean)
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(42)
	b := NewSeededSampler(42)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}
