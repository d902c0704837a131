package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// sampleGGXNormal draws a microfacet normal around n from the GGX
// distribution with roughness alpha, using two uniform numbers in [0, 1).
func sampleGGXNormal(n core.Vec3, alpha float64, e core.Vec2) core.Vec3 {
	theta := math.Atan(alpha * math.Sqrt(e.X) / math.Sqrt(1.0-e.X))
	phi := 2.0 * math.Pi * e.Y

	sinTheta := math.Sin(theta)
	return core.ToWorld(n,
		sinTheta*math.Cos(phi),
		sinTheta*math.Sin(phi),
		math.Cos(theta),
	).Normalize()
}

// fresnelSchlick approximates the reflectance for the cosine between the
// incident direction and the microfacet normal
func fresnelSchlick(f0, cosTheta float64) float64 {
	return f0 + (1.0-f0)*math.Pow(1.0-math.Abs(cosTheta), 5)
}

// smithG2 is the height-correlated Smith masking-shadowing term for GGX.
// ni and no are the absolute cosines of the incident and outgoing
// directions with the surface normal.
func smithG2(ni, no, alpha float64) float64 {
	a2 := alpha * alpha
	denominator := no*math.Sqrt(a2+(1-a2)*ni*ni) + ni*math.Sqrt(a2+(1-a2)*no*no)
	if denominator <= 0 {
		return 0
	}
	return 2.0 * ni * no / denominator
}

// microfacetWeight is the estimator weight for a direction o sampled through
// microfacet normal m: |i·m| / (|i·n| |m·n|) times the geometry term.
func microfacetWeight(i, o, m, n core.Vec3, alpha float64) float64 {
	ni := math.Abs(i.Dot(n))
	no := math.Abs(o.Dot(n))
	mn := math.Abs(m.Dot(n))
	if ni == 0 || mn == 0 {
		return 0
	}
	return math.Abs(i.Dot(m)) / (ni * mn) * smithG2(ni, no, alpha)
}
