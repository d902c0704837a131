package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// scriptedSampler returns queued values first and random values afterwards
type scriptedSampler struct {
	values []float64
	random *rand.Rand
}

func newScriptedSampler(values ...float64) *scriptedSampler {
	return &scriptedSampler{values: values, random: rand.New(rand.NewSource(42))}
}

func (s *scriptedSampler) Get1D() float64 {
	if len(s.values) > 0 {
		v := s.values[0]
		s.values = s.values[1:]
		return v
	}
	return s.random.Float64()
}

func (s *scriptedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

// mockTracer returns a constant radiance and records the traced rays
type mockTracer struct {
	radiance core.Vec3
	sampler  core.Sampler
	rays     []core.Ray
}

func newMockTracer(radiance core.Vec3, sampler core.Sampler) *mockTracer {
	return &mockTracer{radiance: radiance, sampler: sampler}
}

func (m *mockTracer) Trace(ray core.Ray) core.Vec3 {
	m.rays = append(m.rays, ray)
	return m.radiance
}

func (m *mockTracer) Sampler() core.Sampler {
	return m.sampler
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// hitAt builds an intersection at the origin with the given geometry
func hitAt(incident, normal core.Vec3) core.Intersection {
	return core.Intersection{
		Distance: 1,
		Position: core.Vec3{},
		Incident: incident.Normalize(),
		Normal:   normal.Normalize(),
		UV:       core.NewVec2(0.5, 0.5),
	}
}
