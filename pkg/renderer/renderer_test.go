package renderer

import (
	"bytes"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func testConfig() Config {
	return Config{
		Width:           12,
		Height:          8,
		SamplesPerPixel: 4,
		MaxReflections:  3,
		NumWorkers:      2,
		Seed:            7,
	}
}

func newTestScene(t *testing.T, name string) *scene.Scene {
	t.Helper()
	s, err := scene.NewPreset(name)
	if err != nil {
		t.Fatalf("Failed to build %s scene: %v", name, err)
	}
	return s
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Width != 100 || config.Height != 100 {
		t.Errorf("Expected 100x100, got %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel != 50 || config.MaxReflections != 5 || config.Seed != 42 {
		t.Errorf("Unexpected defaults %+v", config)
	}
	if config.NumWorkers <= 0 {
		t.Errorf("Expected positive worker count, got %d", config.NumWorkers)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero samples", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"negative workers", func(c *Config) { c.NumWorkers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			tt.modify(&config)
			if _, err := NewRenderer(config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewRenderer_DefaultWorkers(t *testing.T) {
	config := testConfig()
	config.NumWorkers = 0
	r, err := NewRenderer(config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if r.Config().NumWorkers <= 0 {
		t.Errorf("Expected zero workers to become the CPU count, got %d", r.Config().NumWorkers)
	}
}

func TestRender_NoCamera(t *testing.T) {
	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	if _, _, err := r.Render(&scene.Scene{}, nil); !errors.Is(err, ErrNoCamera) {
		t.Errorf("Expected ErrNoCamera, got %v", err)
	}
	if _, _, err := r.Render(nil, nil); !errors.Is(err, ErrNoCamera) {
		t.Errorf("Expected ErrNoCamera for a nil scene, got %v", err)
	}
}

// TestRender_Furnace checks that a white diffuse object under unit
// illumination renders to a uniform white image
func TestRender_Furnace(t *testing.T) {
	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	img, stats, err := r.Render(newTestScene(t, "furnace"), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 12 || bounds.Dy() != 8 {
		t.Fatalf("Expected 12x8 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := img.RGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
				t.Fatalf("Expected white pixel at (%d,%d), got %v", x, y, c)
			}
		}
	}

	if math.Abs(stats.LuminanceMean-1) > 1e-9 {
		t.Errorf("Expected luminance mean 1, got %f", stats.LuminanceMean)
	}
	if stats.LuminanceStdDev > 1e-9 {
		t.Errorf("Expected zero luminance deviation, got %f", stats.LuminanceStdDev)
	}
}

func TestRender_Stats(t *testing.T) {
	config := testConfig()
	r, err := NewRenderer(config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	_, stats, err := r.Render(newTestScene(t, "furnace"), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.Width != config.Width || stats.Height != config.Height || stats.Workers != config.NumWorkers {
		t.Errorf("Unexpected stats dimensions %+v", stats)
	}
	if stats.TotalSamples() != 12*8*4 {
		t.Errorf("Expected %d samples, got %d", 12*8*4, stats.TotalSamples())
	}

	// A miss casts one ray; a hit bounces until the limit of 3, casting 4 rays
	if stats.RaysCast < stats.TotalSamples() || stats.RaysCast > 4*stats.TotalSamples() {
		t.Errorf("Expected rays cast in [%d, %d], got %d",
			stats.TotalSamples(), 4*stats.TotalSamples(), stats.RaysCast)
	}
	if depth := stats.AverageDepth(); depth < 1 || depth > 4 {
		t.Errorf("Expected average depth in [1, 4], got %f", depth)
	}

	// The lone sphere is the BVH root, so each ray costs one sphere test
	expected := geometry.TraversalStats{SphereTests: stats.RaysCast}
	if stats.Traversal != expected {
		t.Errorf("Expected traversal %+v, got %+v", expected, stats.Traversal)
	}
}

func TestRender_Deterministic(t *testing.T) {
	s := newTestScene(t, "spheres")

	r, err := NewRenderer(testConfig())
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	img1, stats1, err := r.Render(s, nil)
	if err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	img2, stats2, err := r.Render(s, nil)
	if err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	if !bytes.Equal(img1.Pix, img2.Pix) {
		t.Error("Expected identical images for the same seed")
	}
	if stats1.RaysCast != stats2.RaysCast {
		t.Errorf("Expected same rays cast, got %d and %d", stats1.RaysCast, stats2.RaysCast)
	}
	if stats1.Traversal != stats2.Traversal {
		t.Errorf("Expected same traversal counts, got %+v and %+v", stats1.Traversal, stats2.Traversal)
	}
	if stats1.Traversal.BoxTests == 0 || stats1.PrimitiveTests() == 0 {
		t.Errorf("Expected box and primitive tests on a multi-object scene, got %+v", stats1.Traversal)
	}

	config := testConfig()
	config.Seed = 8
	other, err := NewRenderer(config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	img3, _, err := other.Render(s, nil)
	if err != nil {
		t.Fatalf("Third render failed: %v", err)
	}
	if bytes.Equal(img1.Pix, img3.Pix) {
		t.Error("Expected a different seed to change the image")
	}
}

func TestRender_WorkerCountIndependence(t *testing.T) {
	s := newTestScene(t, "cornell")

	var images [][]byte
	for _, workers := range []int{1, 3, 8} {
		config := testConfig()
		config.NumWorkers = workers

		r, err := NewRenderer(config)
		if err != nil {
			t.Fatalf("NewRenderer failed: %v", err)
		}
		img, _, err := r.Render(s, nil)
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		images = append(images, img.Pix)
	}

	for i := 1; i < len(images); i++ {
		if !bytes.Equal(images[0], images[i]) {
			t.Errorf("Expected image %d to match the single worker image", i)
		}
	}
}

func TestRender_Progress(t *testing.T) {
	config := testConfig()
	config.NumWorkers = 4

	r, err := NewRenderer(config)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	var calls atomic.Int64
	if _, _, err := r.Render(newTestScene(t, "furnace"), func() { calls.Add(1) }); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := calls.Load(); got != int64(config.Width) {
		t.Errorf("Expected %d progress calls, got %d", config.Width, got)
	}
}

func TestColumnSeed(t *testing.T) {
	if columnSeed(42, 3) != columnSeed(42, 3) {
		t.Error("Expected the same column to get the same seed")
	}
	if columnSeed(42, 3) == columnSeed(42, 4) {
		t.Error("Expected neighboring columns to get different seeds")
	}
	if columnSeed(42, 3) == columnSeed(43, 3) {
		t.Error("Expected different base seeds to change the column seed")
	}
}

func TestFinite(t *testing.T) {
	v := finite(core.NewVec3(math.NaN(), math.Inf(1), 0.5))
	if v.X != 0 || v.Y != 0 || v.Z != 0.5 {
		t.Errorf("Expected (0,0,0.5), got %v", v)
	}
}
