package renderer

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Renderer renders scenes by tracing every image column in parallel
type Renderer struct {
	config Config
}

// NewRenderer validates config and creates a renderer.
// A zero worker count is replaced by the number of CPUs.
func NewRenderer(config Config) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = DefaultConfig().NumWorkers
	}
	return &Renderer{config: config}, nil
}

// Config returns the configuration in use
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces the scene and returns the sRGB image. progress, when not nil,
// is called once per completed column from the worker goroutines.
// The scene is only read, so it may be shared with other renders.
func (r *Renderer) Render(s *scene.Scene, progress func()) (*image.RGBA, RenderStats, error) {
	if s == nil || s.Camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}
	if s.BVH == nil {
		return nil, RenderStats{}, fmt.Errorf("render: %w", geometry.ErrNoObjects)
	}

	startTime := time.Now()
	width, height := r.config.Width, r.config.Height

	column := &columnRenderer{
		scene:     s,
		camera:    s.Camera.WithAspectRatio(r.config.AspectRatio()),
		config:    r.config,
		image:     image.NewRGBA(image.Rect(0, 0, width, height)),
		luminance: make([]float64, width*height),
		progress:  progress,
	}

	logger.Infof("Rendering %dx%d at %d samples per pixel, %d reflections, %d workers",
		width, height, r.config.SamplesPerPixel, r.config.MaxReflections, r.config.NumWorkers)

	pool := NewWorkerPool(column.render, width, r.config.NumWorkers)
	pool.Start()
	for x := 0; x < width; x++ {
		pool.SubmitTask(ColumnTask{X: x})
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		Workers:         pool.GetNumWorkers(),
		SamplesPerPixel: r.config.SamplesPerPixel,
	}

	// Every submitted column produces exactly one result
	for i := 0; i < width; i++ {
		result, _ := pool.GetResult()
		stats.RaysCast += result.RaysCast
		stats.Traversal.Add(result.Traversal)
	}
	pool.Stop()

	stats.RenderTime = time.Since(startTime)
	stats.setLuminance(column.luminance)

	logger.Noticef("Rendered %dx%d in %v (%d rays, %d box tests, %d primitive tests)", width, height,
		stats.RenderTime, stats.RaysCast, stats.Traversal.BoxTests, stats.PrimitiveTests())
	return column.image, stats, nil
}

// columnRenderer holds what the workers share. Workers write disjoint
// pixels, so the image and luminance buffers need no locking.
type columnRenderer struct {
	scene     *scene.Scene
	camera    *geometry.Camera
	config    Config
	image     *image.RGBA
	luminance []float64 // Linear luminance per pixel, row major
	progress  func()
}

// columnSeed derives the random seed of a column, so that results do not
// depend on which worker renders it
func columnSeed(seed int64, x int) int64 {
	return seed*1_000_003 + int64(x) + 1
}

func (c *columnRenderer) render(task ColumnTask) ColumnResult {
	random := rand.New(rand.NewSource(columnSeed(c.config.Seed, task.X)))
	sampler := core.NewRandomSampler(random)
	tracer := integrator.New(c.scene, sampler, c.config.MaxReflections)

	width, height := float64(c.config.Width), float64(c.config.Height)
	samples := c.config.SamplesPerPixel
	var raysCast int64

	for y := 0; y < c.config.Height; y++ {
		colorAccum := core.Vec3{}

		for sample := 0; sample < samples; sample++ {
			// Jitter by up to half a pixel around the pixel center
			jitterX, jitterY := random.Float64()-0.5, random.Float64()-0.5
			s := (float64(task.X) + 0.5 + jitterX) / width
			t := (float64(y) + 0.5 + jitterY) / height

			tracer.Reset()
			radiance := tracer.Trace(c.camera.GetRay(s, t))
			raysCast += int64(tracer.Reflections())

			colorAccum = colorAccum.Add(finite(radiance))
		}

		linear := colorAccum.Multiply(1.0 / float64(samples))
		c.luminance[y*c.config.Width+task.X] = linear.Luminance()
		c.image.SetRGBA(task.X, y, vec3ToColor(linear))
	}

	if c.progress != nil {
		c.progress()
	}

	return ColumnResult{X: task.X, RaysCast: raysCast, Traversal: tracer.TraversalStats()}
}

// finite replaces NaN and infinite components with zero. Degenerate
// samples contribute no radiance.
func finite(v core.Vec3) core.Vec3 {
	fix := func(x float64) float64 {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0
		}
		return x
	}
	return core.NewVec3(fix(v.X), fix(v.Y), fix(v.Z))
}
