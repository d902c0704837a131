package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrInvalidConfig is returned when the image size or sample count is not positive.
	ErrInvalidConfig = errors.New("renderer: invalid configuration")

	// ErrNoCamera is returned when rendering a scene without a camera.
	ErrNoCamera = errors.New("renderer: scene has no camera")
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxReflections  int   // Trace calls past this depth return global illumination
	NumWorkers      int   // Worker goroutines; 0 means one per CPU
	Seed            int64 // Base seed for the per-column random streams
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           100,
		Height:          100,
		SamplesPerPixel: 50,
		MaxReflections:  5,
		NumWorkers:      runtime.NumCPU(),
		Seed:            42,
	}
}

// Validate checks that the configuration describes a renderable image
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: %d workers", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}
