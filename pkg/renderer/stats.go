package renderer

import (
	"image"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-pathtracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	Workers         int
	SamplesPerPixel int
	RaysCast        int64         // Trace calls that reached the scene, over all samples
	Traversal       geometry.TraversalStats
	RenderTime      time.Duration // Wall time of the render
	LuminanceMean   float64       // Mean linear pixel luminance before clamping
	LuminanceStdDev float64       // Standard deviation of linear pixel luminance
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// TotalSamples returns the number of primary rays fired
func (s RenderStats) TotalSamples() int64 {
	return int64(s.TotalPixels()) * int64(s.SamplesPerPixel)
}

// RaysPerSecond returns the tracing throughput
func (s RenderStats) RaysPerSecond() float64 {
	seconds := s.RenderTime.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(s.RaysCast) / seconds
}

// PrimitiveTests returns the number of sphere and triangle tests
func (s RenderStats) PrimitiveTests() int64 {
	return s.Traversal.SphereTests + s.Traversal.TriangleTests
}

// AverageDepth returns the mean number of rays cast per primary ray
func (s RenderStats) AverageDepth() float64 {
	samples := s.TotalSamples()
	if samples == 0 {
		return 0
	}
	return float64(s.RaysCast) / float64(samples)
}

// setLuminance fills the luminance mean and standard deviation
func (s *RenderStats) setLuminance(luminance []float64) {
	if len(luminance) == 0 {
		return
	}
	s.LuminanceMean, s.LuminanceStdDev = stat.MeanStdDev(luminance, nil)
	if len(luminance) == 1 {
		s.LuminanceStdDev = 0
	}
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the
// encoded pixel values of img, in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	values := make([]float64, 0, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			luminance := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
			values = append(values, luminance/255)
		}
	}

	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
