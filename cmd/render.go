package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFlags are the flags of the render command
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: renderer.DefaultConfig().Width,
		Usage: "image width",
	},
	cli.IntFlag{
		Name:  "height",
		Value: renderer.DefaultConfig().Height,
		Usage: "image height",
	},
	cli.IntFlag{
		Name:  "samples",
		Value: renderer.DefaultConfig().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "reflections",
		Value: renderer.DefaultConfig().MaxReflections,
		Usage: "maximum number of reflections per path",
	},
	cli.Float64Flag{
		Name:  "fov",
		Usage: "vertical field of view in degrees (overrides the scene camera)",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (default: one per CPU)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultConfig().Seed,
		Usage: "random seed",
	},
	cli.StringFlag{
		Name:  "profile",
		Usage: "write a CPU profile of the render to this file (read it with go tool pprof)",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output image (.png, .bmp, .tif); default output/<scene>/render_<timestamp>.png",
	},
}

// RenderScene renders a preset or scene file and writes the image.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene argument")
	}
	sceneName := ctx.Args().First()

	s, err := loadScene(sceneName)
	if err != nil {
		return err
	}

	config := renderConfig(ctx, s.Render)
	if ctx.IsSet("fov") {
		cameraConfig := s.CameraConfig
		cameraConfig.FOV = ctx.Float64("fov")
		s.CameraConfig = cameraConfig
		s.Camera = geometry.NewCamera(cameraConfig)
	}

	r, err := renderer.NewRenderer(config)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q: %d objects, %dx%d, %d spp", sceneName, s.GetPrimitiveCount(),
		config.Width, config.Height, config.SamplesPerPixel)

	var stopProfile func() error
	if path := ctx.String("profile"); path != "" {
		if stopProfile, err = startProfile(path); err != nil {
			return err
		}
	}

	progress := newProgressReporter(config.Width, time.Second)
	progress.Start()
	img, stats, err := r.Render(s, progress.Increment)
	progress.Stop()

	if stopProfile != nil {
		if profileErr := stopProfile(); profileErr != nil && err == nil {
			err = profileErr
		}
	}
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(sceneName, time.Now())
	}
	if err := writeImage(out, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	displayRenderStats(stats)
	return nil
}

// renderConfig layers the defaults, the scene hints and the explicit flags,
// in increasing priority
func renderConfig(ctx *cli.Context, hints *scene.RenderHints) renderer.Config {
	config := renderer.DefaultConfig()

	if hints != nil {
		if hints.Width > 0 {
			config.Width = hints.Width
		}
		if hints.Height > 0 {
			config.Height = hints.Height
		}
		if hints.SamplesPerPixel > 0 {
			config.SamplesPerPixel = hints.SamplesPerPixel
		}
		if hints.MaxReflections > 0 {
			config.MaxReflections = hints.MaxReflections
		}
	}

	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		config.Height = ctx.Int("height")
	}
	if ctx.IsSet("samples") {
		config.SamplesPerPixel = ctx.Int("samples")
	}
	if ctx.IsSet("reflections") {
		config.MaxReflections = ctx.Int("reflections")
	}
	if ctx.IsSet("workers") {
		config.NumWorkers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}

	return config
}

func displayRenderStats(stats renderer.RenderStats) {
	logger.Noticef("render statistics\n%s", formatRenderStats(stats))
}

// formatRenderStats renders stats as a two column table
func formatRenderStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Image", fmt.Sprintf("%dx%d", stats.Width, stats.Height)},
		{"Workers", fmt.Sprintf("%d", stats.Workers)},
		{"Samples per pixel", fmt.Sprintf("%d", stats.SamplesPerPixel)},
		{"Primary rays", fmt.Sprintf("%d", stats.TotalSamples())},
		{"Rays cast", fmt.Sprintf("%d", stats.RaysCast)},
		{"Average depth", fmt.Sprintf("%.2f", stats.AverageDepth())},
		{"Bounding box tests", fmt.Sprintf("%d", stats.Traversal.BoxTests)},
		{"Sphere tests", fmt.Sprintf("%d", stats.Traversal.SphereTests)},
		{"Triangle tests", fmt.Sprintf("%d", stats.Traversal.TriangleTests)},
		{"Rays per second", fmt.Sprintf("%.0f", stats.RaysPerSecond())},
		{"Luminance", fmt.Sprintf("%.4f ± %.4f", stats.LuminanceMean, stats.LuminanceStdDev)},
	})
	table.SetFooter([]string{"Render time", stats.RenderTime.String()})

	table.Render()
	return buf.String()
}
