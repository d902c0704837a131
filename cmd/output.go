package cmd

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

type imageEncoder func(f *os.File, img image.Image) error

var encoders = map[string]imageEncoder{
	".png": func(f *os.File, img image.Image) error { return png.Encode(f, img) },
	".bmp": func(f *os.File, img image.Image) error { return bmp.Encode(f, img) },
	".tif": func(f *os.File, img image.Image) error {
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	},
	".tiff": func(f *os.File, img image.Image) error {
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// writeImage encodes img in the format named by the extension of path,
// creating parent directories as needed
func writeImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	encode, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
