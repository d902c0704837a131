package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// loadScene resolves a scene argument: a preset name, a YAML file or a
// directory containing scene.yaml
func loadScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("missing scene argument")
	}

	s, err := scene.NewPreset(name)
	if err == nil {
		logger.Infof("using built-in scene %q", name)
		return s, nil
	}
	if !errors.Is(err, scene.ErrUnknownPreset) {
		return nil, err
	}

	if _, statErr := os.Stat(name); statErr != nil {
		return nil, fmt.Errorf("%q is neither a preset nor a scene file: %w", name, err)
	}
	return loaders.LoadScene(name)
}

// sceneBaseName returns a file system friendly name for a scene argument
func sceneBaseName(name string) string {
	base := filepath.Base(filepath.Clean(name))
	if base == scene.SceneFileName {
		base = filepath.Base(filepath.Dir(filepath.Clean(name)))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "scene"
	}
	return base
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneBaseName(sceneName), fmt.Sprintf("render_%s.png", timestamp))
}
