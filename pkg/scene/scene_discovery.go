package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	Name        string // Scene name, from the file or derived from its path
	Description string // Optional description
	Type        string // "builtin" or "yaml"
	FilePath    string // Path to the scene file (yaml type only)
}

// sceneHeader holds the metadata keys read during discovery
type sceneHeader struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SceneFileName is the file looked for inside scene directories
const SceneFileName = "scene.yaml"

// ListScenes scans dir for *.yaml files and for subdirectories holding a
// scene.yaml. A missing directory yields an empty list.
func ListScenes(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		var path, fallback string
		switch {
		case entry.IsDir():
			path = filepath.Join(dir, entry.Name(), SceneFileName)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			fallback = entry.Name()
		case isYAML(entry.Name()):
			path = filepath.Join(dir, entry.Name())
			fallback = strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		default:
			continue
		}

		info, err := ParseSceneMetadata(path, fallback)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ListAllScenes returns the built-in presets followed by the scenes found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	var all []SceneInfo
	for _, preset := range presets {
		all = append(all, SceneInfo{
			Name:        preset.Name,
			Description: preset.Description,
			Type:        "builtin",
		})
	}

	discovered, err := ListScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(all, discovered...), nil
}

// ParseSceneMetadata reads the name and description keys of a YAML scene.
// A missing name falls back to a title-cased form of fallback.
func ParseSceneMetadata(path, fallback string) (SceneInfo, error) {
	info := SceneInfo{
		Name:     titleCase(fallback),
		Type:     "yaml",
		FilePath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read scene %s: %w", path, err)
	}

	var header sceneHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}

	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
