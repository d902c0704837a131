package loaders

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var sceneLogger = log.New("loader")

// vec3 is a YAML [x, y, z] sequence
type vec3 core.Vec3

func (v *vec3) UnmarshalYAML(value *yaml.Node) error {
	var values []float64
	if err := value.Decode(&values); err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected 3 values, got %d", value.Line, len(values))
	}
	*v = vec3(core.NewVec3(values[0], values[1], values[2]))
	return nil
}

type sceneFile struct {
	Name               string                 `yaml:"name"`
	Description        string                 `yaml:"description"`
	Camera             cameraDef              `yaml:"camera"`
	GlobalIllumination *vec3                  `yaml:"global_illumination"`
	Render             *renderDef             `yaml:"render"`
	Materials          map[string]materialDef `yaml:"materials"`
	Objects            []objectDef            `yaml:"objects"`
}

type cameraDef struct {
	Position  *vec3   `yaml:"position"`
	Pos       *vec3   `yaml:"pos"`
	Direction *vec3   `yaml:"direction"`
	Dir       *vec3   `yaml:"dir"`
	LookAt    *vec3   `yaml:"look_at"`
	Up        *vec3   `yaml:"up"`
	FOV       float64 `yaml:"fov"`
}

type renderDef struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Samples     int `yaml:"samples"`
	Reflections int `yaml:"reflections"`
}

type materialDef struct {
	Type        string        `yaml:"type"`
	Color       *vec3         `yaml:"color"`
	Texture     string        `yaml:"texture"`
	Pattern     *patternDef   `yaml:"pattern"`
	Intensity   *float64      `yaml:"intensity"`
	IOR         *float64      `yaml:"ior"`
	Roughness   float64       `yaml:"roughness"`
	Metallic    bool          `yaml:"metallic"`
	Transparent bool          `yaml:"transparent"`
	Materials   []materialRef `yaml:"materials"` // mix only
	Ratio       float64       `yaml:"ratio"`     // mix only, share of the second material
}

// patternDef is a procedural texture
type patternDef struct {
	Type       string `yaml:"type"` // checker, gradient or uv
	Colors     []vec3 `yaml:"colors"`
	Size       int    `yaml:"size"` // Check size in texels
	Resolution int    `yaml:"resolution"`
}

// materialRef is either the name of an entry in materials or an inline mapping
type materialRef struct {
	Name   string
	Inline *materialDef
	Line   int
}

func (m *materialRef) UnmarshalYAML(value *yaml.Node) error {
	m.Line = value.Line
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&m.Name)
	}
	m.Inline = &materialDef{}
	return value.Decode(m.Inline)
}

type transformDef struct {
	Scale    float64 `yaml:"scale"`
	Rotation *vec3   `yaml:"rotation"` // Degrees around X, Y, Z
	Offset   *vec3   `yaml:"offset"`
}

type objectDef struct {
	Type      string        `yaml:"type"`
	Material  *materialRef  `yaml:"material"`
	Center    *vec3         `yaml:"center"`
	Radius    float64       `yaml:"radius"`
	Vertices  []vec3        `yaml:"vertices"`
	Size      *vec3         `yaml:"size"`
	Rotation  *vec3         `yaml:"rotation"` // Degrees around X, Y, Z
	File      string        `yaml:"file"`
	ObjFile   string        `yaml:"obj_file"`
	Transform *transformDef `yaml:"transform"`
}

// LoadScene loads a YAML scene. path is either a scene file or a directory
// containing scene.yaml. Relative file references resolve against the
// directory of the scene file.
func LoadScene(path string) (*scene.Scene, error) {
	startTime := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, scene.SceneFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	var file sceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}

	loader := &sceneLoader{
		root:      filepath.Dir(path),
		file:      &file,
		materials: map[string]material.Material{},
		resolving: map[string]bool{},
		textures:  newTextureCache(),
	}

	s, err := loader.build()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	sceneLogger.Noticef("Loaded scene %s: %d objects in %v", path, len(s.Objects), time.Since(startTime))
	return s, nil
}

// sceneLoader turns a decoded scene file into a scene
type sceneLoader struct {
	root      string
	file      *sceneFile
	materials map[string]material.Material // Named materials, converted on first use
	resolving map[string]bool              // Named materials being converted, to detect cycles
	textures  *textureCache
}

func (l *sceneLoader) build() (*scene.Scene, error) {
	cameraConfig := l.file.Camera.config()

	b := scene.NewBuilder().
		Name(l.file.Name, l.file.Description).
		CameraConfig(cameraConfig)

	if l.file.GlobalIllumination != nil {
		b.GlobalIllumination(core.Vec3(*l.file.GlobalIllumination), 1)
	}
	if r := l.file.Render; r != nil {
		b.RenderHints(scene.RenderHints{
			Width:           r.Width,
			Height:          r.Height,
			SamplesPerPixel: r.Samples,
			MaxReflections:  r.Reflections,
		})
	}

	for i, object := range l.file.Objects {
		objects, err := l.loadObject(object)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, object.Type, err)
		}
		b.Objects(objects...)
	}

	return b.Build()
}

func (c cameraDef) config() geometry.CameraConfig {
	config := geometry.CameraConfig{
		Up:  core.NewVec3(0, 1, 0),
		FOV: c.FOV,
	}
	if config.FOV <= 0 {
		config.FOV = geometry.DefaultFOV
	}

	switch {
	case c.Position != nil:
		config.Position = core.Vec3(*c.Position)
	case c.Pos != nil:
		config.Position = core.Vec3(*c.Pos)
	}

	switch {
	case c.Direction != nil:
		config.Direction = core.Vec3(*c.Direction)
	case c.Dir != nil:
		config.Direction = core.Vec3(*c.Dir)
	case c.LookAt != nil:
		config.LookAt = core.Vec3(*c.LookAt)
	default:
		config.Direction = core.NewVec3(0, 0, 1)
	}

	if c.Up != nil {
		config.Up = core.Vec3(*c.Up)
	}
	return config
}

func (l *sceneLoader) loadObject(object objectDef) ([]*geometry.Object, error) {
	switch object.Type {
	case "sphere":
		if object.Center == nil || object.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere needs a center and a positive radius", ErrBadGeometry)
		}
		mat, err := l.requireMaterial(object.Material)
		if err != nil {
			return nil, err
		}
		return []*geometry.Object{
			geometry.NewObject(geometry.NewSphere(core.Vec3(*object.Center), object.Radius), mat),
		}, nil

	case "triangle":
		if len(object.Vertices) != 3 {
			return nil, fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrBadGeometry, len(object.Vertices))
		}
		mat, err := l.requireMaterial(object.Material)
		if err != nil {
			return nil, err
		}
		v := object.Vertices
		triangle := geometry.NewTriangle(core.Vec3(v[0]), core.Vec3(v[1]), core.Vec3(v[2]))
		return []*geometry.Object{geometry.NewObject(triangle, mat)}, nil

	case "quad", "quadrilateral":
		if len(object.Vertices) != 4 {
			return nil, fmt.Errorf("%w: quad needs 4 vertices, got %d", ErrBadGeometry, len(object.Vertices))
		}
		mat, err := l.requireMaterial(object.Material)
		if err != nil {
			return nil, err
		}
		v := object.Vertices
		quad := geometry.QuadFromVertices(core.Vec3(v[0]), core.Vec3(v[1]), core.Vec3(v[2]), core.Vec3(v[3]))
		return triangleObjects(quad[:], mat), nil

	case "box":
		if object.Center == nil || object.Size == nil {
			return nil, fmt.Errorf("%w: box needs a center and a size", ErrBadGeometry)
		}
		mat, err := l.requireMaterial(object.Material)
		if err != nil {
			return nil, err
		}
		rotation := core.Vec3{}
		if object.Rotation != nil {
			rotation = degreesToRadians(core.Vec3(*object.Rotation))
		}
		// size is the full edge length; boxes are built from half-extents
		triangles := geometry.NewBox(core.Vec3(*object.Center), core.Vec3(*object.Size).Multiply(0.5), rotation)
		return triangleObjects(triangles, mat), nil

	case "wavefront", "obj":
		file := object.File
		if file == "" {
			file = object.ObjFile
		}
		if file == "" {
			return nil, fmt.Errorf("%w: wavefront object needs a file", ErrBadGeometry)
		}
		var override material.Material
		if object.Material != nil {
			var err error
			if override, err = l.resolveMaterial(*object.Material); err != nil {
				return nil, err
			}
		}
		return LoadWavefront(l.resolvePath(file), override, object.Transform.meshTransform())

	case "ply":
		if object.File == "" {
			return nil, fmt.Errorf("%w: ply object needs a file", ErrBadGeometry)
		}
		mat, err := l.requireMaterial(object.Material)
		if err != nil {
			return nil, err
		}
		data, err := LoadPLY(l.resolvePath(object.File))
		if err != nil {
			return nil, err
		}
		return data.Objects(mat, object.Transform.meshTransform())

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurface, object.Type)
	}
}

func triangleObjects(triangles []*geometry.Triangle, mat material.Material) []*geometry.Object {
	objects := make([]*geometry.Object, len(triangles))
	for i, triangle := range triangles {
		objects[i] = geometry.NewObject(triangle, mat)
	}
	return objects
}

func (t *transformDef) meshTransform() *geometry.MeshTransform {
	if t == nil {
		return nil
	}
	transform := &geometry.MeshTransform{Scale: t.Scale}
	if t.Rotation != nil {
		transform.Rotation = degreesToRadians(core.Vec3(*t.Rotation))
	}
	if t.Offset != nil {
		transform.Offset = core.Vec3(*t.Offset)
	}
	return transform
}

func degreesToRadians(v core.Vec3) core.Vec3 {
	return v.Multiply(math.Pi / 180)
}

func (l *sceneLoader) resolvePath(file string) string {
	return resolveRelative(l.root, file)
}

// resolveRelative joins a relative file name to dir; absolute names are kept
func resolveRelative(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

func (l *sceneLoader) requireMaterial(ref *materialRef) (material.Material, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: object has no material", ErrUnknownMaterial)
	}
	return l.resolveMaterial(*ref)
}

// resolveMaterial converts an inline material, or a named one once
func (l *sceneLoader) resolveMaterial(ref materialRef) (material.Material, error) {
	if ref.Inline != nil {
		return l.convertMaterial(*ref.Inline)
	}

	if mat, ok := l.materials[ref.Name]; ok {
		return mat, nil
	}
	def, ok := l.file.Materials[ref.Name]
	if !ok {
		return nil, fmt.Errorf("%w: line %d: %q is not defined", ErrUnknownMaterial, ref.Line, ref.Name)
	}
	if l.resolving[ref.Name] {
		return nil, fmt.Errorf("%w: line %d: %q refers to itself", ErrUnknownMaterial, ref.Line, ref.Name)
	}

	l.resolving[ref.Name] = true
	mat, err := l.convertMaterial(def)
	delete(l.resolving, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", ref.Name, err)
	}
	l.materials[ref.Name] = mat
	return mat, nil
}

func (l *sceneLoader) convertMaterial(def materialDef) (material.Material, error) {
	if def.Type == "mix" {
		return l.convertMix(def)
	}

	color, err := l.colorSource(def)
	if err != nil {
		return nil, err
	}

	ior := material.DefaultIOR
	if def.IOR != nil {
		ior = *def.IOR
	}

	switch def.Type {
	case "light", "emissive":
		intensity := 1.0
		if def.Intensity != nil {
			intensity = *def.Intensity
		}
		return material.NewTexturedEmissive(color, intensity), nil
	case "diffuse", "lambertian":
		return material.NewTexturedLambertian(color), nil
	case "glossy":
		return material.NewTexturedGlossy(color, ior, def.Roughness), nil
	case "metal", "specular":
		return material.NewTexturedMetal(color, def.Roughness), nil
	case "glass":
		return material.NewReflective(color, ior, def.Roughness, false, true), nil
	case "reflective":
		return material.NewReflective(color, ior, def.Roughness, def.Metallic, def.Transparent), nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnknownMaterial, def.Type)
	}
}

func (l *sceneLoader) convertMix(def materialDef) (material.Material, error) {
	if len(def.Materials) != 2 {
		return nil, fmt.Errorf("%w: mix needs 2 materials, got %d", ErrUnknownMaterial, len(def.Materials))
	}
	first, err := l.resolveMaterial(def.Materials[0])
	if err != nil {
		return nil, err
	}
	second, err := l.resolveMaterial(def.Materials[1])
	if err != nil {
		return nil, err
	}
	return material.NewMix(first, second, def.Ratio), nil
}

// colorSource returns the texture or pattern when one is given, else the
// solid color. The color defaults to white.
func (l *sceneLoader) colorSource(def materialDef) (material.ColorSource, error) {
	if def.Pattern != nil {
		texture, err := def.Pattern.texture()
		if err != nil {
			return nil, err
		}
		return texture, nil
	}
	if def.Texture != "" {
		texture, err := l.textures.load(l.resolvePath(def.Texture))
		if err != nil {
			return nil, err
		}
		return texture, nil
	}
	if def.Color == nil {
		return material.NewSolidColor(core.NewVec3(1, 1, 1)), nil
	}
	return material.NewSolidColor(core.Vec3(*def.Color)), nil
}

func (p *patternDef) texture() (*material.ImageTexture, error) {
	resolution := p.Resolution
	if resolution <= 1 {
		resolution = 256
	}

	colors := [2]core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0)}
	for i := 0; i < len(p.Colors) && i < 2; i++ {
		colors[i] = core.Vec3(p.Colors[i])
	}

	switch p.Type {
	case "checker", "checkerboard":
		size := p.Size
		if size <= 0 {
			size = resolution / 8
		}
		return material.NewCheckerboardTexture(resolution, resolution, size, colors[0], colors[1]), nil
	case "gradient":
		return material.NewGradientTexture(resolution, resolution, colors[0], colors[1]), nil
	case "uv":
		return material.NewUVDebugTexture(resolution, resolution), nil
	default:
		return nil, fmt.Errorf("%w: pattern %q", ErrUnknownMaterial, p.Type)
	}
}
