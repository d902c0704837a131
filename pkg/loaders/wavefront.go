package loaders

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var wavefrontLogger = log.New("wavefront")

// WavefrontMaterial holds the MTL statements understood by the loader
type WavefrontMaterial struct {
	Name            string
	Diffuse         core.Vec3 // Kd
	Specular        core.Vec3 // Ks
	Emissive        core.Vec3 // Ke
	OpticalDensity  float64   // Ni, 0 when unset
	Shininess       float64   // Ns
	Dissolve        float64   // d, 1 is opaque
	Transparency    float64   // Tr, 0 is opaque
	DiffuseTexture  string    // map_Kd, resolved against the MTL directory
	EmissiveTexture string    // map_Ke, resolved against the MTL directory
}

// newWavefrontMaterial returns a material with the MTL defaults
func newWavefrontMaterial(name string) *WavefrontMaterial {
	return &WavefrontMaterial{
		Name:     name,
		Diffuse:  core.NewVec3(1, 1, 1),
		Dissolve: 1,
	}
}

// WavefrontFace is one triangle of an OBJ file
type WavefrontFace struct {
	Vertices [3]core.Vec3
	Normals  [3]core.Vec3
	UVs      [3]core.Vec2
	Smooth   bool // Every vertex carried a normal
	Material string
}

// WavefrontObject is the parsed content of an OBJ file and its libraries
type WavefrontObject struct {
	Faces     []WavefrontFace
	Materials map[string]*WavefrontMaterial
}

// objIndex is one v/vt/vn reference of a face; -1 means absent
type objIndex struct {
	vertex, uv, normal int
}

// ParseWavefront reads an OBJ file. Polygons are fan-triangulated and
// mtllib statements are loaded relative to the OBJ directory.
func ParseWavefront(path string) (*WavefrontObject, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	obj := &WavefrontObject{Materials: map[string]*WavefrontMaterial{}}
	var vertices, normals []core.Vec3
	var uvs []core.Vec2
	currentMaterial := ""

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		lineError := func(format string, args ...interface{}) error {
			return fmt.Errorf("%w: %s:%d: %s", ErrBadGeometry, path, lineNumber, fmt.Sprintf(format, args...))
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, lineError("invalid vertex: %v", err)
			}
			vertices = append(vertices, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, lineError("invalid normal: %v", err)
			}
			normals = append(normals, n)
		case "vt":
			if len(fields) < 2 {
				return nil, lineError("texture coordinate needs at least one value")
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, lineError("invalid texture coordinate: %v", err)
			}
			v := 0.0
			if len(fields) > 2 {
				if v, err = strconv.ParseFloat(fields[2], 64); err != nil {
					return nil, lineError("invalid texture coordinate: %v", err)
				}
			}
			uvs = append(uvs, core.NewVec2(u, v))
		case "f":
			if len(fields) < 4 {
				return nil, lineError("face needs at least 3 vertices, got %d", len(fields)-1)
			}
			refs := make([]objIndex, len(fields)-1)
			for i, field := range fields[1:] {
				ref, err := parseFaceVertex(field, len(vertices), len(uvs), len(normals))
				if err != nil {
					return nil, lineError("%v", err)
				}
				refs[i] = ref
			}
			// Fan triangulation around the first vertex
			for i := 1; i+1 < len(refs); i++ {
				obj.Faces = append(obj.Faces,
					buildFace([3]objIndex{refs[0], refs[i], refs[i+1]}, vertices, uvs, normals, currentMaterial))
			}
		case "usemtl":
			if len(fields) > 1 {
				currentMaterial = fields[1]
			}
		case "mtllib":
			for _, name := range fields[1:] {
				mtlPath := resolveRelative(filepath.Dir(path), name)
				if err := loadMaterialLibrary(mtlPath, obj.Materials); err != nil {
					return nil, err
				}
			}
		default:
			// o, g, s, l and other statements are ignored
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ file %s: %w", path, err)
	}

	return obj, nil
}

// parseFaceVertex parses v, v/vt, v//vn or v/vt/vn. Indices are 1-based;
// negative indices count back from the last element defined so far.
func parseFaceVertex(field string, numVertices, numUVs, numNormals int) (objIndex, error) {
	ref := objIndex{vertex: -1, uv: -1, normal: -1}
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return ref, fmt.Errorf("invalid face vertex %q", field)
	}

	resolve := func(s string, count int, kind string) (int, error) {
		index, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("invalid %s index %q", kind, s)
		}
		if index > 0 {
			index--
		} else if index < 0 {
			index += count
		} else {
			return -1, fmt.Errorf("%s index 0 is not valid", kind)
		}
		if index < 0 || index >= count {
			return -1, fmt.Errorf("%s index %s out of range (%d defined)", kind, s, count)
		}
		return index, nil
	}

	var err error
	if ref.vertex, err = resolve(parts[0], numVertices, "vertex"); err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.uv, err = resolve(parts[1], numUVs, "texture"); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ref.normal, err = resolve(parts[2], numNormals, "normal"); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

func buildFace(refs [3]objIndex, vertices []core.Vec3, uvs []core.Vec2, normals []core.Vec3, mat string) WavefrontFace {
	face := WavefrontFace{Material: mat, Smooth: true}
	hasUVs := true
	for i, ref := range refs {
		face.Vertices[i] = vertices[ref.vertex]
		if ref.normal >= 0 {
			face.Normals[i] = normals[ref.normal]
		} else {
			face.Smooth = false
		}
		if ref.uv >= 0 {
			face.UVs[i] = uvs[ref.uv]
		} else {
			hasUVs = false
		}
	}
	if !hasUVs {
		face.UVs = [3]core.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	}
	return face
}

// loadMaterialLibrary parses an MTL file into materials
func loadMaterialLibrary(path string, materials map[string]*WavefrontMaterial) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open MTL file: %w", err)
	}
	defer file.Close()

	var current *WavefrontMaterial
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return fmt.Errorf("%w: %s:%d: newmtl without a name", ErrUnknownMaterial, path, lineNumber)
			}
			current = newWavefrontMaterial(fields[1])
			materials[current.Name] = current
			continue
		}
		if current == nil {
			continue
		}

		var parseErr error
		switch fields[0] {
		case "Kd":
			current.Diffuse, parseErr = parseVec3(fields[1:])
		case "Ks":
			current.Specular, parseErr = parseVec3(fields[1:])
		case "Ke":
			current.Emissive, parseErr = parseVec3(fields[1:])
		case "Ni":
			current.OpticalDensity, parseErr = parseScalar(fields[1:])
		case "Ns":
			current.Shininess, parseErr = parseScalar(fields[1:])
		case "d":
			current.Dissolve, parseErr = parseScalar(fields[1:])
		case "Tr":
			current.Transparency, parseErr = parseScalar(fields[1:])
		case "map_Kd":
			current.DiffuseTexture, parseErr = parseTexturePath(path, fields)
		case "map_Ke":
			current.EmissiveTexture, parseErr = parseTexturePath(path, fields)
		}
		if parseErr != nil {
			return fmt.Errorf("%w: %s:%d: %v", ErrBadGeometry, path, lineNumber, parseErr)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read MTL file %s: %w", path, err)
	}
	return nil
}

// parseTexturePath returns the file of a map_ statement. Options come before
// the file name, so the name is the last field.
func parseTexturePath(mtlPath string, fields []string) (string, error) {
	if len(fields) < 2 {
		return "", fmt.Errorf("%s without a file name", fields[0])
	}
	return resolveRelative(filepath.Dir(mtlPath), fields[len(fields)-1]), nil
}

// convert creates the renderer material for an MTL material:
// emissive when Ke is non-black, metal when Ks clearly dominates Kd,
// otherwise glossy. Ns maps to roughness sqrt(2/(2+Ns)).
func (m *WavefrontMaterial) convert(textures *textureCache) (material.Material, error) {
	if colorPower(m.Emissive) > 0 || m.EmissiveTexture != "" {
		if m.EmissiveTexture != "" {
			texture, err := textures.load(m.EmissiveTexture)
			if err != nil {
				return nil, err
			}
			return material.NewTexturedEmissive(texture, 1), nil
		}
		return material.NewEmissive(m.Emissive, 1), nil
	}

	roughness := math.Sqrt(2 / (2 + math.Max(m.Shininess, 0)))
	ior := material.DefaultIOR
	if m.OpticalDensity > 0 {
		ior = m.OpticalDensity
	}
	transparent := m.Dissolve < 1 || m.Transparency > 0

	if colorPower(m.Specular) > 5*colorPower(m.Diffuse) {
		return material.NewMetal(m.Specular, roughness), nil
	}

	var albedo material.ColorSource = material.NewSolidColor(m.Diffuse)
	if m.DiffuseTexture != "" {
		texture, err := textures.load(m.DiffuseTexture)
		if err != nil {
			return nil, err
		}
		albedo = texture
	}
	return material.NewReflective(albedo, ior, roughness, false, transparent), nil
}

// LoadWavefront loads an OBJ file as scene objects. When override is set
// every face uses it; otherwise faces use their MTL material, falling back
// to white diffuse.
func LoadWavefront(path string, override material.Material, transform *geometry.MeshTransform) ([]*geometry.Object, error) {
	startTime := time.Now()

	obj, err := ParseWavefront(path)
	if err != nil {
		return nil, err
	}

	textures := newTextureCache()
	defaultMaterial := material.Material(material.NewLambertian(core.NewVec3(1, 1, 1)))
	converted := map[string]material.Material{}

	objects := make([]*geometry.Object, 0, len(obj.Faces))
	for _, face := range obj.Faces {
		mat := override
		if mat == nil {
			mat = defaultMaterial
			if source, ok := obj.Materials[face.Material]; ok {
				if mat, ok = converted[face.Material]; !ok {
					if mat, err = source.convert(textures); err != nil {
						return nil, fmt.Errorf("material %s in %s: %w", face.Material, path, err)
					}
					converted[face.Material] = mat
				}
			}
		}

		vertices := face.Vertices
		normals := face.Normals
		if transform != nil {
			for i := range vertices {
				vertices[i] = transform.Point(vertices[i])
				normals[i] = transform.Direction(normals[i])
			}
		}

		var triangle *geometry.Triangle
		if face.Smooth {
			triangle = geometry.NewSmoothTriangle(vertices, normals, face.UVs)
		} else {
			triangle = geometry.NewTriangleWithUVs(vertices[0], vertices[1], vertices[2], face.UVs)
		}
		objects = append(objects, geometry.NewObject(triangle, mat))
	}

	wavefrontLogger.Noticef("Loaded OBJ %s: %d triangles, %d materials in %v",
		path, len(objects), len(obj.Materials), time.Since(startTime))

	return objects, nil
}

// textureCache shares decoded textures between materials
type textureCache struct {
	textures map[string]*material.ImageTexture
}

func newTextureCache() *textureCache {
	return &textureCache{textures: map[string]*material.ImageTexture{}}
}

func (c *textureCache) load(path string) (*material.ImageTexture, error) {
	if texture, ok := c.textures[path]; ok {
		return texture, nil
	}
	texture, err := LoadTexture(path)
	if err != nil {
		return nil, err
	}
	c.textures[path] = texture
	return texture, nil
}

func colorPower(c core.Vec3) float64 {
	return c.LengthSquared()
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	var values [3]float64
	for i := range values {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		values[i] = value
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func parseScalar(fields []string) (float64, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("expected a value")
	}
	return strconv.ParseFloat(fields[0], 64)
}
