package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var plyLogger = log.New("ply")

const (
	// maxPLYReserve caps slice capacity taken from header counts; larger
	// meshes grow by append as their data is actually read
	maxPLYReserve = 1 << 20
	// maxPLYListLength bounds a single list property
	maxPLYListLength = 1 << 16
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block declared in the header
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh data loaded from a PLY file.
// Polygon faces are fan-triangulated into Faces.
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions (x, y, z)
	Faces     []int       // Triangle indices (3 per triangle)
	Normals   []core.Vec3 // Per-vertex normals (nx, ny, nz) - empty if not present
	Colors    []core.Vec3 // Per-vertex colors normalized to [0,1] - empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates (u, v) - empty if not present
}

// plyValueReader reads one scalar of a PLY type from the body
type plyValueReader interface {
	read(dataType string) (float64, error)
}

// LoadPLY loads an ascii or binary PLY file
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header %s: %w", filename, err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = newASCIIReader(reader)
	case "binary_little_endian":
		values = &binaryReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported PLY format %q in %s", ErrBadGeometry, header.Format, filename)
	}

	data, err := readPLYBody(values, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data %s: %w", filename, err)
	}

	plyLogger.Noticef("Loaded PLY %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), len(data.Faces)/3, time.Since(startTime))

	return data, nil
}

// parsePLYHeader parses the header, leaving reader at the first body byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrBadGeometry)
	}

	var current *PLYElement
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended without end_header", ErrBadGeometry)
		}
		line = strings.TrimSpace(line)
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "comment", "obj_info":
			// Ignore comments
		case "format":
			if len(parts) >= 3 {
				header.Format = parts[1]
				header.Version = parts[2]
			}
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrBadGeometry, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrBadGeometry, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
		case "property":
			if current == nil {
				return nil, fmt.Errorf("%w: property before any element", ErrBadGeometry)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current.Props = append(current.Props, prop)
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrBadGeometry)
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrBadGeometry)
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
	}

	if getTypeSize(prop.Type) == 0 && !prop.IsList {
		return PLYProperty{}, fmt.Errorf("%w: unsupported data type %q", ErrBadGeometry, prop.Type)
	}
	if prop.IsList && (getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0) {
		return PLYProperty{}, fmt.Errorf("%w: unsupported list type %q %q", ErrBadGeometry, prop.ListType, prop.DataType)
	}

	return prop, nil
}

// readPLYBody reads every element in header order. Vertex and face elements
// are decoded, other elements are read and dropped.
func readPLYBody(values plyValueReader, header *PLYHeader) (*PLYData, error) {
	data := &PLYData{}
	var hasNormals, hasColors, hasTexCoords bool
	vertexCount := 0

	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			vertexCount = element.Count
			hasNormals = hasProperty(element, "nx")
			hasColors = hasProperty(element, "red", "r")
			hasTexCoords = hasProperty(element, "u", "s", "texture_u")

			reserve := min(element.Count, maxPLYReserve)
			data.Vertices = make([]core.Vec3, 0, reserve)
			if hasNormals {
				data.Normals = make([]core.Vec3, 0, reserve)
			}
			if hasColors {
				data.Colors = make([]core.Vec3, 0, reserve)
			}
			if hasTexCoords {
				data.TexCoords = make([]core.Vec2, 0, reserve)
			}
		case "face":
			data.Faces = make([]int, 0, 3*min(element.Count, maxPLYReserve))
		}

		for i := 0; i < element.Count; i++ {
			var vertex plyVertex
			var polygon []int

			for _, prop := range element.Props {
				if prop.IsList {
					list, err := readList(values, prop)
					if err != nil {
						return nil, fmt.Errorf("%s %d, property %s: %w", element.Name, i, prop.Name, err)
					}
					if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
						polygon = list
					}
					continue
				}

				value, err := values.read(prop.Type)
				if err != nil {
					return nil, fmt.Errorf("%s %d, property %s: %w", element.Name, i, prop.Name, err)
				}
				if element.Name == "vertex" {
					vertex.set(prop, value)
				}
			}

			switch element.Name {
			case "vertex":
				data.Vertices = append(data.Vertices, vertex.position)
				if hasNormals {
					data.Normals = append(data.Normals, vertex.normal)
				}
				if hasColors {
					data.Colors = append(data.Colors, vertex.color)
				}
				if hasTexCoords {
					data.TexCoords = append(data.TexCoords, vertex.uv)
				}
			case "face":
				if len(polygon) < 3 || len(polygon) > vertexCount {
					return nil, fmt.Errorf("%w: face %d has %d vertices, mesh has %d",
						ErrBadGeometry, i, len(polygon), vertexCount)
				}
				for _, index := range polygon {
					if index < 0 || index >= vertexCount {
						return nil, fmt.Errorf("%w: face %d: vertex index %d out of range [0, %d)",
							ErrBadGeometry, i, index, vertexCount)
					}
				}
				// Fan triangulation around the first vertex
				for j := 1; j+1 < len(polygon); j++ {
					data.Faces = append(data.Faces, polygon[0], polygon[j], polygon[j+1])
				}
			}
		}
	}

	return data, nil
}

func hasProperty(element PLYElement, names ...string) bool {
	for _, prop := range element.Props {
		for _, name := range names {
			if prop.Name == name {
				return true
			}
		}
	}
	return false
}

// readList reads a list property as integers
func readList(values plyValueReader, prop PLYProperty) ([]int, error) {
	count, err := values.read(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxPLYListLength || count != math.Trunc(count) {
		return nil, fmt.Errorf("%w: invalid list length %v", ErrBadGeometry, count)
	}

	list := make([]int, int(count))
	for i := range list {
		value, err := values.read(prop.DataType)
		if err != nil {
			return nil, err
		}
		list[i] = int(value)
	}
	return list, nil
}

// plyVertex holds the vertex properties that are understood
type plyVertex struct {
	position core.Vec3
	normal   core.Vec3
	color    core.Vec3
	uv       core.Vec2
}

func (v *plyVertex) set(prop PLYProperty, value float64) {
	switch prop.Name {
	case "x":
		v.position.X = value
	case "y":
		v.position.Y = value
	case "z":
		v.position.Z = value
	case "nx":
		v.normal.X = value
	case "ny":
		v.normal.Y = value
	case "nz":
		v.normal.Z = value
	case "u", "s", "texture_u":
		v.uv.X = value
	case "v", "t", "texture_v":
		v.uv.Y = value
	case "red", "r":
		v.color.X = normalizeColor(prop.Type, value)
	case "green", "g":
		v.color.Y = normalizeColor(prop.Type, value)
	case "blue", "b":
		v.color.Z = normalizeColor(prop.Type, value)
	}
}

// normalizeColor maps integer color channels from 0-255 to 0-1
func normalizeColor(dataType string, value float64) float64 {
	switch dataType {
	case "float", "float32", "double", "float64":
		return value
	}
	return value / 255.0
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

// binaryReader decodes binary PLY bodies in either byte order
type binaryReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buffer [8]byte
}

func (r *binaryReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	buf := r.buffer[:size]
	if _, err := io.ReadFull(r.reader, buf); err != nil {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrBadGeometry)
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(r.order.Uint64(buf)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(buf)), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(buf)), nil
	case "char", "int8":
		return float64(int8(buf[0])), nil
	default:
		return float64(buf[0]), nil
	}
}

// asciiReader decodes whitespace separated ascii PLY bodies
type asciiReader struct {
	scanner *bufio.Scanner
}

func newASCIIReader(reader io.Reader) *asciiReader {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)
	return &asciiReader{scanner: scanner}
}

func (r *asciiReader) read(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrBadGeometry)
	}
	value, err := strconv.ParseFloat(r.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q", ErrBadGeometry, dataType, r.scanner.Text())
	}
	return value, nil
}

// TriangleCount returns the number of triangles after triangulation
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// Mesh returns the data as an indexed triangle mesh
func (d *PLYData) Mesh() *geometry.TriangleMesh {
	return &geometry.TriangleMesh{
		Vertices: d.Vertices,
		Normals:  d.Normals,
		UVs:      d.TexCoords,
		Faces:    d.Faces,
	}
}

// Objects creates one object per triangle, all sharing mat
func (d *PLYData) Objects(mat material.Material, transform *geometry.MeshTransform) ([]*geometry.Object, error) {
	triangles, err := d.Mesh().Triangles(transform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}

	objects := make([]*geometry.Object, len(triangles))
	for i, triangle := range triangles {
		objects[i] = geometry.NewObject(triangle, mat)
	}
	return objects, nil
}
