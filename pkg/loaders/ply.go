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
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("loaders")

const (
	// maxPrealloc caps slice capacity taken from header counts. Larger meshes grow
	// past it as data is actually read.
	maxPrealloc = 1 << 20

	// maxListLength bounds the length of a single list property
	maxListLength = 1 << 16
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string // Usually "1.0"
	Elements []PLYElement

	// Counts of the two elements the loader understands
	VertexCount int
	FaceCount   int
	HasNormals  bool
}

// PLYElement is one element block of the header. Data blocks appear in the same order.
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the mesh loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle)
	Normals  []core.Vec3 // Per-vertex normals, empty if not present
}

// TriangleCount returns the number of triangles after triangulation
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*PLYData, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("ply: failed to open %s: %w", filename, err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filename, len(data.Vertices), data.TriangleCount(), time.Since(startTime))

	return data, nil
}

// ReadPLY parses a PLY stream. Polygons with more than three vertices are
// fan-triangulated and every face index is checked against the vertex count.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		words := bufio.NewScanner(reader)
		words.Split(bufio.ScanWords)
		values = &asciiValueReader{words: words}
	case "binary_little_endian":
		values = &binaryValueReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, header.Format)
	}

	data := &PLYData{
		Vertices: make([]core.Vec3, 0, min(header.VertexCount, maxPrealloc)),
		Faces:    make([]int, 0, min(header.FaceCount, maxPrealloc)*3),
	}

	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, header.HasNormals, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("ply: reading %s data: %w", element.Name, err)
		}
	}

	for _, index := range data.Faces {
		if index < 0 || index >= len(data.Vertices) {
			return nil, fmt.Errorf("%w: vertex %d of %d", ErrFaceIndex, index, len(data.Vertices))
		}
	}

	return data, nil
}

// parsePLYHeader consumes the header up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement

	for lineNumber := 1; ; lineNumber++ {
		raw, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || raw == "") {
			return nil, fmt.Errorf("%w: missing end_header: %v", ErrInvalidHeader, err)
		}

		line := strings.TrimSpace(raw)
		if lineNumber == 1 {
			if line != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidHeader)
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidHeader, lineNumber, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidHeader, lineNumber, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidHeader, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]

			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if current == nil {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidHeader)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current.Properties = append(current.Properties, prop)
			if current.Name == "vertex" && prop.Name == "nx" {
				header.HasNormals = true
			}
		default:
			return nil, fmt.Errorf("%w: unknown keyword %q", ErrInvalidHeader, parts[0])
		}

		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing end_header", ErrInvalidHeader)
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("%w: missing format line", ErrInvalidHeader)
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidHeader)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidHeader)
		}
		if typeSize(parts[1]) == 0 || typeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: list %s %s", ErrUnsupportedType, parts[1], parts[2])
		}
		return PLYProperty{Name: parts[3], IsList: true, ListType: parts[1], DataType: parts[2]}, nil
	}

	if typeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: %s", ErrUnsupportedType, parts[0])
	}
	return PLYProperty{Name: parts[1], Type: parts[0]}, nil
}

func readVertices(values valueReader, element PLYElement, hasNormals bool, data *PLYData) error {
	position := [3]int{-1, -1, -1}
	normal := [3]int{-1, -1, -1}
	for i, prop := range element.Properties {
		switch prop.Name {
		case "x":
			position[0] = i
		case "y":
			position[1] = i
		case "z":
			position[2] = i
		case "nx":
			normal[0] = i
		case "ny":
			normal[1] = i
		case "nz":
			normal[2] = i
		}
	}
	for _, index := range position {
		if index < 0 {
			return ErrMissingPosition
		}
	}
	if hasNormals {
		data.Normals = make([]core.Vec3, 0, min(element.Count, maxPrealloc))
	}

	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for j, prop := range element.Properties {
			if prop.IsList {
				if _, err := readList(values, prop); err != nil {
					return err
				}
				continue
			}
			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			row[j] = value
		}

		data.Vertices = append(data.Vertices, core.NewVec3(row[position[0]], row[position[1]], row[position[2]]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(at(row, normal[0]), at(row, normal[1]), at(row, normal[2])))
		}
	}
	return nil
}

func at(row []float64, index int) float64 {
	if index < 0 {
		return 0
	}
	return row[index]
}

func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList {
				if _, err := values.read(prop.Type); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			list, err := readList(values, prop)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}

			// Fan triangulation around the first vertex
			for k := 1; k+1 < len(list); k++ {
				data.Faces = append(data.Faces, int(list[0]), int(list[k]), int(list[k+1]))
			}
		}
	}
	return nil
}

func skipElement(values valueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			var err error
			if prop.IsList {
				_, err = readList(values, prop)
			} else {
				_, err = values.read(prop.Type)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func readList(values valueReader, prop PLYProperty) ([]float64, error) {
	count, err := values.read(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxListLength || count != math.Trunc(count) {
		return nil, fmt.Errorf("%w: invalid list length %v", ErrInvalidHeader, count)
	}

	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.read(prop.DataType); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// typeSize returns the size in bytes of a PLY data type, or 0 if it is unknown
func typeSize(dataType string) int {
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

// valueReader reads one scalar of a PLY data type from the body
type valueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	words *bufio.Scanner
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	if typeSize(dataType) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, dataType)
	}
	if !a.words.Scan() {
		if err := a.words.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.words.Text(), 64)
}

type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := typeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}
