package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/voxfill/pkg/encoding"
)

// OBJ errors.
var (
	ErrInvalidOBJVertex = errors.New("invalid OBJ vertex")
	ErrInvalidOBJFace   = errors.New("invalid OBJ face")
)

// OBJOptions tunes OBJ parsing.
type OBJOptions struct {
	// MaterialCharset names the charset of usemtl names ("" = UTF-8).
	MaterialCharset string
}

// LoadOBJ reads a Wavefront OBJ file from disk.
func LoadOBJ(path string, opts OBJOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseOBJ(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// ParseOBJ reads vertices, polygon faces and usemtl groups. Each distinct
// usemtl name gets the next material index in order of first appearance;
// faces before any usemtl use material 0. Texture coordinates, normals,
// objects, groups and smoothing records are ignored.
func ParseOBJ(r io.Reader, opts OBJOptions) (*Mesh, error) {
	dec, err := encoding.NewDecoder(opts.MaterialCharset)
	if err != nil {
		return nil, err
	}

	m := New()
	materials := make(map[string]int)
	current := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseOBJVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.AddVertex(v)

		case "f":
			indices, err := parseOBJFace(fields[1:], len(m.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := m.AddPolygon(current, indices...); err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, ErrInvalidOBJFace, err)
			}

		case "usemtl":
			name := dec.String(strings.TrimSpace(strings.TrimPrefix(line, "usemtl")))
			idx, ok := materials[name]
			if !ok {
				idx = len(m.Materials)
				materials[name] = idx
				m.Materials = append(m.Materials, name)
			}
			current = idx
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

func parseOBJVertex(fields []string) (Vec3, error) {
	if len(fields) < 3 {
		return Vec3{}, fmt.Errorf("%w: expected 3 coordinates, found %d", ErrInvalidOBJVertex, len(fields))
	}
	var v Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: %v", ErrInvalidOBJVertex, err)
		}
		v[i] = f
	}
	return v, nil
}

// parseOBJFace resolves "i", "i/t", "i//n" and "i/t/n" references, 1-based
// or negative (relative to the vertices read so far).
func parseOBJFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 vertices, found %d", ErrInvalidOBJFace, len(fields))
	}
	indices := make([]int, len(fields))
	for i, field := range fields {
		ref, _, _ := strings.Cut(field, "/")
		n, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOBJFace, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n = vertexCount + n
		default:
			return nil, fmt.Errorf("%w: vertex index 0", ErrInvalidOBJFace)
		}
		indices[i] = n
	}
	return indices, nil
}

// WriteOBJ writes the mesh as OBJ. Material groups are emitted as usemtl
// records named after Materials, or "material_<n>" when unnamed.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatCoord(v[0]), formatCoord(v[1]), formatCoord(v[2]))
	}

	current := -1
	for _, p := range m.Polygons {
		if p.Material != current {
			current = p.Material
			fmt.Fprintf(bw, "usemtl %s\n", m.materialName(current))
		}
		bw.WriteString("f")
		for _, idx := range p.Indices {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// SaveOBJ writes the mesh to path, replacing any existing file only once the
// write succeeded.
func (m *Mesh) SaveOBJ(path string) (err error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	err = m.WriteOBJ(f)
	err = multierr.Append(err, f.Close())
	if err != nil {
		return multierr.Append(err, os.Remove(tmp))
	}
	return os.Rename(tmp, path)
}

func (m *Mesh) materialName(idx int) string {
	if idx < len(m.Materials) && m.Materials[idx] != "" {
		return m.Materials[idx]
	}
	return "material_" + strconv.Itoa(idx)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
