// Package mesh holds polygon meshes and the importers that read them from disk.
package mesh

import (
	"fmt"
	"math"
)

// Vec3 is a point in mesh space, indexed by axis (0=X, 1=Y, 2=Z).
type Vec3 [3]float64

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Cross returns the cross product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Face is a snapshot of one polygon: its vertex positions in order and its
// material index.
type Face struct {
	Positions []Vec3
	Material  int
}

// Centroid returns the area-weighted center of the polygon. The polygon is
// fanned from its first vertex; degenerate (zero-area) polygons fall back to
// the vertex mean.
func (f Face) Centroid() Vec3 {
	n := len(f.Positions)
	if n == 0 {
		return Vec3{}
	}

	var sum Vec3
	var total float64
	a := f.Positions[0]
	for i := 1; i+1 < n; i++ {
		b, c := f.Positions[i], f.Positions[i+1]
		area := b.Sub(a).Cross(c.Sub(a)).Length() / 2
		center := a.Add(b).Add(c).Scale(1.0 / 3.0)
		sum = sum.Add(center.Scale(area))
		total += area
	}
	if total > 0 {
		return sum.Scale(1 / total)
	}

	var mean Vec3
	for _, p := range f.Positions {
		mean = mean.Add(p)
	}
	return mean.Scale(1 / float64(n))
}

// Polygon references shared vertices by index.
type Polygon struct {
	Indices  []int
	Material int
}

// Mesh is an indexed polygon mesh. Vertices are shared between polygons, so
// a transform moves each vertex exactly once.
type Mesh struct {
	Vertices  []Vec3
	Polygons  []Polygon
	Materials []string // material names by index, may be empty

	commitPath string
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddPolygon appends a polygon over existing vertex indices.
func (m *Mesh) AddPolygon(material int, indices ...int) error {
	if len(indices) < 3 {
		return fmt.Errorf("polygon needs at least 3 vertices, got %d", len(indices))
	}
	if material < 0 {
		return fmt.Errorf("negative material index %d", material)
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("vertex index %d out of range [0,%d)", idx, len(m.Vertices))
		}
	}
	m.Polygons = append(m.Polygons, Polygon{
		Indices:  append([]int(nil), indices...),
		Material: material,
	})
	return nil
}

// Faces returns a position snapshot of every polygon.
func (m *Mesh) Faces() []Face {
	faces := make([]Face, len(m.Polygons))
	for i, p := range m.Polygons {
		positions := make([]Vec3, len(p.Indices))
		for j, idx := range p.Indices {
			positions[j] = m.Vertices[idx]
		}
		faces[i] = Face{Positions: positions, Material: p.Material}
	}
	return faces
}

// Scale multiplies every vertex position by factor on all axes.
func (m *Mesh) Scale(factor float64) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Scale(factor)
	}
}

// Snap replaces every vertex coordinate by round(coordinate).
func (m *Mesh) Snap(round func(float64) float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = Vec3{round(v[0]), round(v[1]), round(v[2])}
	}
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max
}

// Clone returns a deep copy. The commit target is not copied.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices:  append([]Vec3(nil), m.Vertices...),
		Polygons:  make([]Polygon, len(m.Polygons)),
		Materials: append([]string(nil), m.Materials...),
	}
	for i, p := range m.Polygons {
		c.Polygons[i] = Polygon{Indices: append([]int(nil), p.Indices...), Material: p.Material}
	}
	return c
}

// SetCommitPath makes Commit write the mesh to path as OBJ.
// An empty path turns Commit into a no-op.
func (m *Mesh) SetCommitPath(path string) {
	m.commitPath = path
}

// Commit pushes the current vertex positions to the commit target, if any.
func (m *Mesh) Commit() error {
	if m.commitPath == "" {
		return nil
	}
	return m.SaveOBJ(m.commitPath)
}
