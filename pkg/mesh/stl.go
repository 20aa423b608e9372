package mesh

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unixpickle/model3d/model3d"
)

// LoadSTL reads an ASCII or binary STL file. STL carries no materials, so
// every triangle gets material 0. Vertices with identical positions are
// merged so that rescaling treats the mesh as one connected surface.
func LoadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tris, err := model3d.ReadSTL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return FromTriangles(tris), nil
}

// FromTriangles builds an indexed mesh from model3d triangles.
func FromTriangles(tris []*model3d.Triangle) *Mesh {
	m := New()
	index := make(map[Vec3]int, len(tris))
	for _, t := range tris {
		var ids [3]int
		for i, c := range t {
			v := Vec3{c.X, c.Y, c.Z}
			id, ok := index[v]
			if !ok {
				id = m.AddVertex(v)
				index[v] = id
			}
			ids[i] = id
		}
		m.Polygons = append(m.Polygons, Polygon{Indices: ids[:], Material: 0})
	}
	return m
}
