package mesh

// Builder assembles blocky meshes out of unit quads, welding shared corners.
type Builder struct {
	mesh  *Mesh
	pitch float64
	index map[[3]int]int
}

// NewBuilder returns a builder whose grid corners are pitch units apart.
func NewBuilder(pitch float64) *Builder {
	return &Builder{mesh: New(), pitch: pitch, index: make(map[[3]int]int)}
}

func (b *Builder) vertex(c [3]int) int {
	if id, ok := b.index[c]; ok {
		return id
	}
	id := b.mesh.AddVertex(Vec3{float64(c[0]) * b.pitch, float64(c[1]) * b.pitch, float64(c[2]) * b.pitch})
	b.index[c] = id
	return id
}

// Quad adds one unit square perpendicular to axis, with its lowest corner at c.
func (b *Builder) Quad(axis int, c [3]int, material int) {
	u, v := (axis+1)%3, (axis+2)%3
	corners := [4][3]int{c, c, c, c}
	corners[1][u]++
	corners[2][u]++
	corners[2][v]++
	corners[3][v]++
	b.mesh.Polygons = append(b.mesh.Polygons, Polygon{
		Indices:  []int{b.vertex(corners[0]), b.vertex(corners[1]), b.vertex(corners[2]), b.vertex(corners[3])},
		Material: material,
	})
}

// Box adds the closed shell of the grid box [min, max), tiled with unit quads.
func (b *Builder) Box(min, max [3]int, material int) {
	for axis := 0; axis < 3; axis++ {
		u, v := (axis+1)%3, (axis+2)%3
		for _, side := range [2]int{min[axis], max[axis]} {
			for i := min[u]; i < max[u]; i++ {
				for j := min[v]; j < max[v]; j++ {
					var c [3]int
					c[axis], c[u], c[v] = side, i, j
					b.Quad(axis, c, material)
				}
			}
		}
	}
}

// Mesh returns the assembled mesh.
func (b *Builder) Mesh() *Mesh {
	return b.mesh
}

// Box returns a unit-quad shell of the grid box [min, max) with the given pitch.
func Box(min, max [3]int, pitch float64, material int) *Mesh {
	b := NewBuilder(pitch)
	b.Box(min, max, material)
	return b.Mesh()
}
