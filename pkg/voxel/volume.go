package voxel

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Volume is a dense occupancy grid indexed [x][y][z] from zero. Each cell is
// 0 (empty) or a Marker (solid, material = value-1). A Volume is immutable
// once built.
type Volume struct {
	size   [3]int
	origin [3]int
	cells  []uint16
}

// NewVolume wraps cells laid out x-major, z-minor. The volume takes
// ownership of cells.
func NewVolume(size, origin [3]int, cells []uint16) (*Volume, error) {
	for a, s := range size {
		if s < 0 {
			return nil, fmt.Errorf("negative size %d on axis %s", s, Axis(a))
		}
	}
	if want := size[0] * size[1] * size[2]; len(cells) != want {
		return nil, fmt.Errorf("volume %dx%dx%d needs %d cells, got %d", size[0], size[1], size[2], want, len(cells))
	}
	return &Volume{size: size, origin: origin, cells: cells}, nil
}

func newEmptyVolume(size, origin [3]int) *Volume {
	for a := range size {
		if size[a] < 0 {
			size[a] = 0
		}
	}
	return &Volume{size: size, origin: origin, cells: make([]uint16, size[0]*size[1]*size[2])}
}

// Size returns the cell counts along X, Y and Z.
func (v *Volume) Size() [3]int {
	return v.size
}

// Origin returns the mesh-space grid cell that index (0,0,0) maps to.
func (v *Volume) Origin() [3]int {
	return v.origin
}

func (v *Volume) index(x, y, z int) (int, bool) {
	if x < 0 || y < 0 || z < 0 || x >= v.size[0] || y >= v.size[1] || z >= v.size[2] {
		return 0, false
	}
	return (x*v.size[1]+y)*v.size[2] + z, true
}

func (v *Volume) set(c [3]int, m Marker) {
	if i, ok := v.index(c[0], c[1], c[2]); ok {
		v.cells[i] = uint16(m)
	}
}

// At returns the cell value, or 0 outside the volume.
func (v *Volume) At(x, y, z int) uint16 {
	i, ok := v.index(x, y, z)
	if !ok {
		return 0
	}
	return v.cells[i]
}

// Solid reports whether the cell is nonzero.
func (v *Volume) Solid(x, y, z int) bool {
	return v.At(x, y, z) != 0
}

// Material returns the material index of a solid cell.
func (v *Volume) Material(x, y, z int) (int, bool) {
	value := v.At(x, y, z)
	if value == 0 {
		return 0, false
	}
	return int(value) - 1, true
}

// Len returns the total number of cells.
func (v *Volume) Len() int {
	return len(v.cells)
}

// Count returns the number of solid cells.
func (v *Volume) Count() int {
	n := 0
	for _, c := range v.cells {
		if c != 0 {
			n++
		}
	}
	return n
}

// Empty reports whether no cell is solid.
func (v *Volume) Empty() bool {
	return v.Count() == 0
}

// Histogram counts solid cells per value.
func (v *Volume) Histogram() map[uint16]int {
	h := make(map[uint16]int)
	for _, c := range v.cells {
		if c != 0 {
			h[c]++
		}
	}
	return h
}

// Values returns the distinct nonzero cell values in ascending order.
func (v *Volume) Values() []uint16 {
	values := lo.Keys(v.Histogram())
	slices.Sort(values)
	return values
}

// Each calls fn for every solid cell in x, y, z order.
func (v *Volume) Each(fn func(x, y, z int, value uint16)) {
	i := 0
	for x := 0; x < v.size[0]; x++ {
		for y := 0; y < v.size[1]; y++ {
			for z := 0; z < v.size[2]; z++ {
				if c := v.cells[i]; c != 0 {
					fn(x, y, z, c)
				}
				i++
			}
		}
	}
}

// Nested returns the volume as [sizeX][sizeY][sizeZ] slices.
func (v *Volume) Nested() [][][]uint16 {
	out := make([][][]uint16, v.size[0])
	for x := range out {
		out[x] = make([][]uint16, v.size[1])
		for y := range out[x] {
			start := (x*v.size[1] + y) * v.size[2]
			out[x][y] = slices.Clone(v.cells[start : start+v.size[2]])
		}
	}
	return out
}

// Cells returns a copy of the flat cell array, x-major, z-minor.
func (v *Volume) Cells() []uint16 {
	return slices.Clone(v.cells)
}
