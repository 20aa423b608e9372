package voxel

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/Faultbox/voxfill/pkg/mesh"
)

// Cell is an integer grid coordinate (x, y, z).
type Cell [3]int

// Marker is a stored cell value: material index + 1. Zero means empty.
type Marker uint16

// MaxMaterial is the largest material index a Marker can carry.
const MaxMaterial = math.MaxUint16 - 1

// MarkerFor returns the marker recorded for a face of the given material.
func MarkerFor(material int) (Marker, error) {
	if material < 0 || material > MaxMaterial {
		return 0, fmt.Errorf("%w: %d not in [0,%d]", ErrMaterialRange, material, MaxMaterial)
	}
	return Marker(material + 1), nil
}

// Material returns the material index carried by m, or -1 for an empty marker.
func (m Marker) Material() int {
	return int(m) - 1
}

// Plane is the set of faces lying flat at one scan-axis coordinate.
type Plane struct {
	Axis  Axis
	Coord float64
	Faces []mesh.Face
}

// SelectPlanar groups the faces whose vertices all share one truncated
// coordinate along axis. Faces spanning several planes are left out. Planes
// are returned in ascending coordinate order.
func SelectPlanar(faces []mesh.Face, axis Axis, precision int) []Plane {
	byCoord := make(map[float64][]mesh.Face)
	for _, f := range faces {
		if len(f.Positions) == 0 {
			continue
		}
		coord := Truncate(f.Positions[0][axis], precision)
		planar := true
		for _, p := range f.Positions[1:] {
			if Truncate(p[axis], precision) != coord {
				planar = false
				break
			}
		}
		if planar {
			byCoord[coord] = append(byCoord[coord], f)
		}
	}

	coords := lo.Keys(byCoord)
	slices.Sort(coords)

	planes := make([]Plane, len(coords))
	for i, c := range coords {
		planes[i] = Plane{Axis: axis, Coord: c, Faces: byCoord[c]}
	}
	return planes
}

// OccupancyMap records crossing markers at the cells where planar faces sit.
// Interior cells are never stored; the fill infers them.
type OccupancyMap map[Cell]Marker

// BuildOccupancy records every planar face at the floor of its centroid.
// On the scan axis the plane coordinate is used directly, since every vertex
// lies on it. Later faces overwrite earlier ones at the same cell.
func BuildOccupancy(planes []Plane) (OccupancyMap, error) {
	occ := make(OccupancyMap)
	for _, plane := range planes {
		level := int(math.Floor(plane.Coord))
		for _, f := range plane.Faces {
			marker, err := MarkerFor(f.Material)
			if err != nil {
				return nil, err
			}
			c := f.Centroid()
			cell := Cell{int(math.Floor(c[0])), int(math.Floor(c[1])), int(math.Floor(c[2]))}
			cell[plane.Axis] = level
			occ[cell] = marker
		}
	}
	return occ, nil
}

// Lookup returns the marker at c and whether one was recorded.
func (m OccupancyMap) Lookup(c Cell) (Marker, bool) {
	marker, ok := m[c]
	return marker, ok && marker != 0
}
