package voxel

import (
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/Faultbox/voxfill/pkg/mesh"
)

// truncSlack absorbs representation error such as 0.3*1e4 = 2999.9999999999995
// before truncation, in units of the last kept digit.
const truncSlack = 1e-6

// Truncate drops the digits of v beyond precision decimal places.
func Truncate(v float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Trunc(v*scale+math.Copysign(truncSlack, v)) / scale
}

// AxialCoordinateSet is the sorted set of distinct truncated vertex
// coordinates along one axis.
type AxialCoordinateSet []float64

// CollectAxis gathers every vertex coordinate along axis, truncated to
// precision digits, de-duplicated and sorted ascending.
func CollectAxis(faces []mesh.Face, axis Axis, precision int) AxialCoordinateSet {
	var coords []float64
	for _, f := range faces {
		for _, p := range f.Positions {
			coords = append(coords, Truncate(p[axis], precision))
		}
	}
	set := lo.Uniq(coords)
	slices.Sort(set)
	return set
}

// Min returns the smallest coordinate. The set must not be empty.
func (s AxialCoordinateSet) Min() float64 {
	return s[0]
}

// Max returns the largest coordinate. The set must not be empty.
func (s AxialCoordinateSet) Max() float64 {
	return s[len(s)-1]
}

// Pitch returns the truncated gap between the two smallest coordinates,
// the mesh's native voxel size along this axis. It is 0 for sets with fewer
// than two entries.
func (s AxialCoordinateSet) Pitch(precision int) float64 {
	if len(s) < 2 {
		return 0
	}
	return Truncate(math.Abs(s[1]-s[0]), precision)
}

// Contains reports whether c is in the set.
func (s AxialCoordinateSet) Contains(c float64) bool {
	_, found := slices.BinarySearch(s, c)
	return found
}
