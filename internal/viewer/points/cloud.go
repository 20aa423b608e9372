// Package points turns a voxel volume into a colored point cloud and draws it.
package points

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// Stride is the number of floats per point: position xyz, color rgb.
const Stride = 6

// palette colors materials in turn.
var palette = []mgl32.Vec3{
	{0.80, 0.80, 0.78}, // material 0, also unmarked interior
	{0.85, 0.33, 0.25},
	{0.30, 0.65, 0.35},
	{0.28, 0.45, 0.85},
	{0.90, 0.75, 0.25},
	{0.65, 0.40, 0.80},
	{0.25, 0.75, 0.80},
	{0.90, 0.55, 0.20},
}

// Color returns the display color of a cell value.
func Color(value uint16) mgl32.Vec3 {
	if value == 0 {
		return mgl32.Vec3{}
	}
	return palette[int(value-1)%len(palette)]
}

// Cloud is an interleaved point buffer plus the bounds of its positions.
type Cloud struct {
	Data     []float32
	Min, Max mgl32.Vec3
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.Data) / Stride
}

// Build emits one point per solid cell at the cell center. Volume Z is
// mapped to GL Y (up) and volume Y to GL -Z, and the cloud is centered on
// the origin.
func Build(vol *voxel.Volume) *Cloud {
	size := vol.Size()
	half := mgl32.Vec3{float32(size[0]) / 2, float32(size[2]) / 2, -float32(size[1]) / 2}

	c := &Cloud{
		Data: make([]float32, 0, vol.Count()*Stride),
		Min:  half.Mul(-1),
		Max:  half,
	}
	// Depth runs along -Z, so swap that axis of the box.
	c.Min[2], c.Max[2] = half[2], -half[2]

	vol.Each(func(x, y, z int, value uint16) {
		pos := mgl32.Vec3{float32(x) + 0.5, float32(z) + 0.5, -(float32(y) + 0.5)}.Sub(half)
		col := Color(value)
		c.Data = append(c.Data, pos[0], pos[1], pos[2], col[0], col[1], col[2])
	})
	return c
}
