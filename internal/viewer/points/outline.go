package points

import "github.com/go-gl/mathgl/mgl32"

// OutlineVertexCount is the number of line vertices in an outline (12 edges).
const OutlineVertexCount = 24

// Outline returns the 12 edges of the box [min, max] as GL_LINES vertices
// in the interleaved position+color layout.
func Outline(min, max mgl32.Vec3, color mgl32.Vec3) []float32 {
	corners := [8]mgl32.Vec3{}
	for i := range corners {
		for a := 0; a < 3; a++ {
			if i&(1<<a) != 0 {
				corners[i][a] = max[a]
			} else {
				corners[i][a] = min[a]
			}
		}
	}

	data := make([]float32, 0, OutlineVertexCount*Stride)
	for i := range corners {
		for a := 0; a < 3; a++ {
			j := i | 1<<a
			if j == i {
				continue
			}
			for _, c := range [2]mgl32.Vec3{corners[i], corners[j]} {
				data = append(data, c[0], c[1], c[2], color[0], color[1], color[2])
			}
		}
	}
	return data
}
