package voxel

// Fill materializes the dense volume for grid by parity fill along
// opts.ScanAxis.
//
// Every line parallel to the scan axis starts outside. Each recorded
// crossing toggles the inside flag before the cell is written, so the
// entering crossing is solid and the leaving crossing is empty. Cells
// passed while inside take the crossing marker at that exact cell if there
// is one, otherwise DefaultMarker (or, with InteriorPropagate, the marker of
// the crossing that entered). A line with an odd number of crossings stays
// inside up to the far edge of the volume.
func Fill(grid *Grid, occ OccupancyMap, opts Options) *Volume {
	origin := grid.Origin()
	size := grid.Size()
	vol := newEmptyVolume(size, origin)

	scan := opts.ScanAxis
	u, w := scan.others()

	var local [3]int
	for i := 0; i < vol.size[u]; i++ {
		for j := 0; j < vol.size[w]; j++ {
			local[u], local[w] = i, j

			inside := false
			carry := DefaultMarker
			for k := 0; k < vol.size[scan]; k++ {
				local[scan] = k
				cell := Cell{local[0] + origin[0], local[1] + origin[1], local[2] + origin[2]}

				marker, crossing := occ.Lookup(cell)
				if crossing {
					inside = !inside
					if inside {
						carry = marker
					}
				}
				if !inside {
					continue
				}

				switch {
				case crossing:
					vol.set(local, marker)
				case opts.Interior == InteriorPropagate:
					vol.set(local, carry)
				default:
					vol.set(local, DefaultMarker)
				}
			}
		}
	}
	return vol
}
