package formats

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// VolumeJSON is the JSON form of a volume: Cells is indexed [x][y][z].
type VolumeJSON struct {
	Size   [3]int       `json:"size"`
	Origin [3]int       `json:"origin"`
	Cells  [][][]uint16 `json:"cells"`
}

// EncodeJSON writes vol as JSON.
func EncodeJSON(w io.Writer, vol *voxel.Volume) error {
	if err := checkDims(vol.Size()); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(VolumeJSON{
		Size:   vol.Size(),
		Origin: vol.Origin(),
		Cells:  vol.Nested(),
	})
}

// ParseJSON reads a volume written by EncodeJSON.
func ParseJSON(data []byte) (*voxel.Volume, error) {
	var doc VolumeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding volume json: %w", err)
	}

	size := doc.Size
	if err := checkDims(size); err != nil {
		return nil, fmt.Errorf("volume json: %w", err)
	}
	if len(doc.Cells) != size[0] {
		return nil, fmt.Errorf("volume json: %d x-slices, size says %d", len(doc.Cells), size[0])
	}
	for x, plane := range doc.Cells {
		if len(plane) != size[1] {
			return nil, fmt.Errorf("volume json: x=%d has %d y-rows, size says %d", x, len(plane), size[1])
		}
		for y, row := range plane {
			if len(row) != size[2] {
				return nil, fmt.Errorf("volume json: (%d,%d) has %d cells, size says %d", x, y, len(row), size[2])
			}
		}
	}

	cells := make([]uint16, 0, size[0]*size[1]*size[2])
	for _, plane := range doc.Cells {
		for _, row := range plane {
			cells = append(cells, row...)
		}
	}
	return voxel.NewVolume(size, doc.Origin, cells)
}

// ParseJSONFile reads a JSON volume from disk.
func ParseJSONFile(path string) (*voxel.Volume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading volume file: %w", err)
	}
	return ParseJSON(data)
}

// WriteJSONFile writes vol to path as JSON.
func WriteJSONFile(path string, vol *voxel.Volume) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return EncodeJSON(w, vol)
	})
}
