package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// VXL format errors.
var (
	ErrInvalidVolumeMagic       = errors.New("invalid volume magic: expected 'VOXL'")
	ErrUnsupportedVolumeVersion = errors.New("unsupported volume version")
	ErrTruncatedVolumeData      = errors.New("truncated volume data")
	ErrVolumeDimensions         = errors.New("invalid volume dimensions")
)

const (
	vxlMagic      = "VOXL"
	vxlHeaderSize = 4 + 2 + 3*4 + 3*4
	vxlMaxDim     = 1 << 12
)

// VolumeVersion is the version of a .vxl file.
type VolumeVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v VolumeVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVolumeVersion is the version written by EncodeVolume.
var CurrentVolumeVersion = VolumeVersion{Major: 1, Minor: 0}

// ParseVolume parses a .vxl file from raw bytes.
//
// Layout (little-endian): magic "VOXL", version [minor, major], size X/Y/Z
// as uint32, origin X/Y/Z as int32, then one uint16 per cell in x-major,
// z-minor order.
func ParseVolume(data []byte) (*voxel.Volume, error) {
	if len(data) < vxlHeaderSize {
		return nil, ErrTruncatedVolumeData
	}

	if string(data[0:4]) != vxlMagic {
		return nil, ErrInvalidVolumeMagic
	}

	// Version is stored as [minor, major]
	version := VolumeVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentVolumeVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVolumeVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var size [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: reading size", ErrTruncatedVolumeData)
	}
	var origin [3]int32
	if err := binary.Read(r, binary.LittleEndian, &origin); err != nil {
		return nil, fmt.Errorf("%w: reading origin", ErrTruncatedVolumeData)
	}

	if err := checkDims([3]int{int(size[0]), int(size[1]), int(size[2])}); err != nil {
		return nil, err
	}

	cellCount := int(size[0]) * int(size[1]) * int(size[2])
	if r.Len() < cellCount*2 {
		return nil, fmt.Errorf("%w: need %d cells, have %d bytes", ErrTruncatedVolumeData, cellCount, r.Len())
	}
	cells := make([]uint16, cellCount)
	if err := binary.Read(r, binary.LittleEndian, cells); err != nil {
		return nil, fmt.Errorf("%w: reading cells", ErrTruncatedVolumeData)
	}

	return voxel.NewVolume(
		[3]int{int(size[0]), int(size[1]), int(size[2])},
		[3]int{int(origin[0]), int(origin[1]), int(origin[2])},
		cells,
	)
}

// checkDims rejects sizes that are negative or larger than vxlMaxDim on any
// axis. Every format shares the limit so anything written can be read back.
func checkDims(size [3]int) error {
	for _, s := range size {
		if s < 0 || s > vxlMaxDim {
			return fmt.Errorf("%w: %dx%dx%d (each axis must be in [0,%d])",
				ErrVolumeDimensions, size[0], size[1], size[2], vxlMaxDim)
		}
	}
	return nil
}

// ParseVolumeFile parses a .vxl file from disk.
func ParseVolumeFile(path string) (*voxel.Volume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading volume file: %w", err)
	}
	return ParseVolume(data)
}

// EncodeVolume writes vol in .vxl layout. Volumes larger than the parser
// accepts are rejected.
func EncodeVolume(w io.Writer, vol *voxel.Volume) error {
	size, origin := vol.Size(), vol.Origin()
	if err := checkDims(size); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	buf.Grow(vxlHeaderSize + vol.Len()*2)
	buf.WriteString(vxlMagic)
	buf.WriteByte(CurrentVolumeVersion.Minor)
	buf.WriteByte(CurrentVolumeVersion.Major)
	for _, v := range []any{
		[3]uint32{uint32(size[0]), uint32(size[1]), uint32(size[2])},
		[3]int32{int32(origin[0]), int32(origin[1]), int32(origin[2])},
		vol.Cells(),
	} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("encoding volume: %w", err)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteVolumeFile writes vol to path as .vxl.
func WriteVolumeFile(path string, vol *voxel.Volume) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return EncodeVolume(w, vol)
	})
}
