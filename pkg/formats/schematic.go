package formats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// Schematic errors.
var (
	ErrBlockIDRange      = errors.New("block id does not fit a schematic byte")
	ErrSchematicTooLarge = errors.New("volume too large for a schematic")
	ErrInvalidSchematic  = errors.New("invalid schematic")
)

// Schematic is the MCEdit schematic compound. Blocks and Data are indexed
// (y*Length+z)*Width+x with y pointing up.
type Schematic struct {
	Width        int16      `nbt:"Width"`
	Height       int16      `nbt:"Height"`
	Length       int16      `nbt:"Length"`
	Materials    string     `nbt:"Materials"`
	Blocks       []byte     `nbt:"Blocks"`
	Data         []byte     `nbt:"Data"`
	Entities     []struct{} `nbt:"Entities"`
	TileEntities []struct{} `nbt:"TileEntities"`
}

// At returns the block id at (x, y, z), y up.
func (s *Schematic) At(x, y, z int) byte {
	return s.Blocks[(y*int(s.Length)+z)*int(s.Width)+x]
}

// NewSchematic lays vol out as a schematic. Volume X and Y become the
// horizontal X and Z of the block world, volume Z becomes its height.
// Cell values go through palette; values missing from it are used as block
// ids directly.
func NewSchematic(vol *voxel.Volume, palette map[uint16]int) (*Schematic, error) {
	size := vol.Size()
	for _, s := range size {
		if s > math.MaxInt16 {
			return nil, fmt.Errorf("%w: %dx%dx%d", ErrSchematicTooLarge, size[0], size[1], size[2])
		}
	}
	width, length, height := size[0], size[1], size[2]

	s := &Schematic{
		Width:        int16(width),
		Height:       int16(height),
		Length:       int16(length),
		Materials:    "Alpha",
		Blocks:       make([]byte, vol.Len()),
		Data:         make([]byte, vol.Len()),
		Entities:     []struct{}{},
		TileEntities: []struct{}{},
	}

	var err error
	vol.Each(func(x, y, z int, value uint16) {
		if err != nil {
			return
		}
		id := int(value)
		if mapped, ok := palette[value]; ok {
			id = mapped
		}
		if id < 0 || id > math.MaxUint8 {
			err = fmt.Errorf("%w: cell value %d maps to %d", ErrBlockIDRange, value, id)
			return
		}
		s.Blocks[(z*length+y)*width+x] = byte(id)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeSchematic writes s as gzip-compressed NBT.
func EncodeSchematic(w io.Writer, s *Schematic) error {
	zw := gzip.NewWriter(w)
	err := nbt.NewEncoder(zw).Encode(s, "Schematic")
	return multierr.Append(err, zw.Close())
}

// ParseSchematic reads a gzip-compressed NBT schematic.
func ParseSchematic(r io.Reader) (*Schematic, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchematic, err)
	}
	defer zr.Close()

	var s Schematic
	if _, err := nbt.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchematic, err)
	}
	if want := int(s.Width) * int(s.Height) * int(s.Length); len(s.Blocks) != want {
		return nil, fmt.Errorf("%w: %d blocks for %dx%dx%d", ErrInvalidSchematic, len(s.Blocks), s.Width, s.Height, s.Length)
	}
	return &s, nil
}

// ParseSchematicFile reads a schematic from disk.
func ParseSchematicFile(path string) (*Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading schematic file: %w", err)
	}
	defer f.Close()
	return ParseSchematic(f)
}

// WriteSchematicFile writes vol to path as a schematic.
func WriteSchematicFile(path string, vol *voxel.Volume, palette map[uint16]int) error {
	s, err := NewSchematic(vol, palette)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, func(w io.Writer) error {
		return EncodeSchematic(w, s)
	})
}
