package formats

import (
	"os"

	"github.com/gmlewis/stldice/v4/binvox"
	"go.uber.org/multierr"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// NewBinvox returns the occupancy of vol as a binvox model. Materials are
// dropped; every solid cell becomes one voxel. The model is translated to
// the volume origin with one unit per voxel along the longest axis.
func NewBinvox(vol *voxel.Volume) *binvox.BinVOX {
	size, origin := vol.Size(), vol.Origin()
	scale := float64(max(size[0], size[1], size[2]))

	b := binvox.New(size[0], size[1], size[2],
		float64(origin[0]), float64(origin[1]), float64(origin[2]),
		scale, false)
	vol.Each(func(x, y, z int, _ uint16) {
		b.Add(x, y, z)
	})
	return b
}

// WriteBinvoxFile writes the occupancy of vol to path as binvox.
func WriteBinvoxFile(path string, vol *voxel.Volume) error {
	b := NewBinvox(vol)
	tmp := path + ".tmp"
	if err := b.Write(tmp, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
		return multierr.Append(err, removeIfExists(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return multierr.Append(err, removeIfExists(tmp))
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
