package voxel

import (
	"fmt"

	"go.uber.org/zap"
)

// Result is the outcome of a voxelization.
type Result struct {
	Volume    *Volume
	Grid      *Grid
	Occupancy OccupancyMap
	Planes    []Plane

	// Warnings holds non-fatal conditions such as ErrEmptySelection.
	Warnings []error
}

// Voxelizer runs normalization, planar selection, occupancy recording and
// parity fill over a host mesh.
type Voxelizer struct {
	opts       Options
	log        *zap.Logger
	normalizer *Normalizer
}

// New returns a voxelizer. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Voxelizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Voxelizer{
		opts:       opts,
		log:        log,
		normalizer: NewNormalizer(opts, log),
	}
}

// Options returns the voxelizer settings.
func (v *Voxelizer) Options() Options {
	return v.opts
}

// Voxelize converts the host mesh into a dense volume. The host is rescaled
// and snapped in place when its pitch is not one unit or it lies off the
// integer grid, and committed once normalization has changed it. On error no
// volume is returned and nothing is committed.
func (v *Voxelizer) Voxelize(host Host) (*Result, error) {
	if err := v.opts.Validate(); err != nil {
		return nil, fmt.Errorf("voxelize: %w", err)
	}

	grid, err := v.normalizer.Normalize(host)
	if err != nil {
		return nil, err
	}

	faces := host.Faces()
	planes := SelectPlanar(faces, v.opts.ScanAxis, v.opts.Precision)
	occ, err := BuildOccupancy(planes)
	if err != nil {
		return nil, err
	}

	// Commit only once nothing else can fail.
	if grid.Attempts > 0 {
		if err := host.Commit(); err != nil {
			return nil, fmt.Errorf("commit normalized mesh: %w", err)
		}
	}

	res := &Result{
		Grid:      grid,
		Occupancy: occ,
		Planes:    planes,
	}
	if len(planes) == 0 {
		v.log.Warn("no planar faces on scan axis, volume will be empty",
			zap.Stringer("axis", v.opts.ScanAxis),
			zap.Int("faces", len(faces)),
		)
		res.Warnings = append(res.Warnings, ErrEmptySelection)
		res.Volume = newEmptyVolume(grid.Size(), grid.Origin())
		return res, nil
	}

	res.Volume = Fill(grid, occ, v.opts)

	v.log.Debug("voxelized",
		zap.Ints("size", res.Volume.size[:]),
		zap.Ints("origin", res.Volume.origin[:]),
		zap.Int("planes", len(planes)),
		zap.Int("crossings", len(occ)),
		zap.Int("solid", res.Volume.Count()),
		zap.Int("rescales", grid.Attempts),
	)
	return res, nil
}
