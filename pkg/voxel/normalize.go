package voxel

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/voxfill/pkg/mesh"
)

// Host is the mesh environment the voxelizer works against. Faces returns a
// snapshot; Scale and Snap mutate every vertex in place; Commit pushes the
// mutated positions back to wherever the mesh came from.
type Host interface {
	Faces() []mesh.Face
	Scale(factor float64)
	Snap(round func(float64) float64)
	Commit() error
}

// Grid describes a unit-pitch mesh: its per-axis coordinate sets and
// bounding box, and how many rescales it took to get there.
type Grid struct {
	Axes     [3]AxialCoordinateSet
	Min, Max [3]float64
	Attempts int
}

// Origin returns the integer grid cell of the bounding box minimum.
func (g *Grid) Origin() [3]int {
	var o [3]int
	for a := range o {
		o[a] = int(math.Floor(g.Min[a]))
	}
	return o
}

// Size returns the number of cells along each axis, max-min truncated.
func (g *Grid) Size() [3]int {
	var s [3]int
	for a := range s {
		s[a] = int(g.Max[a] - g.Min[a])
	}
	return s
}

// Normalizer rescales a mesh until its voxel pitch is one unit on every axis.
type Normalizer struct {
	opts Options
	log  *zap.Logger
}

// NewNormalizer returns a normalizer. A nil logger disables logging.
func NewNormalizer(opts Options, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{opts: opts, log: log}
}

// Measure collects the coordinate sets of faces without touching the mesh.
// It fails with a *DegenerateMeshError if any axis has fewer than two
// distinct coordinates.
func (n *Normalizer) Measure(faces []mesh.Face) (*Grid, error) {
	g := &Grid{}
	for a := AxisX; a <= AxisZ; a++ {
		set := CollectAxis(faces, a, n.opts.Precision)
		if len(set) < 2 {
			return nil, &DegenerateMeshError{Axis: a, Distinct: len(set)}
		}
		g.Axes[a] = set
		g.Min[a] = set.Min()
		g.Max[a] = set.Max()
	}
	return g, nil
}

// offPitch returns the first axis whose pitch is not exactly 1.
func (n *Normalizer) offPitch(g *Grid) (Axis, float64, bool) {
	for a := AxisX; a <= AxisZ; a++ {
		pitch := g.Axes[a].Pitch(n.opts.Precision)
		n.log.Debug("measured pitch",
			zap.Stringer("axis", a),
			zap.Float64("pitch", pitch),
			zap.Int("distinct", len(g.Axes[a])),
		)
		if pitch != 1 {
			return a, pitch, true
		}
	}
	return 0, 0, false
}

// offGrid returns the first axis holding a coordinate that is not an integer.
func (n *Normalizer) offGrid(g *Grid) (Axis, float64, bool) {
	for a := AxisX; a <= AxisZ; a++ {
		for _, c := range g.Axes[a] {
			if c != math.Trunc(c) {
				return a, c, true
			}
		}
	}
	return 0, 0, false
}

// Normalize measures the host mesh and, while some axis pitch is not 1,
// rescales it by 1/pitch (or by the fallback factor when the pitch truncates
// to zero), snaps every coordinate to an integer and measures again from
// scratch. A unit-pitch mesh lying off the integer grid is snapped without
// rescaling. Every snap counts as an attempt. The host mesh is mutated in
// place.
//
// It fails with a *DegenerateMeshError before any mutation when an axis is
// flat, and with a *NormalizationExhaustedError once MaxAttempts attempts
// have not produced a unit pitch on the integer grid.
func (n *Normalizer) Normalize(host Host) (*Grid, error) {
	round := n.opts.Snap.Func()

	for attempt := 0; ; attempt++ {
		g, err := n.Measure(host.Faces())
		if err != nil {
			return nil, err
		}

		axis, pitch, off := n.offPitch(g)
		if !off {
			offAxis, coord, offset := n.offGrid(g)
			if !offset {
				g.Attempts = attempt
				return g, nil
			}
			if attempt >= n.opts.MaxAttempts {
				return nil, &NormalizationExhaustedError{Attempts: attempt, Axis: offAxis, Pitch: 1}
			}
			n.log.Info("mesh is off the integer grid, snapping",
				zap.Stringer("axis", offAxis),
				zap.Float64("coord", coord),
				zap.Int("attempt", attempt+1),
			)
			host.Snap(round)
			continue
		}
		if attempt >= n.opts.MaxAttempts {
			return nil, &NormalizationExhaustedError{Attempts: attempt, Axis: axis, Pitch: pitch}
		}

		factor := n.rescaleFactor(pitch)
		if pitch != 0 {
			n.log.Info("mesh is not unit-sized, rescaling",
				zap.Stringer("axis", axis),
				zap.Float64("pitch", pitch),
				zap.Float64("factor", factor),
				zap.Int("attempt", attempt+1),
			)
		} else {
			n.log.Warn("pitch truncates to zero, applying fallback scale",
				zap.Stringer("axis", axis),
				zap.Float64("factor", factor),
				zap.Int("attempt", attempt+1),
			)
		}

		host.Scale(factor)
		host.Snap(round)
	}
}

func (n *Normalizer) rescaleFactor(pitch float64) float64 {
	if pitch == 0 {
		return n.opts.FallbackScale
	}
	return 1 / pitch
}
