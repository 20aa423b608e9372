package voxel

import (
	"fmt"
	"math"
	"strings"
)

// Defaults.
const (
	DefaultPrecision     = 4   // decimal digits kept when comparing coordinates
	DefaultMaxAttempts   = 5   // rescales before giving up
	DefaultFallbackScale = 100 // factor used when the pitch truncates to zero

	// DefaultMarker is the value of an interior cell with no recorded crossing.
	DefaultMarker Marker = 1
)

// SnapMode selects how rescaled coordinates are moved onto the integer grid.
type SnapMode int

const (
	// SnapRound moves each coordinate to the nearest integer.
	SnapRound SnapMode = iota
	// SnapCeil moves each coordinate up to the next integer. Floating-point
	// noise just above an integer shifts the vertex by a whole voxel.
	SnapCeil
)

// String returns the config name of the mode.
func (m SnapMode) String() string {
	switch m {
	case SnapRound:
		return "round"
	case SnapCeil:
		return "ceil"
	default:
		return fmt.Sprintf("SnapMode(%d)", int(m))
	}
}

// Func returns the rounding function for the mode.
func (m SnapMode) Func() func(float64) float64 {
	if m == SnapCeil {
		return math.Ceil
	}
	return math.Round
}

// ParseSnapMode parses "round" or "ceil".
func ParseSnapMode(s string) (SnapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "nearest":
		return SnapRound, nil
	case "ceil", "ceiling":
		return SnapCeil, nil
	}
	return 0, fmt.Errorf("invalid snap mode %q (want round or ceil)", s)
}

// InteriorMode selects the value written to interior cells that carry no
// crossing of their own.
type InteriorMode int

const (
	// InteriorDefault writes DefaultMarker; materials are kept only at
	// crossing cells.
	InteriorDefault InteriorMode = iota
	// InteriorPropagate writes the marker of the crossing that last turned
	// the scan line inside.
	InteriorPropagate
)

// String returns the config name of the mode.
func (m InteriorMode) String() string {
	switch m {
	case InteriorDefault:
		return "default"
	case InteriorPropagate:
		return "propagate"
	default:
		return fmt.Sprintf("InteriorMode(%d)", int(m))
	}
}

// ParseInteriorMode parses "default" or "propagate".
func ParseInteriorMode(s string) (InteriorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return InteriorDefault, nil
	case "propagate":
		return InteriorPropagate, nil
	}
	return 0, fmt.Errorf("invalid interior mode %q (want default or propagate)", s)
}

// Options configures normalization and filling.
type Options struct {
	Precision     int
	MaxAttempts   int
	FallbackScale float64
	Snap          SnapMode
	ScanAxis      Axis
	Interior      InteriorMode
}

// DefaultOptions returns the standard settings: 4-digit precision, 5
// rescale attempts, fallback factor 100, nearest-integer snapping, Z scan
// axis and default interior markers.
func DefaultOptions() Options {
	return Options{
		Precision:     DefaultPrecision,
		MaxAttempts:   DefaultMaxAttempts,
		FallbackScale: DefaultFallbackScale,
		Snap:          SnapRound,
		ScanAxis:      AxisZ,
		Interior:      InteriorDefault,
	}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Precision < 0 || o.Precision > 12 {
		return fmt.Errorf("precision %d out of range [0,12]", o.Precision)
	}
	if o.MaxAttempts < 0 {
		return fmt.Errorf("max attempts %d must not be negative", o.MaxAttempts)
	}
	if o.FallbackScale <= 1 {
		return fmt.Errorf("fallback scale %g must be greater than 1", o.FallbackScale)
	}
	if !o.ScanAxis.Valid() {
		return fmt.Errorf("invalid scan axis %d", int(o.ScanAxis))
	}
	if o.Snap != SnapRound && o.Snap != SnapCeil {
		return fmt.Errorf("invalid snap mode %d", int(o.Snap))
	}
	if o.Interior != InteriorDefault && o.Interior != InteriorPropagate {
		return fmt.Errorf("invalid interior mode %d", int(o.Interior))
	}
	return nil
}
