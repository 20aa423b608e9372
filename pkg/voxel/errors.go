package voxel

import (
	"errors"
	"fmt"
)

// Voxelization errors.
var (
	ErrDegenerateMesh         = errors.New("degenerate mesh")
	ErrNormalizationExhausted = errors.New("mesh normalization did not converge")
	ErrMaterialRange          = errors.New("material index out of range")

	// ErrEmptySelection is a warning, not a failure: no face lies flat on a
	// scan-axis plane, so the volume is empty.
	ErrEmptySelection = errors.New("no faces lie on a scan-axis plane")
)

// DegenerateMeshError reports an axis with fewer than two distinct vertex
// coordinates. It unwraps to ErrDegenerateMesh.
type DegenerateMeshError struct {
	Axis     Axis
	Distinct int
}

func (e *DegenerateMeshError) Error() string {
	return fmt.Sprintf("degenerate mesh along axis %s: %d distinct coordinate(s), need at least 2", e.Axis, e.Distinct)
}

func (e *DegenerateMeshError) Unwrap() error {
	return ErrDegenerateMesh
}

// NormalizationExhaustedError reports that the voxel pitch never reached one
// unit within the rescale budget. It unwraps to ErrNormalizationExhausted.
type NormalizationExhaustedError struct {
	Attempts int     // rescales performed
	Axis     Axis    // axis whose pitch was still off
	Pitch    float64 // last measured pitch on that axis
}

func (e *NormalizationExhaustedError) Error() string {
	return fmt.Sprintf("repeated rescale (%d attempts), mesh likely malformed or mis-scaled: pitch along %s is %g; scale the mesh so each voxel is 1 unit and retry",
		e.Attempts, e.Axis, e.Pitch)
}

func (e *NormalizationExhaustedError) Unwrap() error {
	return ErrNormalizationExhausted
}
