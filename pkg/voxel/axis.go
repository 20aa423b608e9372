package voxel

import (
	"fmt"
	"strings"
)

// Axis identifies a coordinate axis.
type Axis int

// Axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is one of X, Y, Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// others returns the two remaining axes in ascending order.
func (a Axis) others() (Axis, Axis) {
	switch a {
	case AxisX:
		return AxisY, AxisZ
	case AxisY:
		return AxisX, AxisZ
	default:
		return AxisX, AxisY
	}
}

// ParseAxis accepts "x", "y", "z" (any case) or "0", "1", "2".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "0":
		return AxisX, nil
	case "y", "1":
		return AxisY, nil
	case "z", "2":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("invalid axis %q (want x, y or z)", s)
}
