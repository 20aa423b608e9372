// Package formats reads and writes voxel volumes: the native .vxl format and
// the .schematic, .binvox and .json exports.
package formats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatVXL       Format = "vxl"
	FormatSchematic Format = "schematic"
	FormatBinvox    Format = "binvox"
	FormatJSON      Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatVXL, FormatSchematic, FormatBinvox, FormatJSON}

// ParseFormat accepts a format name with or without a leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want vxl, schematic, binvox or json)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ExportOptions tunes format-specific output.
type ExportOptions struct {
	// Palette maps cell values to block ids for .schematic output.
	// Values missing from the palette map to themselves.
	Palette map[uint16]int
}

// Export writes vol to path in the given format. On failure nothing is left
// at path.
func Export(vol *voxel.Volume, format Format, path string, opts ExportOptions) error {
	switch format {
	case FormatVXL:
		return WriteVolumeFile(path, vol)
	case FormatSchematic:
		return WriteSchematicFile(path, vol, opts.Palette)
	case FormatBinvox:
		return WriteBinvoxFile(path, vol)
	case FormatJSON:
		return WriteJSONFile(path, vol)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Import reads a volume from a .vxl or .json file.
func Import(path string) (*voxel.Volume, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatVXL:
		return ParseVolumeFile(path)
	case FormatJSON:
		return ParseJSONFile(path)
	default:
		return nil, fmt.Errorf("%s volumes cannot be read back", format)
	}
}

// writeFileAtomic writes through a temporary file in the target directory and
// renames it into place only once everything was written and closed.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	err = write(f)
	err = multierr.Append(err, f.Close())
	if err != nil {
		return multierr.Append(err, os.Remove(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return multierr.Append(err, os.Remove(tmp))
	}
	return nil
}
