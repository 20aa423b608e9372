// Package config handles voxfill configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/voxfill/internal/logger"
	"github.com/Faultbox/voxfill/pkg/encoding"
	"github.com/Faultbox/voxfill/pkg/formats"
	"github.com/Faultbox/voxfill/pkg/voxel"
)

// Config holds all tool settings.
type Config struct {
	Voxelize VoxelizeConfig `yaml:"voxelize"`
	Output   OutputConfig   `yaml:"output"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// VoxelizeConfig holds normalization and fill settings.
type VoxelizeConfig struct {
	Precision     int     `yaml:"precision"`      // decimal digits kept when comparing coordinates
	MaxAttempts   int     `yaml:"max_attempts"`   // rescales before giving up
	FallbackScale float64 `yaml:"fallback_scale"` // factor used when the pitch truncates to zero
	Snap          string  `yaml:"snap"`           // round or ceil
	ScanAxis      string  `yaml:"scan_axis"`      // x, y or z
	Interior      string  `yaml:"interior"`       // default or propagate
	Commit        string  `yaml:"commit"`         // write the normalized mesh here as OBJ
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Format  string         `yaml:"format"`  // vxl, schematic, binvox or json
	Palette map[uint16]int `yaml:"palette"` // cell value -> schematic block id
}

// MeshConfig holds mesh import settings.
type MeshConfig struct {
	MaterialEncoding string `yaml:"material_encoding"` // charset of OBJ usemtl names
}

// ViewerConfig holds display settings for voxview.
type ViewerConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	PointSize     float32 `yaml:"point_size"`
	ScreenshotDir string  `yaml:"screenshot_dir"` // "" = working directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard settings.
func Default() *Config {
	opts := voxel.DefaultOptions()
	return &Config{
		Voxelize: VoxelizeConfig{
			Precision:     opts.Precision,
			MaxAttempts:   opts.MaxAttempts,
			FallbackScale: opts.FallbackScale,
			Snap:          opts.Snap.String(),
			ScanAxis:      opts.ScanAxis.String(),
			Interior:      opts.Interior.String(),
		},
		Output: OutputConfig{
			Format: string(formats.FormatVXL),
		},
		Mesh: MeshConfig{
			MaterialEncoding: "utf-8",
		},
		Viewer: ViewerConfig{
			Width:     1280,
			Height:    720,
			VSync:     true,
			PointSize: 6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Options converts the voxelize section to voxel.Options.
func (v VoxelizeConfig) Options() (voxel.Options, error) {
	opts := voxel.Options{
		Precision:     v.Precision,
		MaxAttempts:   v.MaxAttempts,
		FallbackScale: v.FallbackScale,
	}

	var errs error
	var err error
	if opts.Snap, err = voxel.ParseSnapMode(v.Snap); err != nil {
		errs = multierr.Append(errs, err)
	}
	if opts.ScanAxis, err = voxel.ParseAxis(v.ScanAxis); err != nil {
		errs = multierr.Append(errs, err)
	}
	if opts.Interior, err = voxel.ParseInteriorMode(v.Interior); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return voxel.Options{}, errs
	}
	return opts, opts.Validate()
}

// OutputFormat returns the configured export format.
func (o OutputConfig) OutputFormat() (formats.Format, error) {
	return formats.ParseFormat(o.Format)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error

	if _, err := c.Voxelize.Options(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("voxelize: %w", err))
	}
	if _, err := c.Output.OutputFormat(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("output: %w", err))
	}
	for value, id := range c.Output.Palette {
		if id < 0 || id > 255 {
			errs = multierr.Append(errs, fmt.Errorf("output: palette maps %d to block id %d, want 0..255", value, id))
		}
	}
	if _, err := encoding.NewDecoder(c.Mesh.MaterialEncoding); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("mesh: %w", err))
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("viewer: invalid window size %dx%d", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Viewer.PointSize <= 0 {
		errs = multierr.Append(errs, errors.New("viewer: point_size must be positive"))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("logging: %w", err))
	}

	return errs
}
