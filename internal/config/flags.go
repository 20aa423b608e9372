package config

import "flag"

// Flags are the command-line overrides shared by the voxfill tools.
type Flags struct {
	fs *flag.FlagSet

	config      string
	debug       bool
	logFile     string
	format      string
	axis        string
	snap        string
	interior    string
	precision   int
	maxAttempts int
	commit      string
	charset     string
	width       int
	height      int
	fullscreen  bool
	pointSize   float64
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "Also write logs to this file")
	fs.StringVar(&f.format, "format", "", "Output format: vxl, schematic, binvox or json")
	fs.StringVar(&f.axis, "axis", "", "Scan axis: x, y or z")
	fs.StringVar(&f.snap, "snap", "", "Snap rule after rescaling: round or ceil")
	fs.StringVar(&f.interior, "interior", "", "Interior cell value: default or propagate")
	fs.IntVar(&f.precision, "precision", 0, "Decimal digits kept when comparing coordinates")
	fs.IntVar(&f.maxAttempts, "max-attempts", 0, "Rescales before giving up")
	fs.StringVar(&f.commit, "commit", "", "Write the normalized mesh to this OBJ file")
	fs.StringVar(&f.charset, "charset", "", "Charset of OBJ material names")
	fs.IntVar(&f.width, "width", 0, "Viewer window width")
	fs.IntVar(&f.height, "height", 0, "Viewer window height")
	fs.BoolVar(&f.fullscreen, "fullscreen", false, "Run the viewer fullscreen")
	fs.Float64Var(&f.pointSize, "point-size", 0, "Viewer point size in pixels")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.config
}

// apply copies every flag given on the command line into cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.LogFile = f.logFile
		case "format":
			cfg.Output.Format = f.format
		case "axis":
			cfg.Voxelize.ScanAxis = f.axis
		case "snap":
			cfg.Voxelize.Snap = f.snap
		case "interior":
			cfg.Voxelize.Interior = f.interior
		case "precision":
			cfg.Voxelize.Precision = f.precision
		case "max-attempts":
			cfg.Voxelize.MaxAttempts = f.maxAttempts
		case "commit":
			cfg.Voxelize.Commit = f.commit
		case "charset":
			cfg.Mesh.MaterialEncoding = f.charset
		case "width":
			cfg.Viewer.Width = f.width
		case "height":
			cfg.Viewer.Height = f.height
		case "fullscreen":
			cfg.Viewer.Fullscreen = f.fullscreen
		case "point-size":
			cfg.Viewer.PointSize = float32(f.pointSize)
		}
	})
}
