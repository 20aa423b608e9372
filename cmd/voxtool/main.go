// voxtool is a CLI utility that turns blocky meshes into voxel volumes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/voxfill/internal/config"
	"github.com/Faultbox/voxfill/internal/logger"
	"github.com/Faultbox/voxfill/pkg/formats"
	"github.com/Faultbox/voxfill/pkg/mesh"
	"github.com/Faultbox/voxfill/pkg/voxel"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "voxelize", "vox":
		err = cmdVoxelize(args, os.Stdout)
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "convert", "cv":
		err = cmdConvert(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`voxtool - mesh to voxel volume converter

Usage:
  voxtool <command> [options]

Commands:
  voxelize [flags] <mesh.obj|mesh.stl> [output]  Voxelize a mesh
  info <volume.vxl|volume.json>                  Show volume information
  convert [flags] <volume.vxl> <output>          Convert a volume to another format

Formats: vxl, schematic, binvox, json (picked from -format or the output extension)

Examples:
  voxtool voxelize castle.obj
  voxtool voxelize -axis y -interior propagate castle.obj castle.schematic
  voxtool info castle.vxl
  voxtool convert castle.vxl castle.binvox`)
}

// setup loads configuration for a subcommand and initializes logging.
func setup(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

// outputTarget resolves the output path and format. An explicit path decides
// the format by extension unless -format was given.
func outputTarget(cfg *config.Config, fs *flag.FlagSet, input, output string) (string, formats.Format, error) {
	formatSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "format" {
			formatSet = true
		}
	})

	if output != "" && !formatSet {
		if format, err := formats.FormatFromPath(output); err == nil {
			return output, format, nil
		}
	}

	format, err := cfg.Output.OutputFormat()
	if err != nil {
		return "", "", err
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + format.Ext()
	}
	return output, format, nil
}

func cmdVoxelize(args []string, out io.Writer) error {
	cfg, fs, err := setup("voxelize", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: voxtool voxelize [flags] <mesh.obj|mesh.stl> [output]")
	}

	input := fs.Arg(0)
	outputPath, format, err := outputTarget(cfg, fs, input, fs.Arg(1))
	if err != nil {
		return err
	}

	opts, err := cfg.Voxelize.Options()
	if err != nil {
		return err
	}

	runLog := logger.Named("voxel").With(
		zap.String("run", uuid.NewString()),
		zap.String("mesh", filepath.Base(input)),
	)

	m, err := mesh.Load(input, mesh.OBJOptions{MaterialCharset: cfg.Mesh.MaterialEncoding})
	if err != nil {
		return err
	}
	m.SetCommitPath(cfg.Voxelize.Commit)
	runLog.Info("mesh loaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("polygons", len(m.Polygons)),
		zap.Int("materials", len(m.Materials)),
	)

	res, err := voxel.New(opts, runLog).Voxelize(m)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		runLog.Warn(w.Error())
	}

	if err := formats.Export(res.Volume, format, outputPath, formats.ExportOptions{Palette: cfg.Output.Palette}); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	runLog.Info("volume written", zap.String("path", outputPath), zap.String("format", string(format)))

	size := res.Volume.Size()
	fmt.Fprintf(out, "Mesh:     %s\n", input)
	fmt.Fprintf(out, "Rescales: %d\n", res.Grid.Attempts)
	fmt.Fprintf(out, "Planes:   %d along %s\n", len(res.Planes), opts.ScanAxis)
	fmt.Fprintf(out, "Volume:   %dx%dx%d, %d solid\n", size[0], size[1], size[2], res.Volume.Count())
	fmt.Fprintf(out, "Output:   %s (%s)\n", outputPath, format)
	return nil
}

func cmdInfo(args []string, out io.Writer) error {
	_, fs, err := setup("info", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: voxtool info <volume.vxl|volume.json>")
	}

	vol, err := formats.Import(fs.Arg(0))
	if err != nil {
		return err
	}

	size, origin := vol.Size(), vol.Origin()
	fmt.Fprintf(out, "Volume: %s\n", fs.Arg(0))
	fmt.Fprintf(out, "Size:   %dx%dx%d (%d cells)\n", size[0], size[1], size[2], vol.Len())
	fmt.Fprintf(out, "Origin: %d,%d,%d\n", origin[0], origin[1], origin[2])
	fmt.Fprintf(out, "Solid:  %d\n", vol.Count())

	hist := vol.Histogram()
	if len(hist) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cells by value:")
	for _, value := range vol.Values() {
		fmt.Fprintf(out, "  %-6d material %-4d %d\n", value, int(value)-1, hist[value])
	}
	return nil
}

func cmdConvert(args []string, out io.Writer) error {
	cfg, fs, err := setup("convert", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: voxtool convert [flags] <volume.vxl> <output>")
	}

	vol, err := formats.Import(fs.Arg(0))
	if err != nil {
		return err
	}
	outputPath, format, err := outputTarget(cfg, fs, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	if err := formats.Export(vol, format, outputPath, formats.ExportOptions{Palette: cfg.Output.Palette}); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	logger.Info("volume converted", zap.String("from", fs.Arg(0)), zap.String("to", outputPath))
	fmt.Fprintf(out, "Wrote %s (%s, %d solid)\n", outputPath, format, vol.Count())
	return nil
}
