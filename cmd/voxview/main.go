// voxview displays a voxel volume as a point cloud.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/voxfill/internal/config"
	"github.com/Faultbox/voxfill/internal/logger"
	"github.com/Faultbox/voxfill/internal/viewer/camera"
	"github.com/Faultbox/voxfill/internal/viewer/input"
	"github.com/Faultbox/voxfill/internal/viewer/points"
	"github.com/Faultbox/voxfill/internal/viewer/snapshot"
	"github.com/Faultbox/voxfill/internal/viewer/window"
	"github.com/Faultbox/voxfill/pkg/formats"
)

const (
	rotateStep = 0.05 // radians per key event
	zoomStep   = 1.1
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(flags, flag.Arg(0)); err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func run(flags *config.Flags, path string) error {
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}

	if path == "" {
		path, err = dialog.File().
			Filter("Voxel volumes", "vxl", "json").
			Filter("All Files", "*").
			Title("Open Volume").
			Load()
		if errors.Is(err, dialog.ErrCancelled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("file dialog: %w", err)
		}
	}

	vol, err := formats.Import(path)
	if err != nil {
		return err
	}
	size := vol.Size()
	logger.Info("volume loaded",
		zap.String("path", path),
		zap.Ints("size", size[:]),
		zap.Int("solid", vol.Count()),
	)

	win, err := window.New(window.Config{
		Title:      fmt.Sprintf("voxview - %s", filepath.Base(path)),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	cloud := points.Build(vol)
	renderer, err := points.NewRenderer(cloud, cfg.Viewer.PointSize, logger.Named("points"))
	if err != nil {
		return err
	}
	defer renderer.Close()

	cam := camera.NewOrbit()
	cam.FitToBounds(cloud.Min, cloud.Max)

	width, height := win.Size()
	renderer.Resize(width, height)

	shots := snapshot.New(cfg.Viewer.ScreenshotDir, "voxview")
	log := logger.Named("voxview")

	in := input.New()
	for {
		screenshot := false
		quit := in.Update()
		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventWindowResize:
				width, height = win.Size()
				renderer.Resize(width, height)
			case input.EventAction:
				switch ev.Action {
				case input.ActionToggleOutline:
					renderer.ShowOutline = !renderer.ShowOutline
				case input.ActionScreenshot:
					screenshot = true
				default:
					apply(cam, ev.Action)
				}
			}
		}
		if quit {
			return nil
		}

		aspect := float32(width) / float32(max(height, 1))
		renderer.Draw(cam.Projection(aspect).Mul4(cam.View()))
		if screenshot {
			if path, err := shots.Save(renderer.ReadPixels(width, height), width, height); err != nil {
				log.Warn("screenshot failed", zap.Error(err))
			} else {
				log.Info("screenshot saved", zap.String("path", path))
			}
		}
		win.SwapBuffers()
	}
}

// apply moves the camera for one key action.
func apply(cam *camera.Orbit, action input.Action) {
	switch action {
	case input.ActionPitchUp:
		cam.Rotate(0, rotateStep, 0)
	case input.ActionPitchDown:
		cam.Rotate(0, -rotateStep, 0)
	case input.ActionYawLeft:
		cam.Rotate(rotateStep, 0, 0)
	case input.ActionYawRight:
		cam.Rotate(-rotateStep, 0, 0)
	case input.ActionRollLeft:
		cam.Rotate(0, 0, rotateStep)
	case input.ActionRollRight:
		cam.Rotate(0, 0, -rotateStep)
	case input.ActionZoomIn:
		cam.Zoom(1 / zoomStep)
	case input.ActionZoomOut:
		cam.Zoom(zoomStep)
	case input.ActionReset:
		cam.Reset()
	}
}
