package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/voxfill/pkg/formats"
	"github.com/Faultbox/voxfill/pkg/mesh"
	"github.com/Faultbox/voxfill/pkg/voxel"
)

func writeBoxOBJ(t *testing.T, dir string, pitch float64) string {
	t.Helper()
	path := filepath.Join(dir, "box.obj")
	if err := mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 3}, pitch, 0).SaveOBJ(path); err != nil {
		t.Fatalf("SaveOBJ: %v", err)
	}
	return path
}

func TestVoxelizeCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeBoxOBJ(t, dir, 0.5)
	output := filepath.Join(dir, "box.vxl")
	committed := filepath.Join(dir, "normalized.obj")

	var out bytes.Buffer
	if err := cmdVoxelize([]string{"-commit", committed, input, output}, &out); err != nil {
		t.Fatalf("voxelize: %v", err)
	}
	if !strings.Contains(out.String(), "2x2x3, 12 solid") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Rescales: 1") {
		t.Errorf("expected one rescale:\n%s", out.String())
	}

	vol, err := formats.ParseVolumeFile(output)
	if err != nil {
		t.Fatalf("ParseVolumeFile: %v", err)
	}
	if vol.Count() != 12 {
		t.Errorf("expected 12 solid cells, got %d", vol.Count())
	}

	m, err := mesh.LoadOBJ(committed, mesh.OBJOptions{})
	if err != nil {
		t.Fatalf("committed mesh: %v", err)
	}
	if _, max := m.Bounds(); max != (mesh.Vec3{2, 2, 3}) {
		t.Errorf("committed mesh not normalized: max %v", max)
	}
}

func TestVoxelizeCommandDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeBoxOBJ(t, dir, 1)

	var out bytes.Buffer
	if err := cmdVoxelize([]string{"-format", "json", input}, &out); err != nil {
		t.Fatalf("voxelize: %v", err)
	}
	vol, err := formats.ParseJSONFile(filepath.Join(dir, "box.json"))
	if err != nil {
		t.Fatalf("ParseJSONFile: %v", err)
	}
	if vol.Count() != 12 {
		t.Errorf("expected 12 solid cells, got %d", vol.Count())
	}
}

func TestVoxelizeCommandDegenerate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plate.obj")
	plate := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	if err := os.WriteFile(input, []byte(plate), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "plate.vxl")

	err := cmdVoxelize([]string{input, output}, &bytes.Buffer{})
	if !errors.Is(err, voxel.ErrDegenerateMesh) {
		t.Fatalf("expected ErrDegenerateMesh, got %v", err)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("output written for a failed run")
	}
}

func TestInfoAndConvertCommands(t *testing.T) {
	dir := t.TempDir()
	input := writeBoxOBJ(t, dir, 1)
	vxl := filepath.Join(dir, "box.vxl")
	if err := cmdVoxelize([]string{input, vxl}, &bytes.Buffer{}); err != nil {
		t.Fatalf("voxelize: %v", err)
	}

	var info bytes.Buffer
	if err := cmdInfo([]string{vxl}, &info); err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Size:   2x2x3 (12 cells)", "Solid:  12", "Cells by value:"} {
		if !strings.Contains(info.String(), want) {
			t.Errorf("info output missing %q:\n%s", want, info.String())
		}
	}

	schematic := filepath.Join(dir, "box.schematic")
	var conv bytes.Buffer
	if err := cmdConvert([]string{vxl, schematic}, &conv); err != nil {
		t.Fatalf("convert: %v", err)
	}
	s, err := formats.ParseSchematicFile(schematic)
	if err != nil {
		t.Fatalf("ParseSchematicFile: %v", err)
	}
	if s.Width != 2 || s.Length != 2 || s.Height != 3 {
		t.Errorf("unexpected schematic size %dx%dx%d", s.Width, s.Height, s.Length)
	}
}
