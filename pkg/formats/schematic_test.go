package formats

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/voxfill/pkg/voxel"
)

func TestNewSchematic_Layout(t *testing.T) {
	cells := make([]uint16, 2*3*4)
	cells[(1*3+2)*4+3] = 5 // volume (1,2,3)
	vol, err := voxel.NewVolume([3]int{2, 3, 4}, [3]int{}, cells)
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewSchematic(vol, nil)
	if err != nil {
		t.Fatalf("NewSchematic: %v", err)
	}
	if s.Width != 2 || s.Length != 3 || s.Height != 4 {
		t.Errorf("expected 2x4x3 (WxHxL), got %dx%dx%d", s.Width, s.Height, s.Length)
	}
	if s.Materials != "Alpha" {
		t.Errorf("expected Alpha materials, got %q", s.Materials)
	}
	// Volume z is the block-world height.
	if s.At(1, 3, 2) != 5 {
		t.Errorf("expected block 5 at (1,3,2), got %d", s.At(1, 3, 2))
	}
	if len(s.Blocks) != 24 || len(s.Data) != 24 {
		t.Errorf("expected 24 blocks and data, got %d/%d", len(s.Blocks), len(s.Data))
	}
}

func TestNewSchematic_Palette(t *testing.T) {
	vol := createTestVolume(t)

	if _, err := NewSchematic(vol, nil); !errors.Is(err, ErrBlockIDRange) {
		t.Errorf("expected ErrBlockIDRange for value 300, got %v", err)
	}

	s, err := NewSchematic(vol, map[uint16]int{1: 1, 5: 4, 300: 35})
	if err != nil {
		t.Fatalf("NewSchematic: %v", err)
	}
	if s.At(0, 0, 0) != 1 || s.At(1, 3, 2) != 4 || s.At(0, 2, 1) != 35 {
		t.Error("palette not applied")
	}

	if _, err := NewSchematic(vol, map[uint16]int{1: -1, 300: 1}); !errors.Is(err, ErrBlockIDRange) {
		t.Errorf("expected ErrBlockIDRange for negative id, got %v", err)
	}
}

func TestEncodeSchematic_RoundTrip(t *testing.T) {
	vol := createTestVolume(t)
	s, err := NewSchematic(vol, map[uint16]int{300: 2})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeSchematic(&buf, s); err != nil {
		t.Fatalf("EncodeSchematic: %v", err)
	}
	if b := buf.Bytes(); len(b) < 2 || b[0] != 0x1f || b[1] != 0x8b {
		t.Fatal("output is not gzip")
	}

	got, err := ParseSchematic(&buf)
	if err != nil {
		t.Fatalf("ParseSchematic: %v", err)
	}
	if got.Width != s.Width || got.Height != s.Height || got.Length != s.Length {
		t.Errorf("dimensions changed: %dx%dx%d", got.Width, got.Height, got.Length)
	}
	if !bytes.Equal(got.Blocks, s.Blocks) {
		t.Error("blocks changed across encode/parse")
	}
}

func TestParseSchematic_NotGzip(t *testing.T) {
	_, err := ParseSchematic(bytes.NewReader([]byte("plain")))
	if !errors.Is(err, ErrInvalidSchematic) {
		t.Errorf("expected ErrInvalidSchematic, got %v", err)
	}
}

func TestWriteSchematicFile_NoPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.schematic")
	if err := WriteSchematicFile(path, createTestVolume(t), nil); err == nil {
		t.Fatal("expected palette error")
	}
	if _, err := ParseSchematicFile(path); err == nil {
		t.Error("file written despite error")
	}
}
