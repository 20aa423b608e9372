package voxel

import (
	"slices"
	"testing"
)

func TestNewVolume(t *testing.T) {
	if _, err := NewVolume([3]int{2, 2, 2}, [3]int{}, make([]uint16, 7)); err == nil {
		t.Error("expected error for short cell slice")
	}
	if _, err := NewVolume([3]int{-1, 2, 2}, [3]int{}, nil); err == nil {
		t.Error("expected error for negative size")
	}

	// x-major, z-minor: index = (x*sy + y)*sz + z
	cells := []uint16{
		0, 1, // x0 y0
		0, 0, // x0 y1
		3, 0, // x1 y0
		0, 3, // x1 y1
	}
	v, err := NewVolume([3]int{2, 2, 2}, [3]int{5, 0, -1}, cells)
	if err != nil {
		t.Fatal(err)
	}

	if v.At(0, 0, 1) != 1 || v.At(1, 0, 0) != 3 || v.At(1, 1, 1) != 3 {
		t.Error("At does not follow x-major, z-minor layout")
	}
	if v.At(2, 0, 0) != 0 || v.At(-1, 0, 0) != 0 || v.Solid(0, 5, 0) {
		t.Error("out-of-range cells should read as empty")
	}
	if v.Count() != 3 || v.Len() != 8 || v.Empty() {
		t.Errorf("Count=%d Len=%d Empty=%v", v.Count(), v.Len(), v.Empty())
	}
	if h := v.Histogram(); h[1] != 1 || h[3] != 2 || len(h) != 2 {
		t.Errorf("Histogram() = %v", h)
	}
	if got := v.Values(); !slices.Equal(got, []uint16{1, 3}) {
		t.Errorf("Values() = %v, want [1 3]", got)
	}
	if mat, ok := v.Material(1, 0, 0); !ok || mat != 2 {
		t.Errorf("Material(1,0,0) = %d, %v, want 2, true", mat, ok)
	}
	if _, ok := v.Material(0, 0, 0); ok {
		t.Error("empty cell reported a material")
	}

	nested := v.Nested()
	if nested[1][1][1] != 3 || nested[0][0][1] != 1 {
		t.Errorf("Nested() = %v", nested)
	}
	nested[0][0][1] = 9
	if v.At(0, 0, 1) != 1 {
		t.Error("Nested() aliases volume storage")
	}

	var visited [][4]int
	v.Each(func(x, y, z int, value uint16) {
		visited = append(visited, [4]int{x, y, z, int(value)})
	})
	want := [][4]int{{0, 0, 1, 1}, {1, 0, 0, 3}, {1, 1, 1, 3}}
	if !slices.Equal(visited, want) {
		t.Errorf("Each visited %v, want %v", visited, want)
	}
}
