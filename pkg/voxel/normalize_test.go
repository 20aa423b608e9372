package voxel

import (
	"errors"
	"testing"

	"github.com/Faultbox/voxfill/pkg/mesh"
)

// countingHost records calls made against a mesh.
type countingHost struct {
	*mesh.Mesh
	scales  []float64
	snaps   int
	commits int
}

func (h *countingHost) Scale(factor float64) {
	h.scales = append(h.scales, factor)
	h.Mesh.Scale(factor)
}

func (h *countingHost) Snap(round func(float64) float64) {
	h.snaps++
	h.Mesh.Snap(round)
}

func (h *countingHost) Commit() error {
	h.commits++
	return nil
}

// stuckHost never changes size, whatever it is asked to do.
type stuckHost struct {
	faces  []mesh.Face
	scales int
}

func (h *stuckHost) Faces() []mesh.Face         { return h.faces }
func (h *stuckHost) Scale(float64)              { h.scales++ }
func (h *stuckHost) Snap(func(float64) float64) {}
func (h *stuckHost) Commit() error              { return nil }

func TestTruncate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.3, 0.3},
		{1.23456, 1.2345},
		{-1.23456, -1.2345},
		{2.99999, 2.9999},
		{5, 5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, 4); got != tt.want {
			t.Errorf("Truncate(%v, 4) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCollectAxis(t *testing.T) {
	faces := []mesh.Face{
		{Positions: []mesh.Vec3{{2, 0, 0}, {0.00001, 1, 0}, {1, 1, 0}}},
		{Positions: []mesh.Vec3{{1.00004, 0, 0}, {2, 1, 0}, {0, 2, 0}}},
	}
	got := CollectAxis(faces, AxisX, 4)
	want := AxialCoordinateSet{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("CollectAxis = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("CollectAxis = %v, want %v", got, want)
		}
	}
	if !got.Contains(1) || got.Contains(1.5) {
		t.Error("Contains mismatch")
	}
	if got.Pitch(4) != 1 {
		t.Errorf("Pitch = %v, want 1", got.Pitch(4))
	}
}

func TestNormalizeUnitMeshUntouched(t *testing.T) {
	host := &countingHost{Mesh: mesh.Box([3]int{0, 0, 0}, [3]int{2, 3, 4}, 1, 0)}

	g, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if g.Attempts != 0 || len(host.scales) != 0 || host.snaps != 0 {
		t.Errorf("unit mesh was rescaled: attempts=%d scales=%v snaps=%d", g.Attempts, host.scales, host.snaps)
	}
	if g.Size() != [3]int{2, 3, 4} {
		t.Errorf("Size() = %v, want [2 3 4]", g.Size())
	}
	if g.Origin() != [3]int{0, 0, 0} {
		t.Errorf("Origin() = %v, want [0 0 0]", g.Origin())
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	m := mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 2}, 0.5, 0)
	n := NewNormalizer(DefaultOptions(), nil)

	if _, err := n.Normalize(m); err != nil {
		t.Fatalf("first Normalize: %v", err)
	}
	before := m.Clone()

	g, err := n.Normalize(m)
	if err != nil {
		t.Fatalf("second Normalize: %v", err)
	}
	if g.Attempts != 0 {
		t.Errorf("second pass rescaled %d times", g.Attempts)
	}
	for i := range before.Vertices {
		if before.Vertices[i] != m.Vertices[i] {
			t.Fatalf("vertex %d moved: %v -> %v", i, before.Vertices[i], m.Vertices[i])
		}
	}
}

func TestNormalizeRescale(t *testing.T) {
	tests := []struct {
		name   string
		pitch  float64
		factor float64
	}{
		{"half", 0.5, 2},
		{"quarter", 0.25, 4},
		{"triple", 3, 1.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &countingHost{Mesh: mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 2}, tt.pitch, 0)}

			g, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if g.Attempts != 1 {
				t.Errorf("Attempts = %d, want 1", g.Attempts)
			}
			if len(host.scales) != 1 || host.scales[0] != tt.factor {
				t.Errorf("scales = %v, want [%v]", host.scales, tt.factor)
			}
			if g.Min != [3]float64{0, 0, 0} || g.Max != [3]float64{2, 2, 2} {
				t.Errorf("bounds = %v..%v, want 0..2", g.Min, g.Max)
			}
			for _, v := range host.Vertices {
				for a := 0; a < 3; a++ {
					if v[a] != float64(int(v[a])) {
						t.Fatalf("vertex %v not on the integer grid", v)
					}
				}
			}
		})
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	// A plate lying in y=0 with a half-unit pitch on X and Z.
	b := mesh.NewBuilder(0.5)
	b.Quad(1, [3]int{0, 0, 0}, 0)
	b.Quad(1, [3]int{1, 0, 0}, 0)
	host := &countingHost{Mesh: b.Mesh()}

	_, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
	if !errors.Is(err, ErrDegenerateMesh) {
		t.Fatalf("Normalize error = %v, want ErrDegenerateMesh", err)
	}
	var dme *DegenerateMeshError
	if !errors.As(err, &dme) {
		t.Fatalf("error %T is not a *DegenerateMeshError", err)
	}
	if dme.Axis != AxisY || dme.Distinct != 1 {
		t.Errorf("DegenerateMeshError = %+v, want axis y with 1 distinct", dme)
	}
	if len(host.scales) != 0 || host.snaps != 0 {
		t.Error("degenerate mesh was mutated before failing")
	}
}

func TestNormalizeExhausted(t *testing.T) {
	host := &stuckHost{faces: mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 2}, 0.5, 0).Faces()}

	_, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
	var nee *NormalizationExhaustedError
	if !errors.As(err, &nee) {
		t.Fatalf("Normalize error = %v, want *NormalizationExhaustedError", err)
	}
	if !errors.Is(err, ErrNormalizationExhausted) {
		t.Error("error does not unwrap to ErrNormalizationExhausted")
	}
	if nee.Attempts != DefaultMaxAttempts || host.scales != DefaultMaxAttempts {
		t.Errorf("attempts = %d, scales = %d, want %d", nee.Attempts, host.scales, DefaultMaxAttempts)
	}
	if nee.Axis != AxisX || nee.Pitch != 0.5 {
		t.Errorf("error reports axis %s pitch %v, want x 0.5", nee.Axis, nee.Pitch)
	}
}

func TestNormalizeZeroAttempts(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttempts = 0
	host := &countingHost{Mesh: mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 2}, 0.5, 0)}

	_, err := NewNormalizer(opts, nil).Normalize(host)
	if !errors.Is(err, ErrNormalizationExhausted) {
		t.Fatalf("Normalize error = %v, want ErrNormalizationExhausted", err)
	}
	if len(host.scales) != 0 {
		t.Error("mesh rescaled with a zero budget")
	}
}

// shifted returns a unit box moved off the integer grid by half a unit.
func shifted(min, max [3]int) *mesh.Mesh {
	m := mesh.Box(min, max, 1, 0)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(mesh.Vec3{0.5, 0.5, 0.5})
	}
	return m
}

func TestNormalizeOffGridSnaps(t *testing.T) {
	host := &countingHost{Mesh: shifted([3]int{0, 0, 0}, [3]int{2, 2, 2})}

	g, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if g.Attempts != 1 || host.snaps != 1 || len(host.scales) != 0 {
		t.Errorf("attempts=%d snaps=%d scales=%v, want 1 snap and no scale", g.Attempts, host.snaps, host.scales)
	}
	if g.Origin() != [3]int{1, 1, 1} || g.Size() != [3]int{2, 2, 2} {
		t.Errorf("origin %v size %v, want [1 1 1] [2 2 2]", g.Origin(), g.Size())
	}
	for _, v := range host.Vertices {
		for a := 0; a < 3; a++ {
			if v[a] != float64(int(v[a])) {
				t.Fatalf("vertex %v not on the integer grid", v)
			}
		}
	}
}

func TestNormalizeOffGridBudget(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAttempts = 0
	host := &countingHost{Mesh: shifted([3]int{0, 0, 0}, [3]int{1, 1, 1})}

	_, err := NewNormalizer(opts, nil).Normalize(host)
	var nee *NormalizationExhaustedError
	if !errors.As(err, &nee) {
		t.Fatalf("Normalize error = %v, want *NormalizationExhaustedError", err)
	}
	if nee.Axis != AxisX || nee.Pitch != 1 {
		t.Errorf("error reports axis %s pitch %v, want x 1", nee.Axis, nee.Pitch)
	}
	if host.snaps != 0 {
		t.Error("mesh snapped with a zero budget")
	}
}

func TestNormalizeFinePitch(t *testing.T) {
	tests := []struct {
		name     string
		pitch    float64
		wantErr  error
		attempts int
	}{
		// The smallest pitch still visible at four digits is rescaled.
		{"finest", 0.0001, nil, 1},
		// Below the precision every coordinate truncates to zero.
		{"below precision", 0.00001, ErrDegenerateMesh, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &countingHost{Mesh: mesh.Box([3]int{0, 0, 0}, [3]int{2, 2, 2}, tt.pitch, 0)}

			g, err := NewNormalizer(DefaultOptions(), nil).Normalize(host)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize error = %v, want %v", err, tt.wantErr)
			}
			if len(host.scales) != tt.attempts {
				t.Errorf("scales = %v, want %d", host.scales, tt.attempts)
			}
			if err != nil {
				return
			}
			if g.Attempts != tt.attempts || g.Size() != [3]int{2, 2, 2} {
				t.Errorf("attempts=%d size=%v, want %d [2 2 2]", g.Attempts, g.Size(), tt.attempts)
			}
		})
	}
}

func TestRescaleFactor(t *testing.T) {
	n := NewNormalizer(DefaultOptions(), nil)
	if got := n.rescaleFactor(0); got != DefaultFallbackScale {
		t.Errorf("rescaleFactor(0) = %v, want %v", got, DefaultFallbackScale)
	}
	if got := n.rescaleFactor(0.25); got != 4 {
		t.Errorf("rescaleFactor(0.25) = %v, want 4", got)
	}
}

func TestSnapCeilShiftsNoise(t *testing.T) {
	m := mesh.New()
	m.AddVertex(mesh.Vec3{1.0000000001, 0, 0})
	m.Snap(SnapCeil.Func())
	if m.Vertices[0][0] != 2 {
		t.Errorf("ceil snap = %v, want 2", m.Vertices[0][0])
	}
	m.Vertices[0][0] = 1.0000000001
	m.Snap(SnapRound.Func())
	if m.Vertices[0][0] != 1 {
		t.Errorf("round snap = %v, want 1", m.Vertices[0][0])
	}
}
