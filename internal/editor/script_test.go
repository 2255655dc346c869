package editor

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Faultbox/marching-terrain/internal/terrain"
)

const testScript = `
brush:
  shape: circle
  radius_index: 1
  fill: true
edits:
  - {x: 2, y: 2}
  - {x: 6, y: 6, shape: square, radius_index: 0}
  - {x: 1.5, y: 1.5, fill: false, radius_index: 0}
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	if s.Brush.Shape != "circle" {
		t.Errorf("Brush.Shape = %q, want circle", s.Brush.Shape)
	}
	if s.Brush.RadiusIndex == nil || *s.Brush.RadiusIndex != 1 {
		t.Errorf("Brush.RadiusIndex = %v, want 1", s.Brush.RadiusIndex)
	}
	if s.Brush.SnapToGrid != nil {
		t.Errorf("Brush.SnapToGrid = %v, want unset", *s.Brush.SnapToGrid)
	}
	if len(s.Edits) != 3 {
		t.Fatalf("got %d edits, want 3", len(s.Edits))
	}
	if e := s.Edits[1]; e.X != 6 || e.Y != 6 || e.Shape != "square" {
		t.Errorf("Edits[1] = %+v", e)
	}
	if e := s.Edits[2]; e.Fill == nil || *e.Fill {
		t.Errorf("Edits[2].Fill = %v, want false", e.Fill)
	}
}

func TestParseScriptInvalid(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"empty", ""},
		{"missing edits", "brush: {shape: circle}\n"},
		{"unknown shape", "edits:\n  - {x: 1, y: 1, shape: hexagon}\n"},
		{"radius index too large", "edits:\n  - {x: 1, y: 1, radius_index: 9}\n"},
		{"negative radius index", "brush: {radius_index: -1}\nedits: []\n"},
		{"missing y", "edits:\n  - {x: 1}\n"},
		{"unknown field", "edits:\n  - {x: 1, y: 1, color: red}\n"},
		{"non-numeric x", "edits:\n  - {x: left, y: 1}\n"},
		{"broken yaml", "edits: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScript([]byte(tt.script)); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("ParseScript() error = %v, want ErrInvalidScript", err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.yaml")
	if err := os.WriteFile(path, []byte(testScript), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() error = %v", err)
	}
	if len(s.Edits) != 3 {
		t.Errorf("got %d edits, want 3", len(s.Edits))
	}

	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestRunScript(t *testing.T) {
	s, err := ParseScript([]byte(testScript))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	e := newTestEditor(t, Brush{Shape: terrain.ShapeSquare, RadiusIndex: 3})
	touched, err := RunScript(e, s)
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}

	want := []terrain.ChunkCoord{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	if !slices.Equal(touched, want) {
		t.Errorf("RunScript() touched %v, want %v", touched, want)
	}

	// The script brush persists; per-edit overrides do not.
	b := e.Brush()
	if b.Shape != terrain.ShapeCircle || b.RadiusIndex != 1 || !b.Fill {
		t.Errorf("Brush() after script = %+v, want filling circle with index 1", b)
	}

	m := e.Map()
	tests := []struct {
		chunk terrain.ChunkCoord
		x, y  int
		want  bool
	}{
		{terrain.ChunkCoord{X: 0, Y: 0}, 1, 1, false}, // dug by the last edit
		{terrain.ChunkCoord{X: 0, Y: 0}, 2, 1, true},
		{terrain.ChunkCoord{X: 0, Y: 0}, 1, 2, true},
		{terrain.ChunkCoord{X: 0, Y: 0}, 2, 2, true},
		{terrain.ChunkCoord{X: 0, Y: 0}, 0, 0, false},
		{terrain.ChunkCoord{X: 1, Y: 1}, 1, 1, true},
		{terrain.ChunkCoord{X: 1, Y: 1}, 2, 2, true},
		{terrain.ChunkCoord{X: 1, Y: 1}, 0, 0, false},
	}
	for _, tt := range tests {
		c := m.Chunk(tt.chunk.X, tt.chunk.Y)
		if got := c.State(tt.x, tt.y); got != tt.want {
			t.Errorf("chunk %v State(%d, %d) = %v, want %v", tt.chunk, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRunScriptEmpty(t *testing.T) {
	s, err := ParseScript([]byte("edits: []\n"))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}

	e := newTestEditor(t, Brush{Shape: terrain.ShapeCircle, RadiusIndex: 2, Fill: true})
	touched, err := RunScript(e, s)
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if len(touched) != 0 {
		t.Errorf("RunScript() touched %v, want none", touched)
	}
	if e.Brush().RadiusIndex != 2 {
		t.Errorf("empty brush section changed the radius index to %d", e.Brush().RadiusIndex)
	}
}
