package debug

import (
	"testing"

	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

func filledChunk(t *testing.T) *terrain.Chunk {
	t.Helper()
	c, err := terrain.NewChunk(4, 4)
	if err != nil {
		t.Fatalf("NewChunk() error = %v", err)
	}
	s := &terrain.SquareStencil{}
	s.Configure(true, 1)
	s.SetCenter(2, 2)
	c.ApplyStencil(s)
	return c
}

func TestNewCellGridRendererNil(t *testing.T) {
	r := NewCellGridRenderer(nil, math.Vec2{})
	if r != nil {
		t.Fatal("expected nil renderer for nil chunk")
	}
	if r.GenerateGridLines(0) != nil || r.GenerateStateOverlay(0) != nil {
		t.Error("nil renderer should generate nothing")
	}
	if r.GetCellInfo(0, 0) != nil {
		t.Error("nil renderer should have no cell info")
	}
}

func TestGenerateGridLines(t *testing.T) {
	r := NewCellGridRenderer(filledChunk(t), math.Vec2{X: 10, Y: 20})
	lines := r.GenerateGridLines(0.5)

	// 5 vertical and 5 horizontal lines, 2 vertices each.
	if len(lines) != 20 {
		t.Fatalf("got %d vertices, want 20", len(lines))
	}

	first, second := lines[0], lines[1]
	if first.X != 10 || first.Y != 20 || second.X != 10 || second.Y != 24 {
		t.Errorf("first line = (%v,%v)-(%v,%v), want (10,20)-(10,24)", first.X, first.Y, second.X, second.Y)
	}
	last := lines[len(lines)-1]
	if last.X != 14 || last.Y != 24 || last.Z != 0.5 {
		t.Errorf("last vertex = %+v, want (14, 24, 0.5)", last)
	}
}

func TestGenerateStateOverlay(t *testing.T) {
	r := NewCellGridRenderer(filledChunk(t), math.Vec2{})
	overlay := r.GenerateStateOverlay(0)

	if len(overlay) != 16*6 {
		t.Fatalf("got %d vertices, want %d", len(overlay), 16*6)
	}

	// Cell (0, 0) is empty: white marker around (0.5, 0.5).
	v := overlay[0]
	if v.R != 1 || v.G != 1 || v.B != 1 {
		t.Errorf("empty cell color = (%v,%v,%v), want white", v.R, v.G, v.B)
	}
	if !approxEq(v.X, 0.45) || !approxEq(v.Y, 0.45) {
		t.Errorf("marker corner = (%v, %v), want (0.45, 0.45)", v.X, v.Y)
	}

	// Cell (1, 1) is filled: black marker.
	v = overlay[(1*4+1)*6]
	if v.R != 0 || v.G != 0 || v.B != 0 {
		t.Errorf("filled cell color = (%v,%v,%v), want black", v.R, v.G, v.B)
	}

	black := 0
	for i := 0; i < len(overlay); i += 6 {
		if overlay[i].R == 0 {
			black++
		}
	}
	if black != 4 {
		t.Errorf("got %d filled markers, want 4", black)
	}
}

func TestSetMarkerScale(t *testing.T) {
	r := NewCellGridRenderer(filledChunk(t), math.Vec2{})
	r.SetMarkerScale(1)
	v := r.GenerateStateOverlay(0)[0]
	if v.X != 0 || v.Y != 0 {
		t.Errorf("full-size marker corner = (%v, %v), want (0, 0)", v.X, v.Y)
	}

	r.SetMarkerScale(-1)
	if r.markerScale != 1 {
		t.Errorf("negative scale should be ignored, got %v", r.markerScale)
	}
}

func TestGenerateNormalLines(t *testing.T) {
	r := NewCellGridRenderer(filledChunk(t), math.Vec2{})
	lines := r.GenerateNormalLines(0.25, 0)

	// A filled 2x2 block has 8 boundary crossings.
	if len(lines) != 16 {
		t.Fatalf("got %d vertices, want 16", len(lines))
	}
	for i := 0; i < len(lines); i += 2 {
		a, b := lines[i], lines[i+1]
		d := math.Vec2{X: b.X - a.X, Y: b.Y - a.Y}
		if !approxEq(d.Length(), 0.25) {
			t.Errorf("normal line %d has length %v, want 0.25", i/2, d.Length())
		}
	}
}

func TestGetCellInfo(t *testing.T) {
	r := NewCellGridRenderer(filledChunk(t), math.Vec2{X: 4, Y: 0})

	info := r.GetCellInfo(0, 1)
	if info == nil {
		t.Fatal("GetCellInfo(0, 1) returned nil")
	}
	if info.Filled {
		t.Error("cell (0, 1) should be empty")
	}
	if info.Position.X != 4.5 || info.Position.Y != 1.5 {
		t.Errorf("Position = %v, want (4.5, 1.5)", info.Position)
	}
	if info.XEdge != 5 {
		t.Errorf("XEdge = %v, want 5", info.XEdge)
	}
	if info.YEdge != terrain.Undefined {
		t.Errorf("YEdge = %v, want Undefined", info.YEdge)
	}

	if r.GetCellInfo(4, 0) != nil {
		t.Error("GetCellInfo(4, 0) should be nil")
	}
}

func TestGenerateChunkBounds(t *testing.T) {
	empty, _ := terrain.NewChunk(4, 4)
	if got := GenerateChunkBounds(empty, math.Vec2{}, 0, 0); got != nil {
		t.Errorf("empty chunk bounds = %v, want nil", got)
	}

	lines := GenerateChunkBounds(filledChunk(t), math.Vec2{X: 4}, 0.5, 0)
	if len(lines) != BoundsWireframeVertexCount {
		t.Fatalf("got %d vertices, want %d", len(lines), BoundsWireframeVertexCount)
	}
	// Mesh spans (1,1)-(3,3); offset by 4 on X and padded by 0.5.
	if bl := lines[0]; bl.X != 4.5 || bl.Y != 0.5 {
		t.Errorf("bottom-left = (%v, %v), want (4.5, 0.5)", bl.X, bl.Y)
	}
	if tr := lines[2+1]; tr.X != 7.5 || tr.Y != 3.5 {
		t.Errorf("top-right = (%v, %v), want (7.5, 3.5)", tr.X, tr.Y)
	}
}

func approxEq(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}
