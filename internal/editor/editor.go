package editor

import (
	"go.uber.org/zap"

	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Editor applies brush strokes to a terrain map.
type Editor struct {
	m     *terrain.Map
	brush Brush
}

// Preview describes where a stroke would land without applying it.
type Preview struct {
	Center math.Vec2
	Radius float32
	Shape  terrain.Shape
	Fill   bool
	Chunk  terrain.ChunkCoord
}

// New creates an editor over m with an initial brush.
func New(m *terrain.Map, brush Brush) *Editor {
	brush.RadiusIndex = clampRadiusIndex(brush.RadiusIndex)
	return &Editor{m: m, brush: brush}
}

// Map returns the edited map.
func (e *Editor) Map() *terrain.Map { return e.m }

// Brush returns the current brush.
func (e *Editor) Brush() Brush { return e.brush }

// SetBrush replaces the brush. The radius index is clamped to [0, MaxRadiusIndex].
func (e *Editor) SetBrush(b Brush) {
	b.RadiusIndex = clampRadiusIndex(b.RadiusIndex)
	e.brush = b
}

// SetShape selects the brush shape.
func (e *Editor) SetShape(shape terrain.Shape) { e.brush.Shape = shape }

// SetFill selects whether strokes fill or dig.
func (e *Editor) SetFill(fill bool) { e.brush.Fill = fill }

// SetRadiusIndex selects the radius step, clamped to [0, MaxRadiusIndex].
func (e *Editor) SetRadiusIndex(i int) { e.brush.RadiusIndex = clampRadiusIndex(i) }

// SetSnapToGrid toggles snapping of stroke centers to cell centers.
func (e *Editor) SetSnapToGrid(snap bool) { e.brush.SnapToGrid = snap }

// Preview reports the brush placement for a cursor at (x, y). It reports false
// when the cursor is outside the map, where an interactive surface hides the
// brush outline.
func (e *Editor) Preview(x, y float32) (Preview, bool) {
	center := e.center(x, y)
	loc, ok := e.m.LocateChunk(center.X, center.Y)
	if !ok {
		return Preview{}, false
	}
	return Preview{
		Center: center,
		Radius: e.brush.Radius(e.m.CellSize()),
		Shape:  e.brush.Shape,
		Fill:   e.brush.Fill,
		Chunk:  loc.Coord,
	}, true
}

// Stroke applies the brush at (x, y) and returns the chunks it visited.
func (e *Editor) Stroke(x, y float32) ([]terrain.ChunkCoord, error) {
	return e.strokeWith(e.brush, x, y)
}

func (e *Editor) strokeWith(b Brush, x, y float32) ([]terrain.ChunkCoord, error) {
	center := centerFor(b, x, y, e.m.CellSize())
	visited, err := e.m.Edit(center.X, center.Y, b.Shape, b.Radius(e.m.CellSize()), b.Fill)
	if err != nil {
		return nil, err
	}

	logger.Named("editor").Debug("stroke",
		zap.Float32("x", center.X),
		zap.Float32("y", center.Y),
		zap.Int("radius_index", b.RadiusIndex),
		zap.Int("chunks", len(visited)),
	)
	return visited, nil
}

func (e *Editor) center(x, y float32) math.Vec2 {
	return centerFor(e.brush, x, y, e.m.CellSize())
}

func centerFor(b Brush, x, y, cellSize float32) math.Vec2 {
	p := math.Vec2{X: x, Y: y}
	if b.SnapToGrid {
		return SnapToCell(p, cellSize)
	}
	return p
}
