// Package debug provides debug visualization data for terrain chunks.
package debug

import (
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// DefaultMarkerScale is the cell marker size relative to the cell size.
const DefaultMarkerScale = 0.1

var (
	gridColor   = [3]float32{0.5, 0.5, 0.5}
	filledColor = [3]float32{0, 0, 0} // Black
	emptyColor  = [3]float32{1, 1, 1} // White
	normalColor = [3]float32{0.9, 0.2, 0.2}
)

// CellGridRenderer generates debug visualization for a chunk's cell grid.
type CellGridRenderer struct {
	chunk       *terrain.Chunk
	origin      math.Vec2
	markerScale float32
}

// NewCellGridRenderer creates a renderer for chunk placed at origin in world space.
func NewCellGridRenderer(chunk *terrain.Chunk, origin math.Vec2) *CellGridRenderer {
	if chunk == nil {
		return nil
	}
	return &CellGridRenderer{
		chunk:       chunk,
		origin:      origin,
		markerScale: DefaultMarkerScale,
	}
}

// SetMarkerScale sets the marker size relative to the cell size.
func (r *CellGridRenderer) SetMarkerScale(scale float32) {
	if scale > 0 {
		r.markerScale = scale
	}
}

// CellVertex represents a vertex for debug rendering.
type CellVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

func vertex(p math.Vec2, z float32, color [3]float32) CellVertex {
	return CellVertex{p.X, p.Y, z, color[0], color[1], color[2]}
}

// GenerateGridLines generates line vertices along every cell boundary of the chunk.
// Returns pairs of vertices, one pair per line.
func (r *CellGridRenderer) GenerateGridLines(z float32) []CellVertex {
	if r == nil {
		return nil
	}

	res := r.chunk.Resolution()
	cellSize := r.chunk.CellSize()
	size := r.chunk.Size()
	vertices := make([]CellVertex, 0, (res+1)*4)

	// Vertical lines
	for x := 0; x <= res; x++ {
		worldX := float32(x) * cellSize
		vertices = append(vertices,
			vertex(r.origin.Add(math.Vec2{X: worldX}), z, gridColor),
			vertex(r.origin.Add(math.Vec2{X: worldX, Y: size}), z, gridColor),
		)
	}

	// Horizontal lines
	for y := 0; y <= res; y++ {
		worldY := float32(y) * cellSize
		vertices = append(vertices,
			vertex(r.origin.Add(math.Vec2{Y: worldY}), z, gridColor),
			vertex(r.origin.Add(math.Vec2{X: size, Y: worldY}), z, gridColor),
		)
	}

	return vertices
}

// GenerateStateOverlay generates a small quad centred on every cell, black when
// the cell is filled and white when empty.
// Returns 6 vertices per cell (2 triangles).
func (r *CellGridRenderer) GenerateStateOverlay(z float32) []CellVertex {
	if r == nil {
		return nil
	}

	res := r.chunk.Resolution()
	half := r.chunk.CellSize() * r.markerScale * 0.5
	vertices := make([]CellVertex, 0, res*res*6)

	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			cell, _ := r.chunk.Cell(x, y)
			color := emptyColor
			if cell.State {
				color = filledColor
			}

			c := r.origin.Add(cell.Position)
			p0 := math.Vec2{X: c.X - half, Y: c.Y - half}
			p1 := math.Vec2{X: c.X + half, Y: c.Y - half}
			p2 := math.Vec2{X: c.X + half, Y: c.Y + half}
			p3 := math.Vec2{X: c.X - half, Y: c.Y + half}

			vertices = append(vertices,
				vertex(p0, z, color), vertex(p1, z, color), vertex(p2, z, color),
				vertex(p0, z, color), vertex(p2, z, color), vertex(p3, z, color),
			)
		}
	}

	return vertices
}

// GenerateNormalLines generates one line per boundary crossing, starting at
// the crossing and pointing along its normal.
func (r *CellGridRenderer) GenerateNormalLines(length, z float32) []CellVertex {
	if r == nil {
		return nil
	}

	var vertices []CellVertex
	res := r.chunk.Resolution()
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			cell, _ := r.chunk.Cell(x, y)
			if cell.HasXEdge() {
				p := r.origin.Add(math.Vec2{X: cell.XEdge, Y: cell.Position.Y})
				vertices = append(vertices,
					vertex(p, z, normalColor),
					vertex(p.Add(cell.XNormal.Scale(length)), z, normalColor),
				)
			}
			if cell.HasYEdge() {
				p := r.origin.Add(math.Vec2{X: cell.Position.X, Y: cell.YEdge})
				vertices = append(vertices,
					vertex(p, z, normalColor),
					vertex(p.Add(cell.YNormal.Scale(length)), z, normalColor),
				)
			}
		}
	}
	return vertices
}

// CellInfo contains information about a specific cell.
type CellInfo struct {
	X, Y     int
	Filled   bool
	Position math.Vec2 // World space
	XEdge    float32   // World space, terrain.Undefined when absent
	YEdge    float32
}

// GetCellInfo returns information about a specific cell.
func (r *CellGridRenderer) GetCellInfo(x, y int) *CellInfo {
	if r == nil {
		return nil
	}

	cell, ok := r.chunk.Cell(x, y)
	if !ok {
		return nil
	}

	info := &CellInfo{
		X:        x,
		Y:        y,
		Filled:   cell.State,
		Position: r.origin.Add(cell.Position),
		XEdge:    terrain.Undefined,
		YEdge:    terrain.Undefined,
	}
	if cell.HasXEdge() {
		info.XEdge = cell.XEdge + r.origin.X
	}
	if cell.HasYEdge() {
		info.YEdge = cell.YEdge + r.origin.Y
	}
	return info
}
