package terrain

import (
	"fmt"
	"slices"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Chunk is a square grid of cells meshed independently of its siblings.
//
// Cells are stored row-major with centers at ((x+0.5)*cellSize, (y+0.5)*cellSize)
// in chunk-local coordinates. The optional east, north and north-east
// neighbours are only read, to mesh and resolve the one column and row of
// cells that straddle this chunk's far borders.
type Chunk struct {
	resolution int
	size       float32
	cellSize   float32
	cells      []Cell

	east, north, northEast *Chunk

	vertices []math.Vec3
	indices  []uint32

	// Vertex indices of the previous (min) and current (max) row: even slots
	// hold corners, odd slots the horizontal crossing between two corners.
	rowCacheMin, rowCacheMax []int
	// Vertex indices of the vertical crossings left and right of the current cell.
	edgeCacheMin, edgeCacheMax int
}

// NewChunk creates an empty chunk of resolution×resolution cells spanning size
// units on each axis.
func NewChunk(resolution int, size float32) (*Chunk, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: chunk resolution %d", ErrInvalidResolution, resolution)
	}
	if !(size > 0) {
		return nil, fmt.Errorf("%w: chunk size %v", ErrInvalidSize, size)
	}

	c := &Chunk{
		resolution:  resolution,
		size:        size,
		cellSize:    size / float32(resolution),
		cells:       make([]Cell, resolution*resolution),
		rowCacheMin: make([]int, resolution*2+1),
		rowCacheMax: make([]int, resolution*2+1),
	}
	for i, y := 0, 0; y < resolution; y++ {
		for x := 0; x < resolution; x, i = x+1, i+1 {
			c.cells[i] = newCell(x, y, c.cellSize)
		}
	}
	c.Refresh()
	return c, nil
}

// Resolution returns the number of cells along each axis.
func (c *Chunk) Resolution() int { return c.resolution }

// Size returns the chunk's extent along each axis.
func (c *Chunk) Size() float32 { return c.size }

// CellSize returns the distance between neighbouring cell centers.
func (c *Chunk) CellSize() float32 { return c.cellSize }

// Cell returns a copy of the cell at (x, y).
func (c *Chunk) Cell(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.resolution || y >= c.resolution {
		return Cell{}, false
	}
	return c.cells[y*c.resolution+x], true
}

// State reports whether the cell at (x, y) is filled. Out-of-range cells are empty.
func (c *Chunk) State(x, y int) bool {
	cell, ok := c.Cell(x, y)
	return ok && cell.State
}

// States returns the fill state of every cell in row-major order.
func (c *Chunk) States() []bool {
	states := make([]bool, len(c.cells))
	for i := range c.cells {
		states[i] = c.cells[i].State
	}
	return states
}

// SetNeighbors links the chunks whose border cells this chunk meshes against.
// Any of them may be nil at the edge of the terrain.
func (c *Chunk) SetNeighbors(east, north, northEast *Chunk) error {
	for _, n := range []*Chunk{east, north, northEast} {
		if n != nil && (n.resolution != c.resolution || n.size != c.size) {
			return fmt.Errorf("%w: %dx%v vs %dx%v", ErrNeighborMismatch,
				n.resolution, n.size, c.resolution, c.size)
		}
	}
	c.setNeighbors(east, north, northEast)
	return nil
}

func (c *Chunk) setNeighbors(east, north, northEast *Chunk) {
	c.east = east
	c.north = north
	c.northEast = northEast
}

// Mesh returns a copy of the current mesh.
func (c *Chunk) Mesh() Mesh {
	return Mesh{
		Vertices: slices.Clone(c.vertices),
		Indices:  slices.Clone(c.indices),
	}
}

// TriangleCount returns the number of triangles in the current mesh.
func (c *Chunk) TriangleCount() int {
	return len(c.indices) / 3
}

// ApplyStencil edits every cell inside the stencil's bounding box, recomputes
// the crossings around them and re-meshes the chunk. The stencil must already
// be centered in this chunk's local frame.
func (c *Chunk) ApplyStencil(s Stencil) {
	bx0, bx1, by0, by1 := s.Bounds()
	xStart, xEnd := c.cellIndex(bx0), c.cellIndex(bx1)
	yStart, yEnd := c.cellIndex(by0), c.cellIndex(by1)

	// Index resolution is the first cell of the east/north neighbour: a brush
	// starting there still changes crossings on this chunk's far border.
	if xEnd < 0 || yEnd < 0 || xStart > c.resolution || yStart > c.resolution {
		return
	}

	x0, x1 := max(xStart, 0), min(xEnd, c.resolution-1)
	for y := max(yStart, 0); y <= min(yEnd, c.resolution-1); y++ {
		i := y*c.resolution + x0
		for x := x0; x <= x1; x, i = x+1, i+1 {
			s.Apply(&c.cells[i])
		}
	}

	c.setCrossings(s, xStart, xEnd, yStart, yEnd)
	c.Refresh()
}

// setCrossings re-resolves every crossing touching the edited range plus one
// ring of cells around it, reaching into ghost cells across the far borders.
func (c *Chunk) setCrossings(s Stencil, xStart, xEnd, yStart, yEnd int) {
	res := c.resolution
	xs, ys := max(min(xStart, res)-1, 0), max(min(yStart, res)-1, 0)
	xe, ye := min(xEnd, res-1), min(yEnd, res-1)

	for y := ys; y <= ye; y++ {
		for x := xs; x <= xe; x++ {
			left := &c.cells[y*res+x]
			if x+1 < res {
				right := &c.cells[y*res+x+1]
				s.ResolveHorizontalEdge(left, right)
				guardHorizontal(left, right)
			} else if ghost, ok := c.cellAt(x+1, y); ok {
				s.ResolveHorizontalEdge(left, &ghost)
				guardHorizontal(left, &ghost)
			}
		}
		for x := xs; x <= min(xe+1, res-1); x++ {
			bottom := &c.cells[y*res+x]
			if y+1 < res {
				top := &c.cells[(y+1)*res+x]
				s.ResolveVerticalEdge(bottom, top)
				guardVertical(bottom, top)
			} else if ghost, ok := c.cellAt(x, y+1); ok {
				s.ResolveVerticalEdge(bottom, &ghost)
				guardVertical(bottom, &ghost)
			}
		}
	}
}

// guardHorizontal keeps a crossing on every differing pair. A cell sitting
// exactly on the brush outline can test inside in one chunk's frame and outside
// in its neighbour's; the boundary then falls back to the midpoint.
func guardHorizontal(left, right *Cell) {
	if left.State == right.State || left.HasXEdge() {
		return
	}
	left.XEdge = (left.Position.X + right.Position.X) * 0.5
	left.XNormal = math.Vec2{X: 1}
	if right.State {
		left.XNormal.X = -1
	}
}

func guardVertical(bottom, top *Cell) {
	if bottom.State == top.State || bottom.HasYEdge() {
		return
	}
	bottom.YEdge = (bottom.Position.Y + top.Position.Y) * 0.5
	bottom.YNormal = math.Vec2{Y: 1}
	if top.State {
		bottom.YNormal.Y = -1
	}
}

// cellAt extends the grid by one column and row: index resolution on either
// axis maps to the matching border cell of the east, north or north-east
// neighbour, translated into this chunk's frame. The result is a copy, so
// neighbour storage is never written through it.
func (c *Chunk) cellAt(x, y int) (Cell, bool) {
	res := c.resolution
	switch {
	case x < 0 || y < 0 || x > res || y > res:
		return Cell{}, false
	case x < res && y < res:
		return c.cells[y*res+x], true
	case y < res:
		if c.east == nil {
			return Cell{}, false
		}
		return c.east.cells[y*res].translated(c.size, 0), true
	case x < res:
		if c.north == nil {
			return Cell{}, false
		}
		return c.north.cells[x].translated(0, c.size), true
	default:
		if c.northEast == nil {
			return Cell{}, false
		}
		return c.northEast.cells[0].translated(c.size, c.size), true
	}
}

// cellIndex returns the cell column or row holding v, clipped to one index
// past either end of the extended grid.
func (c *Chunk) cellIndex(v float32) int {
	return gridIndex(v, c.cellSize, -1, c.resolution+1)
}

// repairCrossings restores the crossing invariant on loaded cells: equal pairs
// lose their crossing, differing pairs whose crossing is missing or lies
// outside the segment between the two centers get the midpoint. Neighbours
// must be loaded first, since ghost pairs are checked too.
func (c *Chunk) repairCrossings() {
	res := c.resolution
	for y := range res {
		for x := range res {
			cell := &c.cells[y*res+x]
			if right, ok := c.cellAt(x+1, y); !ok || right.State == cell.State ||
				!onSegment(cell.XEdge, cell.Position.X, right.Position.X) || !finite(cell.XNormal) {
				cell.XEdge = Undefined
				if ok {
					guardHorizontal(cell, &right)
				}
			}
			if top, ok := c.cellAt(x, y+1); !ok || top.State == cell.State ||
				!onSegment(cell.YEdge, cell.Position.Y, top.Position.Y) || !finite(cell.YNormal) {
				cell.YEdge = Undefined
				if ok {
					guardVertical(cell, &top)
				}
			}
		}
	}
}
