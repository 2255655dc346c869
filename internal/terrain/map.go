package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Map is a square terrain split into chunkResolution×chunkResolution chunks.
// World coordinates run from 0 to Size on both axes; chunk (cx, cy) covers
// [cx*ChunkSize, (cx+1)*ChunkSize) horizontally and likewise vertically.
type Map struct {
	size            float32
	chunkSize       float32
	cellSize        float32
	chunkResolution int
	cellResolution  int

	chunks   []*Chunk
	stencils map[Shape]Stencil
}

// Location is the result of a chunk lookup.
type Location struct {
	Coord ChunkCoord
	Chunk *Chunk
	Local math.Vec2
}

// NewMap builds the chunk grid and links every chunk to its east, north and
// north-east siblings.
func NewMap(chunkResolution, cellResolution int, size float32) (*Map, error) {
	if chunkResolution <= 0 {
		return nil, fmt.Errorf("%w: map chunk resolution %d", ErrInvalidResolution, chunkResolution)
	}
	if !(size > 0) {
		return nil, fmt.Errorf("%w: map size %v", ErrInvalidSize, size)
	}

	m := &Map{
		size:            size,
		chunkSize:       size / float32(chunkResolution),
		chunkResolution: chunkResolution,
		cellResolution:  cellResolution,
		chunks:          make([]*Chunk, chunkResolution*chunkResolution),
		stencils:        make(map[Shape]Stencil),
	}
	for i := range m.chunks {
		chunk, err := NewChunk(cellResolution, m.chunkSize)
		if err != nil {
			return nil, err
		}
		m.chunks[i] = chunk
	}
	m.cellSize = m.chunks[0].CellSize()

	for _, shape := range []Shape{ShapeSquare, ShapeCircle} {
		s, _ := NewStencil(shape)
		m.stencils[shape] = s
	}

	m.link()
	return m, nil
}

func (m *Map) link() {
	n := m.chunkResolution
	for i, y := 0, 0; y < n; y++ {
		for x := 0; x < n; x, i = x+1, i+1 {
			var east, north, northEast *Chunk
			if x+1 < n {
				east = m.chunks[i+1]
			}
			if y+1 < n {
				north = m.chunks[i+n]
				if x+1 < n {
					northEast = m.chunks[i+n+1]
				}
			}
			m.chunks[i].setNeighbors(east, north, northEast)
		}
	}
}

// Size returns the terrain extent along each axis.
func (m *Map) Size() float32 { return m.size }

// ChunkSize returns the extent of one chunk.
func (m *Map) ChunkSize() float32 { return m.chunkSize }

// CellSize returns the distance between neighbouring cell centers.
func (m *Map) CellSize() float32 { return m.cellSize }

// ChunkResolution returns the number of chunks along each axis.
func (m *Map) ChunkResolution() int { return m.chunkResolution }

// CellResolution returns the number of cells along each axis of a chunk.
func (m *Map) CellResolution() int { return m.cellResolution }

// Chunk returns the chunk at (cx, cy), or nil when out of range.
func (m *Map) Chunk(cx, cy int) *Chunk {
	if cx < 0 || cy < 0 || cx >= m.chunkResolution || cy >= m.chunkResolution {
		return nil
	}
	return m.chunks[cy*m.chunkResolution+cx]
}

// ChunkOrigin returns the world position of chunk (cx, cy)'s lower-left corner.
func (m *Map) ChunkOrigin(cx, cy int) math.Vec2 {
	return math.Vec2{X: float32(cx) * m.chunkSize, Y: float32(cy) * m.chunkSize}
}

// Edit applies a brush at a world position to every chunk it can influence and
// returns the visited chunks in visit order.
//
// The chunk range is the brush box grown by one cell, since a change to a
// chunk's first column or row moves crossings owned by its west or south
// neighbour. Chunks are visited by decreasing y, then decreasing x: east and
// north neighbours are edited before the chunks that read them as ghost cells.
func (m *Map) Edit(x, y float32, shape Shape, radius float32, fill bool) ([]ChunkCoord, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	stencil, ok := m.stencils[shape]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, shape)
	}

	stencil.Configure(fill, radius)
	stencil.SetCenter(x, y)

	bx0, bx1, by0, by1 := stencil.Bounds()
	last := m.chunkResolution - 1
	xStart := max(m.chunkIndex(bx0-m.cellSize), 0)
	xEnd := min(m.chunkIndex(bx1+m.cellSize), last)
	yStart := max(m.chunkIndex(by0-m.cellSize), 0)
	yEnd := min(m.chunkIndex(by1+m.cellSize), last)

	var visited []ChunkCoord
	for cy := yEnd; cy >= yStart; cy-- {
		for cx := xEnd; cx >= xStart; cx-- {
			stencil.SetCenter(x-float32(cx)*m.chunkSize, y-float32(cy)*m.chunkSize)
			m.chunks[cy*m.chunkResolution+cx].ApplyStencil(stencil)
			visited = append(visited, ChunkCoord{X: cx, Y: cy})
		}
	}

	logger.Named("terrain").Debug("stencil applied",
		zap.Stringer("shape", shape),
		zap.Float32("x", x),
		zap.Float32("y", y),
		zap.Float32("radius", radius),
		zap.Bool("fill", fill),
		zap.Int("chunks", len(visited)),
	)
	return visited, nil
}

// LocateChunk finds the chunk containing a world position and the position in
// that chunk's local frame. It reports false outside [0, Size).
func (m *Map) LocateChunk(x, y float32) (Location, bool) {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return Location{}, false
	}
	cx := min(m.chunkIndex(x), m.chunkResolution-1)
	cy := min(m.chunkIndex(y), m.chunkResolution-1)
	origin := m.ChunkOrigin(cx, cy)
	return Location{
		Coord: ChunkCoord{X: cx, Y: cy},
		Chunk: m.chunks[cy*m.chunkResolution+cx],
		Local: math.Vec2{X: x, Y: y}.Sub(origin),
	}, true
}

// TriangleCount returns the total triangle count over all chunks.
func (m *Map) TriangleCount() int {
	n := 0
	for _, c := range m.chunks {
		n += c.TriangleCount()
	}
	return n
}

func (m *Map) chunkIndex(v float32) int {
	return gridIndex(v, m.chunkSize, -1, m.chunkResolution)
}
