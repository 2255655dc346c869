package terrain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/pkg/formats"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Snapshot captures every chunk's cell state and cached crossings.
func (m *Map) Snapshot() *formats.TerrainSnapshot {
	snap := &formats.TerrainSnapshot{
		Version:         formats.CurrentTerrainVersion,
		ChunkResolution: uint32(m.chunkResolution),
		CellResolution:  uint32(m.cellResolution),
		Size:            m.size,
		Chunks:          make([][]formats.TerrainCell, len(m.chunks)),
	}
	for i, c := range m.chunks {
		snap.Chunks[i] = c.snapshotCells()
	}
	return snap
}

// RestoreMap rebuilds a map from a snapshot. Crossings are restored as stored,
// so the meshes match the ones the snapshot was taken from without replaying
// any edits. Stored crossings that break the crossing invariant are repaired.
func RestoreMap(snap *formats.TerrainSnapshot) (*Map, error) {
	m, err := NewMap(int(snap.ChunkResolution), int(snap.CellResolution), snap.Size)
	if err != nil {
		return nil, err
	}
	if len(snap.Chunks) != len(m.chunks) {
		return nil, fmt.Errorf("%w: %d chunks, want %d", ErrSnapshotMismatch, len(snap.Chunks), len(m.chunks))
	}

	// Every chunk must hold its final state before any of them is meshed,
	// since meshing reads the neighbours' border cells.
	for i, c := range m.chunks {
		if err := c.load(snap.Chunks[i]); err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
	}
	for _, c := range m.chunks {
		c.repairCrossings()
		c.Refresh()
	}

	logger.Named("terrain").Debug("map restored",
		zap.Int("chunks", len(m.chunks)),
		zap.Int("triangles", m.TriangleCount()),
	)
	return m, nil
}

// Load replaces the chunk's cells with snapshot records and re-meshes it.
// Crossings that contradict the loaded states are repaired against the
// current neighbours.
func (c *Chunk) Load(cells []formats.TerrainCell) error {
	if err := c.load(cells); err != nil {
		return err
	}
	c.repairCrossings()
	c.Refresh()
	return nil
}

func (c *Chunk) load(cells []formats.TerrainCell) error {
	if len(cells) != len(c.cells) {
		return fmt.Errorf("%w: %d cells, want %d", ErrSnapshotMismatch, len(cells), len(c.cells))
	}
	for i, rec := range cells {
		cell := &c.cells[i]
		cell.State = rec.Filled
		cell.XEdge = rec.XEdge
		cell.YEdge = rec.YEdge
		cell.XNormal = math.Vec2{X: rec.XNormal[0], Y: rec.XNormal[1]}
		cell.YNormal = math.Vec2{X: rec.YNormal[0], Y: rec.YNormal[1]}
	}
	return nil
}

func (c *Chunk) snapshotCells() []formats.TerrainCell {
	cells := make([]formats.TerrainCell, len(c.cells))
	for i, cell := range c.cells {
		cells[i] = formats.TerrainCell{
			Filled:  cell.State,
			XEdge:   cell.XEdge,
			YEdge:   cell.YEdge,
			XNormal: [2]float32{cell.XNormal.X, cell.XNormal.Y},
			YNormal: [2]float32{cell.YNormal.X, cell.YNormal.Y},
		}
	}
	return cells
}
