package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// Terrain snapshot errors.
var (
	ErrInvalidTerrainMagic       = errors.New("invalid terrain magic: expected 'VXTM'")
	ErrUnsupportedTerrainVersion = errors.New("unsupported terrain version")
	ErrTruncatedTerrainData      = errors.New("truncated terrain data")
)

const (
	terrainMagic      = "VXTM"
	terrainHeaderSize = 4 + 2 + 4 + 4 + 4
	terrainCellSize   = 1 + 4*6
)

// Largest layouts a snapshot may describe. Parsing rejects bigger headers
// before allocating.
const (
	MaxChunkResolution = 256
	MaxCellResolution  = 1024
)

// TerrainVersion represents the snapshot format version.
type TerrainVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TerrainVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentTerrainVersion is the version written by Encode.
var CurrentTerrainVersion = TerrainVersion{Major: 1, Minor: 0}

// TerrainCell is the persisted form of one grid cell: its fill state and the
// cached boundary crossings on its right and top edges.
type TerrainCell struct {
	Filled  bool
	XEdge   float32
	YEdge   float32
	XNormal [2]float32
	YNormal [2]float32
}

// terrainCellRecord is the on-disk layout of a TerrainCell.
type terrainCellRecord struct {
	State   uint8
	XEdge   float32
	YEdge   float32
	XNormal [2]float32
	YNormal [2]float32
}

// TerrainSnapshot holds the full cell state of a chunked terrain.
// Chunks are stored row-major, and so are the cells inside each chunk.
type TerrainSnapshot struct {
	Version         TerrainVersion
	ChunkResolution uint32
	CellResolution  uint32
	Size            float32
	Chunks          [][]TerrainCell
}

// ParseTerrain parses a terrain snapshot from raw bytes.
func ParseTerrain(data []byte) (*TerrainSnapshot, error) {
	if len(data) < terrainHeaderSize {
		return nil, ErrTruncatedTerrainData
	}

	if string(data[0:4]) != terrainMagic {
		return nil, ErrInvalidTerrainMagic
	}

	// Version is stored as [minor, major]
	version := TerrainVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentTerrainVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTerrainVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var chunkRes, cellRes uint32
	var size float32
	if err := binary.Read(r, binary.LittleEndian, &chunkRes); err != nil {
		return nil, fmt.Errorf("%w: reading chunk resolution", ErrTruncatedTerrainData)
	}
	if err := binary.Read(r, binary.LittleEndian, &cellRes); err != nil {
		return nil, fmt.Errorf("%w: reading cell resolution", ErrTruncatedTerrainData)
	}
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, fmt.Errorf("%w: reading size", ErrTruncatedTerrainData)
	}

	if chunkRes == 0 || cellRes == 0 || chunkRes > MaxChunkResolution || cellRes > MaxCellResolution {
		return nil, fmt.Errorf("invalid terrain dimensions: %d chunks x %d cells", chunkRes, cellRes)
	}
	if !(size > 0) {
		return nil, fmt.Errorf("invalid terrain size: %v", size)
	}

	chunkCount := int(chunkRes * chunkRes)
	cellCount := int(cellRes * cellRes)
	if want := chunkCount * cellCount * terrainCellSize; r.Len() < want {
		return nil, fmt.Errorf("%w: need %d cell bytes, have %d", ErrTruncatedTerrainData, want, r.Len())
	}

	snap := &TerrainSnapshot{
		Version:         version,
		ChunkResolution: chunkRes,
		CellResolution:  cellRes,
		Size:            size,
		Chunks:          make([][]TerrainCell, chunkCount),
	}

	for ci := range snap.Chunks {
		cells := make([]TerrainCell, cellCount)
		for i := range cells {
			var rec terrainCellRecord
			if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
				return nil, fmt.Errorf("%w: chunk %d cell %d", ErrTruncatedTerrainData, ci, i)
			}
			cells[i] = TerrainCell{
				Filled:  rec.State != 0,
				XEdge:   rec.XEdge,
				YEdge:   rec.YEdge,
				XNormal: rec.XNormal,
				YNormal: rec.YNormal,
			}
		}
		snap.Chunks[ci] = cells
	}

	return snap, nil
}

// Encode serializes the snapshot. The version field is always written as
// CurrentTerrainVersion.
func (s *TerrainSnapshot) Encode() []byte {
	buf := new(bytes.Buffer)
	buf.Grow(terrainHeaderSize + len(s.Chunks)*int(s.CellResolution*s.CellResolution)*terrainCellSize)

	buf.WriteString(terrainMagic)
	buf.WriteByte(CurrentTerrainVersion.Minor)
	buf.WriteByte(CurrentTerrainVersion.Major)

	// Writes into a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, s.ChunkResolution)
	_ = binary.Write(buf, binary.LittleEndian, s.CellResolution)
	_ = binary.Write(buf, binary.LittleEndian, s.Size)

	for _, cells := range s.Chunks {
		for _, c := range cells {
			rec := terrainCellRecord{
				XEdge:   c.XEdge,
				YEdge:   c.YEdge,
				XNormal: c.XNormal,
				YNormal: c.YNormal,
			}
			if c.Filled {
				rec.State = 1
			}
			_ = binary.Write(buf, binary.LittleEndian, &rec)
		}
	}

	return buf.Bytes()
}

// FilledCount returns the number of filled cells in every chunk.
func (s *TerrainSnapshot) FilledCount() []int {
	counts := make([]int, len(s.Chunks))
	for ci, cells := range s.Chunks {
		for _, c := range cells {
			if c.Filled {
				counts[ci]++
			}
		}
	}
	return counts
}
