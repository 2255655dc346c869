package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestTerrain builds a snapshot where cell i of every chunk is filled
// when filled[i] is true.
func createTestTerrain(chunkRes, cellRes uint32, filled []bool) *TerrainSnapshot {
	snap := &TerrainSnapshot{
		Version:         CurrentTerrainVersion,
		ChunkResolution: chunkRes,
		CellResolution:  cellRes,
		Size:            float32(chunkRes) * 4,
		Chunks:          make([][]TerrainCell, chunkRes*chunkRes),
	}
	for ci := range snap.Chunks {
		cells := make([]TerrainCell, cellRes*cellRes)
		for i := range cells {
			cells[i].XEdge = -1
			cells[i].YEdge = -1
			if i < len(filled) && filled[i] {
				cells[i].Filled = true
				cells[i].XEdge = float32(i) + 0.25
				cells[i].XNormal = [2]float32{1, 0}
			}
		}
		snap.Chunks[ci] = cells
	}
	return snap
}

func TestParseTerrain_RoundTrip(t *testing.T) {
	snap := createTestTerrain(2, 3, []bool{true, false, true, false, true})

	got, err := ParseTerrain(snap.Encode())
	if err != nil {
		t.Fatalf("ParseTerrain failed: %v", err)
	}

	if got.Version != CurrentTerrainVersion {
		t.Errorf("expected version %s, got %s", CurrentTerrainVersion, got.Version)
	}
	if got.ChunkResolution != 2 || got.CellResolution != 3 {
		t.Errorf("expected 2x3 dimensions, got %dx%d", got.ChunkResolution, got.CellResolution)
	}
	if got.Size != 8 {
		t.Errorf("expected size 8, got %v", got.Size)
	}
	if len(got.Chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(got.Chunks))
	}
	for ci := range got.Chunks {
		for i, c := range got.Chunks[ci] {
			if c != snap.Chunks[ci][i] {
				t.Errorf("chunk %d cell %d: got %+v, want %+v", ci, i, c, snap.Chunks[ci][i])
			}
		}
	}
}

func TestParseTerrain_InvalidMagic(t *testing.T) {
	data := createTestTerrain(1, 1, nil).Encode()
	copy(data, "XXXX")

	_, err := ParseTerrain(data)
	if !errors.Is(err, ErrInvalidTerrainMagic) {
		t.Errorf("expected ErrInvalidTerrainMagic, got %v", err)
	}
}

func TestParseTerrain_UnsupportedVersion(t *testing.T) {
	data := createTestTerrain(1, 1, nil).Encode()
	data[5] = 9

	_, err := ParseTerrain(data)
	if !errors.Is(err, ErrUnsupportedTerrainVersion) {
		t.Errorf("expected ErrUnsupportedTerrainVersion, got %v", err)
	}
}

func TestParseTerrain_TruncatedData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"magic only", []byte("VXTM")},
		{"missing cells", createTestTerrain(2, 4, nil).Encode()[:terrainHeaderSize+10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTerrain(tt.data)
			if !errors.Is(err, ErrTruncatedTerrainData) {
				t.Errorf("expected ErrTruncatedTerrainData, got %v", err)
			}
		})
	}
}

func TestParseTerrain_InvalidDimensions(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.WriteString("VXTM")
	buf.WriteByte(0)
	buf.WriteByte(1)
	binary.Write(buf, binary.LittleEndian, uint32(0))
	binary.Write(buf, binary.LittleEndian, uint32(4))
	binary.Write(buf, binary.LittleEndian, float32(4))

	if _, err := ParseTerrain(buf.Bytes()); err == nil {
		t.Error("expected error for zero chunk resolution")
	}
}

func TestTerrainSnapshot_FilledCount(t *testing.T) {
	snap := createTestTerrain(2, 2, []bool{true, true, false, true})

	counts := snap.FilledCount()
	if len(counts) != 4 {
		t.Fatalf("expected 4 counts, got %d", len(counts))
	}
	for ci, n := range counts {
		if n != 3 {
			t.Errorf("chunk %d: expected 3 filled cells, got %d", ci, n)
		}
	}
}

func TestTerrainFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "map.vxt")
	snap := createTestTerrain(3, 8, []bool{false, true, true})

	if err := WriteTerrainFile(path, snap); err != nil {
		t.Fatalf("WriteTerrainFile failed: %v", err)
	}

	got, err := ParseTerrainFile(path)
	if err != nil {
		t.Fatalf("ParseTerrainFile failed: %v", err)
	}
	if !bytes.Equal(got.Encode(), snap.Encode()) {
		t.Error("file round trip changed the encoded snapshot")
	}
}

func TestParseTerrainFile_NotCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.vxt")
	if err := os.WriteFile(path, createTestTerrain(1, 2, nil).Encode(), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseTerrainFile(path); err == nil {
		t.Error("expected error for uncompressed file")
	}
}
