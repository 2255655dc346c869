// Package config handles terrain tool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/marching-terrain/internal/editor"
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/formats"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all terrain tool settings.
type Config struct {
	Terrain  TerrainConfig  `yaml:"terrain"`
	Brush    BrushConfig    `yaml:"brush"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TerrainConfig holds the map layout.
type TerrainConfig struct {
	Size            float32 `yaml:"size"`             // World extent along each axis
	ChunkResolution int     `yaml:"chunk_resolution"` // Chunks along each axis
	CellResolution  int     `yaml:"cell_resolution"`  // Cells along each axis of a chunk
}

// BrushConfig holds the initial editing brush.
type BrushConfig struct {
	Shape       string `yaml:"shape"`
	RadiusIndex int    `yaml:"radius_index"`
	Fill        bool   `yaml:"fill"`
	SnapToGrid  bool   `yaml:"snap_to_grid"`
}

// SnapshotConfig holds snapshot file settings.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Size:            8,
			ChunkResolution: 2,
			CellResolution:  8,
		},
		Brush: BrushConfig{
			Shape:       "circle",
			RadiusIndex: 0,
			Fill:        true,
			SnapToGrid:  false,
		},
		Snapshot: SnapshotConfig{
			Path: "terrain.vxt",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the terrain layout and brush can be built.
func (c *Config) Validate() error {
	t := c.Terrain
	if !(t.Size > 0) {
		return fmt.Errorf("%w: terrain.size %v must be positive", ErrInvalidConfig, t.Size)
	}
	if t.ChunkResolution <= 0 || t.ChunkResolution > formats.MaxChunkResolution {
		return fmt.Errorf("%w: terrain.chunk_resolution %d out of range [1, %d]",
			ErrInvalidConfig, t.ChunkResolution, formats.MaxChunkResolution)
	}
	if t.CellResolution <= 0 || t.CellResolution > formats.MaxCellResolution {
		return fmt.Errorf("%w: terrain.cell_resolution %d out of range [1, %d]",
			ErrInvalidConfig, t.CellResolution, formats.MaxCellResolution)
	}
	if _, err := c.Brush.EditorBrush(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// EditorBrush converts the brush section into an editor brush.
func (b BrushConfig) EditorBrush() (editor.Brush, error) {
	shape, err := terrain.ParseShape(b.Shape)
	if err != nil {
		return editor.Brush{}, fmt.Errorf("brush.shape: %w", err)
	}
	if b.RadiusIndex < 0 || b.RadiusIndex > editor.MaxRadiusIndex {
		return editor.Brush{}, fmt.Errorf("brush.radius_index %d out of range [0, %d]",
			b.RadiusIndex, editor.MaxRadiusIndex)
	}
	return editor.Brush{
		Shape:       shape,
		RadiusIndex: b.RadiusIndex,
		Fill:        b.Fill,
		SnapToGrid:  b.SnapToGrid,
	}, nil
}
