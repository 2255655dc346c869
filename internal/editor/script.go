package editor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/internal/terrain"
)

// ErrInvalidScript is returned for scripts that fail to parse or validate.
var ErrInvalidScript = errors.New("invalid edit script")

//go:embed script.schema.json
var scriptSchemaJSON string

var scriptSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("script.schema.json", scriptSchemaJSON)
})

// Script is a batch of brush strokes.
//
//	brush:
//	  shape: circle
//	  radius_index: 2
//	edits:
//	  - {x: 3.5, y: 4}
//	  - {x: 6, y: 6, fill: false, shape: square}
type Script struct {
	Brush BrushOverride `yaml:"brush"`
	Edits []Edit        `yaml:"edits"`
}

// BrushOverride changes the editor brush before the first edit. Unset fields
// keep the editor's current selection.
type BrushOverride struct {
	Shape       string `yaml:"shape"`
	RadiusIndex *int   `yaml:"radius_index"`
	Fill        *bool  `yaml:"fill"`
	SnapToGrid  *bool  `yaml:"snap_to_grid"`
}

// Edit is one stroke. Unset fields use the script brush.
type Edit struct {
	X           float32 `yaml:"x"`
	Y           float32 `yaml:"y"`
	Shape       string  `yaml:"shape"`
	RadiusIndex *int    `yaml:"radius_index"`
	Fill        *bool   `yaml:"fill"`
}

// LoadScript reads and validates a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

// ParseScript validates YAML script data against the script schema and decodes it.
func ParseScript(data []byte) (*Script, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := validateScript(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	return &s, nil
}

// validateScript checks a YAML document against the schema. The validator
// expects encoding/json values, so the document is re-decoded through JSON.
func validateScript(doc any) error {
	schema, err := scriptSchema()
	if err != nil {
		return fmt.Errorf("compiling script schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return schema.Validate(v)
}

// RunScript applies the script's brush override and every edit in order. It
// returns the chunks touched by the script, each once, in first-visit order.
// On failure the edits before the failing one stay applied.
func RunScript(e *Editor, s *Script) ([]terrain.ChunkCoord, error) {
	base, err := s.Brush.apply(e.Brush())
	if err != nil {
		return nil, err
	}
	e.SetBrush(base)

	var touched []terrain.ChunkCoord
	seen := make(map[terrain.ChunkCoord]bool)
	for i, edit := range s.Edits {
		b, err := edit.brush(e.Brush())
		if err != nil {
			return touched, fmt.Errorf("edit %d: %w", i, err)
		}
		visited, err := e.strokeWith(b, edit.X, edit.Y)
		if err != nil {
			return touched, fmt.Errorf("edit %d: %w", i, err)
		}
		for _, c := range visited {
			if !seen[c] {
				seen[c] = true
				touched = append(touched, c)
			}
		}
	}

	logger.Named("editor").Debug("script done",
		zap.Int("edits", len(s.Edits)),
		zap.Int("chunks", len(touched)),
	)
	return touched, nil
}

func (o BrushOverride) apply(b Brush) (Brush, error) {
	if o.Shape != "" {
		shape, err := terrain.ParseShape(o.Shape)
		if err != nil {
			return b, err
		}
		b.Shape = shape
	}
	if o.RadiusIndex != nil {
		b.RadiusIndex = clampRadiusIndex(*o.RadiusIndex)
	}
	if o.Fill != nil {
		b.Fill = *o.Fill
	}
	if o.SnapToGrid != nil {
		b.SnapToGrid = *o.SnapToGrid
	}
	return b, nil
}

func (ed Edit) brush(b Brush) (Brush, error) {
	return BrushOverride{Shape: ed.Shape, RadiusIndex: ed.RadiusIndex, Fill: ed.Fill}.apply(b)
}
