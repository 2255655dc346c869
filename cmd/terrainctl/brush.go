package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/marching-terrain/internal/config"
	"github.com/Faultbox/marching-terrain/internal/editor"
	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/formats"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

var errRayMissed = errors.New("ray misses the terrain")

func cmdPreview(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	ray := fs.String("ray", "", "Cast a ray ox,oy,oz,dx,dy,dz instead of giving x y")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}

	ed, err := openEditor(cfg, cfg.Snapshot.Path)
	if err != nil {
		return err
	}
	p, err := cursor(ed, positional, *ray)
	if err != nil {
		return err
	}

	pv, ok := ed.Preview(p.X, p.Y)
	if !ok {
		fmt.Printf("Cursor (%g, %g) is outside the terrain\n", p.X, p.Y)
		return nil
	}
	mode := "dig"
	if pv.Fill {
		mode = "fill"
	}
	fmt.Printf("Cursor: (%g, %g)\n", p.X, p.Y)
	fmt.Printf("Center: (%g, %g)\n", pv.Center.X, pv.Center.Y)
	fmt.Printf("Brush:  %s, radius %g, %s\n", pv.Shape, pv.Radius, mode)
	fmt.Printf("Chunk:  (%d, %d)\n", pv.Chunk.X, pv.Chunk.Y)
	return nil
}

func cmdStroke(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("stroke", flag.ExitOnError)
	ray := fs.String("ray", "", "Cast a ray ox,oy,oz,dx,dy,dz instead of giving x y")
	path := fs.String("f", cfg.Snapshot.Path, "Snapshot to edit, created when missing")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}

	ed, err := openEditor(cfg, *path)
	if err != nil {
		return err
	}
	if err := stroke(ed, positional, *ray); err != nil {
		return err
	}

	if err := formats.WriteTerrainFile(*path, ed.Map().Snapshot()); err != nil {
		return err
	}
	fmt.Printf("Triangles: %d\n", ed.Map().TriangleCount())
	logger.Info("snapshot written", zap.String("path", *path))
	return nil
}

// stroke applies the editor brush at the cursor given either as "x y" or as a ray.
func stroke(ed *editor.Editor, positional []string, ray string) error {
	if ray != "" {
		r, err := parseRay(ray)
		if err != nil {
			return err
		}
		hit, err := ed.StrokeRay(r)
		if err != nil {
			return err
		}
		if !hit {
			return errRayMissed
		}
		return nil
	}

	p, err := parsePoint(positional)
	if err != nil {
		return err
	}
	visited, err := ed.Stroke(p.X, p.Y)
	if err != nil {
		return err
	}
	fmt.Printf("Visited chunks: %v\n", visited)
	return nil
}

// cursor resolves the terrain point named by "x y" or by a ray.
func cursor(ed *editor.Editor, positional []string, ray string) (math.Vec2, error) {
	if ray == "" {
		return parsePoint(positional)
	}
	r, err := parseRay(ray)
	if err != nil {
		return math.Vec2{}, err
	}
	p, ok := ed.Pick(r)
	if !ok {
		return math.Vec2{}, errRayMissed
	}
	return p, nil
}

// openEditor restores the snapshot at path, or starts an empty terrain from
// the configured layout when the file does not exist yet.
func openEditor(cfg *config.Config, path string) (*editor.Editor, error) {
	m, err := loadMap(cfg, path)
	if err != nil {
		return nil, err
	}
	brush, err := cfg.Brush.EditorBrush()
	if err != nil {
		return nil, err
	}
	return editor.New(m, brush), nil
}

func loadMap(cfg *config.Config, path string) (*terrain.Map, error) {
	snap, err := formats.ParseTerrainFile(path)
	if errors.Is(err, os.ErrNotExist) {
		t := cfg.Terrain
		return terrain.NewMap(t.ChunkResolution, t.CellResolution, t.Size)
	}
	if err != nil {
		return nil, err
	}
	return terrain.RestoreMap(snap)
}

func parsePoint(positional []string) (math.Vec2, error) {
	if len(positional) < 2 {
		return math.Vec2{}, fmt.Errorf("expected x and y, got %d arguments", len(positional))
	}
	v, err := parseFloats(strings.Join(positional[:2], ","), 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: v[0], Y: v[1]}, nil
}

func parseRay(s string) (editor.Ray, error) {
	v, err := parseFloats(s, 6)
	if err != nil {
		return editor.Ray{}, fmt.Errorf("ray: %w", err)
	}
	return editor.Ray{
		Origin:    math.Vec3{X: v[0], Y: v[1], Z: v[2]},
		Direction: math.Vec3{X: v[3], Y: v[4], Z: v[5]},
	}, nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s)
	}
	v := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		v[i] = float32(f)
	}
	return v, nil
}

// parseCellRef parses "cx,cy,x,y": a chunk coordinate and a cell inside it.
func parseCellRef(s string) (terrain.ChunkCoord, int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return terrain.ChunkCoord{}, 0, 0, fmt.Errorf("expected cx,cy,x,y, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return terrain.ChunkCoord{}, 0, 0, fmt.Errorf("invalid index %q", p)
		}
		v[i] = n
	}
	return terrain.ChunkCoord{X: v[0], Y: v[1]}, v[2], v[3], nil
}
