// terrainctl is a CLI utility for building and inspecting marching-squares terrain.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/marching-terrain/internal/config"
	"github.com/Faultbox/marching-terrain/internal/debug"
	"github.com/Faultbox/marching-terrain/internal/editor"
	"github.com/Faultbox/marching-terrain/internal/logger"
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/formats"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// maxASCIIWidth is the widest terrain, in cells, that info prints as a map.
const maxASCIIWidth = 128

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	switch command {
	case "run":
		err = cmdRun(cfg, args)
	case "info":
		err = cmdInfo(cfg, args)
	case "obj":
		err = cmdOBJ(cfg, args)
	case "preview":
		err = cmdPreview(cfg, args)
	case "stroke":
		err = cmdStroke(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terrainctl - marching-squares terrain utility

Usage:
  terrainctl [global flags] <command> [options]

Global flags:
  -config <file>   Config file (default ./config.yaml or the user config dir)
  -debug           Enable debug logging
  -size <n>        Terrain extent along each axis
  -chunks <n>      Chunks along each axis
  -cells <n>       Cells along each axis of a chunk

Commands:
  run <script.yaml> [-o out.vxt]        Apply an edit script to a new terrain
  info [file.vxt] [-cell cx,cy,x,y]     Show snapshot or single cell information
  obj [file.vxt] <out.obj> [-overlay]   Export chunk meshes as Wavefront OBJ
  preview <x> <y> | -ray o,o,o,d,d,d    Show where the configured brush would land
  stroke <x> <y> | -ray o,o,o,d,d,d [-f file.vxt]
                                        Apply the configured brush to a snapshot

Snapshot paths default to snapshot.path from the config.

Examples:
  terrainctl -chunks 4 run cave.yaml -o cave.vxt
  terrainctl info cave.vxt -cell 0,1,3,2
  terrainctl obj cave.vxt cave.obj -overlay
  terrainctl stroke -ray 4,4,10,0,0,-1 -f cave.vxt`)
}

// parseInterleaved parses fs over args, allowing flags after positional
// arguments, and returns the positional arguments.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// withSnapshotPath fills in the configured snapshot path as the first of n
// arguments when only the other n-1 were given.
func withSnapshotPath(cfg *config.Config, positional []string, n int) []string {
	if len(positional) == n-1 {
		return append([]string{cfg.Snapshot.Path}, positional...)
	}
	return positional
}

func cmdRun(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	out := fs.String("o", cfg.Snapshot.Path, "Write the resulting snapshot to this file (empty to skip)")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terrainctl run <script.yaml> [-o out.vxt]")
		os.Exit(1)
	}

	script, err := editor.LoadScript(positional[0])
	if err != nil {
		return err
	}

	t := cfg.Terrain
	m, err := terrain.NewMap(t.ChunkResolution, t.CellResolution, t.Size)
	if err != nil {
		return err
	}
	brush, err := cfg.Brush.EditorBrush()
	if err != nil {
		return err
	}

	touched, err := editor.RunScript(editor.New(m, brush), script)
	if err != nil {
		return err
	}
	logger.Info("script applied",
		zap.String("script", positional[0]),
		zap.Int("edits", len(script.Edits)),
		zap.Int("chunks", len(touched)),
	)

	fmt.Printf("Terrain: %d x %d chunks, %d x %d cells each, size %g\n",
		t.ChunkResolution, t.ChunkResolution, t.CellResolution, t.CellResolution, t.Size)
	fmt.Printf("Edits:   %d\n", len(script.Edits))
	fmt.Println()
	fmt.Println("Triangles per chunk:")
	for cy := m.ChunkResolution() - 1; cy >= 0; cy-- {
		row := make([]string, 0, m.ChunkResolution())
		for cx := 0; cx < m.ChunkResolution(); cx++ {
			row = append(row, fmt.Sprintf("%6d", m.Chunk(cx, cy).TriangleCount()))
		}
		fmt.Println(strings.Join(row, " "))
	}
	fmt.Printf("Total:   %d\n", m.TriangleCount())

	if *out != "" {
		if err := formats.WriteTerrainFile(*out, m.Snapshot()); err != nil {
			return err
		}
		logger.Info("snapshot written", zap.String("path", *out))
	}
	return nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cellRef := fs.String("cell", "", "Show one cell, given as chunk and cell indices cx,cy,x,y")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	path := withSnapshotPath(cfg, positional, 1)[0]

	snap, err := formats.ParseTerrainFile(path)
	if err != nil {
		return err
	}
	if *cellRef != "" {
		return printCell(snap, *cellRef)
	}

	chunkRes := int(snap.ChunkResolution)
	cellRes := int(snap.CellResolution)
	counts := snap.FilledCount()
	total := 0
	for _, n := range counts {
		total += n
	}

	fmt.Printf("Snapshot: %s\n", path)
	fmt.Printf("Version:  %s\n", snap.Version)
	fmt.Printf("Size:     %g\n", snap.Size)
	fmt.Printf("Chunks:   %d x %d\n", chunkRes, chunkRes)
	fmt.Printf("Cells:    %d x %d per chunk\n", cellRes, cellRes)
	fmt.Printf("Filled:   %d of %d cells\n", total, chunkRes*chunkRes*cellRes*cellRes)
	fmt.Println()
	fmt.Println("Filled cells per chunk:")
	for cy := chunkRes - 1; cy >= 0; cy-- {
		row := make([]string, 0, chunkRes)
		for cx := 0; cx < chunkRes; cx++ {
			row = append(row, fmt.Sprintf("%6d", counts[cy*chunkRes+cx]))
		}
		fmt.Println(strings.Join(row, " "))
	}

	width := chunkRes * cellRes
	if width > maxASCIIWidth {
		fmt.Printf("\n(map too wide to print: %d cells)\n", width)
		return nil
	}
	fmt.Println()
	for gy := width - 1; gy >= 0; gy-- {
		var sb strings.Builder
		for gx := 0; gx < width; gx++ {
			chunk := snap.Chunks[(gy/cellRes)*chunkRes+gx/cellRes]
			if chunk[(gy%cellRes)*cellRes+gx%cellRes].Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		fmt.Println(sb.String())
	}
	return nil
}

func cmdOBJ(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("obj", flag.ExitOnError)
	overlay := fs.Bool("overlay", false, "Append cell grid, state, crossing normal and bounds overlays")
	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return err
	}
	positional = withSnapshotPath(cfg, positional, 2)
	if len(positional) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terrainctl obj [file.vxt] <out.obj> [-overlay]")
		os.Exit(1)
	}

	snap, err := formats.ParseTerrainFile(positional[0])
	if err != nil {
		return err
	}
	m, err := terrain.RestoreMap(snap)
	if err != nil {
		return err
	}

	var objects []formats.OBJObject
	for cy := 0; cy < m.ChunkResolution(); cy++ {
		for cx := 0; cx < m.ChunkResolution(); cx++ {
			objects = append(objects, chunkObject(m, cx, cy))
		}
	}
	if *overlay {
		objects = append(objects, overlayObjects(m)...)
	}

	f, err := os.Create(positional[1])
	if err != nil {
		return err
	}
	if err := formats.WriteOBJ(f, objects); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("obj exported",
		zap.String("path", positional[1]),
		zap.Int("objects", len(objects)),
		zap.Int("triangles", m.TriangleCount()),
	)
	return nil
}

// chunkObject converts a chunk mesh to world space.
func chunkObject(m *terrain.Map, cx, cy int) formats.OBJObject {
	mesh := m.Chunk(cx, cy).Mesh()
	offset := m.ChunkOrigin(cx, cy).Extend(0)
	for i := range mesh.Vertices {
		mesh.Vertices[i] = mesh.Vertices[i].Add(offset)
	}
	return formats.OBJObject{
		Name:     fmt.Sprintf("chunk_%d_%d", cx, cy),
		Vertices: mesh.Vertices,
		Faces:    mesh.Indices,
	}
}

// overlayObjects builds the debug overlays over every chunk, lifted slightly
// above the terrain: grid lines, cell state markers, crossing normals and mesh
// bounds.
func overlayObjects(m *terrain.Map) []formats.OBJObject {
	grid := formats.OBJObject{Name: "cell_grid"}
	states := formats.OBJObject{Name: "cell_states"}
	normals := formats.OBJObject{Name: "crossing_normals"}
	bounds := formats.OBJObject{Name: "chunk_bounds"}
	normalLength := m.CellSize() * 0.5
	for cy := 0; cy < m.ChunkResolution(); cy++ {
		for cx := 0; cx < m.ChunkResolution(); cx++ {
			chunk, origin := m.Chunk(cx, cy), m.ChunkOrigin(cx, cy)
			r := debug.NewCellGridRenderer(chunk, origin)
			appendVertices(&grid, r.GenerateGridLines(0.01), 2)
			appendVertices(&states, r.GenerateStateOverlay(0.02), 3)
			appendVertices(&normals, r.GenerateNormalLines(normalLength, 0.03), 2)
			appendVertices(&bounds, debug.GenerateChunkBounds(chunk, origin, 0, 0.04), 2)
		}
	}
	return []formats.OBJObject{grid, states, normals, bounds}
}

// printCell restores the snapshot and prints one cell's state and crossings.
func printCell(snap *formats.TerrainSnapshot, ref string) error {
	m, err := terrain.RestoreMap(snap)
	if err != nil {
		return err
	}
	info, err := cellInfo(m, ref)
	if err != nil {
		return err
	}

	fmt.Printf("Cell:     %d, %d\n", info.X, info.Y)
	fmt.Printf("Filled:   %v\n", info.Filled)
	fmt.Printf("Position: (%g, %g)\n", info.Position.X, info.Position.Y)
	fmt.Printf("X edge:   %s\n", edgeString(info.XEdge))
	fmt.Printf("Y edge:   %s\n", edgeString(info.YEdge))
	return nil
}

// cellInfo looks up the cell named by ref ("cx,cy,x,y") in world space.
func cellInfo(m *terrain.Map, ref string) (*debug.CellInfo, error) {
	coord, x, y, err := parseCellRef(ref)
	if err != nil {
		return nil, err
	}
	r := debug.NewCellGridRenderer(m.Chunk(coord.X, coord.Y), m.ChunkOrigin(coord.X, coord.Y))
	info := r.GetCellInfo(x, y)
	if info == nil {
		return nil, fmt.Errorf("no cell %d,%d in chunk %d,%d", x, y, coord.X, coord.Y)
	}
	return info, nil
}

func edgeString(edge float32) string {
	if edge == terrain.Undefined {
		return "none"
	}
	return fmt.Sprintf("%g", edge)
}

// appendVertices adds debug vertices to obj as lines (per == 2) or triangles (per == 3).
func appendVertices(obj *formats.OBJObject, vertices []debug.CellVertex, per int) {
	base := uint32(len(obj.Vertices))
	for i, v := range vertices {
		obj.Vertices = append(obj.Vertices, math.Vec3{X: v.X, Y: v.Y, Z: v.Z})
		obj.Colors = append(obj.Colors, [3]float32{v.R, v.G, v.B})
		if per == 2 {
			obj.Lines = append(obj.Lines, base+uint32(i))
		} else {
			obj.Faces = append(obj.Faces, base+uint32(i))
		}
	}
}
