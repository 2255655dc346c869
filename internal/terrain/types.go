// Package terrain turns grids of filled/empty cells into boundary meshes using
// marching squares, with chunked storage that stitches seamlessly at chunk borders.
package terrain

import (
	gomath "math"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Mesh holds a chunk's triangulated geometry in chunk-local coordinates.
// Every three consecutive indices form one triangle; Z is always zero.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec2
	Max math.Vec2
}

// Bounds returns the bounding box of all vertices. An empty mesh yields a
// zero box and false.
func (m *Mesh) Bounds() (Bounds, bool) {
	if len(m.Vertices) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		Min: math.Vec2{X: gomath.MaxFloat32, Y: gomath.MaxFloat32},
		Max: math.Vec2{X: -gomath.MaxFloat32, Y: -gomath.MaxFloat32},
	}
	for _, v := range m.Vertices {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
	}
	return b, true
}

// ChunkCoord addresses a chunk in the map's chunk grid.
type ChunkCoord struct {
	X, Y int
}
