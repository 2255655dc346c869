package debug

import (
	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// BoundsWireframeVertexCount is the number of vertices for a bounds wireframe (4 edges × 2).
const BoundsWireframeVertexCount = 8

var boundsColor = [3]float32{1, 0.8, 0}

// GenerateBoundsWireframe creates line vertices for a rectangle around b,
// offset by origin and grown by padding on all sides.
func GenerateBoundsWireframe(b terrain.Bounds, origin math.Vec2, padding, z float32) []CellVertex {
	minP := b.Min.Add(origin).Sub(math.Vec2{X: padding, Y: padding})
	maxP := b.Max.Add(origin).Add(math.Vec2{X: padding, Y: padding})

	bl := vertex(minP, z, boundsColor)
	br := vertex(math.Vec2{X: maxP.X, Y: minP.Y}, z, boundsColor)
	tr := vertex(maxP, z, boundsColor)
	tl := vertex(math.Vec2{X: minP.X, Y: maxP.Y}, z, boundsColor)

	return []CellVertex{
		bl, br,
		br, tr,
		tr, tl,
		tl, bl,
	}
}

// GenerateChunkBounds returns the wireframe around a chunk's mesh, or nil when
// the chunk has no geometry.
func GenerateChunkBounds(chunk *terrain.Chunk, origin math.Vec2, padding, z float32) []CellVertex {
	if chunk == nil {
		return nil
	}
	mesh := chunk.Mesh()
	b, ok := mesh.Bounds()
	if !ok {
		return nil
	}
	return GenerateBoundsWireframe(b, origin, padding, z)
}
