package terrain

import (
	gomath "math"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Undefined marks an edge with no boundary crossing.
const Undefined float32 = -gomath.MaxFloat32

// Cell is one sample of the terrain grid.
//
// XEdge is the X coordinate where the solid/empty boundary crosses the segment
// to the next cell on the right, YEdge the Y coordinate where it crosses the
// segment to the cell above. Both are Undefined unless the two cells sharing
// that segment differ in State. The normals are only meaningful while the
// matching edge is defined.
type Cell struct {
	State    bool
	Position math.Vec2
	XEdge    float32
	YEdge    float32
	XNormal  math.Vec2
	YNormal  math.Vec2
}

func newCell(x, y int, size float32) Cell {
	return Cell{
		Position: math.Vec2{
			X: (float32(x) + 0.5) * size,
			Y: (float32(y) + 0.5) * size,
		},
		XEdge: Undefined,
		YEdge: Undefined,
	}
}

// HasXEdge reports whether a boundary crosses the cell's right segment.
func (c *Cell) HasXEdge() bool {
	return c.XEdge != Undefined
}

// HasYEdge reports whether a boundary crosses the cell's top segment.
func (c *Cell) HasYEdge() bool {
	return c.YEdge != Undefined
}

// translated returns a copy of c moved by (dx, dy), used to present a
// neighbouring chunk's border cell in this chunk's coordinate frame.
func (c Cell) translated(dx, dy float32) Cell {
	c.Position.X += dx
	c.Position.Y += dy
	c.XEdge = shiftEdge(c.XEdge, dx)
	c.YEdge = shiftEdge(c.YEdge, dy)
	return c
}

func shiftEdge(edge, offset float32) float32 {
	if edge == Undefined {
		return Undefined
	}
	return edge + offset
}

// gridIndex returns floor(v/step) clipped to [lo, hi]. Huge brushes would
// otherwise overflow the int conversion; NaN maps to lo.
func gridIndex(v, step float32, lo, hi int) int {
	f := gomath.Floor(float64(v / step))
	switch {
	case !(f >= float64(lo)):
		return lo
	case f > float64(hi):
		return hi
	}
	return int(f)
}

// onSegment reports whether edge lies between two cell centers. The slack
// absorbs rounding where a stencil solves the crossing next to a center.
func onSegment(edge, from, to float32) bool {
	slack := (to - from) * 1e-3
	return edge >= from-slack && edge <= to+slack
}

func finite(v math.Vec2) bool {
	return !gomath.IsNaN(float64(v.X)) && !gomath.IsNaN(float64(v.Y)) &&
		!gomath.IsInf(float64(v.X), 0) && !gomath.IsInf(float64(v.Y), 0)
}
