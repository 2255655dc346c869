package terrain

import (
	gomath "math"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// CircleStencil is a disk brush. Its bounding box is the circumscribing square,
// while membership is the exact disk.
type CircleStencil struct {
	brush
	sqRadius float32
}

// Configure sets the fill value and radius.
func (s *CircleStencil) Configure(fill bool, radius float32) {
	s.brush.Configure(fill, radius)
	s.sqRadius = radius * radius
}

// Apply fills c when its position lies inside the disk.
func (s *CircleStencil) Apply(c *Cell) {
	x := c.Position.X - s.centerX
	y := c.Position.Y - s.centerY
	if x*x+y*y <= s.sqRadius {
		c.State = s.fill
	}
}

// ResolveHorizontalEdge solves the circle for x on the pair's row.
func (s *CircleStencil) ResolveHorizontalEdge(left, right *Cell) {
	if s.settleHorizontal(left, right) {
		return
	}
	y := left.Position.Y - s.centerY
	switch {
	case left.State == s.fill:
		x := left.Position.X - s.centerX
		if x*x+y*y <= s.sqRadius {
			x = s.centerX + sqrtf(s.sqRadius-y*y)
			if !left.HasXEdge() || left.XEdge < x {
				left.XEdge = x
				left.XNormal = s.normalAt(x, left.Position.Y)
			}
		}
	case right.State == s.fill:
		x := right.Position.X - s.centerX
		if x*x+y*y <= s.sqRadius {
			x = s.centerX - sqrtf(s.sqRadius-y*y)
			if !left.HasXEdge() || left.XEdge > x {
				left.XEdge = x
				left.XNormal = s.normalAt(x, left.Position.Y)
			}
		}
	}
}

// ResolveVerticalEdge solves the circle for y on the pair's column.
func (s *CircleStencil) ResolveVerticalEdge(bottom, top *Cell) {
	if s.settleVertical(bottom, top) {
		return
	}
	x := bottom.Position.X - s.centerX
	x2 := x * x
	switch {
	case bottom.State == s.fill:
		y := bottom.Position.Y - s.centerY
		if y*y+x2 <= s.sqRadius {
			y = s.centerY + sqrtf(s.sqRadius-x2)
			if !bottom.HasYEdge() || bottom.YEdge < y {
				bottom.YEdge = y
				bottom.YNormal = s.normalAt(bottom.Position.X, y)
			}
		}
	case top.State == s.fill:
		y := top.Position.Y - s.centerY
		if y*y+x2 <= s.sqRadius {
			y = s.centerY - sqrtf(s.sqRadius-x2)
			if !bottom.HasYEdge() || bottom.YEdge > y {
				bottom.YEdge = y
				bottom.YNormal = s.normalAt(bottom.Position.X, y)
			}
		}
	}
}

// normalAt returns the outward radius direction at a point on the outline.
// It points away from the center for both fill values.
func (s *CircleStencil) normalAt(x, y float32) math.Vec2 {
	return math.Vec2{X: x - s.centerX, Y: y - s.centerY}.Normalize()
}

func sqrtf(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
