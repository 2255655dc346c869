package terrain

import (
	"fmt"
	"strings"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Shape selects a stencil implementation.
type Shape int

// Stencil shapes.
const (
	ShapeSquare Shape = iota
	ShapeCircle
)

// String returns the lowercase shape name.
func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a shape name ("square" or "circle", any case) to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "square":
		return ShapeSquare, nil
	case "circle":
		return ShapeCircle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Stencil is a brush that edits cell state and places the boundary where the
// brush outline crosses the grid.
//
// Configure and SetCenter must be called before every application; a stencil
// keeps no other state between edits.
type Stencil interface {
	Configure(fill bool, radius float32)
	SetCenter(x, y float32)
	// Bounds returns the brush's axis-aligned bounding box.
	Bounds() (xStart, xEnd, yStart, yEnd float32)
	// Apply sets c.State to the fill value when c lies inside the brush.
	Apply(c *Cell)
	// ResolveHorizontalEdge recomputes left.XEdge for the pair (left, right).
	ResolveHorizontalEdge(left, right *Cell)
	// ResolveVerticalEdge recomputes bottom.YEdge for the pair (bottom, top).
	ResolveVerticalEdge(bottom, top *Cell)
}

// NewStencil returns a fresh stencil of the given shape.
func NewStencil(shape Shape) (Stencil, error) {
	switch shape {
	case ShapeSquare:
		return &SquareStencil{}, nil
	case ShapeCircle:
		return &CircleStencil{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownShape, shape)
	}
}

// brush holds the placement shared by every stencil shape.
type brush struct {
	centerX, centerY float32
	radius           float32
	fill             bool
}

func (b *brush) Configure(fill bool, radius float32) {
	b.fill = fill
	b.radius = radius
}

func (b *brush) SetCenter(x, y float32) {
	b.centerX = x
	b.centerY = y
}

func (b *brush) Bounds() (xStart, xEnd, yStart, yEnd float32) {
	return b.xStart(), b.xEnd(), b.yStart(), b.yEnd()
}

// Center returns the brush center.
func (b *brush) Center() math.Vec2 {
	return math.Vec2{X: b.centerX, Y: b.centerY}
}

// Radius returns the brush radius.
func (b *brush) Radius() float32 {
	return b.radius
}

// Fill returns the state the brush writes.
func (b *brush) Fill() bool {
	return b.fill
}

func (b *brush) xStart() float32 { return b.centerX - b.radius }
func (b *brush) xEnd() float32   { return b.centerX + b.radius }
func (b *brush) yStart() float32 { return b.centerY - b.radius }
func (b *brush) yEnd() float32   { return b.centerY + b.radius }

// settleHorizontal handles pairs that need no shape-specific work: equal
// states clear the crossing, and pairs outside the brush rows keep theirs.
// It reports whether the pair was settled.
func (b *brush) settleHorizontal(left, right *Cell) bool {
	if left.State == right.State {
		left.XEdge = Undefined
		return true
	}
	y := left.Position.Y
	return y < b.yStart() || y > b.yEnd()
}

// settleVertical is the column counterpart of settleHorizontal.
func (b *brush) settleVertical(bottom, top *Cell) bool {
	if bottom.State == top.State {
		bottom.YEdge = Undefined
		return true
	}
	x := bottom.Position.X
	return x < b.xStart() || x > b.xEnd()
}

// SquareStencil is an axis-aligned square brush with half-width radius.
type SquareStencil struct {
	brush
}

// Apply fills c when its position lies inside the square, borders included.
func (s *SquareStencil) Apply(c *Cell) {
	p := c.Position
	if p.X >= s.xStart() && p.X <= s.xEnd() && p.Y >= s.yStart() && p.Y <= s.yEnd() {
		c.State = s.fill
	}
}

// ResolveHorizontalEdge places the crossing on the square's left or right side.
// An existing crossing is only moved outward, away from the filled cell.
func (s *SquareStencil) ResolveHorizontalEdge(left, right *Cell) {
	if s.settleHorizontal(left, right) {
		return
	}
	switch xStart, xEnd := s.xStart(), s.xEnd(); {
	case left.State == s.fill:
		if left.Position.X <= xEnd && right.Position.X >= xEnd {
			if !left.HasXEdge() || left.XEdge < xEnd {
				left.XEdge = xEnd
				left.XNormal = math.Vec2{X: 1}
			}
		}
	case right.State == s.fill:
		if left.Position.X <= xStart && right.Position.X >= xStart {
			if !left.HasXEdge() || left.XEdge > xStart {
				left.XEdge = xStart
				left.XNormal = math.Vec2{X: -1}
			}
		}
	}
}

// ResolveVerticalEdge places the crossing on the square's bottom or top side.
func (s *SquareStencil) ResolveVerticalEdge(bottom, top *Cell) {
	if s.settleVertical(bottom, top) {
		return
	}
	switch yStart, yEnd := s.yStart(), s.yEnd(); {
	case bottom.State == s.fill:
		if bottom.Position.Y <= yEnd && top.Position.Y >= yEnd {
			if !bottom.HasYEdge() || bottom.YEdge < yEnd {
				bottom.YEdge = yEnd
				bottom.YNormal = math.Vec2{Y: 1}
			}
		}
	case top.State == s.fill:
		if bottom.Position.Y <= yStart && top.Position.Y >= yStart {
			if !bottom.HasYEdge() || bottom.YEdge > yStart {
				bottom.YEdge = yStart
				bottom.YNormal = math.Vec2{Y: -1}
			}
		}
	}
}
