// Package editor drives terrain edits the way an interactive surface does:
// a brush with a discrete radius, optional snapping to cell centers, and
// scripted strokes for batch runs.
package editor

import (
	gomath "math"

	"github.com/Faultbox/marching-terrain/internal/terrain"
	"github.com/Faultbox/marching-terrain/pkg/math"
)

// MaxRadiusIndex is the largest selectable brush radius step.
const MaxRadiusIndex = 5

// Brush is the editing tool selection.
type Brush struct {
	Shape       terrain.Shape
	RadiusIndex int // 0..MaxRadiusIndex
	Fill        bool
	SnapToGrid  bool
}

// Radius returns the brush radius for a cell size. Index 0 covers exactly the
// cell under the brush center.
func (b Brush) Radius(cellSize float32) float32 {
	return (float32(b.RadiusIndex) + 0.5) * cellSize
}

// SnapToCell moves p to the center of the cell containing it.
func SnapToCell(p math.Vec2, cellSize float32) math.Vec2 {
	return math.Vec2{X: snap(p.X, cellSize), Y: snap(p.Y, cellSize)}
}

func snap(v, cellSize float32) float32 {
	return (float32(gomath.Floor(float64(v/cellSize))) + 0.5) * cellSize
}

func clampRadiusIndex(i int) int {
	return min(max(i, 0), MaxRadiusIndex)
}
