package editor

import (
	gomath "math"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// Ray is a half-line in world space, as cast from a cursor by a viewer.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// IntersectPlaneZ intersects the ray with the plane Z = z.
// Returns the intersection point and whether it lies in front of the origin.
func (r Ray) IntersectPlaneZ(z float32) (math.Vec2, bool) {
	// Ray: P = Origin + t * Direction
	// Solve: Origin.Z + t * Direction.Z = z
	if gomath.Abs(float64(r.Direction.Z)) < 0.001 {
		return math.Vec2{}, false // Ray parallel to plane
	}

	t := (z - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec2{}, false // Intersection behind ray origin
	}
	return math.Vec2{
		X: r.Origin.X + t*r.Direction.X,
		Y: r.Origin.Y + t*r.Direction.Y,
	}, true
}

// Pick returns the terrain point under a ray. The terrain lies in the Z = 0
// plane; rays missing the [0, Size) square hit nothing.
func (e *Editor) Pick(r Ray) (math.Vec2, bool) {
	p, ok := r.IntersectPlaneZ(0)
	if !ok {
		return math.Vec2{}, false
	}
	if _, inside := e.m.LocateChunk(p.X, p.Y); !inside {
		return math.Vec2{}, false
	}
	return p, true
}

// StrokeRay applies the brush where r hits the terrain. It reports false, and
// edits nothing, when the ray misses.
func (e *Editor) StrokeRay(r Ray) (bool, error) {
	p, ok := e.Pick(r)
	if !ok {
		return false, nil
	}
	if _, err := e.Stroke(p.X, p.Y); err != nil {
		return false, err
	}
	return true, nil
}
