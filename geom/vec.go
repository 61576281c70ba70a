// Package geom provides the 2D vector, segment and heading primitives shared
// by the arena world and the navigation engine.
package geom

import "math"

// Vec is a 2D point or direction. Operations return new values.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Len returns the Euclidean length.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// DistSq returns the squared distance (avoid sqrt in hot paths).
func (v Vec) DistSq(o Vec) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Finite reports whether both components are finite.
func (v Vec) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
