package navigation

import (
	"math"

	"github.com/pthm-cable/lightcycle/geom"
)

// blocked reports whether a sample point hits a wall or a trail.
func blocked(w World, self int, p geom.Vec) bool {
	return w.IsWallCollision(p.X, p.Y) || w.IsTrailCollision(self, p.X, p.Y)
}

// CastDistance samples along h from pos at RayStep increments up to
// MaxLookahead and returns the distance to the first collision minus RayBias,
// clamped at zero. With no collision it returns the last sampled distance.
func (p Params) CastDistance(w World, self int, pos geom.Vec, h geom.Heading) float64 {
	return castDistance(w, self, pos, h, p.RayStep, p.MaxLookahead, p.RayBias)
}

// CastDistance is the ray cast with the default step and bias and an explicit
// lookahead.
func CastDistance(w World, self int, pos geom.Vec, h geom.Heading, maxLookahead float64) float64 {
	d := DefaultParams()
	return castDistance(w, self, pos, h, d.RayStep, maxLookahead, d.RayBias)
}

func castDistance(w World, self int, pos geom.Vec, h geom.Heading, step, maxLookahead, bias float64) float64 {
	if step <= 0 {
		return 0
	}
	// Integer stepping keeps the samples exact multiples of step.
	steps := int(math.Floor(maxLookahead/step + 1e-9))
	unit := h.Unit()

	last := 0.0
	for i := 1; i <= steps; i++ {
		d := float64(i) * step
		if blocked(w, self, pos.Add(unit.Scale(d))) {
			return math.Max(0, d-bias)
		}
		last = d
	}
	return last
}
