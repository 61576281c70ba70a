// Package components defines ECS components for the arena simulation.
package components

import (
	"time"

	"github.com/pthm-cable/lightcycle/geom"
)

// Position represents a cycle's location in arena units.
type Position struct {
	X, Y float64
}

// Vec returns the position as a geom.Vec.
func (p *Position) Vec() geom.Vec {
	return geom.V(p.X, p.Y)
}

// Motion holds a cycle's cardinal heading and speed (units per second).
type Motion struct {
	Heading geom.Heading
	Speed   float64
}

// Cycle holds per-rider state.
type Cycle struct {
	Index       int  // stable slot in the round, used by the navigation engine
	Human       bool // steered by input instead of the engine
	Alive       bool
	TrailActive bool  // head counts as an obstacle
	CrashTick   int32 // round tick of the crash, -1 while alive
	Turns       int
	LastTurn    time.Duration // simulation time of the latest turn
}

// Trail holds the wall of light a cycle has laid down. The last segment is
// live and ends at the cycle's position.
type Trail struct {
	Segments []geom.Segment
}

// Head returns the live segment, or false for an empty trail.
func (t *Trail) Head() (geom.Segment, bool) {
	if len(t.Segments) == 0 {
		return geom.Segment{}, false
	}
	return t.Segments[len(t.Segments)-1], true
}

// Extend grows the live segment by d.
func (t *Trail) Extend(d geom.Vec) {
	if len(t.Segments) == 0 {
		return
	}
	last := &t.Segments[len(t.Segments)-1]
	last.Dir = last.Dir.Add(d)
}

// Bend starts a new zero-length live segment at p.
func (t *Trail) Bend(p geom.Vec) {
	t.Segments = append(t.Segments, geom.Seg(p, geom.Vec{}))
}

// Length returns the total trail length.
func (t *Trail) Length() float64 {
	total := 0.0
	for _, s := range t.Segments {
		total += s.Dir.Len()
	}
	return total
}
