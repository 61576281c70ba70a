// Package navigation implements the autonomous light-cycle opponent: lane ray
// casting, corridor sampling, a bounded enclosure flood fill and the scored
// turn policy that combines them.
//
// The engine sees the game only through the World interface and never holds
// game state of its own beyond per-opponent cooldowns.
package navigation

import (
	"time"

	"github.com/pthm-cable/lightcycle/geom"
)

// Collision geometry used by World implementations.
const (
	WallMargin  = 1.0 // distance from the boundary that counts as a wall hit
	TrailRadius = 2.0 // proximity to an active cycle head that counts as a trail hit
	SelfRadius  = 1.0 // own vicinity never reported as a collision
)

// Turn is a discrete steering command.
type Turn int8

const (
	NoTurn Turn = iota
	TurnLeft
	TurnRight
)

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "none"
	}
}

// Apply returns the heading after executing t.
func (t Turn) Apply(h geom.Heading) geom.Heading {
	switch t {
	case TurnLeft:
		return h.Left()
	case TurnRight:
		return h.Right()
	default:
		return h
	}
}

// View is a read-only snapshot of one cycle.
type View struct {
	Pos         geom.Vec
	Heading     geom.Heading
	Speed       float64
	TrailActive bool
}

// World is the capability boundary between the engine and the game.
type World interface {
	// IsWallCollision reports whether (x, y) is within WallMargin of the arena
	// boundary or outside it.
	IsWallCollision(x, y float64) bool
	// IsTrailCollision reports whether (x, y) is occupied by a trail, as seen
	// by player self.
	IsTrailCollision(self int, x, y float64) bool
	// ApplyTurn rotates a player's heading. It is the only mutating call.
	ApplyTurn(player int, turn Turn, now time.Duration)

	NumPlayers() int
	Player(i int) (View, bool)
	ArenaSize() float64
}

// AppliedTurn records one ApplyTurn call on a Snapshot.
type AppliedTurn struct {
	Player int
	Turn   Turn
	At     time.Duration
}

// Snapshot is a World over a fixed slice of views. Trails are approximated by
// the active cycle heads, walls by the square arena boundary.
type Snapshot struct {
	Side  float64
	Views []View
	Turns []AppliedTurn
}

// NewSnapshot creates a snapshot world for an arena of the given side.
func NewSnapshot(side float64, views ...View) *Snapshot {
	return &Snapshot{Side: side, Views: views}
}

// IsWallCollision implements World.
func (s *Snapshot) IsWallCollision(x, y float64) bool {
	return OutsideArena(s.Side, x, y)
}

// IsTrailCollision implements World.
func (s *Snapshot) IsTrailCollision(self int, x, y float64) bool {
	p := geom.V(x, y)
	if self >= 0 && self < len(s.Views) && p.DistSq(s.Views[self].Pos) < SelfRadius*SelfRadius {
		return false
	}
	for i, v := range s.Views {
		if i == self || !v.TrailActive {
			continue
		}
		if p.DistSq(v.Pos) < TrailRadius*TrailRadius {
			return true
		}
	}
	return false
}

// ApplyTurn implements World.
func (s *Snapshot) ApplyTurn(player int, turn Turn, now time.Duration) {
	if player < 0 || player >= len(s.Views) {
		return
	}
	s.Views[player].Heading = turn.Apply(s.Views[player].Heading)
	s.Turns = append(s.Turns, AppliedTurn{Player: player, Turn: turn, At: now})
}

// NumPlayers implements World.
func (s *Snapshot) NumPlayers() int {
	return len(s.Views)
}

// Player implements World.
func (s *Snapshot) Player(i int) (View, bool) {
	if i < 0 || i >= len(s.Views) {
		return View{}, false
	}
	return s.Views[i], true
}

// ArenaSize implements World.
func (s *Snapshot) ArenaSize() float64 {
	return s.Side
}

// OutsideArena reports whether (x, y) is within WallMargin of a square arena's
// boundary or beyond it.
func OutsideArena(side, x, y float64) bool {
	return x <= WallMargin || y <= WallMargin || x >= side-WallMargin || y >= side-WallMargin
}
