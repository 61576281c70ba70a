package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/navigation"
)

// ArenaQuery exposes the ECS arena to the navigation engine. It caches one
// view per cycle slot and indexes every laid trail segment; call Rebuild once
// per tick before the engine runs.
type ArenaQuery struct {
	filter ecs.Filter4[components.Position, components.Motion, components.Cycle, components.Trail]
	turns  *TurnSystem
	side   float64
	index  *TrailIndex

	entities []ecs.Entity
	views    []navigation.View
	present  []bool
}

var _ navigation.World = (*ArenaQuery)(nil)

// NewArenaQuery creates a query adapter. trailWidth is the half-thickness of
// a laid wall of light.
func NewArenaQuery(w *ecs.World, side, trailWidth float64, turns *TurnSystem) *ArenaQuery {
	return &ArenaQuery{
		filter: *ecs.NewFilter4[components.Position, components.Motion, components.Cycle, components.Trail](w),
		turns:  turns,
		side:   side,
		index:  NewTrailIndex(side, 4, trailWidth),
	}
}

// Rebuild refreshes the cached views and the trail index from the world.
func (q *ArenaQuery) Rebuild() {
	q.index.Clear()
	q.entities = q.entities[:0]
	q.views = q.views[:0]
	q.present = q.present[:0]

	query := q.filter.Query()
	for query.Next() {
		pos, motion, cyc, trail := query.Get()
		for cyc.Index >= len(q.views) {
			q.entities = append(q.entities, ecs.Entity{})
			q.views = append(q.views, navigation.View{})
			q.present = append(q.present, false)
		}

		speed := motion.Speed
		if !cyc.Alive {
			speed = 0
		}
		q.entities[cyc.Index] = query.Entity()
		q.present[cyc.Index] = true
		q.views[cyc.Index] = navigation.View{
			Pos:         pos.Vec(),
			Heading:     motion.Heading,
			Speed:       speed,
			TrailActive: cyc.TrailActive,
		}

		for _, seg := range trail.Segments {
			if seg.Dir != (geom.Vec{}) {
				q.index.Insert(seg)
			}
		}
	}
}

// Segments returns the number of indexed trail segments.
func (q *ArenaQuery) Segments() int {
	return q.index.Len()
}

// IsWallCollision implements navigation.World.
func (q *ArenaQuery) IsWallCollision(x, y float64) bool {
	return navigation.OutsideArena(q.side, x, y)
}

// IsTrailCollision implements navigation.World. Active cycle heads block
// within navigation.TrailRadius; laid segments block within the trail width.
// The querying cycle's own vicinity is always free.
func (q *ArenaQuery) IsTrailCollision(self int, x, y float64) bool {
	p := geom.V(x, y)
	if self >= 0 && self < len(q.views) && q.present[self] &&
		p.DistSq(q.views[self].Pos) < navigation.SelfRadius*navigation.SelfRadius {
		return false
	}
	for i, v := range q.views {
		if i == self || !q.present[i] || !v.TrailActive {
			continue
		}
		if p.DistSq(v.Pos) < navigation.TrailRadius*navigation.TrailRadius {
			return true
		}
	}
	return q.index.Hit(p)
}

// ApplyTurn implements navigation.World.
func (q *ArenaQuery) ApplyTurn(player int, turn navigation.Turn, now time.Duration) {
	if player < 0 || player >= len(q.views) || !q.present[player] {
		return
	}
	if q.turns.Apply(q.entities[player], turn, now) {
		q.views[player].Heading = turn.Apply(q.views[player].Heading)
	}
}

// NumPlayers implements navigation.World.
func (q *ArenaQuery) NumPlayers() int {
	return len(q.views)
}

// Player implements navigation.World.
func (q *ArenaQuery) Player(i int) (navigation.View, bool) {
	if i < 0 || i >= len(q.views) || !q.present[i] {
		return navigation.View{}, false
	}
	return q.views[i], true
}

// ArenaSize implements navigation.World.
func (q *ArenaQuery) ArenaSize() float64 {
	return q.side
}

// Entity returns the entity in a cycle slot.
func (q *ArenaQuery) Entity(i int) (ecs.Entity, bool) {
	if i < 0 || i >= len(q.entities) || !q.present[i] {
		return ecs.Entity{}, false
	}
	return q.entities[i], true
}
