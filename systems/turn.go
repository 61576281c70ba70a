package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/navigation"
)

// TurnSystem rotates cycles and bends their trails.
type TurnSystem struct {
	posMap    *ecs.Map[components.Position]
	motionMap *ecs.Map[components.Motion]
	cycleMap  *ecs.Map[components.Cycle]
	trailMap  *ecs.Map[components.Trail]
}

// NewTurnSystem creates a turn system.
func NewTurnSystem(w *ecs.World) *TurnSystem {
	return &TurnSystem{
		posMap:    ecs.NewMap[components.Position](w),
		motionMap: ecs.NewMap[components.Motion](w),
		cycleMap:  ecs.NewMap[components.Cycle](w),
		trailMap:  ecs.NewMap[components.Trail](w),
	}
}

// Apply executes a turn on a live cycle at simulation time now. It reports
// whether the heading changed.
func (s *TurnSystem) Apply(e ecs.Entity, turn navigation.Turn, now time.Duration) bool {
	if turn == navigation.NoTurn || !s.cycleMap.Has(e) {
		return false
	}
	cyc := s.cycleMap.Get(e)
	if !cyc.Alive {
		return false
	}

	motion := s.motionMap.Get(e)
	motion.Heading = turn.Apply(motion.Heading)
	s.trailMap.Get(e).Bend(s.posMap.Get(e).Vec())
	cyc.Turns++
	cyc.LastTurn = now
	return true
}
