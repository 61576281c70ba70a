package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/navigation"
)

type arena struct {
	world    *ecs.World
	spawner  *Spawner
	turns    *TurnSystem
	movement *MovementSystem
	query    *ArenaQuery
	posMap   *ecs.Map[components.Position]
	cycleMap *ecs.Map[components.Cycle]
	trailMap *ecs.Map[components.Trail]
	motion   *ecs.Map[components.Motion]
}

func newArena(side float64) *arena {
	w := ecs.NewWorld()
	turns := NewTurnSystem(w)
	return &arena{
		world:    w,
		spawner:  NewSpawner(w),
		turns:    turns,
		movement: NewMovementSystem(w, side),
		query:    NewArenaQuery(w, side, 0.5, turns),
		posMap:   ecs.NewMap[components.Position](w),
		cycleMap: ecs.NewMap[components.Cycle](w),
		trailMap: ecs.NewMap[components.Trail](w),
		motion:   ecs.NewMap[components.Motion](w),
	}
}

func TestMovementAdvances(t *testing.T) {
	a := newArena(100)
	e := a.spawner.Spawn(0, geom.V(10, 10), geom.Right, 2, false)

	crashes := a.movement.Update(0.5, 1)

	assert.Empty(t, crashes)
	assert.Equal(t, geom.V(11, 10), a.posMap.Get(e).Vec())
	head, ok := a.trailMap.Get(e).Head()
	require.True(t, ok)
	assert.Equal(t, geom.V(11, 10), head.End())
}

func TestMovementCrashes(t *testing.T) {
	t.Run("wall", func(t *testing.T) {
		a := newArena(100)
		e := a.spawner.Spawn(0, geom.V(99.5, 50), geom.Right, 2, false)

		crashes := a.movement.Update(0.5, 3)

		require.Len(t, crashes, 1)
		assert.Equal(t, CauseWall, crashes[0].Cause)
		assert.Equal(t, geom.V(100, 50), crashes[0].Pos)
		cyc := a.cycleMap.Get(e)
		assert.False(t, cyc.Alive)
		assert.False(t, cyc.TrailActive)
		assert.Equal(t, int32(3), cyc.CrashTick)
		assert.Zero(t, a.motion.Get(e).Speed)
		assert.Equal(t, geom.V(100, 50), a.posMap.Get(e).Vec())
	})

	t.Run("trail", func(t *testing.T) {
		a := newArena(100)
		rider := a.spawner.Spawn(0, geom.V(19.5, 10), geom.Right, 2, false)
		wall := a.spawner.Spawn(1, geom.V(20, 15), geom.Up, 0, false)
		a.trailMap.Get(wall).Segments = []geom.Segment{geom.SegTo(geom.V(20, 5), geom.V(20, 15))}

		crashes := a.movement.Update(0.5, 1)

		require.Len(t, crashes, 1)
		assert.Equal(t, rider, crashes[0].Entity)
		assert.Equal(t, CauseTrail, crashes[0].Cause)
		assert.Equal(t, geom.V(20, 10), crashes[0].Pos)
		assert.True(t, a.cycleMap.Get(wall).Alive)
	})

	t.Run("head on", func(t *testing.T) {
		a := newArena(100)
		a.spawner.Spawn(0, geom.V(10, 10), geom.Right, 2, false)
		a.spawner.Spawn(1, geom.V(12, 10), geom.Left, 2, false)

		crashes := a.movement.Update(0.5, 1)

		require.Len(t, crashes, 2)
		for _, c := range crashes {
			assert.Equal(t, CauseHeadOn, c.Cause)
			assert.Equal(t, geom.V(11, 10), c.Pos)
		}
	})

	t.Run("riding along a trail", func(t *testing.T) {
		a := newArena(100)
		a.spawner.Spawn(0, geom.V(10, 10), geom.Right, 2, false)
		wall := a.spawner.Spawn(1, geom.V(30, 10), geom.Up, 0, false)
		a.trailMap.Get(wall).Segments = []geom.Segment{geom.SegTo(geom.V(30, 10), geom.V(10.5, 10))}

		crashes := a.movement.Update(0.5, 1)

		require.Len(t, crashes, 1)
		assert.Equal(t, CauseTrail, crashes[0].Cause)
		assert.Equal(t, geom.V(10.5, 10), crashes[0].Pos)
	})
}

func TestMovementOwnTrail(t *testing.T) {
	a := newArena(100)
	e := a.spawner.Spawn(0, geom.V(10, 10), geom.Right, 2, false)

	// Right 5, up 5, left 3, then down into the first leg at (12, 10).
	script := map[int32]navigation.Turn{6: navigation.TurnLeft, 11: navigation.TurnLeft, 14: navigation.TurnLeft}
	var crashTick int32
	for tick := int32(1); tick <= 30 && crashTick == 0; tick++ {
		if turn, ok := script[tick]; ok {
			require.True(t, a.turns.Apply(e, turn, time.Duration(tick)*500*time.Millisecond))
		}
		for _, c := range a.movement.Update(0.5, tick) {
			assert.Equal(t, CauseTrail, c.Cause)
			assert.Equal(t, geom.V(12, 10), c.Pos)
			crashTick = c.Tick
		}
	}

	assert.Equal(t, int32(19), crashTick)
	assert.Equal(t, 3, a.cycleMap.Get(e).Turns)
	assert.Equal(t, 7*time.Second, a.cycleMap.Get(e).LastTurn)
	assert.Len(t, a.trailMap.Get(e).Segments, 4)
}

func TestTurnSystemIgnoresDeadCycles(t *testing.T) {
	a := newArena(100)
	e := a.spawner.Spawn(0, geom.V(10, 10), geom.Up, 2, false)

	assert.False(t, a.turns.Apply(e, navigation.NoTurn, time.Second))
	a.cycleMap.Get(e).Alive = false
	assert.False(t, a.turns.Apply(e, navigation.TurnLeft, time.Second))
	assert.Equal(t, geom.Up, a.motion.Get(e).Heading)
	assert.Zero(t, a.cycleMap.Get(e).LastTurn)
}

func TestTrailIndexHit(t *testing.T) {
	ix := NewTrailIndex(100, 4, 0.5)
	ix.Insert(geom.SegTo(geom.V(10, 10), geom.V(20, 10)))

	assert.Equal(t, 1, ix.Len())
	assert.True(t, ix.Hit(geom.V(15, 10.4)))
	assert.False(t, ix.Hit(geom.V(15, 10.6)))
	assert.True(t, ix.Hit(geom.V(20.3, 10)))
	assert.False(t, ix.Hit(geom.V(25, 10)))
	assert.False(t, ix.Hit(geom.V(-50, 500)))

	ix.Clear()
	assert.False(t, ix.Hit(geom.V(15, 10)))
}

func TestArenaQuery(t *testing.T) {
	a := newArena(100)
	me := a.spawner.Spawn(0, geom.V(50, 50), geom.Up, 2, false)
	other := a.spawner.Spawn(1, geom.V(60, 50), geom.Up, 2, false)
	a.trailMap.Get(other).Segments = []geom.Segment{geom.SegTo(geom.V(60, 70), geom.V(60, 50))}
	a.query.Rebuild()

	require.Equal(t, 2, a.query.NumPlayers())
	assert.Equal(t, 1, a.query.Segments())
	assert.Equal(t, 100.0, a.query.ArenaSize())

	v, ok := a.query.Player(0)
	require.True(t, ok)
	assert.Equal(t, navigation.View{Pos: geom.V(50, 50), Heading: geom.Up, Speed: 2, TrailActive: true}, v)
	_, ok = a.query.Player(5)
	assert.False(t, ok)

	assert.True(t, a.query.IsWallCollision(0.5, 50))
	assert.False(t, a.query.IsWallCollision(50, 50))
	assert.True(t, a.query.IsTrailCollision(0, 60.2, 60), "laid trail")
	assert.False(t, a.query.IsTrailCollision(0, 50, 49.5), "own vicinity")
	assert.True(t, a.query.IsTrailCollision(1, 50, 51.5), "other head")
	assert.False(t, a.query.IsTrailCollision(0, 40, 40))

	a.query.ApplyTurn(0, navigation.TurnRight, time.Second)
	v, _ = a.query.Player(0)
	assert.Equal(t, geom.Right, v.Heading)
	assert.Equal(t, geom.Right, a.motion.Get(me).Heading)
	assert.Len(t, a.trailMap.Get(me).Segments, 2)
	assert.Equal(t, time.Second, a.cycleMap.Get(me).LastTurn)

	e, ok := a.query.Entity(1)
	require.True(t, ok)
	assert.Equal(t, other, e)
}

func TestArenaQueryDeadCycleIsIdle(t *testing.T) {
	a := newArena(100)
	e := a.spawner.Spawn(0, geom.V(50, 50), geom.Up, 2, false)
	a.cycleMap.Get(e).Alive = false
	a.query.Rebuild()

	v, ok := a.query.Player(0)
	require.True(t, ok)
	assert.Zero(t, v.Speed)
}

func TestEngineSteersECSCycle(t *testing.T) {
	a := newArena(100)
	e := a.spawner.Spawn(0, geom.V(2.5, 2.5), geom.Up, 2, false)
	a.query.Rebuild()

	s := navigation.NewSession(navigation.DefaultParams(), rand.New(rand.NewSource(7)), nil)
	s.Initialize(a.query)
	s.UpdateClock(16*time.Millisecond, time.Second)
	d := s.Decide(0, -1)

	assert.Equal(t, navigation.ReasonEmergency, d.Reason)
	assert.Equal(t, navigation.TurnRight, d.Turn)
	assert.Equal(t, geom.Right, a.motion.Get(e).Heading)
	assert.Equal(t, 1, a.cycleMap.Get(e).Turns)
}
