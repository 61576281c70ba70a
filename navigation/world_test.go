package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/lightcycle/geom"
)

// probeWorld wraps a Snapshot with extra obstacles and counts collision queries.
type probeWorld struct {
	*Snapshot
	block   func(x, y float64) bool
	queries int
}

func newProbeWorld(side float64, block func(x, y float64) bool, views ...View) *probeWorld {
	return &probeWorld{Snapshot: NewSnapshot(side, views...), block: block}
}

func (w *probeWorld) IsWallCollision(x, y float64) bool {
	w.queries++
	if w.block != nil && w.block(x, y) {
		return true
	}
	return w.Snapshot.IsWallCollision(x, y)
}

func (w *probeWorld) IsTrailCollision(self int, x, y float64) bool {
	w.queries++
	return w.Snapshot.IsTrailCollision(self, x, y)
}

func TestSnapshotWallCollision(t *testing.T) {
	s := NewSnapshot(100)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"interior", 50, 50, false},
		{"just inside margin", 1.01, 50, false},
		{"on margin", 1, 50, true},
		{"near far edge", 50, 99.5, true},
		{"outside", -5, 50, true},
		{"beyond far edge", 50, 130, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.IsWallCollision(tc.x, tc.y))
		})
	}
}

func TestSnapshotTrailCollision(t *testing.T) {
	s := NewSnapshot(100,
		View{Pos: geom.V(50, 50), Heading: geom.Up, Speed: 1, TrailActive: true},
		View{Pos: geom.V(60, 50), Heading: geom.Up, Speed: 1, TrailActive: true},
		View{Pos: geom.V(80, 50), Heading: geom.Up, Speed: 1, TrailActive: false},
	)

	assert.False(t, s.IsTrailCollision(0, 50.5, 50), "own vicinity")
	assert.False(t, s.IsTrailCollision(0, 51.5, 50), "own head is not a trail for self")
	assert.True(t, s.IsTrailCollision(1, 51.5, 50), "player 0 head seen by player 1")
	assert.True(t, s.IsTrailCollision(0, 58.5, 50))
	assert.False(t, s.IsTrailCollision(0, 57.9, 50))
	assert.False(t, s.IsTrailCollision(0, 80, 50), "inactive trail")
}

func TestSnapshotApplyTurn(t *testing.T) {
	s := NewSnapshot(100, View{Heading: geom.Up})

	s.ApplyTurn(0, TurnLeft, time.Second)
	s.ApplyTurn(0, TurnLeft, 2*time.Second)
	s.ApplyTurn(3, TurnRight, 3*time.Second)

	v, ok := s.Player(0)
	assert.True(t, ok)
	assert.Equal(t, geom.Down, v.Heading)
	assert.Len(t, s.Turns, 2)
	assert.Equal(t, AppliedTurn{Player: 0, Turn: TurnLeft, At: 2 * time.Second}, s.Turns[1])

	_, ok = s.Player(-1)
	assert.False(t, ok)
}

func TestTurnApply(t *testing.T) {
	assert.Equal(t, geom.Left, TurnLeft.Apply(geom.Up))
	assert.Equal(t, geom.Right, TurnRight.Apply(geom.Up))
	assert.Equal(t, geom.Up, NoTurn.Apply(geom.Up))
	assert.Equal(t, "right", TurnRight.String())
}
