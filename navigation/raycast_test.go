package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/lightcycle/geom"
)

func TestCastDistanceObstacleAtDistance(t *testing.T) {
	origin := geom.V(50, 100)
	p := DefaultParams()

	prev := p.MaxLookahead
	// Walk the obstacle toward the origin; the distance must never grow.
	for d := 28; d >= 1; d-- {
		wallX := origin.X + float64(d)
		w := newProbeWorld(1000, func(x, y float64) bool { return x >= wallX })

		got := p.CastDistance(w, -1, origin, geom.Right)
		assert.InDelta(t, float64(d)-0.5, got, 1e-9, "obstacle at %d", d)
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
}

func TestCastDistanceClampsAtZero(t *testing.T) {
	p := DefaultParams()
	p.RayBias = 2.0
	w := newProbeWorld(1000, func(x, y float64) bool { return x >= 51 })

	assert.Equal(t, 0.0, p.CastDistance(w, -1, geom.V(50, 50), geom.Right))
}

func TestCastDistanceOpenReturnsLookahead(t *testing.T) {
	w := NewSnapshot(1000, View{Pos: geom.V(500, 500), Heading: geom.Up, Speed: 1, TrailActive: true})

	for h := geom.Heading(0); h < geom.NumHeadings; h++ {
		assert.Equal(t, 28.0, CastDistance(w, 0, geom.V(500, 500), h, 28.0), h.String())
	}
	assert.Equal(t, 10.0, CastDistance(w, 0, geom.V(500, 500), geom.Up, 10.0))
}

func TestCastDistanceSeesOtherCycle(t *testing.T) {
	w := NewSnapshot(100,
		View{Pos: geom.V(20, 50), Heading: geom.Right, Speed: 1, TrailActive: true},
		View{Pos: geom.V(30, 50), Heading: geom.Up, Speed: 1, TrailActive: true},
	)

	// Samples at 8 (distance 2) are clear; 9 is within the trail radius.
	assert.Equal(t, 8.5, DefaultParams().CastDistance(w, 0, geom.V(20, 50), geom.Right))
}

func TestCastDistanceQueryBound(t *testing.T) {
	w := newProbeWorld(1e6, nil)
	DefaultParams().CastDistance(w, -1, geom.V(5e5, 5e5), geom.Down)
	assert.Equal(t, 28*2, w.queries)
}
