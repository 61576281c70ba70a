package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/geom"
)

func TestEnclosurePenaltyOpenField(t *testing.T) {
	est := NewEstimator(DefaultParams())
	w := NewSnapshot(200)

	assert.Equal(t, 0.0, est.Penalty(w, -1, geom.V(100, 100), geom.Up))
	assert.Equal(t, 40, est.LastExplored())
}

func TestEnclosurePenaltyPocket(t *testing.T) {
	// A 3x3 pocket of cells reachable from the start point (52, 50).
	pocket := func(x, y float64) bool {
		return x <= 51 || x >= 57 || y <= 47 || y >= 53
	}
	w := newProbeWorld(100, pocket)
	est := NewEstimator(DefaultParams())

	got := est.Penalty(w, -1, geom.V(50, 50), geom.Right)
	assert.Equal(t, 9, est.LastExplored())
	assert.InDelta(t, 31*0.2, got, 1e-9)
}

func TestEnclosurePenaltyBlockedStart(t *testing.T) {
	est := NewEstimator(DefaultParams())
	w := NewSnapshot(100)

	// Two units ahead is already in the wall margin.
	assert.InDelta(t, 8.0, est.Penalty(w, -1, geom.V(50, 2.5), geom.Up), 1e-9)
	assert.Equal(t, 0, est.LastExplored())
}

func TestEnclosurePenaltyBoundedCost(t *testing.T) {
	p := DefaultParams()
	for _, side := range []float64{100, 1e4, 1e6, 1e9} {
		w := newProbeWorld(side, nil)
		est := NewEstimator(p)

		est.Penalty(w, -1, geom.V(side/2, side/2), geom.Left)

		assert.LessOrEqual(t, est.LastExplored(), p.EnclosureMaxNodes)
		// Start probe plus four neighbours per expansion, two queries each.
		assert.LessOrEqual(t, w.queries, 2+p.EnclosureMaxNodes*4*2)
	}
}

func TestEnclosurePenaltyTinyQueue(t *testing.T) {
	p := DefaultParams()
	p.EnclosureQueueCap = 3
	est := NewEstimator(p)

	got := est.Penalty(NewSnapshot(500), -1, geom.V(250, 250), geom.Down)
	require.LessOrEqual(t, est.LastExplored(), p.EnclosureMaxNodes)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestEnclosureEstimatorReuse(t *testing.T) {
	est := NewEstimator(DefaultParams())
	open := NewSnapshot(200)
	closed := newProbeWorld(100, func(x, y float64) bool { return x <= 51 || x >= 57 || y <= 47 || y >= 53 })

	first := est.Penalty(open, -1, geom.V(100, 100), geom.Up)
	est.Penalty(closed, -1, geom.V(50, 50), geom.Right)
	again := est.Penalty(open, -1, geom.V(100, 100), geom.Up)

	assert.Equal(t, first, again)
}
