package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/geom"
)

func TestSparksBurstAndExpire(t *testing.T) {
	s := NewSparkSystem(100, rand.New(rand.NewSource(1)))
	s.EmitCrash(geom.V(10, 10), geom.Right, 2)

	n := len(s.Sparks)
	require.GreaterOrEqual(t, n, 12)
	require.LessOrEqual(t, n, 19)
	for _, p := range s.Sparks {
		assert.Equal(t, 2, p.Slot)
		assert.Equal(t, p.Life, p.MaxLife)
	}

	s.Update()
	assert.Len(t, s.Sparks, n)
	for _, p := range s.Sparks {
		assert.Less(t, p.Life, p.MaxLife)
	}

	for i := 0; i < 60; i++ {
		s.Update()
	}
	assert.Empty(t, s.Sparks)
}

func TestSparksCapped(t *testing.T) {
	s := NewSparkSystem(15, rand.New(rand.NewSource(1)))
	for i := 0; i < 3; i++ {
		s.EmitCrash(geom.V(0, 0), geom.Up, i)
	}
	assert.Len(t, s.Sparks, 15)

	s.Clear()
	assert.Empty(t, s.Sparks)
}
