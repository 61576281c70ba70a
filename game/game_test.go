package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/navigation"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Sim.Rounds = 3
	cfg.Sim.MaxTicks = 900
	return cfg
}

func runHeadless(t *testing.T, cfg *config.Config, seed int64, dir string) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{Config: cfg, Seed: seed, Headless: true, StepsPerUpdate: 64, OutputDir: dir})
	for i := 0; i < 10000 && !g.Done(); i++ {
		g.UpdateHeadless()
	}
	require.True(t, g.Done())
	return g
}

func TestHeadlessRounds(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	g := runHeadless(t, cfg, 7, dir)
	g.Unload()

	results := g.Results()
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i+1, r.Round)
		assert.LessOrEqual(t, r.Ticks, cfg.Sim.MaxTicks)
		assert.Positive(t, r.Decisions, "engine ran in round %d", r.Round)
		assert.Zero(t, r.Faults)
		assert.Equal(t, int32(-1), r.HumanSurvival, "headless has no keyboard rider")
		if r.Ticks < cfg.Sim.MaxTicks {
			assert.LessOrEqual(t, r.Survivors, 1, "round %d ended early with riders left", r.Round)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "rounds.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
	assert.FileExists(t, filepath.Join(dir, "perf.csv"))
	assert.FileExists(t, filepath.Join(dir, "config.yaml"))

	s := g.Summary()
	assert.Equal(t, 3, s.Rounds)
	assert.Positive(t, s.SurvivalMean)
}

func TestHeadlessReproducible(t *testing.T) {
	a := runHeadless(t, testConfig(t), 11, "")
	b := runHeadless(t, testConfig(t), 11, "")
	assert.Equal(t, a.Results(), b.Results())
}

func TestComputerRidersOutlastStraightRiders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Arena.Players = 1
	cfg.Sim.Rounds = 1
	cfg.Sim.MaxTicks = 1200

	g := runHeadless(t, cfg, 3, "")
	r := g.Results()[0]

	// A rider that never turns meets a wall within side-margin units.
	straight := (cfg.Arena.Size - cfg.Arena.SpawnMargin) / cfg.Arena.Speed / cfg.Sim.DT
	assert.Greater(t, r.AISurvivalMean, straight)
	assert.Positive(t, r.Turns)
}

func TestSpawnPoints(t *testing.T) {
	points := spawnPoints(4, 120, 20, 0)
	require.Len(t, points, 4)
	for _, p := range points {
		assert.InDelta(t, 40, p.Dist(geom.V(60, 60)), 1e-9)
		assert.False(t, navigation.OutsideArena(120, p.X, p.Y))
	}
	assert.InDelta(t, 100, points[0].X, 1e-9)
	assert.InDelta(t, 60, points[0].Y, 1e-9)
}

func TestHeadingToward(t *testing.T) {
	c := geom.V(60, 60)
	assert.Equal(t, geom.Left, headingToward(geom.V(100, 60), c))
	assert.Equal(t, geom.Right, headingToward(geom.V(20, 61), c))
	assert.Equal(t, geom.Up, headingToward(geom.V(55, 100), c))
	assert.Equal(t, geom.Down, headingToward(geom.V(62, 20), c))
}

func TestTurnToward(t *testing.T) {
	assert.Equal(t, navigation.TurnLeft, turnToward(geom.Up, geom.Left))
	assert.Equal(t, navigation.TurnRight, turnToward(geom.Up, geom.Right))
	assert.Equal(t, navigation.NoTurn, turnToward(geom.Up, geom.Up))
	assert.Equal(t, navigation.NoTurn, turnToward(geom.Up, geom.Down), "no reversal")
}
