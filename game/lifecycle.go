package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"

	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/navigation"
)

// startRound clears the arena and spawns a fresh set of cycles.
func (g *Game) startRound() {
	g.clearArena()

	g.round++
	g.tick = 0
	g.roundOver = false
	g.gap = 0

	cfg := g.cfg
	n := cfg.Arena.Players
	phase := g.rng.Float64() * 2 * math.Pi
	for i, pos := range spawnPoints(n, cfg.Arena.Size, cfg.Arena.SpawnMargin, phase) {
		// Face the center, or veer off along the ring
		h := navigation.Turn(g.rng.Intn(3)).Apply(headingToward(pos, geom.V(cfg.Arena.Size/2, cfg.Arena.Size/2)))
		g.spawner.Spawn(i, pos, h, cfg.Arena.Speed, i == g.human)
	}

	if g.sparks != nil {
		g.sparks.Clear()
	}
	g.lastDecision = make([]navigation.Decision, n)
	g.session.Reset()
	g.collector.StartRound(g.round, n, g.human)
	g.perf.Reset()

	g.logger.Debug("round start", zap.Int("round", g.round), zap.Int("players", n))
}

// clearArena removes every cycle from the world.
func (g *Game) clearArena() {
	var toRemove []ecs.Entity
	query := g.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
}

// roundFinished reports whether the round has a result.
func (g *Game) roundFinished() bool {
	alive := len(g.collector.Alive())
	if alive == 0 {
		return true
	}
	if g.cfg.Arena.Players > 1 && alive <= 1 {
		return true
	}
	return g.tick >= g.cfg.Sim.MaxTicks
}

// endRound records the round's stats.
func (g *Game) endRound() {
	stats := g.collector.Finish(g.tick)
	g.results = append(g.results, stats)
	g.lastWinner = stats.Winner
	g.roundOver = true
	g.gap = g.cfg.Sim.RoundGap

	g.logger.Info("round end", stats.Fields()...)
	if err := g.output.WriteRound(stats); err != nil {
		g.logger.Error("failed to write round", zap.Error(err))
	}

	perf := g.perf.Stats()
	if g.cfg.Telemetry.LogPerf {
		perf.LogStats(g.logger)
	}
	if err := g.output.WritePerf(perf, stats.Round, g.tick); err != nil {
		g.logger.Error("failed to write perf", zap.Error(err))
	}
}

// spawnPoints places n cycles evenly on a ring margin away from the walls,
// rotated by phase radians.
func spawnPoints(n int, side, margin, phase float64) []geom.Vec {
	c := side / 2
	r := c - margin
	points := make([]geom.Vec, n)
	for i := range points {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		points[i] = geom.V(c+r*math.Cos(a), c+r*math.Sin(a))
	}
	return points
}

// headingToward returns the cardinal heading closest to the direction from
// one point to another.
func headingToward(from, to geom.Vec) geom.Heading {
	d := to.Sub(from)
	if math.Abs(d.X) >= math.Abs(d.Y) {
		if d.X >= 0 {
			return geom.Right
		}
		return geom.Left
	}
	if d.Y > 0 {
		return geom.Down
	}
	return geom.Up
}
