package game

import (
	"go.uber.org/zap"

	"github.com/pthm-cable/lightcycle/telemetry"
)

// step advances the round by one tick.
func (g *Game) step() {
	cfg := g.cfg
	g.perf.StartTick()

	g.tick++
	g.now += cfg.Derived.Tick

	g.perf.StartPhase(telemetry.PhaseQuery)
	g.query.Rebuild()

	g.perf.StartPhase(telemetry.PhaseNavigation)
	g.session.UpdateClock(cfg.Derived.Tick, g.now)
	for _, d := range g.session.DecideAll(g.human) {
		g.collector.RecordDecision(d)
		if d.Player < len(g.lastDecision) {
			g.lastDecision[d.Player] = d
		}
	}

	g.perf.StartPhase(telemetry.PhaseMovement)
	crashes := g.movement.Update(cfg.Sim.DT, g.tick)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	if g.sparks != nil {
		g.sparks.Update()
	}
	for _, c := range crashes {
		g.collector.RecordCrash(c.Index, c.Tick, c.Cause.String())
		if g.sparks != nil {
			g.sparks.EmitCrash(c.Pos, g.motion.Get(c.Entity).Heading, c.Index)
		}
		g.logger.Debug("crash",
			zap.Int("round", g.round),
			zap.Int("player", c.Index),
			zap.Stringer("cause", c.Cause),
			zap.Int32("tick", c.Tick),
			zap.Float64("x", c.Pos.X),
			zap.Float64("y", c.Pos.Y),
		)
	}

	g.perf.StartPhase(telemetry.PhaseRound)
	if g.roundFinished() {
		g.endRound()
	}

	g.perf.EndTick()
}

// UpdateHeadless runs StepsPerUpdate ticks without rendering, starting the
// next round as soon as one ends.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate && !g.Done(); i++ {
		if g.roundOver {
			g.startRound()
		}
		g.step()
	}
}

// Update handles input and advances the viewer simulation.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()
	g.followHuman()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.advance()
	}
}

// advance runs one viewer tick: the between-rounds pause or a step.
func (g *Game) advance() {
	if g.roundOver {
		g.gap--
		if g.gap <= 0 {
			g.startRound()
		}
		return
	}
	g.step()
}
