package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightcycle/telemetry"
	"github.com/pthm-cable/lightcycle/ui"
)

const controlsLegend = "Arrows/WASD: steer | Space: pause | R: restart | , .: speed | Wheel: zoom | F: follow | P: perf | Tab: panel"

// Draw renders the arena and the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.Black)

	cam := g.camera
	g.arena.DrawFloor(cam)

	// Crashed trails first so live walls draw on top
	for _, alive := range []bool{false, true} {
		query := g.filter.Query()
		for query.Next() {
			pos, _, cyc, trail := query.Get()
			if cyc.Alive != alive {
				continue
			}
			g.arena.DrawTrail(cam, trail.Segments, cyc.Index, cyc.Alive)
			if cyc.Alive {
				g.arena.DrawHead(cam, pos.Vec(), cyc.Index, cyc.Human)
			}
		}
	}
	g.sparkFX.Draw(cam, g.sparks.Sparks)

	g.drawHUD()
}

// drawHUD renders the overlays and handles the control panel's buttons.
func (g *Game) drawHUD() {
	data := ui.HUDData{
		Title:     "Light Cycles",
		Round:     g.round,
		Tick:      g.tick,
		Alive:     len(g.collector.Alive()),
		Players:   g.cfg.Arena.Players,
		Speed:     g.stepsPerUpdate,
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		RoundOver: g.roundOver,
		Winner:    g.lastWinner,
		Lookahead: g.cfg.AI.MaxLookahead,
	}

	query := g.filter.Query()
	for query.Next() {
		_, _, cyc, _ := query.Get()
		row := ui.RiderRow{Slot: cyc.Index, Human: cyc.Human, Alive: cyc.Alive, Turns: cyc.Turns, Since: -1}
		if cyc.Turns > 0 {
			row.Since = g.now - cyc.LastTurn
		}
		if cyc.Index < len(g.lastDecision) && !cyc.Human {
			d := g.lastDecision[cyc.Index]
			row.Reason = d.Reason.String()
			row.Forward = d.Assessment.Forward.Distance
			row.Width = d.Assessment.Forward.Width
		}
		data.Riders = append(data.Riders, row)
	}

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	g.hud.Draw(data)
	g.hud.DrawRiders(10, 80, 220, data)
	g.hud.DrawControls(screenH, controlsLegend)

	g.controls.SetPosition(screenW-250, 10)
	action := g.controls.Draw(g.paused, g.stepsPerUpdate, maxStepsPerUpdate)
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.Restart {
		g.restartRound()
	}
	if action.Step && g.paused {
		g.advance()
	}
	g.stepsPerUpdate = action.Speed

	if g.showPerf {
		stats := g.perf.Stats()
		g.perfPane.SetPosition(screenW-250, 130)
		g.perfPane.Draw(ui.PerfPanelData{
			PhaseAvg: stats.PhaseAvg,
			Phases:   telemetry.Phases(),
			Total:    stats.AvgTickDuration,
		})
	}
}
