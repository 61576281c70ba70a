package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/navigation"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.restartRound()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.follow = !g.follow
		if !g.follow {
			g.camera.Reset()
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}
	if rl.IsWindowResized() {
		g.camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	switch {
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyW):
		g.steerHuman(geom.Up)
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyD):
		g.steerHuman(geom.Right)
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyS):
		g.steerHuman(geom.Down)
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyA):
		g.steerHuman(geom.Left)
	}
}

// steerHuman turns the keyboard cycle toward an absolute heading.
func (g *Game) steerHuman(target geom.Heading) {
	if g.human < 0 || g.roundOver {
		return
	}
	g.query.Rebuild()
	e, ok := g.query.Entity(g.human)
	if !ok {
		return
	}
	g.turns.Apply(e, turnToward(g.motion.Get(e).Heading, target), g.now)
}

// followHuman keeps the camera on the keyboard cycle while following.
func (g *Game) followHuman() {
	if !g.follow || g.human < 0 {
		return
	}
	g.query.Rebuild()
	if v, ok := g.query.Player(g.human); ok {
		g.camera.Follow(float32(v.Pos.X), float32(v.Pos.Y))
	}
}

// restartRound abandons the current round without recording it.
func (g *Game) restartRound() {
	if !g.roundOver {
		g.round--
	}
	g.startRound()
}

// turnToward returns the turn that brings h to target. Reversal and the
// current heading yield no turn.
func turnToward(h, target geom.Heading) navigation.Turn {
	switch target {
	case h.Left():
		return navigation.TurnLeft
	case h.Right():
		return navigation.TurnRight
	default:
		return navigation.NoTurn
	}
}
