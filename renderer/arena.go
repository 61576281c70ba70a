// Package renderer draws the arena floor, the walls of light and crash
// effects with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lightcycle/camera"
	"github.com/pthm-cable/lightcycle/geom"
	"github.com/pthm-cable/lightcycle/ui"
)

// ArenaRenderer renders the floor grid, trails and cycle heads.
type ArenaRenderer struct {
	side       float32
	gridStep   float32 // arena units between grid lines
	trailWidth float32
	theme      ui.Theme
}

// NewArenaRenderer creates a renderer for a square arena of the given side.
func NewArenaRenderer(side, gridStep, trailWidth float32) *ArenaRenderer {
	return &ArenaRenderer{
		side:       side,
		gridStep:   gridStep,
		trailWidth: trailWidth,
		theme:      ui.DefaultTheme(),
	}
}

// DrawFloor renders the arena background, the grid lines inside the visible
// bounds and the boundary wall.
func (r *ArenaRenderer) DrawFloor(cam *camera.Camera) {
	tl := toScreen(cam, 0, 0)
	side := r.side * cam.Scale()
	rl.DrawRectangleV(tl, rl.Vector2{X: side, Y: side}, r.theme.ArenaBg)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.side), min(maxY, r.side)
	if r.gridStep > 0 && r.gridStep*cam.Scale() >= 4 {
		for _, x := range gridLines(minX, maxX, r.gridStep) {
			rl.DrawLineV(toScreen(cam, x, minY), toScreen(cam, x, maxY), r.theme.ArenaGrid)
		}
		for _, y := range gridLines(minY, maxY, r.gridStep) {
			rl.DrawLineV(toScreen(cam, minX, y), toScreen(cam, maxX, y), r.theme.ArenaGrid)
		}
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{X: tl.X, Y: tl.Y, Width: side, Height: side}, 2, r.theme.ArenaBorder)
}

// DrawTrail renders one cycle's wall of light: a wide faint glow under a
// solid core. Crashed cycles keep their trail, faded.
func (r *ArenaRenderer) DrawTrail(cam *camera.Camera, segments []geom.Segment, slot int, alive bool) {
	core := ui.CycleColor(slot)
	if !alive {
		core = ui.Faded(core, r.theme.DeadTrail)
	}
	glow := ui.Faded(core, core.A/4)

	thick := max(r.trailWidth*2*cam.Scale(), 1)
	for _, seg := range segments {
		if seg.Dir == (geom.Vec{}) {
			continue
		}
		a := toScreen(cam, float32(seg.Start.X), float32(seg.Start.Y))
		end := seg.End()
		b := toScreen(cam, float32(end.X), float32(end.Y))
		if alive {
			rl.DrawLineEx(a, b, thick*3, glow)
		}
		rl.DrawLineEx(a, b, thick, core)
	}
}

// DrawHead renders a live cycle's head.
func (r *ArenaRenderer) DrawHead(cam *camera.Camera, pos geom.Vec, slot int, human bool) {
	p := toScreen(cam, float32(pos.X), float32(pos.Y))
	radius := max(r.trailWidth*2.4*cam.Scale(), 2)
	if human {
		rl.DrawCircleLinesV(p, radius*1.8, ui.CycleColor(slot))
	}
	rl.DrawCircleV(p, radius, rl.White)
}

// gridLines returns the multiples of step within [lo, hi].
func gridLines(lo, hi, step float32) []float32 {
	var lines []float32
	first := float32(int(lo/step)) * step
	if first < lo {
		first += step
	}
	for x := first; x <= hi; x += step {
		lines = append(lines, x)
	}
	return lines
}

func toScreen(cam *camera.Camera, x, y float32) rl.Vector2 {
	sx, sy := cam.WorldToScreen(x, y)
	return rl.Vector2{X: sx, Y: sy}
}
