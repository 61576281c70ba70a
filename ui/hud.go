package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RiderRow is one cycle's line in the riders panel.
type RiderRow struct {
	Slot    int
	Human   bool
	Alive   bool
	Turns   int
	Since   time.Duration // time since the latest turn, -1 before the first
	Reason  string        // last engine decision
	Forward float64       // forward lane distance
	Width   float64       // forward corridor width
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Round     int
	Tick      int32
	Alive     int
	Players   int
	Speed     int
	FPS       int32
	Paused    bool
	RoundOver bool
	Winner    int // -1 for a draw
	Riders    []RiderRow
	Lookahead float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Round %d | Tick %d | Alive %d/%d | Speed %dx | FPS %d",
			data.Round, data.Tick, data.Alive, data.Players, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}
	if data.RoundOver {
		h.drawBanner(data.Winner)
	}
}

// drawBanner announces the round result in the screen center.
func (h *HUD) drawBanner(winner int) {
	text := "DRAW"
	color := rl.LightGray
	if winner >= 0 {
		text = fmt.Sprintf("CYCLE %d WINS", winner)
		color = CycleColor(winner)
	}
	w := rl.MeasureText(text, 40)
	x := int32(rl.GetScreenWidth())/2 - w/2
	y := int32(rl.GetScreenHeight())/2 - 20
	rl.DrawText(text, x, y, 40, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawRiders renders the riders panel with each cycle's forward lane.
func (h *HUD) DrawRiders(x, y, width int32, data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight + int32(len(data.Riders))*r.Theme.LineHeight*3
	r.DrawPanel(x, y, width, height)

	y = r.DrawSectionHeader(x+pad, y+pad, "Riders")
	for _, row := range data.Riders {
		label := fmt.Sprintf("#%d", row.Slot)
		if row.Human {
			label += " (you)"
		}
		color := CycleColor(row.Slot)
		if !row.Alive {
			color = Faded(color, r.Theme.DeadTrail)
		}
		rl.DrawRectangle(x+pad, y+3, 8, 8, color)
		rl.DrawText(label, x+pad+14, y, r.Theme.FontSize, r.Theme.ValueColor)
		status := fmt.Sprintf("turns %d", row.Turns)
		if row.Since >= 0 {
			status += fmt.Sprintf(" %.1fs", row.Since.Seconds())
		}
		if row.Reason != "" {
			status += " | " + row.Reason
		}
		if !row.Alive {
			status = "crashed"
		}
		rl.DrawText(status, x+r.Theme.LabelWidth+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += r.Theme.LineHeight

		y = r.DrawBar(x+pad, y, "ahead", row.Forward, data.Lookahead, width-pad*2)
		y = r.DrawBar(x+pad, y, "width", row.Width, 4, width-pad*2)
	}
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	Phases   []string
	Total    time.Duration
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range data.Phases {
		avg := data.PhaseAvg[name]
		pct := 0.0
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
