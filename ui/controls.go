package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsAction reports what the user clicked this frame.
type ControlsAction struct {
	TogglePause bool
	Step        bool
	Restart     bool
	Speed       int
}

// ControlsPanel renders the viewer's raygui buttons and speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the actions taken. speed is the
// current steps per frame, in [1, maxSpeed].
func (c *ControlsPanel) Draw(paused bool, speed, maxSpeed int) ControlsAction {
	action := ControlsAction{Speed: speed}
	if !c.visible {
		return action
	}

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, 110)

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	bw := float32(c.width-pad*4) / 3

	label := "Pause"
	if paused {
		label = "Resume"
	}
	action.TogglePause = gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: 28}, label)
	action.Step = gui.Button(rl.Rectangle{X: x + bw + float32(pad), Y: y, Width: bw, Height: 28}, "Step")
	action.Restart = gui.Button(rl.Rectangle{X: x + 2*(bw+float32(pad)), Y: y, Width: bw, Height: 28}, "Restart")

	y += 40
	rl.DrawText("Steps per frame", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	sliderW := float32(c.width-pad*2) - 40
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 18},
		"", "",
		float32(speed), 1, float32(maxSpeed),
	)
	rl.DrawText(fmt.Sprintf("%dx", speed), int32(x+sliderW+6), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
	action.Speed = ClampSpeed(int(v+0.5), maxSpeed)

	return action
}

// ClampSpeed bounds a steps-per-frame value to [1, maxSpeed].
func ClampSpeed(speed, maxSpeed int) int {
	return min(max(speed, 1), max(maxSpeed, 1))
}
