package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws value against limit as a bar colored by how full it is.
func (r *Renderer) DrawBar(x, y int32, label string, value, limit float64, width int32) int32 {
	ratio := BarRatio(value, limit)
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 45

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFillHigh
	switch {
	case ratio < 0.3:
		fill = r.Theme.BarFillLow
	case ratio < 0.6:
		fill = r.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float64(barWidth)*ratio), r.Theme.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%.1f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight
}

// BarRatio returns value/limit clamped to [0, 1].
func BarRatio(value, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return min(max(value/limit, 0), 1)
}
