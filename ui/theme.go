package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme defines visual styling for UI components.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	ArenaBg     rl.Color
	ArenaGrid   rl.Color
	ArenaBorder rl.Color
	DeadTrail   uint8 // alpha of a crashed cycle's trail

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the standard UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 10, G: 14, B: 22, A: 230},
		PanelBorder:   rl.Color{R: 40, G: 70, B: 100, A: 255},
		SectionHeader: rl.Color{R: 120, G: 220, B: 255, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		BarBg:         rl.Color{R: 35, G: 40, B: 48, A: 255},
		BarFillLow:    rl.Color{R: 220, G: 80, B: 70, A: 255},
		BarFillMedium: rl.Color{R: 220, G: 190, B: 80, A: 255},
		BarFillHigh:   rl.Color{R: 80, G: 210, B: 120, A: 255},

		ArenaBg:     rl.Color{R: 4, G: 6, B: 12, A: 255},
		ArenaGrid:   rl.Color{R: 14, G: 30, B: 44, A: 255},
		ArenaBorder: rl.Color{R: 0, G: 160, B: 220, A: 255},
		DeadTrail:   90,

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

var cyclePalette = []rl.Color{
	{R: 0, G: 220, B: 255, A: 255},   // cyan
	{R: 255, G: 140, B: 0, A: 255},   // orange
	{R: 255, G: 50, B: 120, A: 255},  // magenta
	{R: 120, G: 255, B: 80, A: 255},  // green
	{R: 250, G: 230, B: 60, A: 255},  // yellow
	{R: 170, G: 110, B: 255, A: 255}, // violet
}

// CycleColor returns the trail color of a cycle slot.
func CycleColor(slot int) rl.Color {
	if slot < 0 {
		slot = -slot
	}
	return cyclePalette[slot%len(cyclePalette)]
}

// Faded returns c with alpha a.
func Faded(c rl.Color, a uint8) rl.Color {
	c.A = a
	return c
}
