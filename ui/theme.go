// Package ui draws the heads-up display and controls over the play area.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	Highlight   rl.Color
	Muted       rl.Color
	BarBg       rl.Color
	BarFill     rl.Color
	BarFillLow  rl.Color

	Padding    int32
	LineHeight int32
	LabelWidth int32
	BarHeight  int32
	FontSize   int32
	TitleSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 200},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		Highlight:   rl.Yellow,
		Muted:       rl.Gray,
		BarBg:       rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:     rl.Color{R: 100, G: 200, B: 100, A: 255},
		BarFillLow:  rl.Color{R: 200, G: 100, B: 100, A: 255},
		Padding:     10,
		LineHeight:  20,
		LabelWidth:  90,
		BarHeight:   12,
		FontSize:    16,
		TitleSize:   20,
	}
}
