package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	Alive      int
	Population int
	Score      float64 // longest current flight, seconds
	Best       float64 // best finished flight, seconds
	Speed      float64
	FPS        int32
	Paused     bool
	Human      bool
}

// LabelValue is one HUD line before styling.
type LabelValue struct {
	Label string
	Value string
}

// Lines returns the HUD rows in display order.
func (d HUDData) Lines() []LabelValue {
	mode := "evolve"
	if d.Human {
		mode = "human"
	}
	return []LabelValue{
		{"Generation", fmt.Sprintf("%d", d.Generation)},
		{"Score", FormatSeconds(d.Score)},
		{"Best", FormatSeconds(d.Best)},
		{"Speed", fmt.Sprintf("%.1fx", d.Speed)},
		{"Mode", mode},
		{"FPS", fmt.Sprintf("%d", d.FPS)},
	}
}

// FormatSeconds renders a fitness value, truncated to hundredths so a
// displayed best never exceeds the real one.
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.2fs", math.Floor(s*100)/100)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD anchored at the top-left corner.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Height returns the panel height for the current theme.
func (h *HUD) Height() int32 {
	t := h.renderer.Theme
	rows := int32(len(HUDData{}.Lines())) + 1 // + alive bar
	return t.Padding*2 + t.TitleSize + 6 + rows*t.LineHeight
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	t := r.Theme

	r.DrawPanel(h.x, h.y, h.width, h.Height())

	x := h.x + t.Padding
	y := h.y + t.Padding

	rl.DrawText(data.Title, x, y, t.TitleSize, t.ValueColor)
	if data.Paused {
		rl.DrawText("PAUSED", h.x+h.width-t.Padding-rl.MeasureText("PAUSED", t.FontSize), y+2, t.FontSize, t.Highlight)
	}
	y += t.TitleSize + 6

	y = r.DrawBar(x, y, "Alive", data.Alive, data.Population, h.width-2*t.Padding)
	for _, line := range data.Lines() {
		y = r.DrawLabelValue(x, y, line.Label, line.Value)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.x, screenHeight-25, 14, h.renderer.Theme.Muted)
}
