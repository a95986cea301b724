package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpeedSlider lets the viewer scale simulated time per frame.
type SpeedSlider struct {
	renderer *Renderer
	bounds   rl.Rectangle
	min, max float32
}

// NewSpeedSlider creates a slider spanning [minSpeed, maxSpeed].
func NewSpeedSlider(bounds rl.Rectangle, minSpeed, maxSpeed float64) *SpeedSlider {
	return &SpeedSlider{
		renderer: NewRenderer(),
		bounds:   bounds,
		min:      float32(minSpeed),
		max:      float32(maxSpeed),
	}
}

// Draw renders the slider and returns the possibly updated speed.
func (s *SpeedSlider) Draw(speed float64) float64 {
	t := s.renderer.Theme
	b := s.bounds

	rl.DrawText("Speed", int32(b.X), int32(b.Y)-t.LineHeight, t.FontSize, t.LabelColor)
	next := gui.SliderBar(b,
		fmt.Sprintf("%.0f", s.min), fmt.Sprintf("%.0f", s.max),
		float32(speed), s.min, s.max,
	)
	return ClampSpeed(float64(next), float64(s.min), float64(s.max))
}

// ClampSpeed keeps a speed multiplier inside the slider range.
func ClampSpeed(speed, minSpeed, maxSpeed float64) float64 {
	return max(min(speed, maxSpeed), minSpeed)
}
