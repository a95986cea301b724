package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	if rl.IsWindowResized() {
		g.camera.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.setSpeed(g.speed - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.setSpeed(g.speed + 1)
	}

	g.handleFlapInput()
}

// handleFlapInput forwards jump presses to the keyboard pilot. A held key
// flaps once; it must be released before the next flap.
func (g *Game) handleFlapInput() {
	if g.human == nil {
		return
	}

	down := rl.IsKeyDown(rl.KeySpace) || rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW)
	if down {
		g.human.Press()
	} else {
		g.human.Release()
	}
}

// setSpeed changes the time multiplier within the slider range.
func (g *Game) setSpeed(speed float64) {
	g.speed = ui.ClampSpeed(speed, minSpeed, g.cfg.Control.MaxSpeed)
}
