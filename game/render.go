package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/ui"
)

var (
	barColor      = rl.Color{R: 18, G: 22, B: 28, A: 255}
	skyColor      = rl.Color{R: 112, G: 197, B: 206, A: 255}
	obstacleColor = rl.Color{R: 84, G: 160, B: 48, A: 255}
	edgeColor     = rl.Color{R: 46, G: 96, B: 26, A: 255}
	agentColor    = rl.Color{R: 250, G: 210, B: 60, A: 170}
	humanColor    = rl.Color{R: 240, G: 90, B: 60, A: 255}
	deadColor     = rl.Color{R: 120, G: 120, B: 120, A: 120}
)

const controlsLegend = "[SPACE] flap (human)  [P] pause  [<][>] speed  [F11] fullscreen"

// Draw renders the play area and HUD.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(barColor)

	cam := g.camera
	rl.DrawRectangleRec(g.screenRect(0, 0, cam.WorldW, cam.WorldH), skyColor)

	// Obstacles spawn beyond the right edge; keep them out of the side bars.
	rl.BeginScissorMode(int32(cam.OffsetX), int32(cam.OffsetY), int32(cam.WorldW*cam.Zoom), int32(cam.WorldH*cam.Zoom))
	g.drawObstacles()
	g.drawAgents()
	rl.EndScissorMode()

	g.drawHUD()

	rl.EndDrawing()
}

// drawObstacles renders each obstacle as its two solid rectangles.
func (g *Game) drawObstacles() {
	for _, o := range g.sim.Obstacles() {
		for _, r := range o.Rects {
			w, h := float32(r.Right-r.Left), float32(r.Bottom-r.Top)
			if !g.camera.IsVisible(float32(r.Left), float32(r.Top), w, h) {
				continue
			}
			rect := g.screenRect(float32(r.Left), float32(r.Top), w, h)
			rl.DrawRectangleRec(rect, obstacleColor)
			rl.DrawRectangleLinesEx(rect, 3, edgeColor)
		}
	}
}

// drawAgents renders living agents over falling dead ones.
func (g *Game) drawAgents() {
	agents := g.sim.Agents()

	for _, a := range agents {
		if !a.Alive {
			rl.DrawRectangleRec(g.agentRect(a), deadColor)
		}
	}

	color := agentColor
	if g.human != nil {
		color = humanColor
	}
	for _, a := range agents {
		if a.Alive {
			rect := g.agentRect(a)
			rl.DrawRectangleRec(rect, color)
			rl.DrawRectangleLinesEx(rect, 1, rl.Black)
		}
	}
}

// drawHUD renders the stats panel, speed slider and control legend.
func (g *Game) drawHUD() {
	var score float64
	alive := 0
	agents := g.sim.Agents()
	for _, a := range agents {
		if a.Alive {
			alive++
			score = max(score, a.Fitness)
		}
	}

	title := "Flock"
	if g.human != nil {
		title = "Flock (human)"
	}

	g.hud.Draw(ui.HUDData{
		Title:      title,
		Generation: g.sim.Generation(),
		Alive:      alive,
		Population: len(agents),
		Score:      score,
		Best:       g.sim.BestFitness(),
		Speed:      g.speed,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		Human:      g.human != nil,
	})

	g.speed = g.slider.Draw(g.speed)
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
}

// screenRect converts a play-area rectangle to screen space.
func (g *Game) screenRect(x, y, w, h float32) rl.Rectangle {
	sx, sy, sw, sh := g.camera.WorldRect(x, y, w, h)
	return rl.Rectangle{X: sx, Y: sy, Width: sw, Height: sh}
}

func (g *Game) agentRect(a sim.AgentView) rl.Rectangle {
	size := float32(a.Size)
	return g.screenRect(float32(a.X), float32(a.Y), size, size)
}
