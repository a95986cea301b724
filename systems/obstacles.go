package systems

import (
	"math/rand"

	"github.com/pthm-cable/flock/components"
)

// Obstacle is a read-only snapshot of one obstacle, taken once per step
// so agents can sense and collide without touching the ECS world.
type Obstacle struct {
	X   float64
	Top float64 // upper edge of the gap
	Seq uint64
}

// NewGapTop draws a gap position in [MinDistance, Height-2*MinDistance-GapHeight].
func (a *Arena) NewGapTop(rng *rand.Rand) float64 {
	span := a.Height - 3*a.MinDistance - a.GapHeight
	return a.MinDistance + rng.Float64()*span
}

// StepObstacle scrolls an obstacle left at constant speed.
func StepObstacle(a *Arena, dt float64, pos *components.Position) {
	pos.X -= a.ObstacleSpeed * dt
}

// Offscreen reports whether an obstacle has fully left the play area.
func (a *Arena) Offscreen(x float64) bool {
	return x+a.ObstacleWidth <= 0
}

// Rects returns the solid regions above and below the gap.
func (o Obstacle) Rects(a *Arena) [2]Rect {
	return [2]Rect{
		{Left: o.X, Right: o.X + a.ObstacleWidth, Top: 0, Bottom: o.Top},
		{Left: o.X, Right: o.X + a.ObstacleWidth, Top: o.Top + a.GapHeight, Bottom: a.Height},
	}
}

// Collides reports whether r overlaps either solid region.
func (o Obstacle) Collides(a *Arena, r Rect) bool {
	for _, solid := range o.Rects(a) {
		if Intersects(r, solid) {
			return true
		}
	}
	return false
}
