package systems

import (
	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/neural"
)

// NextObstacle returns the obstacle with the smallest X, oldest first on
// ties. ok is false when no obstacle is in play.
func NextObstacle(obstacles []Obstacle) (next Obstacle, ok bool) {
	for _, o := range obstacles {
		if !ok || o.X < next.X || (o.X == next.X && o.Seq < next.Seq) {
			next = o
			ok = true
		}
	}
	return next, ok
}

// Sense computes the pilot's view of the world.
// Inputs, in order: center height, vertical speed, gap top, gap bottom,
// horizontal distance to the next obstacle; each normalized by the play
// area or max velocity.
func Sense(a *Arena, pos components.Position, vel components.Velocity, body components.Body, obstacles []Obstacle) neural.Senses {
	next, ok := NextObstacle(obstacles)
	if !ok {
		return neural.Senses{}
	}

	return neural.Senses{
		HasTarget: true,
		Inputs: neural.Inputs{
			(pos.Y + body.Size/2) / a.Height,
			vel.Y / a.MaxVelocity,
			next.Top / a.Height,
			(next.Top + a.GapHeight) / a.Height,
			(next.X - pos.X) / a.Width,
		},
	}
}
