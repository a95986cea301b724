package systems

import "github.com/pthm-cable/flock/components"

// Rect is an axis-aligned rectangle in play-area coordinates (Y down).
type Rect struct {
	Left, Right, Top, Bottom float64
}

// Intersects reports whether two rectangles overlap. Only strict separation
// on some axis counts as a miss; touching edges intersect.
func Intersects(r1, r2 Rect) bool {
	return !(r2.Left > r1.Right ||
		r2.Right < r1.Left ||
		r2.Top > r1.Bottom ||
		r2.Bottom < r1.Top)
}

// AgentRect returns the bounding square of an agent.
func AgentRect(pos components.Position, body components.Body) Rect {
	return Rect{
		Left:   pos.X,
		Right:  pos.X + body.Size,
		Top:    pos.Y,
		Bottom: pos.Y + body.Size,
	}
}
