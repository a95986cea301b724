package components

// Position represents an entity's position in the play area.
// Y grows downward; an agent's X never changes after spawn.
type Position struct {
	X, Y float64
}

// Velocity represents an agent's vertical velocity. Positive is downward.
type Velocity struct {
	Y float64
}
