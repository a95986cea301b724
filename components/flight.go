package components

import "github.com/pthm-cable/flock/neural"

// Flight bundles identity, liveness and score for an agent.
type Flight struct {
	ID      uint32
	Pilot   neural.Pilot
	Alive   bool
	Fitness float64 // seconds survived; frozen at death
}

// Gap describes an obstacle's opening. Seq orders obstacles by spawn time.
type Gap struct {
	Top float64 // y of the upper edge of the opening
	Seq uint64
}
