// Package systems contains the per-step rules of the simulation: agent
// flight, obstacle scrolling, sensing and collision.
package systems

import "github.com/pthm-cable/flock/config"

// Arena holds the play area and the constants shared by every system.
type Arena struct {
	Width, Height float64

	Gravity      float64
	JumpVelocity float64
	MaxVelocity  float64

	ObstacleWidth float64
	GapHeight     float64
	ObstacleSpeed float64
	MinDistance   float64
}

// ArenaFromConfig builds an Arena from loaded configuration.
func ArenaFromConfig(cfg *config.Config) Arena {
	return Arena{
		Width:         cfg.Derived.WorldWidth,
		Height:        cfg.Derived.WorldHeight,
		Gravity:       cfg.Agent.Gravity,
		JumpVelocity:  cfg.Agent.JumpVelocity,
		MaxVelocity:   cfg.Agent.MaxVelocity,
		ObstacleWidth: cfg.Obstacle.Width,
		GapHeight:     cfg.Obstacle.GapHeight,
		ObstacleSpeed: cfg.Obstacle.Speed,
		MinDistance:   cfg.Obstacle.MinDistance,
	}
}
