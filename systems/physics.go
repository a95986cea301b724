package systems

import "github.com/pthm-cable/flock/components"

// StepAgent advances one agent by dt and reports whether it died this step.
//
// Integration, death checks, then (if still alive) scoring and the pilot's
// decision, which overrides the integrated velocity with a jump. Dead agents
// keep falling but neither score nor decide.
func StepAgent(
	a *Arena,
	dt float64,
	pos *components.Position,
	vel *components.Velocity,
	body components.Body,
	flight *components.Flight,
	obstacles []Obstacle,
) (died bool) {
	vel.Y += a.Gravity * dt
	vel.Y = max(min(a.MaxVelocity, vel.Y), -a.MaxVelocity)
	pos.Y += vel.Y*dt + 0.5*a.Gravity*dt*dt

	if pos.Y+body.Size > a.Height || pos.Y < 0 {
		died = Kill(flight)
	}

	self := AgentRect(*pos, body)
	for _, o := range obstacles {
		if o.Collides(a, self) {
			died = Kill(flight) || died
			break
		}
	}

	if flight.Alive {
		flight.Fitness += dt
		if flight.Pilot.Jump(Sense(a, *pos, *vel, body, obstacles)) {
			vel.Y = -a.JumpVelocity
		}
	}

	return died
}

// Kill marks an agent dead. It returns false if the agent was already dead.
func Kill(flight *components.Flight) bool {
	if !flight.Alive {
		return false
	}
	flight.Alive = false
	return true
}

// OutOfView reports whether an agent has dropped below the play area.
func (a *Arena) OutOfView(pos components.Position) bool {
	return pos.Y >= a.Height
}
