package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/neural"
)

// scriptedPilot answers with a fixed decision and records what it saw.
type scriptedPilot struct {
	answer bool
	calls  int
	last   neural.Senses
}

func (p *scriptedPilot) Jump(s neural.Senses) bool {
	p.calls++
	p.last = s
	return p.answer
}

func spawnAgent(a *Arena, pilot neural.Pilot) (components.Position, components.Velocity, components.Body, components.Flight) {
	body := components.Body{Size: 60}
	pos := components.Position{X: body.Size, Y: a.Height/2 - body.Size/2}
	return pos, components.Velocity{}, body, components.Flight{Pilot: pilot, Alive: true}
}

func TestStepAgentGolden(t *testing.T) {
	a := testArena()
	pos, vel, body, flight := spawnAgent(&a, &scriptedPilot{})

	died := StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil)
	if died || !flight.Alive {
		t.Fatal("agent died in open air")
	}

	const wantVel = 18.333333333333332 // 1100/60
	const wantY = 370.4583333333333    // 370 + v*dt + 0.5*g*dt²
	if math.Abs(vel.Y-wantVel) > 1e-9 {
		t.Errorf("velocity = %.12f, want %.12f", vel.Y, wantVel)
	}
	if math.Abs(pos.Y-wantY) > 1e-9 {
		t.Errorf("y = %.12f, want %.12f", pos.Y, wantY)
	}
	if flight.Fitness != 1.0/60.0 {
		t.Errorf("fitness = %v, want 1/60", flight.Fitness)
	}
}

func TestStepAgentVelocityClamp(t *testing.T) {
	a := testArena()
	pos, vel, body, flight := spawnAgent(&a, &scriptedPilot{})
	vel.Y = 695

	StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil)
	if vel.Y != a.MaxVelocity {
		t.Errorf("velocity = %v, want clamp at %v", vel.Y, a.MaxVelocity)
	}

	vel.Y = -2000
	pos.Y = 400
	StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil)
	if vel.Y != -a.MaxVelocity {
		t.Errorf("velocity = %v, want clamp at %v", vel.Y, -a.MaxVelocity)
	}
}

func TestStepAgentJump(t *testing.T) {
	a := testArena()
	pilot := &scriptedPilot{answer: true}
	pos, vel, body, flight := spawnAgent(&a, pilot)

	StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, []Obstacle{{X: 700, Top: 300}})
	if vel.Y != -a.JumpVelocity {
		t.Errorf("velocity after jump = %v, want %v", vel.Y, -a.JumpVelocity)
	}
	if pilot.calls != 1 || !pilot.last.HasTarget {
		t.Errorf("pilot consulted %d times with target=%v", pilot.calls, pilot.last.HasTarget)
	}
}

func TestStepAgentNoObstacleNetworkNeverJumps(t *testing.T) {
	a := testArena()
	nn := &neural.Network{}
	nn.Weights[neural.NumWeights-1] = 1 // output bias: always wants to jump
	pos, vel, body, flight := spawnAgent(&a, nn)

	prevVel := vel.Y
	for i := 0; i < 30; i++ {
		StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil)
		want := min(prevVel+a.Gravity/60.0, a.MaxVelocity)
		if math.Abs(vel.Y-want) > 1e-9 {
			t.Fatalf("step %d: velocity %v, want unmodified gravity %v", i, vel.Y, want)
		}
		prevVel = vel.Y
	}
}

func TestStepAgentDeathFreezesFitness(t *testing.T) {
	a := testArena()
	pilot := &scriptedPilot{}
	pos, vel, body, flight := spawnAgent(&a, pilot)

	var last float64
	var deaths int
	for i := 0; i < 600; i++ {
		if StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil) {
			deaths++
		}
		if flight.Alive && flight.Fitness < last {
			t.Fatalf("fitness decreased while alive: %v -> %v", last, flight.Fitness)
		}
		last = flight.Fitness
	}

	if deaths != 1 {
		t.Errorf("died %d times, want exactly once", deaths)
	}
	if flight.Alive {
		t.Fatal("agent should have fallen out of the play area")
	}

	frozen := flight.Fitness
	callsAtDeath := pilot.calls
	StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil)
	if Kill(&flight) {
		t.Error("Kill on a dead agent reported a transition")
	}
	if flight.Fitness != frozen {
		t.Errorf("fitness changed after death: %v -> %v", frozen, flight.Fitness)
	}
	if pilot.calls != callsAtDeath {
		t.Error("dead agent consulted its pilot")
	}
}

func TestStepAgentObstacleCollision(t *testing.T) {
	a := testArena()
	pos, vel, body, flight := spawnAgent(&a, &scriptedPilot{})

	// Gap far above the agent: the lower solid covers it.
	wall := []Obstacle{{X: 80, Top: 100}}
	if !StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, wall) {
		t.Fatal("expected collision with the lower solid")
	}
	if flight.Fitness != 0 {
		t.Errorf("fitness = %v, a colliding step should not score", flight.Fitness)
	}
}

func TestStepAgentTopBoundary(t *testing.T) {
	a := testArena()
	pos, vel, body, flight := spawnAgent(&a, &scriptedPilot{})
	pos.Y = 1
	vel.Y = -a.MaxVelocity

	if !StepAgent(&a, 1.0/60.0, &pos, &vel, body, &flight, nil) {
		t.Error("agent leaving the top should die")
	}
}
