package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/components"
)

func TestNextObstacle(t *testing.T) {
	if _, ok := NextObstacle(nil); ok {
		t.Fatal("expected no obstacle in an empty set")
	}

	obstacles := []Obstacle{
		{X: 500, Top: 100, Seq: 2},
		{X: -20, Top: 200, Seq: 1}, // already passed the agent, still the minimum
		{X: 700, Top: 300, Seq: 3},
	}
	next, ok := NextObstacle(obstacles)
	if !ok || next.Seq != 1 {
		t.Errorf("NextObstacle = %+v, want seq 1", next)
	}

	ties := []Obstacle{
		{X: 100, Seq: 9},
		{X: 100, Seq: 4},
		{X: 100, Seq: 6},
	}
	next, _ = NextObstacle(ties)
	if next.Seq != 4 {
		t.Errorf("tie broken to seq %d, want 4", next.Seq)
	}
}

func TestSense(t *testing.T) {
	a := testArena()
	pos := components.Position{X: 60, Y: 370}
	vel := components.Velocity{Y: 350}
	body := components.Body{Size: 60}

	s := Sense(&a, pos, vel, body, nil)
	if s.HasTarget {
		t.Fatal("HasTarget with no obstacles")
	}

	s = Sense(&a, pos, vel, body, []Obstacle{{X: 460, Top: 200}})
	if !s.HasTarget {
		t.Fatal("expected a target")
	}
	want := [5]float64{
		400.0 / 800, // center height
		0.5,         // 350 / 700
		200.0 / 800,
		360.0 / 800,
		400.0 / 800, // (460 - 60) / 800
	}
	for i := range want {
		if math.Abs(s.Inputs[i]-want[i]) > 1e-12 {
			t.Errorf("input %d = %v, want %v", i, s.Inputs[i], want[i])
		}
	}
}
