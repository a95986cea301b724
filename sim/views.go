package sim

import (
	"slices"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/systems"
)

// AgentView is a read-only copy of one agent for rendering.
type AgentView struct {
	ID      uint32
	X, Y    float64
	Size    float64
	Alive   bool
	Fitness float64
}

// ObstacleView is a read-only copy of one obstacle for rendering.
type ObstacleView struct {
	Seq   uint64
	Rects [2]systems.Rect // upper, lower
}

// Agents returns every agent in the world, alive or falling, ordered by ID.
func (s *Simulation) Agents() []AgentView {
	out := make([]AgentView, 0, s.agents)

	query := s.agentFilter.Query()
	for query.Next() {
		pos, _, body, flight := query.Get()
		out = append(out, AgentView{
			ID:      flight.ID,
			X:       pos.X,
			Y:       pos.Y,
			Size:    body.Size,
			Alive:   flight.Alive,
			Fitness: flight.Fitness,
		})
	}

	slices.SortFunc(out, func(a, b AgentView) int { return int(a.ID) - int(b.ID) })
	return out
}

// Obstacles returns every obstacle, oldest first.
func (s *Simulation) Obstacles() []ObstacleView {
	var out []ObstacleView

	query := s.obstacleFilter.Query()
	for query.Next() {
		pos, gap := query.Get()
		o := systems.Obstacle{X: pos.X, Top: gap.Top, Seq: gap.Seq}
		out = append(out, ObstacleView{Seq: gap.Seq, Rects: o.Rects(&s.arena)})
	}

	slices.SortFunc(out, func(a, b ObstacleView) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return out
}

// Living returns the number of agents still flying.
func (s *Simulation) Living() int {
	n := 0
	query := s.agentFilter.Query()
	for query.Next() {
		_, _, _, flight := query.Get()
		if flight.Alive {
			n++
		}
	}
	return n
}

// Population returns the number of agents in the world, including dead
// ones still falling.
func (s *Simulation) Population() int { return s.agents }

// Generation returns the index of the active generation.
func (s *Simulation) Generation() int { return s.evo.Generation() }

// BestFitness returns the best fitness seen in any finished generation.
func (s *Simulation) BestFitness() float64 { return s.evo.BestFitness() }

// HallOfFame returns every agent that set a new best, oldest first.
func (s *Simulation) HallOfFame() []neural.Record { return s.evo.HallOfFame() }

// Tick returns the number of sub-steps run so far.
func (s *Simulation) Tick() int64 { return s.tick }

// SimTime returns the simulated seconds elapsed.
func (s *Simulation) SimTime() float64 { return s.simTime }

// Arena returns the play-area parameters.
func (s *Simulation) Arena() systems.Arena { return s.arena }
