// Package sim owns one running flock: the ECS world holding agents and
// obstacles, the evolution loop, and the fixed sub-step clock.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/systems"
	"github.com/pthm-cable/flock/telemetry"
)

// Options configures optional collaborators of a Simulation.
type Options struct {
	// Human, when set, flies a single agent from the keyboard instead of
	// evolving a population of networks.
	Human *neural.Human

	// Perf times each sub-step's phases. May be nil.
	Perf *telemetry.PerfCollector

	// OnGeneration is called every time a cohort is spawned, including the
	// founding one (whose Ended is nil).
	OnGeneration func(gen neural.Generation)
}

// Simulation is a single flock session. It is not safe for concurrent use;
// rendering must read views between calls to Advance.
type Simulation struct {
	cfg   *config.Config
	arena systems.Arena
	rng   *rand.Rand
	evo   *neural.Evolution
	opts  Options

	world *ecs.World

	agentMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Flight,
	]
	agentFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Flight,
	]
	obstacleMapper *ecs.Map2[components.Position, components.Gap]
	obstacleFilter *ecs.Filter2[components.Position, components.Gap]

	// Per-step obstacle snapshot shared by every agent.
	obstacles []systems.Obstacle
	// Scratch list of entities to remove after a query completes.
	doomed []ecs.Entity

	spawnTimer float64
	nextID     uint32
	nextSeq    uint64
	agents     int // agents in the world, alive or falling
	tick       int64
	simTime    float64
}

// New creates a simulation and spawns its founding generation.
func New(cfg *config.Config, rng *rand.Rand, opts Options) *Simulation {
	world := ecs.NewWorld()

	evoCfg := neural.EvolutionConfig{
		PopulationSize: cfg.Population.Size,
		EliteCount:     cfg.Population.Elite,
		MutationChance: cfg.Mutation.Chance,
		MutationFactor: cfg.Mutation.Factor,
	}

	var evo *neural.Evolution
	if opts.Human != nil {
		evoCfg.PopulationSize, evoCfg.EliteCount = 1, 1
		human := opts.Human
		evo = neural.NewEvolutionWithFounder(evoCfg, rng, func(*rand.Rand) neural.Pilot { return human })
	} else {
		evo = neural.NewEvolution(evoCfg, rng)
	}

	s := &Simulation{
		cfg:   cfg,
		arena: systems.ArenaFromConfig(cfg),
		rng:   rng,
		evo:   evo,
		opts:  opts,
		world: world,
		agentMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Flight,
		](world),
		agentFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Flight,
		](world),
		obstacleMapper: ecs.NewMap2[components.Position, components.Gap](world),
		obstacleFilter: ecs.NewFilter2[components.Position, components.Gap](world),
	}

	s.startGeneration()
	return s
}

// Advance runs the simulation forward by delta seconds, sliced into
// sub-steps no longer than the configured maximum.
func (s *Simulation) Advance(delta float64) {
	remaining := delta
	for remaining > 0 {
		step := max(min(remaining, s.cfg.Derived.MaxStep), 0)
		remaining -= step
		s.Step(step)
	}
}

// Step runs a single sub-step of length dt.
func (s *Simulation) Step(dt float64) {
	perf := s.opts.Perf
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseAgents)
	s.updateAgents(dt)

	perf.StartPhase(telemetry.PhaseObstacles)
	s.updateObstacles(dt)

	perf.StartPhase(telemetry.PhasePrune)
	s.pruneObstacles()
	s.pruneAgents()

	perf.StartPhase(telemetry.PhaseSpawn)
	s.spawnTimer += dt
	if s.spawnTimer > s.cfg.Obstacle.SpawnInterval {
		s.spawnTimer -= s.cfg.Obstacle.SpawnInterval
		s.spawnObstacle()
	}

	s.tick++
	s.simTime += dt

	if s.agents <= 0 {
		perf.StartPhase(telemetry.PhaseGeneration)
		s.startGeneration()
	}

	perf.EndTick()
}

// updateAgents flies every agent against this step's obstacle snapshot.
func (s *Simulation) updateAgents(dt float64) {
	s.snapshotObstacles()

	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, body, flight := query.Get()
		if systems.StepAgent(&s.arena, dt, pos, vel, *body, flight, s.obstacles) {
			s.evo.Finish(flight.ID, flight.Fitness, flight.Pilot)
		}
	}
}

// snapshotObstacles copies obstacle state out of the world.
func (s *Simulation) snapshotObstacles() {
	s.obstacles = s.obstacles[:0]

	query := s.obstacleFilter.Query()
	for query.Next() {
		pos, gap := query.Get()
		s.obstacles = append(s.obstacles, systems.Obstacle{X: pos.X, Top: gap.Top, Seq: gap.Seq})
	}
}

// updateObstacles scrolls every obstacle.
func (s *Simulation) updateObstacles(dt float64) {
	query := s.obstacleFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		systems.StepObstacle(&s.arena, dt, pos)
	}
}

// pruneObstacles removes obstacles that have scrolled fully off the left edge.
func (s *Simulation) pruneObstacles() {
	s.doomed = s.doomed[:0]

	query := s.obstacleFilter.Query()
	for query.Next() {
		pos, _ := query.Get()
		if s.arena.Offscreen(pos.X) {
			s.doomed = append(s.doomed, query.Entity())
		}
	}

	// Removal must wait until the query has released the world.
	for _, e := range s.doomed {
		s.world.RemoveEntity(e)
	}
}

// pruneAgents removes agents that have dropped out of view.
func (s *Simulation) pruneAgents() {
	s.doomed = s.doomed[:0]

	query := s.agentFilter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		if s.arena.OutOfView(*pos) {
			s.doomed = append(s.doomed, query.Entity())
		}
	}

	for _, e := range s.doomed {
		s.world.RemoveEntity(e)
		s.agents--
	}
}

// spawnObstacle adds an obstacle at the right edge with a fresh gap.
func (s *Simulation) spawnObstacle() {
	pos := components.Position{X: s.arena.Width}
	gap := components.Gap{Top: s.arena.NewGapTop(s.rng), Seq: s.nextSeq}
	s.nextSeq++

	s.obstacleMapper.NewEntity(&pos, &gap)
}

// clearObstacles removes every obstacle.
func (s *Simulation) clearObstacles() {
	s.doomed = s.doomed[:0]

	query := s.obstacleFilter.Query()
	for query.Next() {
		s.doomed = append(s.doomed, query.Entity())
	}

	for _, e := range s.doomed {
		s.world.RemoveEntity(e)
	}
}

// startGeneration breeds the next cohort and resets the course.
// The spawn timer starts full so an obstacle appears on the first step.
func (s *Simulation) startGeneration() {
	gen := s.evo.StartGeneration()

	s.clearObstacles()
	s.spawnTimer = s.cfg.Obstacle.SpawnInterval

	for _, pilot := range gen.Pilots {
		s.spawnAgent(pilot)
	}

	if s.opts.OnGeneration != nil {
		s.opts.OnGeneration(gen)
	}
}

// spawnAgent places a new agent at the spawn point.
func (s *Simulation) spawnAgent(pilot neural.Pilot) {
	size := s.cfg.Agent.Size

	pos := components.Position{X: size, Y: s.arena.Height/2 - size/2}
	vel := components.Velocity{}
	body := components.Body{Size: size}
	flight := components.Flight{ID: s.nextID, Pilot: pilot, Alive: true}
	s.nextID++

	s.agentMapper.NewEntity(&pos, &vel, &body, &flight)
	s.agents++
}
