package neural

import (
	"math/rand"
	"sort"
)

// EvolutionConfig holds the generational selection parameters.
type EvolutionConfig struct {
	PopulationSize int     // founders, and the target size of every generation
	EliteCount     int     // top performers that parent the next generation
	MutationChance float64 // per-weight probability of perturbation
	MutationFactor float64 // perturbation half-width
}

// OffspringPerElite is the number of children each elite parents.
// Integer division: a remainder is simply not spawned.
func (c EvolutionConfig) OffspringPerElite() int {
	if c.EliteCount <= 0 {
		return c.PopulationSize
	}
	return c.PopulationSize / c.EliteCount
}

// Record is a finished agent as seen by the evolution loop.
type Record struct {
	ID         uint32
	Generation int
	Fitness    float64
	Pilot      Pilot
}

// Ranking describes the generation that just ended.
type Ranking struct {
	Generation int
	Records    []Record // best first
	NewBest    bool
}

// Best returns the top record. Rankings are never empty.
func (r *Ranking) Best() Record {
	return r.Records[0]
}

// Fitnesses returns the fitness of every record, best first.
func (r *Ranking) Fitnesses() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Fitness
	}
	return out
}

// Generation is a freshly bred cohort.
type Generation struct {
	Index  int
	Pilots []Pilot
	Ended  *Ranking // nil for the founding cohort
}

// Evolution runs copy-with-mutation selection across generations.
type Evolution struct {
	cfg     EvolutionConfig
	rng     *rand.Rand
	founder func(rng *rand.Rand) Pilot

	finished   []Record
	generation int
	best       float64
	hallOfFame []Record
}

// NewEvolution creates an evolution loop whose founders are random networks.
func NewEvolution(cfg EvolutionConfig, rng *rand.Rand) *Evolution {
	return NewEvolutionWithFounder(cfg, rng, func(rng *rand.Rand) Pilot {
		return NewRandomNetwork(rng)
	})
}

// NewEvolutionWithFounder creates an evolution loop with a custom founder
// factory, e.g. a single shared keyboard pilot.
func NewEvolutionWithFounder(cfg EvolutionConfig, rng *rand.Rand, founder func(rng *rand.Rand) Pilot) *Evolution {
	return &Evolution{
		cfg:     cfg,
		rng:     rng,
		founder: founder,
	}
}

// Finish queues a dead agent for ranking at the next generation boundary.
func (e *Evolution) Finish(id uint32, fitness float64, pilot Pilot) {
	e.finished = append(e.finished, Record{
		ID:         id,
		Generation: e.generation,
		Fitness:    fitness,
		Pilot:      pilot,
	})
}

// StartGeneration breeds the next cohort from the finished set.
// With nothing finished yet it returns the founding cohort.
func (e *Evolution) StartGeneration() Generation {
	if len(e.finished) == 0 {
		pilots := make([]Pilot, e.cfg.PopulationSize)
		for i := range pilots {
			pilots[i] = e.founder(e.rng)
		}
		return Generation{Index: e.generation, Pilots: pilots}
	}

	records := e.finished
	e.finished = nil
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Fitness > records[j].Fitness
	})

	ranking := &Ranking{Generation: e.generation, Records: records}
	if top := records[0]; top.Fitness > e.best {
		e.best = top.Fitness
		e.hallOfFame = append(e.hallOfFame, top)
		ranking.NewBest = true
	}
	e.generation++

	elite := min(e.cfg.EliteCount, len(records))
	perElite := e.cfg.OffspringPerElite()
	pilots := make([]Pilot, 0, elite*perElite)
	for i := 0; i < elite; i++ {
		for j := 0; j < perElite; j++ {
			pilots = append(pilots, e.offspring(records[i].Pilot))
		}
	}

	return Generation{Index: e.generation, Pilots: pilots, Ended: ranking}
}

// offspring clones a network parent with mutation. Other pilots, such as a
// keyboard, carry over unchanged.
func (e *Evolution) offspring(parent Pilot) Pilot {
	nn, ok := parent.(*Network)
	if !ok {
		return parent
	}
	return nn.Mutate(e.rng, e.cfg.MutationChance, e.cfg.MutationFactor)
}

// Generation returns the index of the active generation.
func (e *Evolution) Generation() int {
	return e.generation
}

// BestFitness returns the best fitness observed across all generations.
func (e *Evolution) BestFitness() float64 {
	return e.best
}

// HallOfFame returns every record that set a new best, oldest first.
func (e *Evolution) HallOfFame() []Record {
	return e.hallOfFame
}

// Pending returns the number of finished agents awaiting ranking.
func (e *Evolution) Pending() int {
	return len(e.finished)
}
