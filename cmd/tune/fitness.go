package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastBest    float64 // mean best-ever flight from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Each run stops after the
// given number of finished generations or maxTicks sub-steps.
func NewFitnessEvaluator(params *ParamVector, generations int, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastBest returns the mean best-ever flight from the most recent evaluation.
func (fe *FitnessEvaluator) LastBest() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBest
}

// runResult holds the results from a single simulation run.
type runResult struct {
	bests    []float64 // best flight of each finished generation
	bestEver float64
}

// score is the mean per-generation best, so faster learning scores higher
// than a late jump to the same peak.
func (r runResult) score() float64 {
	if len(r.bests) == 0 {
		return 0
	}
	var sum float64
	for _, b := range r.bests {
		sum += b
	}
	return sum / float64(len(r.bests))
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalScore, totalBest float64
	for _, r := range results {
		totalScore += r.score()
		totalBest += r.bestEver
	}
	n := float64(len(fe.seeds))
	fitness := -totalScore / n

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, fitness)
	fe.lastBest = totalBest / n
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run. cfg is shared read-only.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	var result runResult

	s := sim.New(cfg, rand.New(rand.NewSource(seed)), sim.Options{
		OnGeneration: func(gen neural.Generation) {
			if gen.Ended != nil {
				result.bests = append(result.bests, gen.Ended.Best().Fitness)
			}
		},
	})

	for len(result.bests) < fe.generations && s.Tick() < fe.maxTicks {
		s.Step(cfg.Derived.MaxStep)
	}

	// A generation still flying at the cap counts with its longest flight.
	if len(result.bests) < fe.generations {
		var longest float64
		for _, a := range s.Agents() {
			longest = max(longest, a.Fitness)
		}
		result.bests = append(result.bests, longest)
	}

	result.bestEver = s.BestFitness()
	for _, b := range result.bests {
		result.bestEver = max(result.bestEver, b)
	}
	return result
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
