package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/config"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s default %v, config has %v", spec.Path, spec.Default, got[i])
		}
	}
}

func TestApplyToConfigClampsAndRounds(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{3, -1, 7.6})

	if cfg.Mutation.Chance != 1.0 {
		t.Errorf("chance = %v, want clamped to 1", cfg.Mutation.Chance)
	}
	if cfg.Mutation.Factor != 0.05 {
		t.Errorf("factor = %v, want clamped to 0.05", cfg.Mutation.Factor)
	}
	if cfg.Population.Elite != 8 {
		t.Errorf("elite = %d, want 8", cfg.Population.Elite)
	}
}

func TestEvaluateStopsAtGenerationCount(t *testing.T) {
	cfg := config.Default()
	cfg.Population.Size = 8
	cfg.Population.Elite = 2
	cfg.Obstacle.GapHeight = 40 // every flight ends at the first obstacle

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 2, 100_000, []int64{1, 2}, cfg)

	r := fe.runSimulation(cfg, 1)
	if len(r.bests) != 2 {
		t.Fatalf("finished generations = %d, want 2", len(r.bests))
	}
	if r.bestEver <= 0 || r.score() <= 0 {
		t.Errorf("best ever %v score %v, want positive", r.bestEver, r.score())
	}

	fitness := fe.Evaluate(pv.ExtractFromConfig(cfg))
	if fitness >= 0 || fe.LastBest() <= 0 {
		t.Errorf("fitness = %v last best = %v", fitness, fe.LastBest())
	}
}
