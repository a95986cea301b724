package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/flock/neural"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeFitnessStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	mean, std, p10, p50, p90 := ComputeFitnessStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Sample standard deviation of 0.1..1.0
	if math.Abs(std-0.3028) > 0.001 {
		t.Errorf("std = %v, want ~0.3028", std)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}

	// Input order is left alone.
	if values[0] != 1.0 {
		t.Error("ComputeFitnessStats sorted its input")
	}
}

func TestComputeFitnessStatsSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeFitnessStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _ = ComputeFitnessStats([]float64{2.5})
	if mean != 2.5 || std != 0 || p50 != 2.5 {
		t.Errorf("single value: mean %v std %v p50 %v", mean, std, p50)
	}
}

func TestComputeGenerationStats(t *testing.T) {
	r := &neural.Ranking{
		Generation: 4,
		NewBest:    true,
		Records: []neural.Record{
			{ID: 7, Fitness: 3},
			{ID: 2, Fitness: 2},
			{ID: 9, Fitness: 1},
		},
	}

	s := ComputeGenerationStats("run", 12.5, r, 3)
	if s.Generation != 4 || s.Population != 3 || s.Best != 3 || s.BestEver != 3 || !s.NewBest {
		t.Errorf("unexpected stats: %+v", s)
	}
	if math.Abs(s.Mean-2) > 1e-9 || math.Abs(s.P50-2) > 1e-9 {
		t.Errorf("mean %v p50 %v, want 2", s.Mean, s.P50)
	}
}

func TestHallOfFameEntries(t *testing.T) {
	records := []neural.Record{
		{ID: 11, Generation: 0, Fitness: 1.5},
		{ID: 40, Generation: 3, Fitness: 4.25},
	}

	got := HallOfFameEntries("abc", records)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	want := HallOfFameEntry{RunID: "abc", Rank: 2, Generation: 3, AgentID: 40, Fitness: 4.25}
	if got[1] != want {
		t.Errorf("entry = %+v, want %+v", got[1], want)
	}
}
