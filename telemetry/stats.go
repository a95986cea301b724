// Package telemetry provides generation statistics, bookmarking, perf timing
// and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flock/neural"
)

// GenerationStats summarizes the fitness of one finished generation.
type GenerationStats struct {
	RunID      string  `csv:"run_id"`
	Generation int     `csv:"generation"`
	SimTimeSec float64 `csv:"sim_time"`
	Population int     `csv:"population"`

	Best float64 `csv:"best"`
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	BestEver float64 `csv:"best_ever"`
	NewBest  bool    `csv:"new_best"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFitnessStats calculates mean, sample std and percentiles.
func ComputeFitnessStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// ComputeGenerationStats summarizes a ranking. bestEver is the best fitness
// after the ranking was applied.
func ComputeGenerationStats(runID string, simTime float64, r *neural.Ranking, bestEver float64) GenerationStats {
	s := GenerationStats{
		RunID:      runID,
		Generation: r.Generation,
		SimTimeSec: simTime,
		Population: len(r.Records),
		BestEver:   bestEver,
		NewBest:    r.NewBest,
	}
	if len(r.Records) == 0 {
		return s
	}

	s.Best = r.Best().Fitness
	s.Mean, s.Std, s.P10, s.P50, s.P90 = ComputeFitnessStats(r.Fitnesses())
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Float64("best", s.Best),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("best_ever", s.BestEver),
		slog.Bool("new_best", s.NewBest),
	)
}

// LogStats logs the generation summary using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}

// HallOfFameEntry is one new-best agent as exported to CSV. Weights are
// not exported.
type HallOfFameEntry struct {
	RunID      string  `csv:"run_id"`
	Rank       int     `csv:"rank"`
	Generation int     `csv:"generation"`
	AgentID    uint32  `csv:"agent_id"`
	Fitness    float64 `csv:"fitness"`
}

// HallOfFameEntries converts evolution records to CSV rows, oldest first.
func HallOfFameEntries(runID string, records []neural.Record) []HallOfFameEntry {
	out := make([]HallOfFameEntry, len(records))
	for i, rec := range records {
		out[i] = HallOfFameEntry{
			RunID:      runID,
			Rank:       i + 1,
			Generation: rec.Generation,
			AgentID:    rec.ID,
			Fitness:    rec.Fitness,
		}
	}
	return out
}
