package game

import (
	"log/slog"

	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/telemetry"
)

// onGeneration summarizes the generation that just ended. The founding
// cohort has nothing to report.
func (g *Game) onGeneration(gen neural.Generation) {
	if gen.Ended == nil {
		return
	}

	stats := telemetry.ComputeGenerationStats(g.runID, g.sim.SimTime(), gen.Ended, g.sim.BestFitness())
	g.lastStats = stats

	if g.logStats {
		stats.LogStats()
	}
	if gen.Ended.NewBest {
		best := gen.Ended.Best()
		slog.Info("new_best",
			"generation", best.Generation,
			"agent", best.ID,
			"fitness", best.Fitness,
		)
	}

	if err := g.outputManager.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation", "error", err)
	}
	g.writeHallOfFame()

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// writeHallOfFame exports hall of fame entries added since the last call.
func (g *Game) writeHallOfFame() {
	hof := g.sim.HallOfFame()
	if len(hof) <= g.hallWritten {
		return
	}

	entries := telemetry.HallOfFameEntries(g.runID, hof)[g.hallWritten:]
	if err := g.outputManager.WriteHallOfFame(entries); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
		return
	}
	g.hallWritten = len(hof)
}

// flushPerf logs and exports perf stats every PerfLogInterval sub-steps.
func (g *Game) flushPerf() {
	interval := int64(g.cfg.Telemetry.PerfLogInterval)
	tick := g.sim.Tick()
	if interval <= 0 || tick-g.lastPerfFlush < interval {
		return
	}
	g.lastPerfFlush = tick

	perfStats := g.perfCollector.Stats()
	if g.logStats {
		perfStats.LogStats()
	}
	if err := g.outputManager.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
