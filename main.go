package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/game"
)

// headlessProgressInterval is how many sub-steps pass between progress logs.
const headlessProgressInterval = 60 * 60 * 10

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N sub-steps (0 = unlimited)")
	maxGenerations := flag.Int("max-generations", 0, "Stop once N generations have finished (0 = unlimited)")
	speed := flag.Float64("speed", 0, "Initial speed multiplier (0 = use config)")
	human := flag.Bool("human", false, "Fly a single agent with the keyboard")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := uuid.NewString()

	opts := game.Options{
		Seed:           rngSeed,
		RunID:          runID,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Human:          *human,
		Speed:          *speed,
		MaxGenerations: *maxGenerations,
	}

	if *headless {
		if *human || cfg.Control.Mode == config.ModeHuman {
			slog.Error("human mode needs a window; drop --headless")
			os.Exit(1)
		}
		os.Exit(runHeadless(opts, *maxTicks))
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flock")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	slog.Info("starting_simulation", "run_id", runID, "seed", rngSeed, "headless", false)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if g.Done() || (*maxTicks > 0 && g.Tick() >= *maxTicks) {
			break
		}
	}
}

// runHeadless trains without graphics and returns the process exit code.
func runHeadless(opts game.Options, maxTicks int64) int {
	g, err := game.NewGame(config.Cfg(), opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting_simulation",
		"run_id", opts.RunID,
		"seed", opts.Seed,
		"headless", true,
		"max_ticks", maxTicks,
		"max_generations", opts.MaxGenerations,
	)

	start := time.Now()
	for !g.Done() {
		g.UpdateHeadless()

		tick := g.Tick()
		if tick%headlessProgressInterval == 0 {
			slog.Info("progress",
				"ticks", humanize.Comma(tick),
				"generation", g.Generation(),
				"best", g.BestFitness(),
				"started", humanize.Time(start),
			)
		}
		if maxTicks > 0 && tick >= maxTicks {
			slog.Info("max ticks reached", "tick", tick)
			break
		}
	}

	slog.Info("finished",
		"ticks", humanize.Comma(g.Tick()),
		"generations", g.Generation(),
		"best", g.BestFitness(),
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)
	return 0
}
