// Package game drives a simulation session: the frame loop, input,
// rendering and telemetry around a sim.Simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flock/camera"
	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
	"github.com/pthm-cable/flock/ui"
)

// minSpeed is the slowest selectable time multiplier.
const minSpeed = 1.0

// Options configures a new game session.
type Options struct {
	Seed           int64
	RunID          string
	LogStats       bool
	OutputDir      string
	Headless       bool
	Human          bool    // overrides control.mode
	Speed          float64 // 0 = control.speed
	MaxGenerations int     // 0 = unlimited
}

// Game holds the complete session state.
type Game struct {
	cfg   *config.Config
	sim   *sim.Simulation
	human *neural.Human
	runID string

	// Rendering (nil when headless)
	camera *camera.Camera
	hud    *ui.HUD
	slider *ui.SpeedSlider

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	logStats         bool
	hallWritten      int   // hall of fame entries already exported
	lastPerfFlush    int64 // sub-step of the last perf flush
	lastStats        telemetry.GenerationStats

	// State
	paused         bool
	headless       bool
	speed          float64
	maxGenerations int
}

// NewGame creates a session with the given options. cfg must be loaded.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	om, err := telemetry.NewOutputManager(opts.OutputDir, opts.RunID)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	speed := cfg.Control.Speed
	if opts.Speed > 0 {
		speed = ui.ClampSpeed(opts.Speed, minSpeed, cfg.Control.MaxSpeed)
	}

	g := &Game{
		cfg:           cfg,
		runID:         opts.RunID,
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: om,
		bookmarkDetector: telemetry.NewBookmarkDetector(
			cfg.Telemetry.BookmarkHistory,
			cfg.Telemetry.MasteryFitness,
			cfg.Telemetry.PlateauGenerations,
		),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		speed:          speed,
		maxGenerations: opts.MaxGenerations,
	}

	if opts.Human || cfg.Control.Mode == config.ModeHuman {
		g.human = &neural.Human{}
	}

	g.sim = sim.New(cfg, rand.New(rand.NewSource(opts.Seed)), sim.Options{
		Human:        g.human,
		Perf:         g.perfCollector,
		OnGeneration: g.onGeneration,
	})

	if !g.headless {
		g.camera = camera.New(
			float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()),
			float32(cfg.Derived.WorldWidth), float32(cfg.Derived.WorldHeight),
		)
		g.hud = ui.NewHUD(10, 10, 260)
		g.slider = ui.NewSpeedSlider(
			rl.Rectangle{X: 40, Y: float32(10 + g.hud.Height() + 30), Width: 180, Height: 16},
			minSpeed, cfg.Control.MaxSpeed,
		)
	}

	slog.Info("session_created",
		"run_id", g.runID,
		"seed", opts.Seed,
		"human", g.human != nil,
		"population", g.sim.Population(),
		"speed", g.speed,
	)

	return g, nil
}

// Update handles input and advances the simulation by one frame's worth of
// scaled time.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	g.advance(float64(rl.GetFrameTime()) * g.speed)
}

// UpdateHeadless advances the simulation by one maximal sub-step.
func (g *Game) UpdateHeadless() {
	g.advance(g.cfg.Derived.MaxStep)
}

func (g *Game) advance(delta float64) {
	g.sim.Advance(delta)
	g.flushPerf()
}

// Done reports whether the generation cap has been reached.
func (g *Game) Done() bool {
	return g.maxGenerations > 0 && g.sim.Generation() >= g.maxGenerations
}

// Tick returns the number of sub-steps run so far.
func (g *Game) Tick() int64 { return g.sim.Tick() }

// Generation returns the active generation index.
func (g *Game) Generation() int { return g.sim.Generation() }

// BestFitness returns the best fitness of any finished flight.
func (g *Game) BestFitness() float64 { return g.sim.BestFitness() }

// LastStats returns the summary of the most recently finished generation.
func (g *Game) LastStats() telemetry.GenerationStats { return g.lastStats }

// Unload flushes telemetry and releases output files.
func (g *Game) Unload() {
	g.writeHallOfFame()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
