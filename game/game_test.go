package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/flock/config"
)

// impossibleCourse returns a config whose gaps are narrower than an agent,
// so every generation ends at the first obstacle.
func impossibleCourse() *config.Config {
	cfg := config.Default()
	cfg.Population.Size = 12
	cfg.Population.Elite = 4
	cfg.Obstacle.GapHeight = 40
	cfg.Telemetry.PerfLogInterval = 60
	return cfg
}

func runHeadless(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; !g.Done(); i++ {
		if i > 100_000 {
			t.Fatalf("generation cap never reached (generation %d)", g.Generation())
		}
		g.UpdateHeadless()
	}
}

func TestHeadlessRunWritesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	g, err := NewGame(impossibleCourse(), Options{
		Seed:           5,
		RunID:          "test-run",
		OutputDir:      dir,
		Headless:       true,
		MaxGenerations: 3,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	runHeadless(t, g)
	g.Unload()

	if g.Generation() != 3 {
		t.Errorf("generation = %d, want 3", g.Generation())
	}
	if s := g.LastStats(); s.Generation != 2 || s.Population != 12 || s.BestEver != g.BestFitness() {
		t.Errorf("last stats = %+v", s)
	}

	gens := readLines(t, filepath.Join(dir, "generations.csv"))
	if len(gens) != 4 {
		t.Errorf("generations.csv has %d lines, want header + 3", len(gens))
	}
	if !strings.Contains(gens[1], "test-run") {
		t.Errorf("row missing run id: %q", gens[1])
	}

	hof := readLines(t, filepath.Join(dir, "hall_of_fame.csv"))
	if len(hof) < 2 {
		t.Errorf("hall_of_fame.csv has %d lines, want at least one entry", len(hof))
	}

	if len(readLines(t, filepath.Join(dir, "perf.csv"))) < 2 {
		t.Error("perf.csv has no rows")
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot: %v", err)
	}
}

func TestHeadlessDeterministic(t *testing.T) {
	run := func() float64 {
		g, err := NewGame(impossibleCourse(), Options{Seed: 9, Headless: true, MaxGenerations: 2})
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		defer g.Unload()
		runHeadless(t, g)
		return g.BestFitness()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed gave best %v and %v", a, b)
	}
}

func TestHumanOption(t *testing.T) {
	g, err := NewGame(config.Default(), Options{Headless: true, Human: true})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	if g.human == nil || g.sim.Population() != 1 {
		t.Errorf("human session: pilot %v population %d", g.human, g.sim.Population())
	}
}

func TestSpeedIsClamped(t *testing.T) {
	cfg := config.Default()
	g, err := NewGame(cfg, Options{Headless: true, Speed: 500})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	if g.speed != cfg.Control.MaxSpeed {
		t.Errorf("speed = %v, want %v", g.speed, cfg.Control.MaxSpeed)
	}
	g.setSpeed(0)
	if g.speed != minSpeed {
		t.Errorf("speed = %v, want %v", g.speed, minSpeed)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
