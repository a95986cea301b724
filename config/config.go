// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Control modes.
const (
	ModeEvolve = "evolve"
	ModeHuman  = "human"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Agent      AgentConfig      `yaml:"agent"`
	Obstacle   ObstacleConfig   `yaml:"obstacle"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Control    ControlConfig    `yaml:"control"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the play area dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds sub-stepping parameters.
type PhysicsConfig struct {
	StepsPerSecond int `yaml:"steps_per_second"` // sub-step is never longer than 1/this
}

// AgentConfig holds agent body and flight parameters.
type AgentConfig struct {
	Size         float64 `yaml:"size"`
	Gravity      float64 `yaml:"gravity"`       // downward acceleration, px/s²
	JumpVelocity float64 `yaml:"jump_velocity"` // upward speed set by a jump
	MaxVelocity  float64 `yaml:"max_velocity"`  // clamp on |vy|
}

// ObstacleConfig holds obstacle geometry and cadence.
type ObstacleConfig struct {
	Width         float64 `yaml:"width"`
	GapHeight     float64 `yaml:"gap_height"`
	Speed         float64 `yaml:"speed"`
	MinDistance   float64 `yaml:"min_distance"`   // margin kept clear above and below the gap range
	SpawnInterval float64 `yaml:"spawn_interval"` // seconds between spawns
}

// PopulationConfig holds generation sizing.
type PopulationConfig struct {
	Size  int `yaml:"size"`
	Elite int `yaml:"elite"`
}

// MutationConfig holds weight mutation parameters.
type MutationConfig struct {
	Chance float64 `yaml:"chance"`
	Factor float64 `yaml:"factor"`
}

// ControlConfig selects who flies and how fast time runs.
type ControlConfig struct {
	Mode     string  `yaml:"mode"`      // evolve or human
	Speed    float64 `yaml:"speed"`     // initial simulation speed multiplier
	MaxSpeed float64 `yaml:"max_speed"` // slider upper bound
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int `yaml:"perf_collector_window"`
	PerfLogInterval     int `yaml:"perf_log_interval"` // sub-steps between perf flushes

	BookmarkHistory    int     `yaml:"bookmark_history"`    // generations in the rolling window
	MasteryFitness     float64 `yaml:"mastery_fitness"`     // seconds survived that count as mastery
	PlateauGenerations int     `yaml:"plateau_generations"` // generations without a new best
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxStep     float64 // 1 / Physics.StepsPerSecond
	WorldWidth  float64 // effective play area width
	WorldHeight float64 // effective play area height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c *Config) Validate() error {
	switch {
	case c.Physics.StepsPerSecond <= 0:
		return fmt.Errorf("physics.steps_per_second must be positive, got %d", c.Physics.StepsPerSecond)
	case c.Population.Size <= 0:
		return fmt.Errorf("population.size must be positive, got %d", c.Population.Size)
	case c.Population.Elite <= 0 || c.Population.Elite > c.Population.Size:
		return fmt.Errorf("population.elite must be in [1, %d], got %d", c.Population.Size, c.Population.Elite)
	case c.Obstacle.SpawnInterval <= 0:
		return fmt.Errorf("obstacle.spawn_interval must be positive, got %v", c.Obstacle.SpawnInterval)
	case c.Control.Speed < 1 || c.Control.MaxSpeed < c.Control.Speed:
		return fmt.Errorf("control.speed must be in [1, control.max_speed], got %v (max %v)", c.Control.Speed, c.Control.MaxSpeed)
	case c.Control.Mode != ModeEvolve && c.Control.Mode != ModeHuman:
		return fmt.Errorf("control.mode must be %q or %q, got %q", ModeEvolve, ModeHuman, c.Control.Mode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxStep = 1.0 / float64(c.Physics.StepsPerSecond)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldWidth = float64(worldW)
	c.Derived.WorldHeight = float64(worldH)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
