// Package config provides configuration loading and access for the tank.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MinTankSize is the smallest width or height a tank may have.
const MinTankSize = 5

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// Config holds all simulation configuration parameters.
type Config struct {
	Tank       TankConfig       `yaml:"tank"`
	Creature   CreatureConfig   `yaml:"creature"`
	Food       FoodConfig       `yaml:"food"`
	Predator   PredatorConfig   `yaml:"predator"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TankConfig holds the tank dimensions and run loop settings.
type TankConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	TickInterval float64 `yaml:"tick_interval"` // seconds between ticks
	SaveFile     string  `yaml:"save_file"`
	LogSize      int     `yaml:"log_size"` // activity log entries kept
}

// CreatureConfig holds the shared aging, feeding and reproduction rules.
type CreatureConfig struct {
	ReproductionThreshold int     `yaml:"reproduction_threshold"` // meals since last birth
	ReproductionCooldown  float64 `yaml:"reproduction_cooldown"`  // seconds between births
	FullAtFoodCount       int     `yaml:"full_at_food_count"`
	RemoveFoodEvery       float64 `yaml:"remove_food_every"` // seconds per fullness point lost
	RarityChance          float64 `yaml:"rarity_chance"`     // default rare promotion chance
}

// FoodConfig holds dropped food parameters.
type FoodConfig struct {
	MaxLife    float64 `yaml:"max_life"`    // seconds before food dissolves
	MaxTouches int     `yaml:"max_touches"` // meals a single food item can serve
}

// PredatorConfig holds hunting parameters.
type PredatorConfig struct {
	KillCooldown  float64 `yaml:"kill_cooldown"`  // seconds between kills
	MinPopulation int     `yaml:"min_population"` // no hunting at or below this population
}

// SpawnRange is an inclusive count range for the initial population.
type SpawnRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// PopulationConfig holds manual population control and initial stocking.
type PopulationConfig struct {
	CullFloor    int                   `yaml:"cull_floor"`    // culling never takes a species below this
	SpawnSpecies []string              `yaml:"spawn_species"` // empty = every non-predator species
	Initial      map[string]SpawnRange `yaml:"initial"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration time.Duration
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

// Validate checks the structural constraints the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case c.Tank.Width < MinTankSize || c.Tank.Height < MinTankSize:
		return fmt.Errorf("%w: tank must be at least %dx%d, got %dx%d",
			ErrInvalid, MinTankSize, MinTankSize, c.Tank.Width, c.Tank.Height)
	case c.Tank.LogSize < 1:
		return fmt.Errorf("%w: tank.log_size must be positive", ErrInvalid)
	case c.Tank.TickInterval <= 0:
		return fmt.Errorf("%w: tank.tick_interval must be positive", ErrInvalid)
	case c.Creature.FullAtFoodCount < 1:
		return fmt.Errorf("%w: creature.full_at_food_count must be positive", ErrInvalid)
	case c.Food.MaxTouches < 1:
		return fmt.Errorf("%w: food.max_touches must be positive", ErrInvalid)
	case c.Population.CullFloor < 0:
		return fmt.Errorf("%w: population.cull_floor must not be negative", ErrInvalid)
	}
	for tag, r := range c.Population.Initial {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%w: population.initial.%s has range [%d,%d]", ErrInvalid, tag, r.Min, r.Max)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickDuration = time.Duration(c.Tank.TickInterval * float64(time.Second))
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
