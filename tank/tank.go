// Package tank owns the simulated fish tank: its creatures, food, activity
// log and the tick that advances them.
package tank

import (
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Options configures a World beyond its Config.
type Options struct {
	Seed  int64            // RNG seed; 0 picks one from the clock
	Clock func() time.Time // defaults to time.Now

	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
}

// World holds the complete tank state. It is not safe for concurrent use;
// callers serialize ticks and manual operations.
type World struct {
	cfg    *config.Config
	rng    *rand.Rand
	clock  func() time.Time
	world  *ecs.World
	bounds components.Bounds

	// Entity mappers, one per archetype
	grazerMapper *ecs.Map3[components.Position, components.Creature, components.Vitals]
	patrolMapper *ecs.Map4[components.Position, components.Creature, components.Vitals, components.Patrol]
	hunterMapper *ecs.Map4[components.Position, components.Creature, components.Vitals, components.Hunter]
	foodMapper   *ecs.Map2[components.Position, components.Food]

	creatureFilter *ecs.Filter2[components.Creature, components.Vitals]

	// Individual component mappers for lookups
	posMap      *ecs.Map[components.Position]
	creatureMap *ecs.Map[components.Creature]
	vitalsMap   *ecs.Map[components.Vitals]
	patrolMap   *ecs.Map[components.Patrol]
	hunterMap   *ecs.Map[components.Hunter]
	foodMap     *ecs.Map[components.Food]

	// Iteration order: insertion order, kept across compaction
	creatures []ecs.Entity
	food      []ecs.Entity

	log    []string
	paused bool
	tick   int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
}

// New creates an empty tank sized by cfg.
func New(cfg *config.Config, opts Options) *World {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = clock().UnixNano()
	}

	world := ecs.NewWorld()

	return &World{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		clock:  clock,
		world:  world,
		bounds: components.Bounds{Width: cfg.Tank.Width, Height: cfg.Tank.Height},

		grazerMapper: ecs.NewMap3[components.Position, components.Creature, components.Vitals](world),
		patrolMapper: ecs.NewMap4[components.Position, components.Creature, components.Vitals, components.Patrol](world),
		hunterMapper: ecs.NewMap4[components.Position, components.Creature, components.Vitals, components.Hunter](world),
		foodMapper:   ecs.NewMap2[components.Position, components.Food](world),

		creatureFilter: ecs.NewFilter2[components.Creature, components.Vitals](world),

		posMap:      ecs.NewMap[components.Position](world),
		creatureMap: ecs.NewMap[components.Creature](world),
		vitalsMap:   ecs.NewMap[components.Vitals](world),
		patrolMap:   ecs.NewMap[components.Patrol](world),
		hunterMap:   ecs.NewMap[components.Hunter](world),
		foodMap:     ecs.NewMap[components.Food](world),

		collector: opts.Collector,
		perf:      opts.Perf,
	}
}

// now returns the clock as unix seconds.
func (w *World) now() float64 {
	return float64(w.clock().UnixNano()) / float64(time.Second)
}

// Bounds returns the tank's outer dimensions.
func (w *World) Bounds() components.Bounds {
	return w.bounds
}

// Tick returns the number of completed simulation steps.
func (w *World) Tick() int {
	return w.tick
}

// Paused reports whether Update currently skips ticks.
func (w *World) Paused() bool {
	return w.paused
}

// Config returns the configuration the tank was built with.
func (w *World) Config() *config.Config {
	return w.cfg
}

// logActivity appends to the activity log, evicting the oldest entries.
func (w *World) logActivity(msg string) {
	w.log = append(w.log, msg)
	if over := len(w.log) - w.cfg.Tank.LogSize; over > 0 {
		w.log = append(w.log[:0], w.log[over:]...)
	}
}

// ActivityLog returns a copy of the recent activity, oldest first.
func (w *World) ActivityLog() []string {
	out := make([]string, len(w.log))
	copy(out, w.log)
	return out
}

// Creatures returns the live creatures in iteration order.
func (w *World) Creatures() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(w.creatures))
	for _, e := range w.creatures {
		if !w.creatureMap.Get(e).Removed {
			out = append(out, e)
		}
	}
	return out
}

// Food returns the live food items in iteration order.
func (w *World) Food() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(w.food))
	for _, e := range w.food {
		if !w.foodMap.Get(e).Removed {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the shared components of a creature.
func (w *World) Get(e ecs.Entity) (*components.Position, *components.Creature, *components.Vitals) {
	return w.posMap.Get(e), w.creatureMap.Get(e), w.vitalsMap.Get(e)
}

// Alive reports whether e is a creature still in the tank.
func (w *World) Alive(e ecs.Entity) bool {
	return w.world.Alive(e) && w.creatureMap.Has(e) && !w.creatureMap.Get(e).Removed
}

// Hunter returns the predator state of e, or nil for grazers.
func (w *World) Hunter(e ecs.Entity) *components.Hunter {
	if !w.hunterMap.Has(e) {
		return nil
	}
	return w.hunterMap.Get(e)
}

// FoodAt returns the components of a food item.
func (w *World) FoodAt(e ecs.Entity) (*components.Position, *components.Food) {
	return w.posMap.Get(e), w.foodMap.Get(e)
}

// Population returns the number of live creatures.
func (w *World) Population() int {
	n := 0
	for _, e := range w.creatures {
		if !w.creatureMap.Get(e).Removed {
			n++
		}
	}
	return n
}

// SpeciesCounts tallies live creatures per species.
func (w *World) SpeciesCounts() map[components.Species]int {
	counts := make(map[components.Species]int)
	query := w.creatureFilter.Query()
	for query.Next() {
		c, _ := query.Get()
		if !c.Removed {
			counts[c.Species]++
		}
	}
	return counts
}
