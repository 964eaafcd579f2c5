package tank

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/telemetry"
)

// TogglePause flips the pause flag and logs the change.
func (w *World) TogglePause() {
	w.paused = !w.paused
	state := "Resumed"
	if w.paused {
		state = "Paused"
	}
	w.logActivity(fmt.Sprintf("⏸ %s the simulation.", state))
}

// spawnPool returns the species manual spawns may pick from.
func (w *World) spawnPool() []components.Species {
	var pool []components.Species
	for _, tag := range w.cfg.Population.SpawnSpecies {
		s, ok := components.SpeciesByTag(tag)
		if !ok || s.IsPredator() {
			slog.Warn("ignoring spawn species", "species", tag)
			continue
		}
		pool = append(pool, s)
	}
	if len(pool) == 0 {
		pool = components.GrazerSpecies()
	}
	return pool
}

// Spawn adds one non-predator creature at a random interior cell.
func (w *World) Spawn() ecs.Entity {
	pool := w.spawnPool()
	s := pool[w.rng.Intn(len(pool))]

	e := w.spawn(spawnSpec{
		species: s,
		name:    w.randomName(s),
		pos:     w.randomInterior(),
		born:    w.now(),
	})
	c := w.creatureMap.Get(e)
	w.collector.Record(telemetry.EventSpawn)
	w.logActivity(fmt.Sprintf("✨ Spawned a new %s %s!", c.Glyph, c.Name))
	return e
}

// Cull removes one random non-predator creature from a species that has
// more than the configured floor. It reports whether anything was removed.
func (w *World) Cull() bool {
	counts := w.SpeciesCounts()

	var candidates []ecs.Entity
	for _, e := range w.creatures {
		c := w.creatureMap.Get(e)
		if c.Removed || c.Species.IsPredator() {
			continue
		}
		if counts[c.Species] > w.cfg.Population.CullFloor {
			candidates = append(candidates, e)
		}
	}

	if len(candidates) == 0 {
		w.logActivity("⚠️ Cannot remove any more creatures without causing extinction!")
		slog.Warn("cull refused", "floor", w.cfg.Population.CullFloor, "population", w.Population())
		return false
	}

	victim := candidates[w.rng.Intn(len(candidates))]
	c := w.creatureMap.Get(victim)
	msg := fmt.Sprintf("💀 %s %s was removed from the tank.", c.Glyph, c.Name)
	c.Removed = true
	w.compactCreatures()

	w.collector.Record(telemetry.EventCull)
	w.logActivity(msg)
	return true
}

// DropFood drops one food item just below the surface, somewhere in the
// middle third of the tank.
func (w *World) DropFood() ecs.Entity {
	lo := w.bounds.Width / 3
	hi := w.bounds.Width * 2 / 3
	x := lo + w.rng.Intn(hi-lo+1)

	pos := w.bounds.ClampInterior(components.Position{X: x, Y: 1})
	e := w.insertFood(pos, components.Food{Created: w.now()})
	w.collector.Record(telemetry.EventFoodDropped)
	return e
}

// Populate stocks the tank with a random initial population drawn from the
// configured ranges. Species are added in table order so runs with the
// same seed match.
func (w *World) Populate() {
	born := w.now()

	tags := make([]string, 0, len(w.cfg.Population.Initial))
	for tag := range w.cfg.Population.Initial {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return speciesOrder(tags[i]) < speciesOrder(tags[j]) })

	for _, tag := range tags {
		s, ok := components.SpeciesByTag(tag)
		if !ok {
			slog.Warn("unknown species in initial population", "species", tag)
			continue
		}
		r := w.cfg.Population.Initial[tag]
		n := r.Min + w.rng.Intn(r.Max-r.Min+1)
		for i := 0; i < n; i++ {
			w.spawn(spawnSpec{
				species:   s,
				name:      w.randomName(s),
				pos:       w.randomInterior(),
				allowRare: true,
				born:      born,
			})
		}
	}

	w.logActivity("🌱 New tank populated with random creatures, including a predator!")
	slog.Info("tank populated", "creatures", w.Population())
}

// speciesOrder sorts known tags in table order and unknown tags last by name.
func speciesOrder(tag string) string {
	if s, ok := components.SpeciesByTag(tag); ok {
		return fmt.Sprintf("0%03d", int(s))
	}
	return "1" + tag
}
