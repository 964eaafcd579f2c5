package tank

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/systems"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Update advances the tank by one tick unless it is paused.
// It reports whether a tick ran.
func (w *World) Update() bool {
	if w.paused {
		return false
	}
	w.Step()
	return true
}

// Step runs one tick regardless of the pause flag: food, then creatures in
// list order, then compaction, then one reproduction scan.
func (w *World) Step() {
	now := w.now()

	w.perf.StartTick()

	w.perf.StartPhase(telemetry.PhaseFood)
	w.updateFood(now)
	w.compactFood()

	w.perf.StartPhase(telemetry.PhaseCreatures)
	w.updateCreatures(now)

	w.perf.StartPhase(telemetry.PhaseCleanup)
	w.compactCreatures()
	w.compactFood()

	w.perf.StartPhase(telemetry.PhaseReproduction)
	w.resolveReproduction(now)

	w.perf.EndTick()
	w.tick++
}

// updateFood sinks every food item and marks the dissolved ones.
func (w *World) updateFood(now float64) {
	for _, e := range w.food {
		pos, f := w.posMap.Get(e), w.foodMap.Get(e)
		if f.Removed {
			continue
		}
		systems.SinkFood(pos, w.bounds)
		if systems.FoodExpired(f, now, w.cfg.Food.MaxLife) {
			f.Removed = true
			w.collector.Record(telemetry.EventFoodExpired)
		}
	}
}

// updateCreatures moves, feeds and ages every creature in list order.
// Removals are only marked here; compaction happens after the pass.
func (w *World) updateCreatures(now float64) {
	alive := w.Population()
	n := len(w.creatures)
	for i := 0; i < n; i++ {
		e := w.creatures[i]
		if w.creatureMap.Get(e).Removed {
			continue
		}
		if w.hunterMap.Has(e) {
			if w.updatePredator(e, now, alive) {
				alive--
			}
			continue
		}
		w.updateGrazer(e, now)
	}
}

// occupancy snapshots every live creature cell.
func (w *World) occupancy() systems.Occupancy {
	occ := make(systems.Occupancy, len(w.creatures))
	for _, e := range w.creatures {
		if !w.creatureMap.Get(e).Removed {
			occ.Add(*w.posMap.Get(e))
		}
	}
	return occ
}

// liveFood returns the live food entities and their cells in list order.
func (w *World) liveFood() ([]ecs.Entity, []components.Position) {
	var ents []ecs.Entity
	var cells []components.Position
	for _, e := range w.food {
		if w.foodMap.Get(e).Removed {
			continue
		}
		ents = append(ents, e)
		cells = append(cells, *w.posMap.Get(e))
	}
	return ents, cells
}

func (w *World) updateGrazer(e ecs.Entity, now float64) {
	pos, c, v := w.Get(e)
	fullAt := w.cfg.Creature.FullAtFoodCount

	in := systems.MoveInput{
		Bounds: w.bounds,
		Occ:    w.occupancy(),
		Full:   v.Full(fullAt),
	}
	_, foodCells := w.liveFood()
	if idx := systems.ClosestFood(*pos, foodCells); idx >= 0 {
		in.Target = &foodCells[idx]
	}

	var patrol *components.Patrol
	if w.patrolMap.Has(e) {
		patrol = w.patrolMap.Get(e)
	}
	*pos = systems.Move(*pos, c, patrol, in, w.rng)

	systems.DecayFullness(v, now, w.cfg.Creature.RemoveFoodEvery)

	// The food target is re-evaluated from the new cell.
	foodEnts, foodCells := w.liveFood()
	idx := systems.ClosestFood(*pos, foodCells)
	if idx < 0 || foodCells[idx] != *pos {
		return
	}

	systems.Eat(v, fullAt)
	w.collector.Record(telemetry.EventMeal)
	w.logActivity(fmt.Sprintf("%s %s ate food!", c.Glyph, c.Name))

	if systems.TouchFood(w.foodMap.Get(foodEnts[idx]), w.cfg.Food.MaxTouches) {
		w.collector.Record(telemetry.EventFoodConsumed)
	}
}

// updatePredator runs one hunting step and reports whether it killed.
func (w *World) updatePredator(e ecs.Entity, now float64, alive int) bool {
	if !systems.HuntingAllowed(alive, w.cfg.Predator.MinPopulation) {
		return false
	}
	pos, c, _ := w.Get(e)

	var preyEnts []ecs.Entity
	var preyCells []components.Position
	for _, other := range w.creatures {
		oc := w.creatureMap.Get(other)
		if oc.Removed || oc.Species.IsPredator() {
			continue
		}
		preyEnts = append(preyEnts, other)
		preyCells = append(preyCells, *w.posMap.Get(other))
	}
	idx := systems.NearestPrey(*pos, preyCells)
	if idx < 0 {
		*pos = w.bounds.Clamp(*pos, c.Width())
		return false
	}

	*pos = systems.Hunt(*pos, preyCells[idx], w.occupancy(), w.bounds, c.Width())

	if !systems.TryKill(w.hunterMap.Get(e), *pos, preyCells[idx], now, w.cfg.Predator.KillCooldown) {
		return false
	}
	prey := w.creatureMap.Get(preyEnts[idx])
	prey.Removed = true
	w.collector.Record(telemetry.EventKill)
	w.logActivity(fmt.Sprintf("🦈 %s ate %s!", c.Name, prey.Name))
	slog.Debug("kill", "predator", c.Name, "prey", prey.Name, "tick", w.tick)
	return true
}

// compactCreatures drops removed creatures from the world and the list.
// Entities are collected first and removed after, so no query is open.
func (w *World) compactCreatures() {
	kept := w.creatures[:0]
	var dead []ecs.Entity
	for _, e := range w.creatures {
		if w.creatureMap.Get(e).Removed {
			dead = append(dead, e)
			continue
		}
		kept = append(kept, e)
	}
	w.creatures = kept
	for _, e := range dead {
		w.world.RemoveEntity(e)
	}
}

// compactFood drops removed food items from the world and the list.
func (w *World) compactFood() {
	kept := w.food[:0]
	var dead []ecs.Entity
	for _, e := range w.food {
		if w.foodMap.Get(e).Removed {
			dead = append(dead, e)
			continue
		}
		kept = append(kept, e)
	}
	w.food = kept
	for _, e := range dead {
		w.world.RemoveEntity(e)
	}
}

// resolveReproduction pairs up every live creature and appends the
// offspring after the scan.
func (w *World) resolveReproduction(now float64) {
	mates := make([]systems.Mate, 0, len(w.creatures))
	for _, e := range w.creatures {
		pos, c, v := w.Get(e)
		mates = append(mates, systems.Mate{Pos: *pos, Creature: c, Vitals: v})
	}

	rule := systems.ReproductionRule{
		Threshold: w.cfg.Creature.ReproductionThreshold,
		Cooldown:  w.cfg.Creature.ReproductionCooldown,
	}
	births := systems.ResolveReproduction(mates, w.occupancy(), w.bounds, rule, now, w.rng)
	if len(births) == 0 {
		return
	}

	// Component pointers go stale once entities are created, so the
	// messages are built before any child is spawned.
	msgs := make([]string, len(births))
	for i, b := range births {
		parent := mates[b.ParentA].Creature
		msgs[i] = fmt.Sprintf("%s %s had a baby: %s!", parent.Glyph, parent.Name, b.Name)
	}

	for i, b := range births {
		w.spawn(spawnSpec{species: b.Species, name: b.Name, pos: b.Pos, born: now})
		w.collector.Record(telemetry.EventBirth)
		w.logActivity(msgs[i])
	}
}
