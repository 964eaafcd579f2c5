package tank

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
)

// spawnSpec describes a creature to create.
type spawnSpec struct {
	species   components.Species
	name      string
	pos       components.Position
	allowRare bool
	born      float64
}

// newCreatureComponents builds the shared components of a fresh creature.
// It panics on a species that cannot be instantiated.
func (w *World) newCreatureComponents(spec spawnSpec) (components.Creature, components.Vitals) {
	if !spec.species.Concrete() {
		panic(fmt.Sprintf("tank: cannot create a creature of species %d", spec.species))
	}
	info := spec.species.Info()

	c := components.Creature{
		ID:      uuid.New(),
		Name:    spec.name,
		Species: spec.species,
		Glyph:   info.Glyphs[w.rng.Intn(len(info.Glyphs))],
	}

	chance := w.cfg.Creature.RarityChance
	if info.RarityChance > 0 {
		chance = info.RarityChance
	}
	if spec.allowRare && info.AllowRare && len(info.RareGlyphs) > 0 && w.rng.Float64() < chance {
		c.Rare = true
		c.Glyph = info.RareGlyphs[w.rng.Intn(len(info.RareGlyphs))]
	}

	c.Sex = info.FixedSex
	if c.Sex == components.SexUnknown {
		c.Sex = components.SexMale
		if w.rng.Intn(2) == 0 {
			c.Sex = components.SexFemale
		}
	}
	if info.Pronouns {
		c.Gender = c.Sex.String()
		if w.rng.Intn(2) == 0 {
			c.Gender = components.GenderNeutral
		}
	}

	v := components.Vitals{
		BirthTime:       spec.born,
		LastFoodRemoved: spec.born,
	}
	return c, v
}

// insertCreature stores a creature with the archetype its species needs and
// appends it to the iteration order. The position is clamped into the band
// the glyph may occupy and bottom walkers are pinned to the floor.
func (w *World) insertCreature(pos components.Position, c components.Creature, v components.Vitals) ecs.Entity {
	info := c.Species.Info()
	pos = w.bounds.Clamp(pos, c.Width())
	if info.Movement == components.MoveBottom {
		pos.Y = w.bounds.Bottom()
	}

	var e ecs.Entity
	switch info.Movement {
	case components.MoveHunt:
		e = w.hunterMapper.NewEntity(&pos, &c, &v, &components.Hunter{})
	case components.MovePatrol:
		e = w.patrolMapper.NewEntity(&pos, &c, &v, &components.Patrol{})
	default:
		e = w.grazerMapper.NewEntity(&pos, &c, &v)
	}
	w.creatures = append(w.creatures, e)
	return e
}

func (w *World) spawn(spec spawnSpec) ecs.Entity {
	c, v := w.newCreatureComponents(spec)
	return w.insertCreature(spec.pos, c, v)
}

// Add creates a non-rare creature at pos, born now.
func (w *World) Add(species components.Species, name string, pos components.Position) ecs.Entity {
	return w.spawn(spawnSpec{species: species, name: name, pos: pos, born: w.now()})
}

// AddFood drops a food item at pos, created now.
func (w *World) AddFood(pos components.Position) ecs.Entity {
	return w.insertFood(w.bounds.ClampInterior(pos), components.Food{Created: w.now()})
}

func (w *World) insertFood(pos components.Position, f components.Food) ecs.Entity {
	e := w.foodMapper.NewEntity(&pos, &f)
	w.food = append(w.food, e)
	return e
}

// randomName returns a species-prefixed name with a three digit suffix.
func (w *World) randomName(s components.Species) string {
	return fmt.Sprintf("%s_%d", s, 100+w.rng.Intn(900))
}

// randomInterior returns a uniformly random interior cell.
func (w *World) randomInterior() components.Position {
	return components.Position{
		X: 1 + w.rng.Intn(w.bounds.Width-2),
		Y: 1 + w.rng.Intn(w.bounds.Height-2),
	}
}
