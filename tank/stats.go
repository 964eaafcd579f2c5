package tank

import (
	"fmt"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/telemetry"
)

// CreatureStats is one row of the stats panel.
type CreatureStats struct {
	Glyph     string
	Name      string
	Species   components.Species
	Age       int // whole seconds
	Status    string
	Offspring int
	Rarity    string
	Sex       string
	Gender    string // empty for species without pronoun classes
}

// Stats returns a stats row for every live creature in list order.
func (w *World) Stats() []CreatureStats {
	now := w.now()
	fullAt := w.cfg.Creature.FullAtFoodCount

	out := make([]CreatureStats, 0, len(w.creatures))
	for _, e := range w.Creatures() {
		_, c, v := w.Get(e)

		status := "Full"
		if !v.Full(fullAt) {
			status = fmt.Sprintf("%d food until full", fullAt-v.CurrentFoodCount)
		}
		rarity := ""
		if c.Rare {
			rarity = "Rare!"
		}

		out = append(out, CreatureStats{
			Glyph:     c.Glyph,
			Name:      c.Name,
			Species:   c.Species,
			Age:       v.Age(now),
			Status:    status,
			Offspring: v.OffspringCount,
			Rarity:    rarity,
			Sex:       c.Sex.String(),
			Gender:    c.Gender,
		})
	}
	return out
}

// Sample collects the population figures telemetry summarizes per window.
func (w *World) Sample() telemetry.PopulationSample {
	now := w.now()
	sample := telemetry.PopulationSample{Food: len(w.Food())}

	for _, e := range w.Creatures() {
		_, _, v := w.Get(e)
		sample.Creatures++
		if h := w.Hunter(e); h != nil {
			sample.Predators++
			sample.Hunger = append(sample.Hunger, float64(h.Hunger))
			continue
		}
		sample.Ages = append(sample.Ages, now-v.BirthTime)
		sample.Fullness = append(sample.Fullness, float64(v.CurrentFoodCount))
	}
	return sample
}
