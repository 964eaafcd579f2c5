package tank

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/persistence"
)

// Snapshot captures the persisted view of the tank.
func (w *World) Snapshot() *persistence.State {
	st := &persistence.State{
		Width:       w.bounds.Width,
		Height:      w.bounds.Height,
		Creatures:   []persistence.CreatureRecord{},
		Cookies:     []persistence.FoodRecord{},
		ActivityLog: w.ActivityLog(),
	}

	for _, e := range w.Creatures() {
		pos, c, v := w.Get(e)
		rec := persistence.CreatureRecord{
			Type:                       c.Species.String(),
			Name:                       c.Name,
			X:                          pos.X,
			Y:                          pos.Y,
			Emoji:                      c.Glyph,
			Width:                      c.Width(),
			Rare:                       c.Rare,
			BirthTime:                  v.BirthTime,
			LastFoodRemoved:            v.LastFoodRemoved,
			CurrentFoodCount:           v.CurrentFoodCount,
			EatenSinceLastReproduction: v.EatenSinceLastReproduction,
			LastReproductionTime:       v.LastReproductionTime,
			OffspringCount:             v.OffspringCount,
			ID:                         c.ID.String(),
			Sex:                        c.Sex.String(),
			Gender:                     c.Gender,
		}
		if h := w.Hunter(e); h != nil {
			rec.Hunger = h.Hunger
			rec.LastKillTime = h.LastKillTime
		}
		st.Creatures = append(st.Creatures, rec)
	}

	for _, e := range w.Food() {
		pos, f := w.FoodAt(e)
		st.Cookies = append(st.Cookies, persistence.FoodRecord{
			Created:    f.Created,
			X:          pos.X,
			Y:          pos.Y,
			EatenCount: f.EatenCount,
		})
	}

	return st
}

// Restore replaces the tank's contents with st. The saved dimensions win
// over the configured ones and creatures are clamped into their glyph band.
// Creatures with unknown species tags are skipped; the number skipped is
// returned.
func (w *World) Restore(st *persistence.State) int {
	w.clear()
	w.bounds = components.Bounds{Width: st.Width, Height: st.Height}

	skipped := 0
	for _, rec := range st.Creatures {
		s, ok := components.SpeciesByTag(rec.Type)
		if !ok {
			slog.Debug("skipping creature with unknown species", "type", rec.Type, "name", rec.Name)
			skipped++
			continue
		}
		c, v := w.newCreatureComponents(spawnSpec{species: s, name: rec.Name, born: rec.BirthTime})

		c.Glyph = rec.Emoji
		c.Rare = rec.Rare
		if id, err := uuid.Parse(rec.ID); err == nil {
			c.ID = id
		}
		if sex, ok := components.ParseSex(rec.Sex); ok && s.Info().FixedSex == components.SexUnknown {
			c.Sex = sex
		}
		if rec.Gender != "" && s.Info().Pronouns {
			c.Gender = rec.Gender
		}

		v = components.Vitals{
			BirthTime:                  rec.BirthTime,
			LastFoodRemoved:            rec.LastFoodRemoved,
			CurrentFoodCount:           rec.CurrentFoodCount,
			EatenSinceLastReproduction: rec.EatenSinceLastReproduction,
			LastReproductionTime:       rec.LastReproductionTime,
			OffspringCount:             rec.OffspringCount,
		}

		e := w.insertCreature(components.Position{X: rec.X, Y: rec.Y}, c, v)
		if h := w.Hunter(e); h != nil {
			h.Hunger = rec.Hunger
			h.LastKillTime = rec.LastKillTime
		}
	}

	for _, rec := range st.Cookies {
		pos := w.bounds.ClampInterior(components.Position{X: rec.X, Y: rec.Y})
		w.insertFood(pos, components.Food{Created: rec.Created, EatenCount: rec.EatenCount})
	}

	w.log = nil
	logs := st.ActivityLog
	if over := len(logs) - w.cfg.Tank.LogSize; over > 0 {
		logs = logs[over:]
	}
	for _, msg := range logs {
		w.logActivity(msg)
	}

	if skipped > 0 {
		slog.Warn("skipped creatures with unknown species", "count", skipped)
	}
	return skipped
}

// clear removes every creature and food item.
func (w *World) clear() {
	for _, e := range w.creatures {
		w.world.RemoveEntity(e)
	}
	for _, e := range w.food {
		w.world.RemoveEntity(e)
	}
	w.creatures = nil
	w.food = nil
}

// Save writes the tank to path; the extension picks JSON, msgpack or a
// bbolt database.
func (w *World) Save(path string) error {
	if err := persistence.SaveFile(path, w.Snapshot()); err != nil {
		return err
	}
	slog.Info("tank state saved", "path", path, "creatures", w.Population())
	return nil
}

// Load restores the tank from path. A missing file is reported as an error
// satisfying errors.Is(err, fs.ErrNotExist) and leaves the tank untouched.
func (w *World) Load(path string) error {
	st, err := persistence.LoadFile(path)
	if err != nil {
		return err
	}
	skipped := w.Restore(st)
	slog.Info("tank state loaded", "path", path, "creatures", w.Population(), "skipped", skipped)
	return nil
}
