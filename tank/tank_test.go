package tank

import (
	"strings"
	"testing"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/telemetry"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) Seconds() float64        { return float64(c.t.UnixNano()) / float64(time.Second) }

func newClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func pos(x, y int) components.Position { return components.Position{X: x, Y: y} }

func testConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.Tank.Width = width
	cfg.Tank.Height = height
	return cfg
}

func newTestWorld(t *testing.T, width, height int) (*World, *fakeClock) {
	t.Helper()
	clock := newClock()
	w := New(testConfig(width, height), Options{Seed: 42, Clock: clock.Now, Collector: telemetry.NewCollector(100)})
	return w, clock
}

// mayOverlap reports whether a creature's own move can end on an occupied
// cell: nudges and patrol steps ignore occupancy and predators close in on
// their prey.
func mayOverlap(c *components.Creature) bool {
	info := c.Species.Info()
	return len(info.Nudges) > 0 || info.Movement == components.MovePatrol || info.IsPredator()
}

// checkOverlaps fails when a cell shared by several creatures was entered by
// a mover whose rule respects occupancy and nobody there may overlap.
// Creatures missing from before were born this tick and may share a cell.
func checkOverlaps(t *testing.T, w *World, tick int, before map[ecs.Entity]components.Position) {
	t.Helper()
	cells := make(map[components.Position][]ecs.Entity)
	for _, e := range w.Creatures() {
		p, _, _ := w.Get(e)
		cells[*p] = append(cells[*p], e)
	}
	for cell, ents := range cells {
		if len(ents) < 2 {
			continue
		}
		exempt, moved := false, false
		var names []string
		for _, e := range ents {
			_, c, _ := w.Get(e)
			names = append(names, c.Name)
			prev, existed := before[e]
			if !existed || mayOverlap(c) {
				exempt = true
			}
			if existed && prev != cell {
				moved = true
			}
		}
		if moved && !exempt {
			t.Fatalf("tick %d: %v moved into a shared cell %v", tick, names, cell)
		}
	}
}

func TestStepKeepsInvariants(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	w.Populate()

	b := w.Bounds()
	for tick := 0; tick < 300; tick++ {
		if tick%7 == 0 {
			w.DropFood()
		}
		before := make(map[ecs.Entity]components.Position)
		for _, e := range w.Creatures() {
			p, _, _ := w.Get(e)
			before[e] = *p
		}
		w.Step()
		clock.Advance(300 * time.Millisecond)
		checkOverlaps(t, w, tick, before)

		for _, e := range w.Creatures() {
			p, c, v := w.Get(e)
			if p.X < 0 || p.X >= b.Width || p.Y < 0 || p.Y >= b.Height {
				t.Fatalf("tick %d: %s outside tank at %v", tick, c.Name, *p)
			}
			if p.X < 1 || p.Y < 1 || p.Y > b.Bottom() || p.X > b.Width-2 {
				t.Fatalf("tick %d: %s outside interior at %v", tick, c.Name, *p)
			}
			if c.Species.Info().Movement == components.MoveBottom && p.Y != b.Bottom() {
				t.Fatalf("tick %d: crab %s left the bottom at %v", tick, c.Name, *p)
			}
			if v.CurrentFoodCount < 0 || v.CurrentFoodCount > w.cfg.Creature.FullAtFoodCount ||
				v.EatenSinceLastReproduction < 0 || v.OffspringCount < 0 {
				t.Fatalf("tick %d: %s has bad counters %+v", tick, c.Name, *v)
			}
		}
		for _, e := range w.Food() {
			p, _ := w.FoodAt(e)
			if !b.Interior(*p) {
				t.Fatalf("tick %d: food outside interior at %v", tick, *p)
			}
		}
		if n := len(w.ActivityLog()); n > 3 {
			t.Fatalf("tick %d: activity log has %d entries", tick, n)
		}
	}
	if w.Tick() != 300 {
		t.Errorf("tick = %d, want 300", w.Tick())
	}
}

func TestFoodSinksAndExpires(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	w.AddFood(pos(10, 1))

	w.Step()
	p, _ := w.FoodAt(w.Food()[0])
	if p.Y != 2 {
		t.Errorf("food y = %d after one tick, want 2", p.Y)
	}

	clock.Advance(4900 * time.Millisecond)
	w.Step()
	if len(w.Food()) != 1 {
		t.Fatal("food expired before max life")
	}

	clock.Advance(100 * time.Millisecond)
	w.Step()
	if len(w.Food()) != 0 {
		t.Error("food at max life survived the next update")
	}
}

// A crab parked under food eats from it every tick until it is used up.
func TestFoodRemovedOnFifthTouch(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	bottom := w.Bounds().Bottom()
	crab := w.Add(components.SpeciesCrab, "Pinchy", pos(5, bottom))
	food := w.AddFood(pos(5, bottom))

	for i := 1; i <= 4; i++ {
		w.Step()
		if len(w.Food()) != 1 {
			t.Fatalf("food gone after %d touches", i)
		}
		if _, f := w.FoodAt(food); f.EatenCount != i {
			t.Fatalf("eaten count = %d, want %d", f.EatenCount, i)
		}
	}

	w.Step()
	if len(w.Food()) != 0 {
		t.Error("food survived its fifth touch")
	}

	_, _, v := w.Get(crab)
	if v.CurrentFoodCount != 5 || v.EatenSinceLastReproduction != 5 {
		t.Errorf("crab vitals = %+v", *v)
	}
	if log := w.ActivityLog(); len(log) == 0 || !strings.Contains(log[len(log)-1], "Pinchy ate food!") {
		t.Errorf("activity log = %q", log)
	}
}

func TestFullnessDecays(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	e := w.Add(components.SpeciesCrab, "Pinchy", pos(5, 8))
	_, _, v := w.Get(e)
	v.CurrentFoodCount = 2

	clock.Advance(20 * time.Second)
	w.Step()
	if _, _, v := w.Get(e); v.CurrentFoodCount != 2 {
		t.Errorf("fullness decayed at exactly the interval: %d", v.CurrentFoodCount)
	}

	clock.Advance(time.Second)
	w.Step()
	if _, _, v := w.Get(e); v.CurrentFoodCount != 1 {
		t.Errorf("fullness = %d, want 1", v.CurrentFoodCount)
	}
}

// Two eligible crabs boxed in by idle sharks: the child lands exactly on
// the midpoint and the pair breeds only once in the tick.
func TestOffspringAtMidpointWhenBlocked(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	y := w.Bounds().Bottom()

	a := w.Add(components.SpeciesCrab, "Pinchy", pos(4, y))
	b := w.Add(components.SpeciesCrab, "Snappy", pos(6, y))
	for _, p := range []components.Position{pos(3, y), pos(5, y), pos(7, y), pos(4, y-1), pos(5, y-1), pos(6, y-1)} {
		w.Add(components.SpeciesShark, "Wall", p)
	}
	for _, e := range w.Creatures()[:2] {
		_, _, v := w.Get(e)
		v.EatenSinceLastReproduction = 3
	}

	before := w.Population()
	w.Step()

	if got := w.Population(); got != before+1 {
		t.Fatalf("population = %d, want %d", got, before+1)
	}
	all := w.Creatures()
	child := all[len(all)-1]
	p, c, _ := w.Get(child)
	if *p != pos(5, y) {
		t.Errorf("child at %v, want midpoint (5,%d)", *p, y)
	}
	if c.Name != "Pinchy_Jr" || c.Species != components.SpeciesCrab || c.Rare {
		t.Errorf("child = %+v", *c)
	}

	_, _, va := w.Get(a)
	_, _, vb := w.Get(b)
	if va.EatenSinceLastReproduction != 0 || vb.EatenSinceLastReproduction != 0 {
		t.Error("parents' meal counters not reset")
	}
	if va.OffspringCount != 1 || vb.OffspringCount != 1 {
		t.Errorf("offspring counts = %d, %d; want 1, 1", va.OffspringCount, vb.OffspringCount)
	}
	if log := w.ActivityLog(); !strings.Contains(log[len(log)-1], "Pinchy had a baby: Pinchy_Jr!") {
		t.Errorf("activity log = %q", log)
	}
}

func TestNoReproductionBelowThreshold(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	y := w.Bounds().Bottom()
	w.Add(components.SpeciesCrab, "Pinchy", pos(4, y))
	w.Add(components.SpeciesCrab, "Snappy", pos(6, y))
	_, _, v := w.Get(w.Creatures()[0])
	v.EatenSinceLastReproduction = 2

	w.Step()
	if w.Population() != 2 {
		t.Errorf("population = %d, want 2", w.Population())
	}
}

func TestPredatorIdleAtMinPopulation(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	shark := w.Add(components.SpeciesShark, "Bruce", pos(5, 5))
	w.Add(components.SpeciesFish, "Nemo", pos(6, 5))
	for i := 0; i < 8; i++ {
		w.Add(components.SpeciesCrab, "Crab", pos(1+2*i, 8))
	}
	if w.Population() != w.cfg.Predator.MinPopulation {
		t.Fatalf("population = %d, want %d", w.Population(), w.cfg.Predator.MinPopulation)
	}

	w.Step()

	p, _, _ := w.Get(shark)
	if *p != pos(5, 5) {
		t.Errorf("idle shark moved to %v", *p)
	}
	if h := w.Hunter(shark); h.Hunger != 0 || h.LastKillTime != 0 {
		t.Errorf("idle shark state changed: %+v", *h)
	}
	if w.Population() != 10 {
		t.Errorf("population = %d, want 10", w.Population())
	}
}

func TestPredatorKills(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	shark := w.Add(components.SpeciesShark, "Bruce", pos(5, 4))
	w.Add(components.SpeciesFish, "Nemo", pos(6, 4))
	for i := 0; i < 9; i++ {
		w.Add(components.SpeciesCrab, "Crab", pos(1+2*i, 8))
	}

	w.Step()

	if w.Population() != 10 {
		t.Fatalf("population = %d, want 10 after kill", w.Population())
	}
	for _, e := range w.Creatures() {
		if _, c, _ := w.Get(e); c.Name == "Nemo" {
			t.Fatal("prey survived")
		}
	}
	h := w.Hunter(shark)
	if h.Hunger != 1 || h.LastKillTime != clock.Seconds() {
		t.Errorf("hunter = %+v", *h)
	}
	if log := w.ActivityLog(); !strings.Contains(log[len(log)-1], "Bruce ate Nemo!") {
		t.Errorf("activity log = %q", log)
	}
}

// Equidistant prey: the earlier creature in list order is chased.
func TestPredatorTieBreakUsesListOrder(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	shark := w.Add(components.SpeciesShark, "Bruce", pos(5, 4))
	w.Add(components.SpeciesCrab, "First", pos(5, 8))
	w.Add(components.SpeciesCrab, "Second", pos(9, 4))
	for i := 0; i < 9; i++ {
		w.Add(components.SpeciesCrab, "Crab", pos(7+i, 8))
	}

	// Hunt directly so prey movement cannot change the distances.
	w.updatePredator(shark, w.now(), w.Population())

	p, _, _ := w.Get(shark)
	if *p != pos(5, 5) {
		t.Errorf("shark moved to %v, want (5,5) toward the first prey", *p)
	}
}

func TestCullRespectsFloor(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	for i := 0; i < 3; i++ {
		w.Add(components.SpeciesFish, "Fish", pos(2+i, 2))
	}
	w.Add(components.SpeciesCrab, "Crab", pos(2, 8))
	w.Add(components.SpeciesCrab, "Crab", pos(4, 8))
	w.Add(components.SpeciesShark, "Bruce", pos(10, 5))

	if !w.Cull() {
		t.Fatal("first cull refused")
	}
	counts := w.SpeciesCounts()
	if counts[components.SpeciesFish] != 2 || counts[components.SpeciesCrab] != 2 || counts[components.SpeciesShark] != 1 {
		t.Fatalf("counts after cull = %v", counts)
	}
	if log := w.ActivityLog(); !strings.Contains(log[len(log)-1], "was removed from the tank.") {
		t.Errorf("activity log = %q", log)
	}

	if w.Cull() {
		t.Fatal("cull went below the floor")
	}
	if w.Population() != 5 {
		t.Errorf("population = %d, want 5", w.Population())
	}
	if log := w.ActivityLog(); log[len(log)-1] != "⚠️ Cannot remove any more creatures without causing extinction!" {
		t.Errorf("activity log = %q", log)
	}
}

func TestSpawnAddsGrazer(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	for i := 0; i < 50; i++ {
		e := w.Spawn()
		p, c, _ := w.Get(e)
		if c.Species.IsPredator() {
			t.Fatalf("spawned a predator: %+v", *c)
		}
		if !w.Bounds().Interior(*p) {
			t.Fatalf("spawned outside interior at %v", *p)
		}
		if c.Rare {
			t.Fatalf("spawned a rare creature: %+v", *c)
		}
	}
	if w.Population() != 50 {
		t.Errorf("population = %d, want 50", w.Population())
	}
	if log := w.ActivityLog(); !strings.HasPrefix(log[len(log)-1], "✨ Spawned a new ") {
		t.Errorf("activity log = %q", log)
	}
}

func TestSpawnHonorsConfiguredSpecies(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	w.cfg.Population.SpawnSpecies = []string{"Jellyfish", "Shark"}
	for i := 0; i < 20; i++ {
		_, c, _ := w.Get(w.Spawn())
		if c.Species != components.SpeciesJellyfish {
			t.Fatalf("spawned %v, want Jellyfish only", c.Species)
		}
	}
}

func TestDropFood(t *testing.T) {
	w, _ := newTestWorld(t, 73, 30)
	for i := 0; i < 100; i++ {
		p, f := w.FoodAt(w.DropFood())
		if p.Y != 1 || p.X < 73/3 || p.X > 73*2/3 {
			t.Fatalf("food dropped at %v", *p)
		}
		if f.EatenCount != 0 {
			t.Fatalf("new food already eaten: %+v", *f)
		}
	}
}

func TestPauseSkipsTicks(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	w.TogglePause()
	if w.Update() {
		t.Error("Update ran while paused")
	}
	if w.Tick() != 0 {
		t.Errorf("tick = %d, want 0", w.Tick())
	}
	w.TogglePause()
	if !w.Update() || w.Tick() != 1 {
		t.Errorf("Update after resume: tick = %d", w.Tick())
	}

	log := w.ActivityLog()
	if len(log) != 2 || log[0] != "⏸ Paused the simulation." || log[1] != "⏸ Resumed the simulation." {
		t.Errorf("activity log = %q", log)
	}
}

func TestActivityLogKeepsLastThree(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		w.logActivity(msg)
	}
	log := w.ActivityLog()
	if strings.Join(log, ",") != "c,d,e" {
		t.Errorf("activity log = %q", log)
	}
}

func TestPopulateUsesRanges(t *testing.T) {
	w, _ := newTestWorld(t, 73, 30)
	w.Populate()

	counts := w.SpeciesCounts()
	for tag, r := range w.cfg.Population.Initial {
		s, _ := components.SpeciesByTag(tag)
		if n := counts[s]; n < r.Min || n > r.Max {
			t.Errorf("%s count = %d, want [%d,%d]", tag, n, r.Min, r.Max)
		}
	}
	if counts[components.SpeciesShark] != 1 {
		t.Errorf("sharks = %d, want 1", counts[components.SpeciesShark])
	}
	if log := w.ActivityLog(); len(log) != 1 || !strings.HasPrefix(log[0], "🌱 ") {
		t.Errorf("activity log = %q", log)
	}
}

func TestAddPanicsOnAbstractSpecies(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	defer func() {
		if recover() == nil {
			t.Error("expected panic creating SpeciesNone")
		}
	}()
	w.Add(components.SpeciesNone, "ghost", pos(3, 3))
}

func TestStatsRows(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	e := w.Add(components.SpeciesFish, "Nemo", pos(3, 3))
	_, c, v := w.Get(e)
	c.Rare = true
	v.CurrentFoodCount = 2
	v.OffspringCount = 4
	clock.Advance(12500 * time.Millisecond)

	rows := w.Stats()
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	r := rows[0]
	if r.Name != "Nemo" || r.Age != 12 || r.Status != "3 food until full" || r.Offspring != 4 || r.Rarity != "Rare!" {
		t.Errorf("row = %+v", r)
	}
	if r.Sex != "Male" && r.Sex != "Female" {
		t.Errorf("sex = %q", r.Sex)
	}

	v.CurrentFoodCount = 5
	if got := w.Stats()[0].Status; got != "Full" {
		t.Errorf("status = %q, want Full", got)
	}
}

func TestMerfolkPronouns(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	for i := 0; i < 30; i++ {
		_, c, _ := w.Get(w.Add(components.SpeciesMermaid, "Ariel", pos(3, 3)))
		if c.Sex != components.SexFemale {
			t.Fatalf("mermaid sex = %v", c.Sex)
		}
		if c.Gender != "Female" && c.Gender != components.GenderNeutral {
			t.Fatalf("mermaid gender = %q", c.Gender)
		}
	}
	_, fish, _ := w.Get(w.Add(components.SpeciesFish, "Nemo", pos(4, 4)))
	if fish.Gender != "" {
		t.Errorf("fish gender = %q, want empty", fish.Gender)
	}
}

func TestSampleCountsPopulation(t *testing.T) {
	w, clock := newTestWorld(t, 20, 10)
	w.Add(components.SpeciesFish, "Nemo", pos(3, 3))
	crab := w.Add(components.SpeciesCrab, "Pinchy", pos(6, 8))
	shark := w.Add(components.SpeciesShark, "Bruce", pos(10, 4))
	w.AddFood(pos(12, 2))

	_, _, v := w.Get(crab)
	v.CurrentFoodCount = 3
	w.Hunter(shark).Hunger = 2
	clock.Advance(10 * time.Second)

	sample := w.Sample()
	if sample.Creatures != 3 || sample.Predators != 1 || sample.Food != 1 {
		t.Errorf("counts = %d creatures, %d predators, %d food", sample.Creatures, sample.Predators, sample.Food)
	}
	if len(sample.Ages) != 2 || sample.Ages[0] != 10 || sample.Ages[1] != 10 {
		t.Errorf("ages = %v, want two grazers aged 10", sample.Ages)
	}
	if len(sample.Fullness) != 2 || sample.Fullness[1] != 3 {
		t.Errorf("fullness = %v", sample.Fullness)
	}
	if len(sample.Hunger) != 1 || sample.Hunger[0] != 2 {
		t.Errorf("hunger = %v, want [2]", sample.Hunger)
	}
}

func TestAddClampsToGlyphBand(t *testing.T) {
	w, _ := newTestWorld(t, 20, 10)
	b := w.Bounds()

	tests := []struct {
		name    string
		species components.Species
		at      components.Position
	}{
		{"fish at right wall", components.SpeciesFish, pos(18, 3)},
		{"fish beyond the wall", components.SpeciesFish, pos(40, 0)},
		{"crab off the floor", components.SpeciesCrab, pos(18, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c, _ := w.Get(w.Add(tt.species, "Edge", tt.at))
			if p.X > b.MaxX(c.Width()) || p.X < 1 || p.Y < 1 || p.Y > b.Bottom() {
				t.Errorf("placed at %v, outside band with max x %d", *p, b.MaxX(c.Width()))
			}
			if tt.species == components.SpeciesCrab && p.Y != b.Bottom() {
				t.Errorf("crab at y %d, want %d", p.Y, b.Bottom())
			}
		})
	}
}
