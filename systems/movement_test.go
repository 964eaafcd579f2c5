package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/fishtank/components"
)

var tank20x10 = components.Bounds{Width: 20, Height: 10}

func pos(x, y int) components.Position { return components.Position{X: x, Y: y} }

func TestBestStep(t *testing.T) {
	tests := []struct {
		name   string
		from   components.Position
		target components.Position
		occ    []components.Position
		want   components.Position
		wantOK bool
	}{
		{"right toward food", pos(5, 5), pos(9, 5), nil, pos(6, 5), true},
		{"left toward food", pos(5, 5), pos(1, 5), nil, pos(4, 5), true},
		{"down toward food", pos(5, 5), pos(5, 8), nil, pos(5, 6), true},
		{"diagonal tie prefers right", pos(5, 5), pos(7, 7), nil, pos(6, 5), true},
		{"diagonal tie prefers left over up", pos(5, 5), pos(3, 3), nil, pos(4, 5), true},
		{"blocked best takes next in priority", pos(5, 5), pos(9, 5), []components.Position{pos(6, 5)}, pos(4, 5), true},
		{"blocked best prefers closer", pos(5, 5), pos(9, 6), []components.Position{pos(6, 5)}, pos(5, 6), true},
		{"fully boxed in", pos(5, 5), pos(9, 5), []components.Position{pos(6, 5), pos(4, 5), pos(5, 6), pos(5, 4)}, pos(5, 5), false},
		{"corner never leaves interior", pos(1, 1), pos(0, 0), nil, pos(2, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := BestStep(tc.from, tc.target, NewOccupancy(tc.occ), tank20x10)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("BestStep = %v, %v; want %v, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRandomStepStaysWhenBoxedIn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	occ := NewOccupancy([]components.Position{pos(6, 5), pos(4, 5), pos(5, 6), pos(5, 4)})
	if got := RandomStep(pos(5, 5), occ, tank20x10, rng); got != pos(5, 5) {
		t.Errorf("RandomStep = %v, want stay at (5,5)", got)
	}
}

func TestRandomStepOnlyFreeNeighbors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	occ := NewOccupancy([]components.Position{pos(6, 5), pos(5, 6)})
	for i := 0; i < 200; i++ {
		got := RandomStep(pos(5, 5), occ, tank20x10, rng)
		if got != pos(4, 5) && got != pos(5, 4) {
			t.Fatalf("RandomStep = %v, want (4,5) or (5,4)", got)
		}
	}
}

// A full creature with no food only ever takes a random free step.
func TestBaseMoveFullCreatureWanders(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	from := pos(5, 5)
	food := pos(9, 5)

	seen := map[components.Position]int{}
	for i := 0; i < 400; i++ {
		in := MoveInput{Bounds: tank20x10, Occ: NewOccupancy([]components.Position{from}), Full: true, Target: &food}
		got := BaseMove(from, in, rng)
		if components.Manhattan(from, got) != 1 {
			t.Fatalf("BaseMove = %v, want a cardinal neighbor", got)
		}
		seen[got]++
	}
	if len(seen) != 4 {
		t.Errorf("full creature visited %d distinct neighbors, want all 4: %v", len(seen), seen)
	}
}

func TestBaseMoveNoFoodWanders(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	from := pos(5, 5)
	seen := map[components.Position]bool{}
	for i := 0; i < 400; i++ {
		got := BaseMove(from, MoveInput{Bounds: tank20x10, Occ: Occupancy{}}, rng)
		seen[got] = true
	}
	if len(seen) != 4 {
		t.Errorf("visited %d distinct neighbors, want 4", len(seen))
	}
}

func TestBaseMoveHungrySeeks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	food := pos(5, 8)
	for i := 0; i < 50; i++ {
		got := BaseMove(pos(5, 5), MoveInput{Bounds: tank20x10, Occ: Occupancy{}, Target: &food}, rng)
		if got != pos(5, 6) {
			t.Fatalf("BaseMove = %v, want (5,6)", got)
		}
	}
}

func TestHorizontalMove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bottom := tank20x10.Bottom()

	t.Run("steps toward food", func(t *testing.T) {
		food := pos(10, 3)
		got := HorizontalMove(pos(5, bottom), MoveInput{Bounds: tank20x10, Occ: Occupancy{}, Target: &food}, rng)
		if got != pos(6, bottom) {
			t.Errorf("got %v, want (6,%d)", got, bottom)
		}
	})

	t.Run("blocked holds position", func(t *testing.T) {
		food := pos(1, 3)
		occ := NewOccupancy([]components.Position{pos(4, bottom)})
		got := HorizontalMove(pos(5, bottom), MoveInput{Bounds: tank20x10, Occ: occ, Target: &food}, rng)
		if got != pos(5, bottom) {
			t.Errorf("got %v, want (5,%d)", got, bottom)
		}
	})

	t.Run("under food holds column", func(t *testing.T) {
		food := pos(5, 2)
		got := HorizontalMove(pos(5, bottom), MoveInput{Bounds: tank20x10, Occ: Occupancy{}, Target: &food}, rng)
		if got != pos(5, bottom) {
			t.Errorf("got %v, want (5,%d)", got, bottom)
		}
	})

	t.Run("wanders on the bottom row", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			got := HorizontalMove(pos(5, 3), MoveInput{Bounds: tank20x10, Occ: Occupancy{}}, rng)
			if got.Y != bottom {
				t.Fatalf("y = %d, want bottom row %d", got.Y, bottom)
			}
			if got.X < 4 || got.X > 6 {
				t.Fatalf("x = %d, want within one column of 5", got.X)
			}
		}
	})
}

func TestPatrolStepCycle(t *testing.T) {
	p := &components.Patrol{}
	at := pos(5, 5)
	want := []components.Position{pos(6, 5), pos(6, 6), pos(5, 6), pos(5, 5), pos(6, 5)}
	for i, w := range want {
		at = PatrolStep(at, p, tank20x10)
		if at != w {
			t.Fatalf("step %d: got %v, want %v", i, at, w)
		}
	}
}

func TestPatrolStepDropsOutOfBoundsButAdvances(t *testing.T) {
	p := &components.Patrol{Index: 0}
	at := pos(18, 5) // right wall is x=19
	at = PatrolStep(at, p, tank20x10)
	if at != pos(18, 5) {
		t.Errorf("out-of-bounds step taken: %v", at)
	}
	if p.Index != 1 {
		t.Errorf("index = %d, want 1", p.Index)
	}
}

func TestApplyNudges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("certain fixed nudge", func(t *testing.T) {
		got := ApplyNudges(pos(5, 5), []components.Nudge{{Axis: components.AxisY, Chance: 1, Delta: -1}}, rng)
		if got != pos(5, 4) {
			t.Errorf("got %v, want (5,4)", got)
		}
	})

	t.Run("else skipped after fire", func(t *testing.T) {
		nudges := []components.Nudge{
			{Axis: components.AxisY, Chance: 1, Delta: -1},
			{Axis: components.AxisY, Chance: 1, Delta: 1, Else: true},
		}
		if got := ApplyNudges(pos(5, 5), nudges, rng); got != pos(5, 4) {
			t.Errorf("got %v, want (5,4)", got)
		}
	})

	t.Run("else rolls after miss", func(t *testing.T) {
		nudges := []components.Nudge{
			{Axis: components.AxisY, Chance: 0, Delta: -1},
			{Axis: components.AxisY, Chance: 1, Delta: 1, Else: true},
		}
		if got := ApplyNudges(pos(5, 5), nudges, rng); got != pos(5, 6) {
			t.Errorf("got %v, want (5,6)", got)
		}
	})

	t.Run("random delta is one step", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got := ApplyNudges(pos(5, 5), []components.Nudge{{Axis: components.AxisX, Chance: 1}}, rng)
			if got != pos(4, 5) && got != pos(6, 5) {
				t.Fatalf("got %v, want x of 4 or 6", got)
			}
		}
	})
}

// Every species stays inside its clamp band no matter where it starts.
func TestMoveStaysInBand(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := tank20x10

	for _, s := range components.GrazerSpecies() {
		info := s.Info()
		c := &components.Creature{Species: s, Glyph: info.Glyphs[0]}
		patrol := &components.Patrol{}
		at := pos(1, 1)

		for i := 0; i < 500; i++ {
			var target *components.Position
			if i%3 == 0 {
				target = &components.Position{X: rng.Intn(b.Width), Y: rng.Intn(b.Height)}
			}
			in := MoveInput{Bounds: b, Occ: NewOccupancy([]components.Position{at}), Target: target}
			at = Move(at, c, patrol, in, rng)

			if at.X < 1 || at.X > b.MaxX(c.Width()) || at.Y < 1 || at.Y > b.Bottom() {
				t.Fatalf("%v left its band at tick %d: %v", s, i, at)
			}
			if info.Movement == components.MoveBottom && at.Y != b.Bottom() {
				t.Fatalf("%v left the bottom row: %v", s, at)
			}
		}
	}
}
