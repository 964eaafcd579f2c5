package systems

import (
	"math/rand"

	"github.com/pthm-cable/fishtank/components"
)

// ReproductionRule holds the eligibility thresholds shared by every species.
type ReproductionRule struct {
	Threshold int     // meals since last birth
	Cooldown  float64 // seconds since last birth
}

// Mate is one candidate in the pairing scan.
type Mate struct {
	Pos      components.Position
	Creature *components.Creature
	Vitals   *components.Vitals
}

// Birth describes an offspring produced by the pairing scan.
type Birth struct {
	ParentA, ParentB int // indices into the mates slice
	Species          components.Species
	Name             string
	Pos              components.Position
}

// CanReproduce reports whether a and b may produce offspring right now.
func CanReproduce(a, b Mate, now float64, rule ReproductionRule) bool {
	if !components.Compatible(a.Creature.Species, b.Creature.Species) {
		return false
	}
	for _, v := range [2]*components.Vitals{a.Vitals, b.Vitals} {
		if now-v.LastReproductionTime <= rule.Cooldown {
			return false
		}
		if v.EatenSinceLastReproduction < rule.Threshold {
			return false
		}
	}
	return true
}

// Midpoint returns the cell halfway between a and b, rounded down.
func Midpoint(a, b components.Position) components.Position {
	return components.Position{X: floorDiv2(a.X + b.X), Y: floorDiv2(a.Y + b.Y)}
}

func floorDiv2(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

// PlaceOffspring picks a random free interior cell in the 3x3 block around
// mid, falling back to mid itself when the block is full.
func PlaceOffspring(mid components.Position, occ Occupancy, b components.Bounds, rng *rand.Rand) components.Position {
	var free []components.Position
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			p := components.Position{X: mid.X + dx, Y: mid.Y + dy}
			if b.Interior(p) && !occ.Has(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return mid
	}
	return free[rng.Intn(len(free))]
}

// OffspringName names a child after its first parent, or after its own
// species for merfolk.
func OffspringName(parent *components.Creature, child components.Species) string {
	if child.Info().Family == components.FamilyMerfolk {
		return child.String() + "_Jr"
	}
	return parent.Name + "_Jr"
}

// OffspringSpecies returns the species of a child of a and b.
// Mixed pairs pick either parent's species with equal odds.
func OffspringSpecies(a, b components.Species, rng *rand.Rand) components.Species {
	if a == b || rng.Intn(2) == 0 {
		return a
	}
	return b
}

// recordBirth applies the parent bookkeeping for one successful pairing.
func recordBirth(v *components.Vitals, now float64) {
	v.EatenSinceLastReproduction = 0
	v.LastReproductionTime = now
	v.OffspringCount++
}

// ResolveReproduction scans every ordered pair (i, j), i != j, and returns
// the resulting births in scan order. Parents are updated in place, so a
// pair that just bred fails eligibility when the reverse order comes up.
// Birth cells are added to occ; the children themselves are not part of
// the scan.
func ResolveReproduction(mates []Mate, occ Occupancy, b components.Bounds, rule ReproductionRule, now float64, rng *rand.Rand) []Birth {
	var births []Birth
	for i := range mates {
		for j := range mates {
			if i == j || !CanReproduce(mates[i], mates[j], now, rule) {
				continue
			}
			a, c := mates[i], mates[j]

			pos := PlaceOffspring(Midpoint(a.Pos, c.Pos), occ, b, rng)
			occ.Add(pos)

			recordBirth(a.Vitals, now)
			recordBirth(c.Vitals, now)

			child := OffspringSpecies(a.Creature.Species, c.Creature.Species, rng)
			births = append(births, Birth{
				ParentA: i,
				ParentB: j,
				Species: child,
				Name:    OffspringName(a.Creature, child),
				Pos:     pos,
			})
		}
	}
	return births
}
