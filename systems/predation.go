package systems

import (
	"github.com/pthm-cable/fishtank/components"
)

// HuntingAllowed reports whether predators may act at this population.
func HuntingAllowed(population, minPopulation int) bool {
	return population > minPopulation
}

// NearestPrey returns the index of the prey cell closest to from, or -1.
// Ties go to the earliest candidate, so callers pass prey in the tank's
// creature order.
func NearestPrey(from components.Position, prey []components.Position) int {
	return ClosestFood(from, prey)
}

// Hunt moves a predator one step toward target. The target's own cell is
// treated as free so the predator can close in; a predator already on its
// target holds still.
func Hunt(from, target components.Position, occ Occupancy, b components.Bounds, glyphWidth int) components.Position {
	next := from
	if from != target {
		if step, ok := BestStep(from, target, occ.Without(target), b); ok {
			next = step
		}
	}
	return b.Clamp(next, glyphWidth)
}

// TryKill reports whether a predator at pos kills prey at preyPos now.
// On success the hunter's hunger and kill time are updated.
func TryKill(h *components.Hunter, pos, preyPos components.Position, now, cooldown float64) bool {
	if pos != preyPos || now-h.LastKillTime < cooldown {
		return false
	}
	h.Hunger++
	h.LastKillTime = now
	return true
}
