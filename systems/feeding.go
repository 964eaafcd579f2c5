package systems

import (
	"github.com/pthm-cable/fishtank/components"
)

// ClosestFood returns the index of the food cell nearest to from by
// Manhattan distance, or -1 when there is none. Ties go to the first
// candidate in slice order.
func ClosestFood(from components.Position, food []components.Position) int {
	best, bestDist := -1, 0
	for i, p := range food {
		d := components.Manhattan(from, p)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// DecayFullness drops one point of fullness once every `every` seconds.
// It reports whether a point was lost.
func DecayFullness(v *components.Vitals, now, every float64) bool {
	if now-v.LastFoodRemoved > every && v.CurrentFoodCount > 0 {
		v.CurrentFoodCount--
		v.LastFoodRemoved = now
		return true
	}
	return false
}

// Eat records one meal. Fullness saturates at fullAt; the reproduction
// counter does not.
func Eat(v *components.Vitals, fullAt int) {
	if v.CurrentFoodCount < fullAt {
		v.CurrentFoodCount++
	}
	v.EatenSinceLastReproduction++
}
