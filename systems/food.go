package systems

import (
	"github.com/pthm-cable/fishtank/components"
)

// SinkFood moves a food item one row down until it rests on the bottom.
func SinkFood(p *components.Position, b components.Bounds) {
	if p.Y < b.Bottom() {
		p.Y++
	}
}

// FoodExpired reports whether a food item has dissolved.
func FoodExpired(f *components.Food, now, maxLife float64) bool {
	return now-f.Created >= maxLife
}

// TouchFood records one creature eating from f and reports whether the item
// is used up. A used-up item is marked Removed at once so later creatures in
// the same pass no longer see it.
func TouchFood(f *components.Food, maxTouches int) bool {
	f.EatenCount++
	if f.EatenCount >= maxTouches {
		f.Removed = true
	}
	return f.Removed
}
