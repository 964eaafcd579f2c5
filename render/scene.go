// Package render draws the tank as text: a bordered box with an animated
// wave line, creature and food glyphs, a stats panel beside it and the
// activity log below.
package render

import (
	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/tank"
)

// Sprite is one creature as the renderer sees it.
type Sprite struct {
	X, Y    int
	Glyph   string
	Width   int
	Rare    bool
	Species components.Species
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Bounds  components.Bounds
	Sprites []Sprite
	Food    []components.Position
	Stats   []tank.CreatureStats
	Log     []string
	Paused  bool
}

// SceneOf captures the drawable state of w.
func SceneOf(w *tank.World) Scene {
	s := Scene{
		Bounds: w.Bounds(),
		Stats:  w.Stats(),
		Log:    w.ActivityLog(),
		Paused: w.Paused(),
	}
	for _, e := range w.Creatures() {
		p, c, _ := w.Get(e)
		s.Sprites = append(s.Sprites, Sprite{
			X: p.X, Y: p.Y,
			Glyph:   c.Glyph,
			Width:   c.Width(),
			Rare:    c.Rare,
			Species: c.Species,
		})
	}
	for _, e := range w.Food() {
		p, _ := w.FoodAt(e)
		s.Food = append(s.Food, *p)
	}
	return s
}
