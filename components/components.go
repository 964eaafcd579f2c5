// Package components defines ECS components for the tank simulation.
package components

import (
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// Sex is assigned at creation and never changes.
type Sex uint8

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

// String returns the display name for a Sex.
func (s Sex) String() string {
	switch s {
	case SexMale:
		return "Male"
	case SexFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// ParseSex is the inverse of Sex.String.
func ParseSex(s string) (Sex, bool) {
	switch s {
	case "Male":
		return SexMale, true
	case "Female":
		return SexFemale, true
	default:
		return SexUnknown, false
	}
}

// GenderNeutral is the third pronoun class available to merfolk.
const GenderNeutral = "They"

// Creature holds identity and display data.
type Creature struct {
	ID      uuid.UUID
	Name    string
	Species Species
	Glyph   string
	Rare    bool
	Sex     Sex
	Gender  string // only set for species with pronoun classes

	// Removed marks a creature eaten or culled during a pass; the tank
	// compacts its entity list once the pass is over.
	Removed bool
}

// Width returns the number of terminal cells the creature's glyph covers.
func (c *Creature) Width() int {
	return GlyphWidth(c.Glyph)
}

// Vitals is the aging, fullness and reproduction state shared by every species.
// Timestamps are unix seconds; zero means never.
type Vitals struct {
	BirthTime                  float64
	LastFoodRemoved            float64
	CurrentFoodCount           int
	EatenSinceLastReproduction int
	LastReproductionTime       float64
	OffspringCount             int
}

// Full reports whether the creature has stopped seeking food.
func (v *Vitals) Full(fullAt int) bool {
	return v.CurrentFoodCount >= fullAt
}

// Age returns whole seconds since birth.
func (v *Vitals) Age(now float64) int {
	age := int(now - v.BirthTime)
	if age < 0 {
		return 0
	}
	return age
}

// Patrol tracks the position in a patrol cycle.
type Patrol struct {
	Index int
}

// Hunter holds predator state.
type Hunter struct {
	Hunger       int
	LastKillTime float64
}

// Food is a dropped food item. Its cell is held in a Position component.
type Food struct {
	Created    float64
	EatenCount int
	Removed    bool
}

// FoodGlyph is drawn for every food item.
const FoodGlyph = "🍪"

// GlyphWidth returns the rendered cell width of a glyph, at least 1.
func GlyphWidth(glyph string) int {
	return max(1, runewidth.StringWidth(glyph))
}
