// Package persistence reads and writes saved tank state.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a record lacks a required key.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidValue is returned when a field holds an impossible value.
	ErrInvalidValue = errors.New("invalid value")
)

// MinDimension is the smallest saved width or height accepted.
const MinDimension = 5

// RecordError locates a problem inside a saved state.
type RecordError struct {
	Record string // "state", "creature" or "cookie"
	Index  int    // position in its list, -1 for the top level
	Field  string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s.%s: %v", e.Record, e.Field, e.Err)
	}
	return fmt.Sprintf("%s[%d].%s: %v", e.Record, e.Index, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// State is the full persisted tank.
type State struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Creatures   []CreatureRecord `json:"creatures"`
	Cookies     []FoodRecord     `json:"cookies"`
	ActivityLog []string         `json:"activity_log"`
}

// CreatureRecord is one saved creature. Type is the species tag; it is not
// checked here so callers can skip tags they do not know.
type CreatureRecord struct {
	Type                       string  `json:"type"`
	Name                       string  `json:"name"`
	X                          int     `json:"x"`
	Y                          int     `json:"y"`
	Emoji                      string  `json:"emoji"`
	Width                      int     `json:"width"`
	Rare                       bool    `json:"rare"`
	BirthTime                  float64 `json:"birth_time"`
	LastFoodRemoved            float64 `json:"last_food_removed"`
	CurrentFoodCount           int     `json:"current_food_count"`
	EatenSinceLastReproduction int     `json:"eaten_since_last_reproduction"`
	LastReproductionTime       float64 `json:"last_reproduction_time"`
	OffspringCount             int     `json:"offspring_count"`

	ID     string `json:"id,omitempty"`
	Sex    string `json:"sex,omitempty"`
	Gender string `json:"gender,omitempty"`

	// Predators only
	Hunger       int     `json:"hunger,omitempty"`
	LastKillTime float64 `json:"last_kill_time,omitempty"`
}

// FoodRecord is one saved food item.
type FoodRecord struct {
	Created    float64 `json:"created"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	EatenCount int     `json:"eaten_count"`
}

// The wire types mirror the records with pointer fields so absent keys can
// be told apart from zero values.

type wireState struct {
	Width       *int           `json:"width"`
	Height      *int           `json:"height"`
	Creatures   []wireCreature `json:"creatures"`
	Cookies     []wireFood     `json:"cookies"`
	ActivityLog []string       `json:"activity_log"`
}

type wireCreature struct {
	Type                       *string  `json:"type"`
	Name                       *string  `json:"name"`
	X                          *int     `json:"x"`
	Y                          *int     `json:"y"`
	Emoji                      *string  `json:"emoji"`
	Width                      *int     `json:"width"`
	Rare                       *bool    `json:"rare"`
	BirthTime                  *float64 `json:"birth_time"`
	LastFoodRemoved            *float64 `json:"last_food_removed"`
	CurrentFoodCount           *int     `json:"current_food_count"`
	EatenSinceLastReproduction *int     `json:"eaten_since_last_reproduction"`
	LastReproductionTime       *float64 `json:"last_reproduction_time"`
	OffspringCount             *int     `json:"offspring_count"`

	ID     string `json:"id"`
	Sex    string `json:"sex"`
	Gender string `json:"gender"`

	Hunger       *int     `json:"hunger"`
	LastKillTime *float64 `json:"last_kill_time"`
}

type wireFood struct {
	Created    *float64 `json:"created"`
	X          *int     `json:"x"`
	Y          *int     `json:"y"`
	EatenCount *int     `json:"eaten_count"`
}

// fieldReader collects the first missing or invalid field of one record.
type fieldReader struct {
	record string
	index  int
	err    error
}

func (r *fieldReader) fail(field string, err error) {
	if r.err == nil {
		r.err = &RecordError{Record: r.record, Index: r.index, Field: field, Err: err}
	}
}

func readField[T any](r *fieldReader, field string, v *T) T {
	var zero T
	if v == nil {
		r.fail(field, ErrMissingField)
		return zero
	}
	return *v
}

func (r *fieldReader) count(field string, v *int) int {
	n := readField(r, field, v)
	if n < 0 {
		r.fail(field, ErrInvalidValue)
	}
	return n
}

func (w *wireState) validate() (*State, error) {
	top := &fieldReader{record: "state", index: -1}
	st := &State{
		Width:       readField(top, "width", w.Width),
		Height:      readField(top, "height", w.Height),
		ActivityLog: w.ActivityLog,
	}
	if top.err == nil && (st.Width < MinDimension || st.Height < MinDimension) {
		top.fail("width", fmt.Errorf("%w: tank %dx%d is smaller than %dx%d",
			ErrInvalidValue, st.Width, st.Height, MinDimension, MinDimension))
	}
	if top.err != nil {
		return nil, top.err
	}

	st.Creatures = make([]CreatureRecord, 0, len(w.Creatures))
	for i := range w.Creatures {
		rec, err := w.Creatures[i].validate(i)
		if err != nil {
			return nil, err
		}
		st.Creatures = append(st.Creatures, rec)
	}

	st.Cookies = make([]FoodRecord, 0, len(w.Cookies))
	for i := range w.Cookies {
		rec, err := w.Cookies[i].validate(i)
		if err != nil {
			return nil, err
		}
		st.Cookies = append(st.Cookies, rec)
	}

	return st, nil
}

func (c *wireCreature) validate(index int) (CreatureRecord, error) {
	r := &fieldReader{record: "creature", index: index}
	rec := CreatureRecord{
		Type:                       readField(r, "type", c.Type),
		Name:                       readField(r, "name", c.Name),
		X:                          readField(r, "x", c.X),
		Y:                          readField(r, "y", c.Y),
		Emoji:                      readField(r, "emoji", c.Emoji),
		Rare:                       readField(r, "rare", c.Rare),
		BirthTime:                  readField(r, "birth_time", c.BirthTime),
		LastFoodRemoved:            readField(r, "last_food_removed", c.LastFoodRemoved),
		CurrentFoodCount:           r.count("current_food_count", c.CurrentFoodCount),
		EatenSinceLastReproduction: r.count("eaten_since_last_reproduction", c.EatenSinceLastReproduction),
		LastReproductionTime:       readField(r, "last_reproduction_time", c.LastReproductionTime),
		OffspringCount:             r.count("offspring_count", c.OffspringCount),
		ID:                         c.ID,
		Sex:                        c.Sex,
		Gender:                     c.Gender,
	}
	// Width is derived from the glyph on restore, so an absent key is tolerated.
	if c.Width != nil {
		rec.Width = *c.Width
	}
	if c.Hunger != nil {
		rec.Hunger = r.count("hunger", c.Hunger)
	}
	if c.LastKillTime != nil {
		rec.LastKillTime = *c.LastKillTime
	}
	return rec, r.err
}

func (f *wireFood) validate(index int) (FoodRecord, error) {
	r := &fieldReader{record: "cookie", index: index}
	rec := FoodRecord{
		Created:    readField(r, "created", f.Created),
		X:          readField(r, "x", f.X),
		Y:          readField(r, "y", f.Y),
		EatenCount: r.count("eaten_count", f.EatenCount),
	}
	return rec, r.err
}
