package systems

import (
	"math/rand"

	"github.com/pthm-cable/fishtank/components"
)

// MoveInput is everything a movement rule may look at.
type MoveInput struct {
	Bounds components.Bounds
	Occ    Occupancy
	Target *components.Position // closest food, nil when the tank has none
	Full   bool
}

// BestStep returns the free cardinal neighbor of from that minimizes the
// Manhattan distance to target. Ties go to the earlier neighbor in
// right, left, down, up order. ok is false when every neighbor is blocked.
func BestStep(from, target components.Position, occ Occupancy, b components.Bounds) (components.Position, bool) {
	best := from
	bestDist := -1
	for _, n := range FreeNeighbors(from, occ, b) {
		d := components.Manhattan(n, target)
		if bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, bestDist >= 0
}

// RandomStep picks uniformly among the free cardinal neighbors of from.
// It returns from unchanged when none are free.
func RandomStep(from components.Position, occ Occupancy, b components.Bounds, rng *rand.Rand) components.Position {
	free := FreeNeighbors(from, occ, b)
	if len(free) == 0 {
		return from
	}
	return free[rng.Intn(len(free))]
}

// BaseMove is the shared seek-or-wander rule: step toward food while hungry,
// otherwise wander.
func BaseMove(from components.Position, in MoveInput, rng *rand.Rand) components.Position {
	if in.Target != nil && !in.Full {
		if next, ok := BestStep(from, *in.Target, in.Occ, in.Bounds); ok {
			return next
		}
	}
	return RandomStep(from, in.Occ, in.Bounds, rng)
}

// HorizontalMove is the bottom walker's rule. It steps one column toward
// food when that cell is free, otherwise wanders left or right.
// The row is always pinned to the bottom.
func HorizontalMove(from components.Position, in MoveInput, rng *rand.Rand) components.Position {
	next := components.Position{X: from.X, Y: in.Bounds.Bottom()}
	if in.Target != nil && !in.Full {
		switch {
		case from.X < in.Target.X:
			next.X++
		case from.X > in.Target.X:
			next.X--
		}
		if next.X != from.X && (in.Occ.Has(next) || !in.Bounds.Interior(next)) {
			next.X = from.X
		}
		return next
	}

	dx := 1
	if rng.Intn(2) == 0 {
		dx = -1
	}
	cand := components.Position{X: from.X + dx, Y: next.Y}
	if in.Bounds.Interior(cand) && !in.Occ.Has(cand) {
		return cand
	}
	return next
}

// patrolCycle is the fixed patrol order: right, down, left, up.
var patrolCycle = [4]components.Position{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// PatrolStep applies the current patrol direction if it stays inside the
// walls. The index advances whether or not the step was taken.
func PatrolStep(from components.Position, patrol *components.Patrol, b components.Bounds) components.Position {
	d := patrolCycle[patrol.Index%len(patrolCycle)]
	patrol.Index = (patrol.Index + 1) % len(patrolCycle)
	next := from.Add(d)
	if b.Interior(next) {
		return next
	}
	return from
}

// ApplyNudges rolls a species' perturbation table against p.
// Nudges ignore occupancy; the caller reclamps afterwards.
func ApplyNudges(p components.Position, nudges []components.Nudge, rng *rand.Rand) components.Position {
	fired := false
	for _, n := range nudges {
		if n.Else && fired {
			fired = false
			continue
		}
		fired = rng.Float64() < n.Chance
		if !fired {
			continue
		}
		delta := n.Delta
		if delta == 0 {
			delta = rng.Intn(2)*2 - 1
		}
		switch n.Axis {
		case components.AxisX:
			p.X += delta
		case components.AxisY:
			p.Y += delta
		}
	}
	return p
}

// Move runs one grazer movement step: the species' base rule, then its
// nudges, then a clamp into the band its glyph may occupy.
// Predators are moved by Hunt instead.
func Move(from components.Position, c *components.Creature, patrol *components.Patrol, in MoveInput, rng *rand.Rand) components.Position {
	info := c.Species.Info()

	var next components.Position
	switch info.Movement {
	case components.MoveBottom:
		next = HorizontalMove(from, in, rng)
	case components.MovePatrol:
		next = BaseMove(from, in, rng)
		if patrol != nil {
			next = PatrolStep(next, patrol, in.Bounds)
		}
	default:
		next = BaseMove(from, in, rng)
	}

	next = ApplyNudges(next, info.Nudges, rng)
	next = in.Bounds.Clamp(next, c.Width())
	if info.Movement == components.MoveBottom {
		next.Y = in.Bounds.Bottom()
	}
	return next
}
