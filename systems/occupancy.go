// Package systems provides the per-tick rules of the tank simulation.
package systems

import (
	"github.com/pthm-cable/fishtank/components"
)

// Occupancy is a snapshot of the cells held by creatures.
// It is rebuilt for every query rather than maintained incrementally.
type Occupancy map[components.Position]struct{}

// NewOccupancy builds a snapshot from the given cells.
func NewOccupancy(cells []components.Position) Occupancy {
	occ := make(Occupancy, len(cells))
	for _, p := range cells {
		occ[p] = struct{}{}
	}
	return occ
}

// Has reports whether p is taken.
func (o Occupancy) Has(p components.Position) bool {
	_, ok := o[p]
	return ok
}

// Add marks p as taken.
func (o Occupancy) Add(p components.Position) {
	o[p] = struct{}{}
}

// Remove clears p.
func (o Occupancy) Remove(p components.Position) {
	delete(o, p)
}

// Without returns a copy of o with p cleared.
func (o Occupancy) Without(p components.Position) Occupancy {
	out := make(Occupancy, len(o))
	for k := range o {
		if k != p {
			out[k] = struct{}{}
		}
	}
	return out
}

// neighborOffsets is the cardinal neighbor priority: right, left, down, up.
var neighborOffsets = [4]components.Position{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// FreeNeighbors returns the interior, unoccupied cardinal neighbors of p
// in priority order.
func FreeNeighbors(p components.Position, occ Occupancy, b components.Bounds) []components.Position {
	out := make([]components.Position, 0, 4)
	for _, d := range neighborOffsets {
		n := p.Add(d)
		if b.Interior(n) && !occ.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
