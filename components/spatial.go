package components

// Position is a grid cell. Y grows downward.
type Position struct {
	X, Y int
}

// Add returns p offset by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the taxicab distance between two cells.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Bounds describes the tank's outer dimensions, walls included.
type Bounds struct {
	Width, Height int
}

// Interior reports whether p lies inside the walls: [1, W-2] x [1, H-2].
func (b Bounds) Interior(p Position) bool {
	return p.X >= 1 && p.X <= b.Width-2 && p.Y >= 1 && p.Y <= b.Height-2
}

// Bottom returns the lowest row creatures and food may occupy.
func (b Bounds) Bottom() int {
	return b.Height - 2
}

// MaxX returns the rightmost column a glyph of the given width may start at
// while still fitting inside the right wall.
func (b Bounds) MaxX(glyphWidth int) int {
	return max(1, b.Width-1-glyphWidth)
}

// Clamp pulls p into the band a glyph of the given width may occupy.
func (b Bounds) Clamp(p Position, glyphWidth int) Position {
	p.X = clamp(p.X, 1, b.MaxX(glyphWidth))
	p.Y = clamp(p.Y, 1, b.Bottom())
	return p
}

// ClampInterior pulls p into the interior without regard to glyph width.
func (b Bounds) ClampInterior(p Position) Position {
	p.X = clamp(p.X, 1, b.Width-2)
	p.Y = clamp(p.Y, 1, b.Bottom())
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
