package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mgutz/ansi"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/tank"
)

// PanelWidth is the width the stats and activity headers are centered to.
const PanelWidth = 30

// gutter separates the tank from the stats panel.
const gutter = "   "

var waveChars = [3]string{" ", "=", "~"}

// Renderer turns scenes into text frames. The wave line advances one step
// per rendered frame.
type Renderer struct {
	noise opensimplex.Noise
	frame int

	// Color enables ANSI colors for headers and rare creatures.
	Color bool
}

// New creates a renderer whose waves are seeded by seed.
func New(seed int64) *Renderer {
	return &Renderer{noise: opensimplex.NewNormalized(seed)}
}

// Waves returns the wave line for the current frame: width-2 cells, each
// one of '~', '=' or ' '.
func (r *Renderer) Waves(width int) string {
	n := max(0, width-2)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		v := r.noise.Eval2(float64(i)*0.35, float64(r.frame)*0.15)
		idx := int(v * float64(len(waveChars)))
		idx = min(max(idx, 0), len(waveChars)-1)
		sb.WriteString(waveChars[idx])
	}
	return sb.String()
}

// Advance moves the wave animation one frame on.
func (r *Renderer) Advance() {
	r.frame++
}

// Render draws a full frame and advances the wave animation.
func (r *Renderer) Render(s Scene) string {
	tankLines := r.Tank(s)
	r.Advance()

	stats := r.StatsPanel(s.Stats)

	var out []string
	blank := strings.Repeat(" ", s.Bounds.Width)
	for i := 0; i < max(len(tankLines), len(stats)); i++ {
		left := blank
		if i < len(tankLines) {
			left = tankLines[i]
		}
		right := ""
		if i < len(stats) {
			right = stats[i]
		}
		out = append(out, strings.TrimRight(left+gutter+right, " "))
	}

	out = append(out, r.header(" Activity Log "))
	out = append(out, s.Log...)
	if s.Paused {
		out = append(out, r.paint("[paused]", "yellow"))
	}
	return strings.Join(out, "\n")
}

// Tank draws the bordered tank box. Creatures are placed top row first;
// a creature whose cells are already taken is left out of the frame, and
// food is drawn only where nothing else is.
func (r *Renderer) Tank(s Scene) []string {
	w, h := s.Bounds.Width, s.Bounds.Height
	if w < 2 || h < 2 {
		return nil
	}

	// Each grid cell holds the text printed at that column; the trailing
	// columns of a wide glyph hold "".
	grid := make([][]string, h)
	for y := 1; y < h-1; y++ {
		row := make([]string, w)
		row[0], row[w-1] = "║", "║"
		for x := 1; x < w-1; x++ {
			row[x] = " "
		}
		grid[y] = row
	}

	taken := make(map[components.Position]bool)
	place := func(x, y, width int, text string) bool {
		if y < 1 || y > h-2 || width < 1 {
			return false
		}
		col := min(x+1, w-1-width)
		if col < 1 {
			return false
		}
		for i := 0; i < width; i++ {
			if taken[components.Position{X: col + i, Y: y}] {
				return false
			}
		}
		grid[y][col] = text
		for i := 0; i < width; i++ {
			taken[components.Position{X: col + i, Y: y}] = true
			if i > 0 {
				grid[y][col+i] = ""
			}
		}
		return true
	}

	sprites := make([]Sprite, len(s.Sprites))
	copy(sprites, s.Sprites)
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].Y < sprites[j].Y })
	for _, sp := range sprites {
		glyph := sp.Glyph
		if sp.Rare {
			glyph = r.paint(glyph, "yellow+b")
		}
		place(sp.X, sp.Y, max(1, sp.Width), glyph)
	}

	foodWidth := components.GlyphWidth(components.FoodGlyph)
	for _, p := range s.Food {
		if p.X+foodWidth >= w-2 {
			continue
		}
		place(p.X, p.Y, foodWidth, components.FoodGlyph)
	}

	lines := make([]string, 0, h)
	lines = append(lines, "╔"+r.Waves(w)+"╗")
	for y := 1; y < h-1; y++ {
		lines = append(lines, strings.Join(grid[y], ""))
	}
	lines = append(lines, "╚"+strings.Repeat("═", w-2)+"╝")
	return lines
}

// StatsPanel returns the stats header followed by one line per creature.
func (r *Renderer) StatsPanel(rows []tank.CreatureStats) []string {
	lines := []string{r.header(" Stats ")}
	for _, row := range rows {
		lines = append(lines, row.Glyph+" "+FormatStats(row))
	}
	return lines
}

// FormatStats renders one stats row without its glyph.
func FormatStats(row tank.CreatureStats) string {
	parts := []string{
		"Name: " + row.Name,
		fmt.Sprintf("Age: %ds", row.Age),
		row.Status,
		fmt.Sprintf("Offspring: %d", row.Offspring),
	}
	if row.Rarity != "" {
		parts = append(parts, row.Rarity)
	}
	parts = append(parts, "Sex: "+row.Sex)
	if row.Gender != "" {
		parts = append(parts, "Gender: "+row.Gender)
	}
	return strings.Join(parts, " | ")
}

func (r *Renderer) header(title string) string {
	return r.paint(Center(title, PanelWidth, '-'), "cyan+b")
}

func (r *Renderer) paint(s, style string) string {
	if !r.Color {
		return s
	}
	return ansi.Color(s, style)
}

// Center pads s with fill on both sides to the given display width. An odd
// margin puts the extra fill on the right unless width is odd.
func Center(s string, width int, fill rune) string {
	margin := width - runewidth.StringWidth(s)
	if margin <= 0 {
		return s
	}
	left := margin/2 + (margin & width & 1)
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), margin-left)
}
