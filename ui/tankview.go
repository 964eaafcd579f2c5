package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/render"
)

// TankView draws the tank grid with one square cell per tank column/row.
type TankView struct {
	renderer *Renderer
	x, y     int32
	cell     int32
}

// NewTankView creates a tank view at x, y with the given cell size.
func NewTankView(r *Renderer, x, y, cell int32) *TankView {
	return &TankView{renderer: r, x: x, y: y, cell: cell}
}

// Size returns the pixel size of a tank with the scene's bounds.
func (v *TankView) Size(s render.Scene) (int32, int32) {
	return int32(s.Bounds.Width) * v.cell, int32(s.Bounds.Height) * v.cell
}

// CellAt maps a screen point to the tank cell under it.
func (v *TankView) CellAt(s render.Scene, px, py float32) (components.Position, bool) {
	if px < float32(v.x) || py < float32(v.y) {
		return components.Position{}, false
	}
	p := components.Position{
		X: int(px-float32(v.x)) / int(v.cell),
		Y: int(py-float32(v.y)) / int(v.cell),
	}
	return p, s.Bounds.Interior(p)
}

// Highlight draws a selection ring around the cells starting at p.
func (v *TankView) Highlight(p components.Position, width int) {
	c := v.cell
	rl.DrawRectangleLines(v.x+int32(p.X)*c-2, v.y+int32(p.Y)*c-2, int32(max(1, width))*c+4, c+4, rl.Yellow)
}

// Draw draws water, walls, the wave line, food and creatures.
func (v *TankView) Draw(s render.Scene, waves string) {
	t := v.renderer.Theme
	w, h := v.Size(s)
	c := v.cell

	rl.DrawRectangleGradientV(v.x+c, v.y+c, w-2*c, h-2*c, t.Water, t.WaterDeep)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: float32(v.x), Y: float32(v.y), Width: float32(w), Height: float32(h)}, float32(c)/2, t.Glass)

	for i, ch := range waves {
		if ch == ' ' {
			continue
		}
		rl.DrawText(string(ch), v.x+int32(i+1)*c, v.y, c, t.Glass)
	}

	for _, p := range s.Food {
		fx := v.x + int32(p.X)*c + c/4
		fy := v.y + int32(p.Y)*c + c/4
		rl.DrawRectangle(fx, fy, c/2, c/2, t.Food)
	}

	for _, sp := range s.Sprites {
		v.drawSprite(sp)
	}

	if s.Paused {
		rl.DrawText("PAUSED", v.x+w/2-30, v.y+h/2-10, 20, rl.RayWhite)
	}
}

func (v *TankView) drawSprite(sp render.Sprite) {
	t := v.renderer.Theme
	c := float32(v.cell)
	width := float32(max(1, sp.Width))

	cx := float32(v.x) + float32(sp.X)*c + width*c/2
	cy := float32(v.y) + float32(sp.Y)*c + c/2
	radius := c * 0.45

	rl.DrawEllipse(int32(cx), int32(cy), radius*width*0.8, radius, SpeciesColor(sp.Species))
	if sp.Rare {
		rl.DrawCircleLines(int32(cx), int32(cy), radius+2, t.Rare)
	}

	label := sp.Species.String()[:1]
	size := int32(c * 0.6)
	tw := rl.MeasureText(label, size)
	rl.DrawText(label, int32(cx)-tw/2, int32(cy)-size/2, size, rl.Black)
}

// StatsPanel lists every creature and the activity log beside the tank.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewStatsPanel creates a stats panel with the given rectangle.
func NewStatsPanel(r *Renderer, x, y, width, height int32) *StatsPanel {
	return &StatsPanel{renderer: r, x: x, y: y, width: width, height: height}
}

// Draw draws the stats rows, truncated to fit, and the activity log.
func (p *StatsPanel) Draw(s render.Scene, tick int) {
	r := p.renderer
	pad := r.Theme.Padding
	line := r.Theme.LineHeight

	r.DrawPanel(p.x, p.y, p.width, p.height)
	y := p.y + pad

	y = r.DrawSectionHeader(p.x+pad, y, "Tank")
	y = r.DrawLabelValue(p.x+pad, y, "Tick", fmt.Sprint(tick))
	y = r.DrawLabelValue(p.x+pad, y, "Creatures", fmt.Sprint(len(s.Sprites)))
	y = r.DrawLabelValue(p.x+pad, y, "Food", fmt.Sprint(len(s.Food)))
	y += line / 2

	logTop := p.y + p.height - pad - line*int32(len(s.Log)+1)

	y = r.DrawSectionHeader(p.x+pad, y, "Stats")
	for i, row := range s.Stats {
		if y+line > logTop-line {
			r.DrawLabel(p.x+pad, y, fmt.Sprintf("... %d more", len(s.Stats)-i))
			break
		}
		rl.DrawCircle(p.x+pad+4, y+line/2-2, 4, SpeciesColor(row.Species))
		r.DrawLabel(p.x+pad+14, y, render.FormatStats(row))
		y += line
	}

	y = r.DrawSectionHeader(p.x+pad, logTop, "Activity Log")
	for _, msg := range s.Log {
		y = r.DrawLabel(p.x+pad, y, msg)
	}
}
