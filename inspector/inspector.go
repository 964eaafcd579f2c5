// Package inspector lets the graphical frontend select one creature and
// shows everything known about it.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/tank"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 26
	lineHeight   = 16
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorLabel       = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Field is one labeled line of the panel.
type Field struct {
	Label string
	Value string
}

// Inspector tracks the selected creature.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits at x, y.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// Pick returns the creature whose glyph covers cell. Later creatures in
// list order win, matching draw order within a row.
func Pick(w *tank.World, cell components.Position) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	for _, e := range w.Creatures() {
		p, c, _ := w.Get(e)
		if p.Y == cell.Y && cell.X >= p.X && cell.X < p.X+c.Width() {
			found, ok = e, true
		}
	}
	return found, ok
}

// Select selects the creature at cell, or clears the selection when the
// cell is empty.
func (ins *Inspector) Select(w *tank.World, cell components.Position) {
	ins.selected, ins.hasSelected = Pick(w, cell)
}

// HandleInput selects on left click inside the tank and deselects on
// right click or Escape. cellAt maps screen coordinates to tank cells.
func (ins *Inspector) HandleInput(w *tank.World, cellAt func(x, y float32) (components.Position, bool)) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	if cell, ok := cellAt(mouse.X, mouse.Y); ok {
		ins.Select(w, cell)
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected creature if it is still in the tank.
func (ins *Inspector) Selected(w *tank.World) (ecs.Entity, bool) {
	if ins.hasSelected && !w.Alive(ins.selected) {
		ins.hasSelected = false
	}
	return ins.selected, ins.hasSelected
}

// Details lists the fields shown for e.
func Details(w *tank.World, e ecs.Entity) []Field {
	p, c, v := w.Get(e)
	info := c.Species.Info()
	fullAt := w.Config().Creature.FullAtFoodCount

	fields := []Field{
		{"Species", c.Species.String()},
		{"ID", c.ID.String()[:8]},
		{"Position", fmt.Sprintf("(%d, %d)", p.X, p.Y)},
		{"Sex", c.Sex.String()},
	}
	if c.Gender != "" {
		fields = append(fields, Field{"Gender", c.Gender})
	}
	fields = append(fields,
		Field{"Rare", fmt.Sprint(c.Rare)},
		Field{"Fullness", fmt.Sprintf("%d/%d", v.CurrentFoodCount, fullAt)},
		Field{"Meals", fmt.Sprint(v.EatenSinceLastReproduction)},
		Field{"Offspring", fmt.Sprint(v.OffspringCount)},
	)
	if info.Movement == components.MoveHunt {
		if h := w.Hunter(e); h != nil {
			fields = append(fields, Field{"Kills", fmt.Sprint(h.Hunger)})
		}
	}
	return fields
}

// Draw renders the panel for the selected creature, if any.
func (ins *Inspector) Draw(w *tank.World) {
	e, ok := ins.Selected(w)
	if !ok {
		return
	}
	_, c, _ := w.Get(e)
	fields := Details(w, e)

	height := int32(HeaderHeight + PanelPadding*2 + lineHeight*len(fields))
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawRectangleLines(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBorder)
	rl.DrawText(c.Name, ins.panelX+PanelPadding, ins.panelY+6, 16, ColorHeaderText)

	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		rl.DrawText(f.Label+":", ins.panelX+PanelPadding, y, 12, ColorLabel)
		rl.DrawText(f.Value, ins.panelX+PanelPadding+90, y, 12, ColorHeaderText)
		y += lineHeight
	}
}
