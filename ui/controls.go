package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/game"
)

const (
	buttonWidth  = 100
	buttonHeight = 28
	buttonGap    = 10
)

// ControlBar is the row of command buttons under the tank.
type ControlBar struct {
	x, y float32
}

// NewControlBar places the control bar with its top-left corner at x, y.
func NewControlBar(x, y int32) *ControlBar {
	return &ControlBar{x: float32(x), y: float32(y)}
}

// Height returns the bar's height in pixels.
func (c *ControlBar) Height() int32 {
	return buttonHeight
}

// Draw draws the buttons and returns the command of the one clicked.
func (c *ControlBar) Draw(paused bool) game.Command {
	pauseLabel := "Pause [P]"
	if paused {
		pauseLabel = "Resume [P]"
	}
	buttons := []struct {
		label string
		cmd   game.Command
	}{
		{pauseLabel, game.CmdPause},
		{"Spawn [S]", game.CmdSpawn},
		{"Cull [K]", game.CmdCull},
		{"Food [F]", game.CmdFood},
	}

	cmd := game.CmdNone
	x := c.x
	for _, b := range buttons {
		if gui.Button(rl.Rectangle{X: x, Y: c.y, Width: buttonWidth, Height: buttonHeight}, b.label) {
			cmd = b.cmd
		}
		x += buttonWidth + buttonGap
	}
	return cmd
}

// KeyCommand returns the command for this frame's key presses.
func KeyCommand() game.Command {
	switch {
	case rl.IsKeyPressed(rl.KeyP), rl.IsKeyPressed(rl.KeySpace):
		return game.CmdPause
	case rl.IsKeyPressed(rl.KeyS):
		return game.CmdSpawn
	case rl.IsKeyPressed(rl.KeyK):
		return game.CmdCull
	case rl.IsKeyPressed(rl.KeyF):
		return game.CmdFood
	case rl.IsKeyPressed(rl.KeyQ):
		return game.CmdQuit
	}
	return game.CmdNone
}
