package game

// Command is one player action.
type Command int

const (
	CmdNone Command = iota
	CmdPause
	CmdSpawn
	CmdCull
	CmdFood
	CmdQuit
)

var commandNames = [...]string{"none", "pause", "spawn", "cull", "food", "quit"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// KeyCommand maps a terminal key to its command: p pauses, s spawns,
// k culls, f drops food, q or Ctrl-C quits.
func KeyCommand(key byte) Command {
	switch key {
	case 'p', 'P', ' ':
		return CmdPause
	case 's', 'S':
		return CmdSpawn
	case 'k', 'K':
		return CmdCull
	case 'f', 'F':
		return CmdFood
	case 'q', 'Q', 3:
		return CmdQuit
	}
	return CmdNone
}

// Do applies a command to the tank. Quit is left to the frontend.
func (g *Game) Do(cmd Command) {
	switch cmd {
	case CmdPause:
		g.world.TogglePause()
	case CmdSpawn:
		g.world.Spawn()
	case CmdCull:
		g.world.Cull()
	case CmdFood:
		g.world.DropFood()
	}
}
