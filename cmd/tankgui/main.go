// Graphical fish tank frontend.
//
// Usage: go run ./cmd/tankgui [-config path] [-save path] [-seed n]
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/components"
	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/inspector"
	"github.com/pthm-cable/fishtank/render"
	"github.com/pthm-cable/fishtank/ui"
)

const (
	cellSize   = 18
	margin     = 10
	panelWidth = 460
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "", "Save file (empty = tank.save_file from config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	config.MustInit(*configPath)
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.New(cfg, game.Options{Seed: rngSeed, SavePath: *savePath, OutputDir: *outputDir})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	r := ui.NewRenderer()
	tankView := ui.NewTankView(r, margin, margin, cellSize)
	textRenderer := render.New(rngSeed)

	tankW, tankH := tankView.Size(render.SceneOf(g.World()))
	controls := ui.NewControlBar(margin, margin+tankH+margin)
	stats := ui.NewStatsPanel(r, margin+tankW+margin, margin, panelWidth, tankH+margin+controls.Height())

	insp := inspector.NewInspector(margin+tankW-inspector.PanelWidth-margin, margin+cellSize)

	screenW := margin + tankW + margin + panelWidth + margin
	screenH := margin + tankH + margin + controls.Height() + margin

	rl.InitWindow(screenW, screenH, "Fish Tank")
	rl.SetExitKey(0) // Escape deselects instead of quitting
	rl.SetTargetFPS(60)

	tick := cfg.Derived.TickDuration
	last := time.Now()
	waves := textRenderer.Waves(cfg.Tank.Width)

	for !rl.WindowShouldClose() {
		cmd := ui.KeyCommand()
		if cmd == game.CmdQuit {
			break
		}
		g.Do(cmd)

		if time.Since(last) >= tick {
			last = time.Now()
			g.Update()
			textRenderer.Advance()
			waves = textRenderer.Waves(g.World().Bounds().Width)
		}

		scene := render.SceneOf(g.World())
		insp.HandleInput(g.World(), func(x, y float32) (components.Position, bool) {
			return tankView.CellAt(scene, x, y)
		})

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 16, B: 22, A: 255})
		tankView.Draw(scene, waves)
		if e, ok := insp.Selected(g.World()); ok {
			p, c, _ := g.World().Get(e)
			tankView.Highlight(*p, c.Width())
		}
		stats.Draw(scene, g.Tick())
		insp.Draw(g.World())
		g.Do(controls.Draw(scene.Paused))
		rl.EndDrawing()
	}

	rl.CloseWindow()

	if err := g.Close(); err != nil {
		slog.Error("failed to save tank", "error", err)
		os.Exit(1)
	}
}
