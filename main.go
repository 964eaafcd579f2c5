package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ahmetb/go-cursor"
	"golang.org/x/term"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/game"
	"github.com/pthm-cable/fishtank/render"
	"github.com/pthm-cable/fishtank/telemetry"
)

const helpLine = "[p] pause  [s] spawn  [k] cull  [f] food  [q] quit"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "", "Save file (empty = tank.save_file from config; .msgpack or .db for other formats)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	headless := flag.Bool("headless", false, "Run without drawing the tank")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")

	flag.Parse()

	// Interactive runs own the terminal, so only warnings reach stderr.
	var logOut io.Writer = os.Stdout
	level := slog.LevelInfo
	if !*headless {
		logOut = os.Stderr
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.New(cfg, game.Options{
		Seed:      rngSeed,
		SavePath:  *savePath,
		OutputDir: *outputDir,
		LogStats:  *logStats,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		var last telemetry.WindowStats
		g.SetStatsCallback(func(s telemetry.WindowStats) { last = s })

		slog.Info("starting headless simulation", "seed", rngSeed, "max_ticks", *maxTicks)
		runHeadless(ctx, g, *maxTicks)
		slog.Info("headless simulation finished", "tick", g.Tick(), "last_window", last)
	} else {
		r := render.New(rngSeed)
		r.Color = !*noColor
		if err := runTerminal(ctx, g, r, cfg.Derived.TickDuration, *maxTicks); err != nil {
			slog.Error("terminal error", "error", err)
		}
	}

	if err := g.Close(); err != nil {
		slog.Error("failed to save tank", "error", err)
		os.Exit(1)
	}
}

// runHeadless ticks as fast as possible until interrupted or maxTicks.
func runHeadless(ctx context.Context, g *game.Game, maxTicks int) {
	for ctx.Err() == nil {
		g.Update()
		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

// runTerminal draws the tank every tick and applies key commands between
// ticks. Stdin is switched to raw mode when it is a terminal.
func runTerminal(ctx context.Context, g *game.Game, r *render.Renderer, tick time.Duration, maxTicks int) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("entering raw mode: %w", err)
		}
		defer term.Restore(fd, old)
	}

	keys := make(chan byte)
	go readKeys(os.Stdin, keys)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	draw(g, r)
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			cmd := game.KeyCommand(k)
			if cmd == game.CmdQuit {
				return nil
			}
			g.Do(cmd)
			draw(g, r)
		case <-ticker.C:
			g.Update()
			draw(g, r)
			if maxTicks > 0 && g.Tick() >= maxTicks {
				return nil
			}
		}
	}
}

// readKeys forwards single bytes from in until it fails.
func readKeys(in io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			keys <- buf[0]
		}
	}
}

func draw(g *game.Game, r *render.Renderer) {
	frame := r.Render(render.SceneOf(g.World())) + "\n" + helpLine
	// Raw mode does not translate newlines.
	frame = strings.ReplaceAll(frame, "\n", "\r\n")
	fmt.Fprint(os.Stdout, cursor.ClearEntireScreen()+cursor.MoveUpperLeft(1)+frame+"\r\n")
}
