// Package game runs a tank session for a frontend: it loads or populates the
// tank, advances it, routes the four player commands, flushes telemetry and
// saves on close.
package game

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/tank"
	"github.com/pthm-cable/fishtank/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64            // 0 picks a time-based seed
	SavePath  string           // empty uses the configured save file
	OutputDir string           // CSV telemetry directory; empty disables it
	LogStats  bool             // log window stats via slog
	Clock     func() time.Time // defaults to time.Now
}

// Game owns one tank and its telemetry.
type Game struct {
	world    *tank.World
	savePath string
	logStats bool

	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	statsCallback func(telemetry.WindowStats)
}

// New creates a game. The tank is loaded from the save file when it exists
// and populated at random otherwise; any other load error is returned.
func New(cfg *config.Config, opts Options) (*Game, error) {
	savePath := opts.SavePath
	if savePath == "" {
		savePath = cfg.Tank.SaveFile
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		savePath:      savePath,
		logStats:      opts.LogStats,
		collector:     telemetry.NewCollector(cfg.Telemetry.WindowTicks),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.WindowTicks),
		outputManager: om,
	}
	g.world = tank.New(cfg, tank.Options{
		Seed:      opts.Seed,
		Clock:     opts.Clock,
		Collector: g.collector,
		Perf:      g.perfCollector,
	})

	if err := g.world.Load(savePath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			om.Close()
			return nil, fmt.Errorf("loading %s: %w", savePath, err)
		}
		slog.Info("no saved tank, populating", "path", savePath)
		g.world.Populate()
	}
	return g, nil
}

// World returns the tank.
func (g *Game) World() *tank.World {
	return g.world
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int {
	return g.world.Tick()
}

// SetStatsCallback registers fn to receive every flushed telemetry window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Update advances the tank one tick unless paused.
func (g *Game) Update() {
	if g.world.Update() {
		g.flushTelemetry()
	}
}

// Save writes the tank to the save file.
func (g *Game) Save() error {
	return g.world.Save(g.savePath)
}

// Close saves the tank and closes telemetry output. The tank is saved even
// when closing the output fails.
func (g *Game) Close() error {
	saveErr := g.Save()
	outErr := g.outputManager.Close()
	return errors.Join(saveErr, outErr)
}
