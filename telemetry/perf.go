package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseFood         = "food"
	PhaseCreatures    = "creatures"
	PhaseCleanup      = "cleanup"
	PhaseReproduction = "reproduction"
)

var phases = []string{PhaseFood, PhaseCreatures, PhaseCleanup, PhaseReproduction}

type perfSample struct {
	tick   time.Duration
	phases map[string]time.Duration
}

// PerfCollector times tick phases over a rolling window of ticks.
// All methods are no-ops on a nil collector.
type PerfCollector struct {
	samples []perfSample
	next    int
	filled  int

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 100
	}
	return &PerfCollector{samples: make([]perfSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.tickStart = time.Now()
	p.current = make(map[string]time.Duration, len(phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick records the finished tick.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.samples[p.next] = perfSample{tick: now.Sub(p.tickStart), phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	AvgTick  time.Duration
	MaxTick  time.Duration
	PhasePct map[string]float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{PhasePct: make(map[string]float64)}
	if p == nil || p.filled == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for _, s := range p.samples[:p.filled] {
		total += s.tick
		out.MaxTick = max(out.MaxTick, s.tick)
		for name, d := range s.phases {
			sums[name] += d
		}
	}
	out.AvgTick = total / time.Duration(p.filled)

	if total > 0 {
		for name, d := range sums {
			out.PhasePct[name] = float64(d) / float64(total) * 100
		}
	}
	return out
}

// LogStats logs the window's timing.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
	}
	for _, name := range phases {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, name+"_pct", int(pct))
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is the flat row written to perf.csv.
type PerfStatsCSV struct {
	WindowEnd       int     `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	FoodPct         float64 `csv:"food_pct"`
	CreaturesPct    float64 `csv:"creatures_pct"`
	CleanupPct      float64 `csv:"cleanup_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
}

// ToCSV flattens the stats for CSV export.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTick.Microseconds(),
		MaxTickUS:       s.MaxTick.Microseconds(),
		FoodPct:         s.PhasePct[PhaseFood],
		CreaturesPct:    s.PhasePct[PhaseCreatures],
		CleanupPct:      s.PhasePct[PhaseCleanup],
		ReproductionPct: s.PhasePct[PhaseReproduction],
	}
}
