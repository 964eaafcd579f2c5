package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int
	windowStart int
	counts      [eventCount]int
	totals      [eventCount]int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record counts one event in the current window. Safe on a nil collector.
func (c *Collector) Record(ev EventType) {
	if c == nil || ev >= eventCount {
		return
	}
	c.counts[ev]++
	c.totals[ev]++
}

// Count returns how many events of a type the current window has seen.
func (c *Collector) Count(ev EventType) int {
	if c == nil || ev >= eventCount {
		return 0
	}
	return c.counts[ev]
}

// Total returns how many events of a type have been seen since creation.
func (c *Collector) Total(ev EventType) int {
	if c == nil || ev >= eventCount {
		return 0
	}
	return c.totals[ev]
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(tick int) bool {
	return c != nil && tick-c.windowStart >= c.windowTicks
}

// PopulationSample is the tank state sampled at the end of a window.
type PopulationSample struct {
	Creatures int
	Predators int
	Food      int
	Ages      []float64 // seconds, one per grazer
	Fullness  []float64 // current food count, one per grazer
	Hunger    []float64 // kills, one per predator
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(tick int, sample PopulationSample) WindowStats {
	ages := Summarize(sample.Ages)
	full := Summarize(sample.Fullness)
	hunger := Summarize(sample.Hunger)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   tick,

		Creatures: sample.Creatures,
		Predators: sample.Predators,
		Food:      sample.Food,

		Births:       c.counts[EventBirth],
		Kills:        c.counts[EventKill],
		Culls:        c.counts[EventCull],
		Spawns:       c.counts[EventSpawn],
		Meals:        c.counts[EventMeal],
		FoodDropped:  c.counts[EventFoodDropped],
		FoodExpired:  c.counts[EventFoodExpired],
		FoodConsumed: c.counts[EventFoodConsumed],

		AgeMean: ages.Mean,
		AgeStd:  ages.Std,
		AgeP50:  ages.P50,
		AgeP90:  ages.P90,

		FullnessMean: full.Mean,
		FullnessStd:  full.Std,
		FullnessP50:  full.P50,

		HungerMean: hunger.Mean,
	}

	c.windowStart = tick
	c.counts = [eventCount]int{}

	return stats
}
