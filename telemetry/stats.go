package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStart int `csv:"-"`
	WindowEnd   int `csv:"window_end"`

	// Population at window end
	Creatures int `csv:"creatures"`
	Predators int `csv:"predators"`
	Food      int `csv:"food"`

	// Events during window
	Births       int `csv:"births"`
	Kills        int `csv:"kills"`
	Culls        int `csv:"culls"`
	Spawns       int `csv:"spawns"`
	Meals        int `csv:"meals"`
	FoodDropped  int `csv:"food_dropped"`
	FoodExpired  int `csv:"food_expired"`
	FoodConsumed int `csv:"food_consumed"`

	// Grazer age distribution in seconds
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`

	// Grazer fullness distribution
	FullnessMean float64 `csv:"fullness_mean"`
	FullnessStd  float64 `csv:"fullness_std"`
	FullnessP50  float64 `csv:"fullness_p50"`

	HungerMean float64 `csv:"hunger_mean"`
}

// Summary is the distribution of one sampled quantity.
type Summary struct {
	Mean, Std, P50, P90 float64
}

// Summarize computes mean, sample standard deviation and empirical
// quantiles. Empty input yields zeros; a single value has zero spread.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var s Summary
	if n == 1 {
		s.Mean = sorted[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStart),
		slog.Int("window_end", s.WindowEnd),
		slog.Int("creatures", s.Creatures),
		slog.Int("predators", s.Predators),
		slog.Int("food", s.Food),
		slog.Int("births", s.Births),
		slog.Int("kills", s.Kills),
		slog.Int("culls", s.Culls),
		slog.Int("spawns", s.Spawns),
		slog.Int("meals", s.Meals),
		slog.Int("food_dropped", s.FoodDropped),
		slog.Int("food_expired", s.FoodExpired),
		slog.Int("food_consumed", s.FoodConsumed),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p90", s.AgeP90),
		slog.Float64("fullness_mean", s.FullnessMean),
		slog.Float64("hunger_mean", s.HungerMean),
	)
}

// LogStats logs the headline numbers of a window.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"creatures", s.Creatures,
		"predators", s.Predators,
		"births", s.Births,
		"kills", s.Kills,
		"meals", s.Meals,
		"age_mean", s.AgeMean,
		"fullness_mean", s.FullnessMean,
	)
}
