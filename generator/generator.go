// Package generator provides seeded synthetic data sources: user records for
// the analyzer and a daily sales series for the chart renderer.
package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/spektr-org/tabular/engine"
)

// DefaultSeed makes repeated runs produce the same data.
const DefaultSeed = 42

// Option configures a generator.
type Option func(*config)

type config struct {
	Seed       uint64
	Categories []string
	MinAge     int // inclusive
	MaxAge     int // exclusive
	ScoreMean  float64
	ScoreStd   float64
	Start      time.Time
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.Seed = seed }
}

// WithCategories replaces the category vocabulary.
func WithCategories(categories ...string) Option {
	return func(c *config) { c.Categories = append([]string(nil), categories...) }
}

// WithAgeRange sets ages drawn uniformly from [min, max).
func WithAgeRange(min, max int) Option {
	return func(c *config) { c.MinAge, c.MaxAge = min, max }
}

// WithScoreDistribution sets the normal distribution scores are drawn from.
func WithScoreDistribution(mean, std float64) Option {
	return func(c *config) { c.ScoreMean, c.ScoreStd = mean, std }
}

// WithStart sets the first day of a sales series.
func WithStart(start time.Time) Option {
	return func(c *config) { c.Start = start }
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Seed:       DefaultSeed,
		Categories: engine.DefaultCategories,
		MinAge:     18,
		MaxAge:     70,
		ScoreMean:  75,
		ScoreStd:   15,
		Start:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// GenerateSample builds n user records with ids 1..n.
func GenerateSample(n int, opts ...Option) (engine.Dataset, error) {
	cfg := applyOptions(opts)
	if n < 0 {
		return engine.Dataset{}, fmt.Errorf("%w: negative row count %d", engine.ErrInvalidInput, n)
	}
	if cfg.MaxAge <= cfg.MinAge {
		return engine.Dataset{}, fmt.Errorf("%w: empty age range [%d,%d)", engine.ErrInvalidInput, cfg.MinAge, cfg.MaxAge)
	}
	if len(cfg.Categories) == 0 {
		return engine.Dataset{}, fmt.Errorf("%w: empty category vocabulary", engine.ErrInvalidInput)
	}

	rng := newRand(cfg.Seed)
	records := make([]engine.Record, n)
	for i := range records {
		records[i] = engine.Record{
			ID:       i + 1,
			Name:     fmt.Sprintf("User_%d", i+1),
			Age:      cfg.MinAge + rng.IntN(cfg.MaxAge-cfg.MinAge),
			Score:    math.Round((cfg.ScoreMean+cfg.ScoreStd*rng.NormFloat64())*100) / 100,
			Category: cfg.Categories[rng.IntN(len(cfg.Categories))],
			Active:   rng.IntN(2) == 1,
		}
	}
	return engine.NewDataset(records), nil
}

// DailySales is one day of the sales series.
type DailySales struct {
	Date     time.Time `json:"date"`
	Sales    float64   `json:"sales"`
	Expenses float64   `json:"expenses"`
	Visitors float64   `json:"visitors"`
}

// SalesSeries builds days of synthetic sales with a linear upward trend.
func SalesSeries(days int, opts ...Option) ([]DailySales, error) {
	cfg := applyOptions(opts)
	if days < 0 {
		return nil, fmt.Errorf("%w: negative day count %d", engine.ErrInvalidInput, days)
	}

	rng := newRand(cfg.Seed)
	out := make([]DailySales, days)
	for i := range out {
		out[i] = DailySales{
			Date:     cfg.Start.AddDate(0, 0, i),
			Sales:    float64(100+rng.IntN(400)) + float64(i)*5,
			Expenses: float64(50 + rng.IntN(250)),
			Visitors: float64(200 + rng.IntN(800)),
		}
	}
	return out, nil
}
