// Package workload generates the integer inputs fed to the sorting
// benchmarks. Each distribution produces a slice of a requested size with
// a distinct shape: uniform random, ascending, descending, or ascending
// with a sparse set of random swaps.
package workload

import (
	"fmt"
	mrand "math/rand"
	"time"
)

const (
	// RandomMin and RandomMax bound the values produced by Random.
	RandomMin = 1
	RandomMax = 10000

	// DefaultSwapDivisor yields size/10 swaps for PartiallySorted.
	DefaultSwapDivisor = 10
)

// Config controls input generation.
type Config struct {
	// Seed for the random distributions. Zero means the current time.
	Seed int64
	// SwapDivisor sets the number of swaps in PartiallySorted to
	// size / SwapDivisor. Values below 1 fall back to DefaultSwapDivisor.
	SwapDivisor int
}

// Generator produces benchmark inputs from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if cfg.SwapDivisor < 1 {
		cfg.SwapDivisor = DefaultSwapDivisor
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 {
	return g.cfg.Seed
}

// Random returns size independent uniform draws in [RandomMin, RandomMax].
func (g *Generator) Random(size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = RandomMin + g.rng.Intn(RandomMax-RandomMin+1)
	}

	return out
}

// Ascending returns 1..size.
func (g *Generator) Ascending(size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = i + 1
	}

	return out
}

// Descending returns size..1.
func (g *Generator) Descending(size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = size - i
	}

	return out
}

// PartiallySorted returns 1..size with size/SwapDivisor random
// index-pair swaps applied.
func (g *Generator) PartiallySorted(size int) []int {
	out := g.Ascending(size)

	swaps := size / g.cfg.SwapDivisor
	for k := 0; k < swaps; k++ {
		i := g.rng.Intn(size)
		j := g.rng.Intn(size)
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// Distribution is a named input shape.
type Distribution struct {
	// Key is the short identifier accepted on the command line.
	Key string
	// Name is the label used in reports.
	Name     string
	Generate func(size int) []int
}

// Distributions returns the four distributions in report order.
func (g *Generator) Distributions() []Distribution {
	return []Distribution{
		{Key: "random", Name: "Random data", Generate: g.Random},
		{Key: "sorted", Name: "Sorted data", Generate: g.Ascending},
		{Key: "reversed", Name: "Reverse sorted", Generate: g.Descending},
		{Key: "partial", Name: "Partially sorted", Generate: g.PartiallySorted},
	}
}

// Select returns the distributions whose keys appear in keys, keeping
// report order. An empty keys selects all of them.
func (g *Generator) Select(keys []string) ([]Distribution, error) {
	all := g.Distributions()
	if len(keys) == 0 {
		return all, nil
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, err := g.Lookup(k); err != nil {
			return nil, err
		}
		want[k] = true
	}

	selected := make([]Distribution, 0, len(want))
	for _, d := range all {
		if want[d.Key] {
			selected = append(selected, d)
		}
	}

	return selected, nil
}

// Lookup resolves a distribution by key.
func (g *Generator) Lookup(key string) (Distribution, error) {
	for _, d := range g.Distributions() {
		if d.Key == key {
			return d, nil
		}
	}

	return Distribution{}, fmt.Errorf("unknown distribution %q", key)
}
