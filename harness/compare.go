package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/weiihann/sortbench/sorting"
	"github.com/weiihann/sortbench/workload"
)

// Default comparison parameters.
const (
	DefaultThreshold   = 5000
	DefaultSmallNumber = 5
	DefaultLargeNumber = 1
)

// DefaultSizes returns the input sizes run when none are configured.
func DefaultSizes() []int {
	return []int{100, 500, 1000, 5000, 10000}
}

// Config holds the parameters of a comparison run.
type Config struct {
	Sizes []int
	// Threshold is the size at which LargeNumber invocations replace
	// SmallNumber per repeat-group.
	Threshold   int
	SmallNumber int
	LargeNumber int
	// Verify checks each algorithm's output before timing it.
	Verify bool
	// OnSize, if set, is called after each (distribution, size) pair.
	OnSize func(dist string, res SizeResult)
}

// Comparer runs every algorithm against every distribution and size.
type Comparer struct {
	cfg    Config
	logger *slog.Logger
}

// NewComparer creates a Comparer, filling unset fields of cfg with
// defaults.
func NewComparer(cfg Config, logger *slog.Logger) *Comparer {
	if len(cfg.Sizes) == 0 {
		cfg.Sizes = DefaultSizes()
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.SmallNumber < 1 {
		cfg.SmallNumber = DefaultSmallNumber
	}
	if cfg.LargeNumber < 1 {
		cfg.LargeNumber = DefaultLargeNumber
	}

	return &Comparer{cfg: cfg, logger: logger}
}

// Number returns the invocation count per repeat-group for size.
func (c *Comparer) Number(size int) int {
	if size >= c.cfg.Threshold {
		return c.cfg.LargeNumber
	}

	return c.cfg.SmallNumber
}

// Compare measures each algorithm on each distribution and size. A
// failing algorithm is recorded and the run continues. Context
// cancellation is checked before every measurement and stops the run,
// returning the sizes completed so far.
func (c *Comparer) Compare(
	ctx context.Context,
	dists []workload.Distribution,
	algos []sorting.Algorithm,
) (*Table, error) {
	table := &Table{
		Algorithms:    make([]string, 0, len(algos)),
		Distributions: make([]DistributionResult, 0, len(dists)),
	}

	for _, a := range algos {
		table.Algorithms = append(table.Algorithms, a.Name)
	}

	for _, dist := range dists {
		dr := DistributionResult{
			Name:  dist.Name,
			Sizes: make([]SizeResult, 0, len(c.cfg.Sizes)),
		}

		for _, size := range c.cfg.Sizes {
			res, err := c.measureSize(ctx, dist, size, algos)
			if err != nil {
				table.Distributions = append(table.Distributions, dr)

				return table, fmt.Errorf("comparison interrupted: %w", err)
			}

			dr.Sizes = append(dr.Sizes, res)

			if c.cfg.OnSize != nil {
				c.cfg.OnSize(dist.Name, res)
			}
		}

		table.Distributions = append(table.Distributions, dr)
	}

	return table, nil
}

func (c *Comparer) measureSize(
	ctx context.Context,
	dist workload.Distribution,
	size int,
	algos []sorting.Algorithm,
) (SizeResult, error) {
	input := dist.Generate(size)
	number := c.Number(size)

	res := SizeResult{
		Size:         size,
		Measurements: make([]Measurement, 0, len(algos)),
	}

	for _, algo := range algos {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		m := c.measure(algo, input, number)

		if m.OK() {
			c.logger.DebugContext(ctx, "measured",
				slog.String("distribution", dist.Name),
				slog.Int("size", size),
				slog.String("algorithm", algo.Name),
				slog.Int("number", number),
				slog.Float64("seconds", m.Seconds),
			)
		} else {
			c.logger.WarnContext(ctx, "measurement failed",
				slog.String("distribution", dist.Name),
				slog.Int("size", size),
				slog.String("algorithm", algo.Name),
				slog.String("error", m.Err.Error()),
			)
		}

		res.Measurements = append(res.Measurements, m)
	}

	return res, nil
}

func (c *Comparer) measure(
	algo sorting.Algorithm,
	input []int,
	number int,
) Measurement {
	m := Measurement{Algorithm: algo.Name}

	if c.cfg.Verify {
		if err := verify(algo.Sort, input); err != nil {
			m.Err = fmt.Errorf("verify: %w", err)

			return m
		}
	}

	secs, err := Measure(algo.Sort, input, number)
	if err != nil {
		m.Err = err

		return m
	}

	m.Seconds = secs

	return m
}
