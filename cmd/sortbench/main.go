// Package main provides the CLI entry point for sortbench, which times
// merge sort and insertion sort against the builtin stable sort across
// several input distributions and sizes.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/weiihann/sortbench/harness"
	"github.com/weiihann/sortbench/report"
	"github.com/weiihann/sortbench/sorting"
	"github.com/weiihann/sortbench/workload"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(logger, level, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("sortbench failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

type runConfig struct {
	sizes         []int
	threshold     int
	seed          int64
	swapDivisor   int
	distributions []string
	verify        bool
	outputJSON    bool
	verbose       bool
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar, out io.Writer) *cobra.Command {
	var cfg runConfig

	cmd := &cobra.Command{
		Use:   "sortbench",
		Short: "Compare sorting algorithm performance",
		Long: `Sortbench times merge sort and insertion sort against the builtin
stable sort on random, sorted, reverse sorted and partially sorted inputs
of several sizes, then reports how each algorithm's time grows with size
on random data.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.verbose {
				level.Set(slog.LevelDebug)
			}

			return runComparison(cmd.Context(), logger, out, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVar(&cfg.sizes, "sizes", harness.DefaultSizes(),
		"Input sizes to benchmark")
	flags.IntVar(&cfg.threshold, "threshold", harness.DefaultThreshold,
		"Size at which each repeat-group runs once instead of five times")
	flags.Int64Var(&cfg.seed, "seed", 0,
		"Random seed (0 = use current time)")
	flags.IntVar(&cfg.swapDivisor, "swap-divisor", workload.DefaultSwapDivisor,
		"Partially sorted inputs get size/divisor random swaps")
	flags.StringSliceVar(&cfg.distributions, "distributions", nil,
		"Distributions to run: random, sorted, reversed, partial (default all)")
	flags.BoolVar(&cfg.verify, "verify", false,
		"Check each algorithm's output is a sorted permutation before timing")
	flags.BoolVar(&cfg.outputJSON, "json", false,
		"Output results as JSON instead of text")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false,
		"Log every measurement")

	return cmd
}

func (c runConfig) validate() error {
	if len(c.sizes) == 0 {
		return fmt.Errorf("at least one size must be given via --sizes")
	}

	for _, s := range c.sizes {
		if s < 0 {
			return fmt.Errorf("invalid size %d: must not be negative", s)
		}
	}

	if c.threshold < 1 {
		return fmt.Errorf("invalid threshold %d: must be positive", c.threshold)
	}

	if c.swapDivisor < 1 {
		return fmt.Errorf("invalid swap divisor %d: must be positive", c.swapDivisor)
	}

	return nil
}

func runComparison(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg runConfig,
) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	gen := workload.NewGenerator(workload.Config{
		Seed:        cfg.seed,
		SwapDivisor: cfg.swapDivisor,
	})

	dists, err := gen.Select(cfg.distributions)
	if err != nil {
		return fmt.Errorf("select distributions: %w", err)
	}

	algos := sorting.Algorithms()

	logger.InfoContext(ctx, "starting comparison",
		slog.Any("sizes", cfg.sizes),
		slog.Int("threshold", cfg.threshold),
		slog.Int64("seed", gen.Seed()),
		slog.Int("distributions", len(dists)),
		slog.Int("algorithms", len(algos)),
	)

	hcfg := harness.Config{
		Sizes:     cfg.sizes,
		Threshold: cfg.threshold,
		Verify:    cfg.verify,
	}

	// Text output is streamed as each size completes.
	if !cfg.outputJSON {
		hcfg.OnSize = report.NewStream(out).Size
	}

	table, err := harness.NewComparer(hcfg, logger).Compare(ctx, dists, algos)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}

	table.Seed = gen.Seed()

	if cfg.outputJSON {
		if err := report.GenerateJSON(out, table); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	} else {
		report.Complexity(out, table)
	}

	logger.InfoContext(ctx, "comparison complete")

	return nil
}
