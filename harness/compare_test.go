package harness

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/weiihann/sortbench/sorting"
	"github.com/weiihann/sortbench/workload"
)

func TestNumber(t *testing.T) {
	c := NewComparer(Config{}, discardLogger())

	tests := []struct {
		size int
		want int
	}{
		{0, 5},
		{100, 5},
		{4999, 5},
		{5000, 1},
		{10000, 1},
	}

	for _, tt := range tests {
		if got := c.Number(tt.size); got != tt.want {
			t.Errorf("Number(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestNewComparerDefaults(t *testing.T) {
	c := NewComparer(Config{}, discardLogger())

	if !slices.Equal(c.cfg.Sizes, DefaultSizes()) {
		t.Errorf("Sizes = %v, want %v", c.cfg.Sizes, DefaultSizes())
	}
	if c.cfg.Threshold != DefaultThreshold {
		t.Errorf("Threshold = %d, want %d", c.cfg.Threshold, DefaultThreshold)
	}
}

func TestCompareFailureContinues(t *testing.T) {
	gen := workload.NewGenerator(workload.Config{Seed: 1})
	algos := []sorting.Algorithm{
		{Name: "Merge Sort", Sort: sorting.MergeSort},
		{Name: "Broken", Sort: panicking},
		{Name: "Builtin Sort", Sort: sorting.Builtin},
	}

	var streamed int

	c := NewComparer(Config{
		Sizes:  []int{10, 50},
		OnSize: func(string, SizeResult) { streamed++ },
	}, discardLogger())

	table, err := c.Compare(context.Background(), gen.Distributions(), algos)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(table.Distributions) != 4 {
		t.Fatalf("distributions = %d, want 4", len(table.Distributions))
	}
	if streamed != 8 {
		t.Errorf("OnSize called %d times, want 8", streamed)
	}
	if !slices.Equal(table.Algorithms, []string{"Merge Sort", "Broken", "Builtin Sort"}) {
		t.Errorf("Algorithms = %v", table.Algorithms)
	}

	for _, dr := range table.Distributions {
		for _, sr := range dr.Sizes {
			if len(sr.Measurements) != 3 {
				t.Fatalf("%s/%d: %d measurements, want 3",
					dr.Name, sr.Size, len(sr.Measurements))
			}

			broken, ok := sr.Get("Broken")
			if !ok || broken.OK() {
				t.Errorf("%s/%d: Broken = %+v, want failure",
					dr.Name, sr.Size, broken)
			}
			if !errors.Is(broken.Err, ErrAlgorithmFailed) {
				t.Errorf("%s/%d: err = %v, want ErrAlgorithmFailed",
					dr.Name, sr.Size, broken.Err)
			}
			// The measurement already names the algorithm.
			if broken.Err != nil && strings.Contains(broken.Err.Error(), "Broken") {
				t.Errorf("%s/%d: err %q repeats the algorithm name",
					dr.Name, sr.Size, broken.Err)
			}

			for _, name := range []string{"Merge Sort", "Builtin Sort"} {
				m, ok := sr.Get(name)
				if !ok || !m.OK() {
					t.Errorf("%s/%d: %s = %+v, want success",
						dr.Name, sr.Size, name, m)
				}
			}

			fastest, ok := sr.Fastest()
			if !ok || fastest == "Broken" {
				t.Errorf("%s/%d: Fastest = %q, %v", dr.Name, sr.Size, fastest, ok)
			}
		}
	}
}

func TestCompareRandom5000(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing run in short mode")
	}

	gen := workload.NewGenerator(workload.Config{Seed: 42})
	random, err := gen.Lookup("random")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	c := NewComparer(Config{Sizes: []int{5000}, Verify: true}, discardLogger())

	table, err := c.Compare(context.Background(),
		[]workload.Distribution{random}, sorting.Algorithms())
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	dr, ok := table.Distribution("Random data")
	if !ok || len(dr.Sizes) != 1 {
		t.Fatalf("missing random results: %+v", table)
	}

	sr := dr.Sizes[0]
	names := make([]string, 0, 3)

	for _, algo := range sorting.Algorithms() {
		names = append(names, algo.Name)

		m, ok := sr.Get(algo.Name)
		if !ok || !m.OK() {
			t.Fatalf("%s: %+v, want success", algo.Name, m)
		}
		if m.Seconds <= 0 || math.IsInf(m.Seconds, 0) {
			t.Errorf("%s: seconds = %v, want finite positive",
				algo.Name, m.Seconds)
		}
	}

	fastest, ok := sr.Fastest()
	if !ok || !slices.Contains(names, fastest) {
		t.Errorf("Fastest = %q, want one of %v", fastest, names)
	}
}

func TestCompareVerifyCatchesUnsorted(t *testing.T) {
	gen := workload.NewGenerator(workload.Config{Seed: 1})
	sorted, err := gen.Lookup("sorted")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	c := NewComparer(Config{Sizes: []int{20}, Verify: true}, discardLogger())

	table, err := c.Compare(context.Background(),
		[]workload.Distribution{sorted},
		[]sorting.Algorithm{{Name: "Reverse", Sort: reverseInPlace}})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	m, _ := table.Distributions[0].Sizes[0].Get("Reverse")
	if !errors.Is(m.Err, ErrUnsorted) {
		t.Errorf("err = %v, want ErrUnsorted", m.Err)
	}
}

func TestCompareReusesInput(t *testing.T) {
	var inputs [][]int

	dist := workload.Distribution{
		Key:  "fixed",
		Name: "Fixed",
		Generate: func(size int) []int {
			in := make([]int, size)
			for i := range in {
				in[i] = size - i
			}
			inputs = append(inputs, in)

			return in
		},
	}

	c := NewComparer(Config{Sizes: []int{8}}, discardLogger())

	if _, err := c.Compare(context.Background(),
		[]workload.Distribution{dist}, sorting.Algorithms()); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(inputs) != 1 {
		t.Fatalf("generator called %d times, want 1", len(inputs))
	}
	if !slices.Equal(inputs[0], []int{8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Errorf("shared input modified: %v", inputs[0])
	}
}

func TestCompareCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := workload.NewGenerator(workload.Config{Seed: 1})
	c := NewComparer(Config{Sizes: []int{10}}, discardLogger())

	_, err := c.Compare(ctx, gen.Distributions(), sorting.Algorithms())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCompareCancelledBetweenAlgorithms(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var after int

	algos := []sorting.Algorithm{
		{Name: "Cancel", Sort: func(v []int) []int {
			cancel()

			return sorting.Builtin(v)
		}},
		{Name: "After", Sort: func(v []int) []int {
			after++

			return sorting.Builtin(v)
		}},
	}

	gen := workload.NewGenerator(workload.Config{Seed: 1})
	random, err := gen.Lookup("random")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	c := NewComparer(Config{Sizes: []int{10, 20}}, discardLogger())

	table, err := c.Compare(ctx, []workload.Distribution{random}, algos)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	if after != 0 {
		t.Errorf("algorithm after cancellation ran %d times, want 0", after)
	}
	if len(table.Distributions) != 1 || len(table.Distributions[0].Sizes) != 0 {
		t.Errorf("interrupted size should not be recorded: %+v", table.Distributions)
	}
}
