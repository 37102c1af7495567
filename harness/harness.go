package harness

import (
	"fmt"
	"time"

	"github.com/aclements/go-moremath/stats"

	"github.com/weiihann/sortbench/sorting"
)

// Repeats is the number of repeat-groups per measurement.
const Repeats = 3

// Measure times fn on input and returns the minimum per-call duration in
// seconds over Repeats repeat-groups of number calls each. Every call
// gets a fresh copy of input, so input is never modified. A panic in fn
// is returned as an error wrapping ErrAlgorithmFailed.
func Measure(fn sorting.Func, input []int, number int) (float64, error) {
	samples, err := sample(fn, input, number)
	if err != nil {
		return 0, err
	}

	samp := stats.Sample{Xs: samples}
	lo, _ := samp.Bounds()

	return lo, nil
}

// sample returns the per-call estimate of each repeat-group.
func sample(fn sorting.Func, input []int, number int) ([]float64, error) {
	if number < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNumber, number)
	}

	samples := make([]float64, 0, Repeats)

	for r := 0; r < Repeats; r++ {
		elapsed, err := timeGroup(fn, input, number)
		if err != nil {
			return nil, err
		}

		samples = append(samples, elapsed.Seconds()/float64(number))
	}

	return samples, nil
}

func timeGroup(
	fn sorting.Func,
	input []int,
	number int,
) (elapsed time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAlgorithmFailed, r)
		}
	}()

	start := time.Now()

	for i := 0; i < number; i++ {
		fn(clone(input))
	}

	return time.Since(start), nil
}

// verify runs fn once on a copy of input and checks the result.
func verify(fn sorting.Func, input []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAlgorithmFailed, r)
		}
	}()

	out := fn(clone(input))

	if !sorting.IsSorted(out) || !sorting.SameElements(input, out) {
		return ErrUnsorted
	}

	return nil
}

func clone(input []int) []int {
	out := make([]int, len(input))
	copy(out, input)

	return out
}
