// Package harness times sorting algorithms and drives the comparison
// across distributions and sizes.
package harness

import (
	"encoding/json"
	"errors"
)

var (
	// ErrAlgorithmFailed wraps a panic raised by an algorithm under test.
	ErrAlgorithmFailed = errors.New("algorithm failed")
	// ErrUnsorted reports output that is unsorted or not a permutation
	// of the input.
	ErrUnsorted = errors.New("output is not a sorted permutation of the input")
	// ErrInvalidNumber reports an invocation count below one.
	ErrInvalidNumber = errors.New("invocation count must be at least 1")
)

// Measurement is the outcome of timing one algorithm on one input.
// Exactly one of Seconds or Err is meaningful.
type Measurement struct {
	Algorithm string
	Seconds   float64
	Err       error
}

// OK reports whether the measurement succeeded.
func (m Measurement) OK() bool {
	return m.Err == nil
}

// Less orders successful measurements by duration, ahead of every
// failed one.
func Less(a, b Measurement) bool {
	switch {
	case !a.OK():
		return false
	case !b.OK():
		return true
	default:
		return a.Seconds < b.Seconds
	}
}

// MarshalJSON renders the error as a string.
func (m Measurement) MarshalJSON() ([]byte, error) {
	out := struct {
		Algorithm string   `json:"algorithm"`
		Seconds   *float64 `json:"seconds,omitempty"`
		Error     string   `json:"error,omitempty"`
	}{Algorithm: m.Algorithm}

	if m.OK() {
		out.Seconds = &m.Seconds
	} else {
		out.Error = m.Err.Error()
	}

	return json.Marshal(out)
}

// SizeResult holds the measurements for one (distribution, size) pair in
// algorithm order.
type SizeResult struct {
	Size         int           `json:"size"`
	Measurements []Measurement `json:"measurements"`
}

// Get returns the measurement for the named algorithm.
func (s SizeResult) Get(algorithm string) (Measurement, bool) {
	for _, m := range s.Measurements {
		if m.Algorithm == algorithm {
			return m, true
		}
	}

	return Measurement{}, false
}

// Fastest returns the name of the quickest successful algorithm. Ties go
// to the earliest in algorithm order. It returns false when every
// measurement failed.
func (s SizeResult) Fastest() (string, bool) {
	best := -1
	for i, m := range s.Measurements {
		if !m.OK() {
			continue
		}
		if best < 0 || Less(m, s.Measurements[best]) {
			best = i
		}
	}

	if best < 0 {
		return "", false
	}

	return s.Measurements[best].Algorithm, true
}

// DistributionResult holds the size results for one distribution in the
// order the sizes were run.
type DistributionResult struct {
	Name  string       `json:"name"`
	Sizes []SizeResult `json:"sizes"`
}

// Table is the full comparison result in run order.
type Table struct {
	Seed          int64                `json:"seed"`
	Algorithms    []string             `json:"algorithms"`
	Distributions []DistributionResult `json:"distributions"`
}

// Distribution returns the results for the named distribution.
func (t *Table) Distribution(name string) (DistributionResult, bool) {
	for _, d := range t.Distributions {
		if d.Name == name {
			return d, true
		}
	}

	return DistributionResult{}, false
}
