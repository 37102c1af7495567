// Package report formats comparison results as text blocks and a
// growth-ratio analysis.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/aclements/go-moremath/stats"

	"github.com/weiihann/sortbench/harness"
)

// RandomDistribution is the distribution the complexity analysis reads.
const RandomDistribution = "Random data"

// Header writes the title printed before the first distribution.
func Header(w io.Writer) {
	fmt.Fprintln(w, "Comparative analysis of sorting algorithms")
	fmt.Fprintln(w)
}

// WriteDistribution writes the heading for a distribution.
func WriteDistribution(w io.Writer, name string) {
	fmt.Fprintf(w, "Data type: %s\n", name)
}

// WriteSize writes the timing block for one (distribution, size) pair.
func WriteSize(w io.Writer, res harness.SizeResult) {
	fmt.Fprintf(w, "Size: %d\n", res.Size)

	for _, m := range res.Measurements {
		fmt.Fprintf(w, "  %s: %s\n", m.Algorithm, formatMeasurement(m))
	}

	fastest, ok := res.Fastest()
	if !ok {
		fastest = "n/a"
	}

	fmt.Fprintf(w, "  Fastest: %s\n", fastest)
	fmt.Fprintln(w)
}

// Stream writes timing blocks as results arrive, printing a
// distribution heading whenever the distribution changes.
type Stream struct {
	w       io.Writer
	current string
	started bool
}

// NewStream writes the report header to w and returns a Stream over it.
func NewStream(w io.Writer) *Stream {
	Header(w)

	return &Stream{w: w}
}

// Size writes the block for one (distribution, size) pair.
func (s *Stream) Size(dist string, res harness.SizeResult) {
	if !s.started || dist != s.current {
		WriteDistribution(s.w, dist)
		s.current = dist
		s.started = true
	}

	WriteSize(s.w, res)
}

// Generate writes the timing blocks for every distribution in table.
func Generate(w io.Writer, table *harness.Table) error {
	if table == nil || len(table.Distributions) == 0 {
		return fmt.Errorf("no results to report")
	}

	stream := NewStream(w)

	for _, d := range table.Distributions {
		if len(d.Sizes) == 0 {
			WriteDistribution(w, d.Name)

			continue
		}

		for _, s := range d.Sizes {
			stream.Size(d.Name, s)
		}
	}

	return nil
}

// Complexity writes, for the random distribution, each algorithm's time
// per size in ascending size order alongside its ratio to the previous
// size.
func Complexity(w io.Writer, table *harness.Table) {
	fmt.Fprintln(w, "Complexity analysis of algorithms")
	fmt.Fprintln(w)

	if table == nil {
		return
	}

	random, ok := table.Distribution(RandomDistribution)
	if !ok || len(random.Sizes) == 0 {
		return
	}

	fmt.Fprintln(w, "Analysis on random data:")
	fmt.Fprintln(w)

	sizes := slices.Clone(random.Sizes)
	slices.SortStableFunc(sizes, func(a, b harness.SizeResult) int {
		return a.Size - b.Size
	})

	prev := make(map[string]harness.Measurement, len(table.Algorithms))

	for _, s := range sizes {
		fmt.Fprintf(w, "Array size: %d\n", s.Size)

		for _, m := range s.Measurements {
			line := formatMeasurement(m)

			if p, ok := prev[m.Algorithm]; ok {
				if r, ok := Ratio(p, m); ok {
					line += fmt.Sprintf(" (x%.2f)", r)
				}
			}

			fmt.Fprintf(w, "%s: %s\n", m.Algorithm, line)
			prev[m.Algorithm] = m
		}

		fmt.Fprintln(w)
	}

	writeGrowthSummary(w, table.Algorithms, sizes)
}

// Ratio returns cur/prev. It returns false when either measurement
// failed or prev is not positive.
func Ratio(prev, cur harness.Measurement) (float64, bool) {
	if !prev.OK() || !cur.OK() || prev.Seconds <= 0 {
		return 0, false
	}

	return cur.Seconds / prev.Seconds, true
}

// writeGrowthSummary writes the mean step ratio per algorithm together
// with the mean size step, so the two can be compared by eye.
func writeGrowthSummary(
	w io.Writer,
	algorithms []string,
	sizes []harness.SizeResult,
) {
	if len(sizes) < 2 {
		return
	}

	var sizeSteps []float64
	for i := 1; i < len(sizes); i++ {
		if sizes[i-1].Size > 0 {
			sizeSteps = append(sizeSteps,
				float64(sizes[i].Size)/float64(sizes[i-1].Size))
		}
	}

	if len(sizeSteps) == 0 {
		return
	}

	fmt.Fprintf(w, "Mean size step: x%.2f\n", stats.Mean(sizeSteps))

	for _, name := range algorithms {
		var ratios []float64

		for i := 1; i < len(sizes); i++ {
			prev, ok1 := sizes[i-1].Get(name)
			cur, ok2 := sizes[i].Get(name)
			if !ok1 || !ok2 {
				continue
			}

			if r, ok := Ratio(prev, cur); ok {
				ratios = append(ratios, r)
			}
		}

		if len(ratios) == 0 {
			fmt.Fprintf(w, "%s: mean time step n/a\n", name)

			continue
		}

		fmt.Fprintf(w, "%s: mean time step x%.2f\n", name, stats.Mean(ratios))
	}

	fmt.Fprintln(w)
}

// GenerateJSON writes the table as JSON to w.
func GenerateJSON(w io.Writer, table *harness.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(table)
}

func formatMeasurement(m harness.Measurement) string {
	if !m.OK() {
		return fmt.Sprintf("failed (%v)", m.Err)
	}

	return formatMs(m.Seconds)
}

func formatMs(seconds float64) string {
	return fmt.Sprintf("%.3f ms", seconds*1000)
}
