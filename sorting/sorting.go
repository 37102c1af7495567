// Package sorting holds the algorithms under test and the helpers used
// to verify their output.
package sorting

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// Func takes a slice and returns it sorted. The result may alias the
// argument.
type Func func([]int) []int

// Algorithm is a named sorting function.
type Algorithm struct {
	Name string
	Sort Func
}

// Algorithms returns the algorithms under test in report order.
func Algorithms() []Algorithm {
	return []Algorithm{
		{Name: "Merge Sort", Sort: MergeSort},
		{Name: "Insertion Sort", Sort: InsertionSort},
		{Name: "Builtin Sort", Sort: Builtin},
	}
}

// MergeSort returns a new slice holding src in ascending order.
func MergeSort(src []int) []int {
	return mergeSort(src)
}

// InsertionSort sorts src in place and returns it.
func InsertionSort(src []int) []int {
	insertionSort(src)

	return src
}

// Builtin sorts src in place with the standard library's stable sort and
// returns it.
func Builtin(src []int) []int {
	slices.SortStableFunc(src, cmp.Compare[int])

	return src
}

func mergeSort[T constraints.Integer](src []T) []T {
	if len(src) <= 1 {
		return slices.Clone(src)
	}

	mid := len(src) / 2

	return merge(mergeSort(src[:mid]), mergeSort(src[mid:]))
}

// merge takes from left on ties so equal keys keep their order.
func merge[T constraints.Integer](left, right []T) []T {
	out := make([]T, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			out = append(out, right[j])
			j++
		} else {
			out = append(out, left[i])
			i++
		}
	}

	out = append(out, left[i:]...)
	out = append(out, right[j:]...)

	return out
}

func insertionSort[T constraints.Integer](v []T) {
	for i := 1; i < len(v); i++ {
		key := v[i]
		j := i - 1
		for j >= 0 && v[j] > key {
			v[j+1] = v[j]
			j--
		}
		v[j+1] = key
	}
}

// IsSorted reports whether v is in non-decreasing order.
func IsSorted[T constraints.Integer](v []T) bool {
	for i := 1; i < len(v); i++ {
		if v[i] < v[i-1] {
			return false
		}
	}

	return true
}

// SameElements reports whether a and b hold the same multiset of values.
func SameElements[T constraints.Integer](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}

	for _, v := range b {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}

	return true
}
