// Package summary computes per-transcript and per-gene statistics from the
// feature hierarchy.
package summary

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Number is any value a statistic can be computed over.
type Number interface {
	constraints.Integer | constraints.Float
}

// Stats describes a set of values. With no values every statistic is NaN.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// NoData is the Stats of an empty set.
func NoData() Stats {
	nan := math.NaN()
	return Stats{Min: nan, Max: nan, Mean: nan, Median: nan}
}

// Describe computes count, min, max, mean and median. NaN inputs are
// skipped.
func Describe[T Number](values []T) Stats {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		x = append(x, f)
	}
	if len(x) == 0 {
		return NoData()
	}

	sort.Float64s(x)
	return Stats{
		Count:  len(x),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		Mean:   stat.Mean(x, nil),
		Median: median(x),
	}
}

// median of sorted, non-empty x; the mean of the two middle values when the
// length is even.
func median(x []float64) float64 {
	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}
	return (x[n/2-1] + x[n/2]) / 2
}

// maxOf returns the largest non-NaN value, or NaN.
func maxOf(values []float64) float64 {
	return Describe(values).Max
}

// minOf returns the smallest non-NaN value, or NaN.
func minOf(values []float64) float64 {
	return Describe(values).Min
}
