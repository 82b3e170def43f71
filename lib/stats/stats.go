package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Variance returns the unbiased sample variance (n-1 denominator).
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Variance(xs, nil)
}

type Line struct {
	Slope     float64
	Intercept float64
	R2        float64
}

func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Fit computes an ordinary least squares line through (xs, ys).
func Fit(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) {
		return Line{}, fmt.Errorf("mismatched sample lengths: %d != %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return Line{}, fmt.Errorf("need at least 2 points, got %d", len(xs))
	}
	if stat.Variance(xs, nil) == 0 {
		return Line{}, fmt.Errorf("x values are constant")
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	line := Line{Slope: slope, Intercept: intercept}
	if stat.Variance(ys, nil) > 0 {
		line.R2 = stat.RSquared(xs, ys, nil, intercept, slope)
	}
	return line, nil
}

type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram buckets xs into `n` equal-width bins spanning [min, max].
// The top edge is inclusive so the maximum lands in the last bin.
func Histogram(xs []float64, n int) []Bin {
	if len(xs) == 0 || n <= 0 {
		return nil
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	lo := sorted[0]
	hi := sorted[len(sorted)-1]
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(xs)}}
	}

	dividers := make([]float64, n+1)
	floats.Span(dividers, lo, hi)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = dividers[i]
		bins[i].High = dividers[i+1]
	}

	// stat.Histogram excludes the final divider, nudge it up so the
	// maximum is counted
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(make([]float64, n), dividers, sorted, nil)
	for i, c := range counts {
		bins[i].Count = int(c)
	}
	return bins
}
