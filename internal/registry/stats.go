package registry

import (
	"math"
	"sort"
)

// Mean returns the NaN-skipping arithmetic mean of values.
// It returns NaN when there are no finite values.
func Mean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Quantile returns the q-th quantile (0 <= q <= 1) of values with linear
// interpolation between order statistics, skipping NaN cells. It returns
// NaN when there are no finite values.
func Quantile(values []float64, q float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	if q <= 0 {
		return clean[0]
	}
	if q >= 1 {
		return clean[len(clean)-1]
	}
	pos := q * float64(len(clean)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return clean[lo]
	}
	frac := pos - float64(lo)
	return clean[lo]*(1-frac) + clean[hi]*frac
}

// CountBetween counts finite values v with lo <= v < hi.
func CountBetween(values []float64, lo, hi float64) int {
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v >= lo && v < hi {
			n++
		}
	}
	return n
}

// CountAtLeast counts finite values v with v >= threshold.
func CountAtLeast(values []float64, threshold float64) int {
	var n int
	for _, v := range values {
		if !math.IsNaN(v) && v >= threshold {
			n++
		}
	}
	return n
}
