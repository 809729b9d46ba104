package registry

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("Mean: expected 2, got %f", got)
	}

	// NaN cells are skipped, not averaged in.
	if got := Mean([]float64{1, math.NaN(), 3}); got != 2 {
		t.Errorf("Mean with NaN: expected 2, got %f", got)
	}

	if got := Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean of empty: expected NaN, got %f", got)
	}
	if got := Mean([]float64{math.NaN()}); !math.IsNaN(got) {
		t.Errorf("Mean of all-NaN: expected NaN, got %f", got)
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{4, 1, 3, 2} // unsorted on purpose

	if got := Quantile(values, 0); got != 1 {
		t.Errorf("q=0: expected 1, got %f", got)
	}
	if got := Quantile(values, 1); got != 4 {
		t.Errorf("q=1: expected 4, got %f", got)
	}
	if got := Quantile(values, 0.5); got != 2.5 {
		t.Errorf("q=0.5: expected 2.5, got %f", got)
	}
	// Linear interpolation between order statistics.
	if got := Quantile(values, 0.25); got != 1.75 {
		t.Errorf("q=0.25: expected 1.75, got %f", got)
	}

	if got := Quantile([]float64{math.NaN()}, 0.5); !math.IsNaN(got) {
		t.Errorf("all-NaN: expected NaN, got %f", got)
	}
	if got := Quantile([]float64{1, math.NaN(), 3}, 0.5); got != 2 {
		t.Errorf("NaN skipped: expected 2, got %f", got)
	}
}

func TestCounts(t *testing.T) {
	values := []float64{0.1, 0.3, 0.5, math.NaN(), 0.7}

	if got := CountBetween(values, 0.3, 0.6); got != 2 {
		t.Errorf("CountBetween: expected 2, got %d", got)
	}
	if got := CountAtLeast(values, 0.6); got != 1 {
		t.Errorf("CountAtLeast: expected 1, got %d", got)
	}
}
