package engine

import (
	"math"
	"testing"

	"medguard/internal/registry"
)

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		mean float64
		want string
	}{
		{0.2, RiskSafe},
		{0.3, RiskSafe}, // thresholds are exclusive
		{0.5, RiskWarning},
		{0.6, RiskWarning},
		{0.8, RiskCritical},
	}
	for _, c := range cases {
		if got := ClassifyRisk(c.mean, 0.3, 0.6); got != c.want {
			t.Errorf("ClassifyRisk(%f): expected %s, got %s", c.mean, c.want, got)
		}
	}
}

func TestRiskSummaryBands(t *testing.T) {
	reg := registry.NewRegistry(registry.NewGridArray(DatasetRiskIndex, &registry.GridVar{
		Name:   "risk",
		Dims:   []string{"lat", "lon"},
		Shape:  []int{1, 5},
		Values: []float64{0.1, 0.4, 0.7, 0.9, math.NaN()},
	}, nil))

	s := RiskSummary(reg, 0.3, 0.6)
	if !s.Available {
		t.Fatal("summary should be available")
	}
	if s.LowPct != 25 || s.MediumPct != 25 || s.HighPct != 50 {
		t.Errorf("bands: expected 25/25/50, got %f/%f/%f", s.LowPct, s.MediumPct, s.HighPct)
	}
	if s.AlertLevel != AlertHigh {
		t.Errorf("expected alert, got %s", s.AlertLevel)
	}
}

func TestRiskSummaryLevels(t *testing.T) {
	build := func(values []float64) *registry.Registry {
		return registry.NewRegistry(registry.NewGridArray(DatasetRiskIndex, &registry.GridVar{
			Name:   "risk",
			Dims:   []string{"cell"},
			Shape:  []int{len(values)},
			Values: values,
		}, nil))
	}

	// 1 of 10 high: 10% is within the acceptable range.
	ok := RiskSummary(build([]float64{0.7, 0, 0, 0, 0, 0, 0, 0, 0, 0}), 0.3, 0.6)
	if ok.AlertLevel != AlertOK {
		t.Errorf("expected ok, got %s", ok.AlertLevel)
	}

	// 2 of 10 high: 20% warrants monitoring.
	warn := RiskSummary(build([]float64{0.7, 0.7, 0, 0, 0, 0, 0, 0, 0, 0}), 0.3, 0.6)
	if warn.AlertLevel != AlertWarning {
		t.Errorf("expected warning, got %s", warn.AlertLevel)
	}
}

func TestRiskSummaryMissing(t *testing.T) {
	s := RiskSummary(registry.NewRegistry(), 0.3, 0.6)
	if s.Available {
		t.Error("summary should be unavailable without the risk dataset")
	}
}
