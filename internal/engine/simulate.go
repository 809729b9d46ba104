package engine

import "medguard/internal/models"

// Per-percent simulator coefficients: each percent of MPA expansion buys an
// estimated 2.5% network efficiency gain and 650 km² of new protected area.
const (
	efficiencyGainPerPct = 2.5
	protectedKm2PerPct   = 650
)

// trajectoryYears is the 0..10 year window of the economic timeline chart.
const trajectoryYears = 11

// Simulate models the impact of expanding protected areas by the given
// percentage.
func Simulate(expansionPct float64) models.Simulation {
	if expansionPct < 0 {
		expansionPct = 0
	}
	return models.Simulation{
		ExpansionPct:      expansionPct,
		EfficiencyGainPct: expansionPct * efficiencyGainPerPct,
		NewProtectedKm2:   expansionPct * protectedKm2PerPct,
	}
}

// Trajectory interpolates the economic timeline linearly from the immediate
// impact (as a loss) to the long-term benefit over n evenly spaced steps.
func Trajectory(immediateImpact, longtermBenefit float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	start := -immediateImpact
	if n == 1 {
		out[0] = start
		return out
	}
	step := (longtermBenefit - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
