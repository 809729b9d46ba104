package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb/planar"

	"medguard/internal/models"
	"medguard/internal/registry"
)

// VesselAlerts extracts the suspicious-cluster rows from the
// illegal_fishing_suspects table. A missing table means zero alerts.
func VesselAlerts(reg *registry.Registry) ([]models.VesselAlert, bool) {
	t, ok := reg.Table(DatasetSuspects)
	if !ok {
		return nil, false
	}
	alerts := make([]models.VesselAlert, t.Len())
	for i := range alerts {
		alerts[i] = models.VesselAlert{
			ClusterID:   cellString(t, "cluster_id", i),
			NVessels:    int(cellFloat(t, "n_vessels", i)),
			EffortHours: cellFloat(t, "total_effort_hours", i),
			NearMPA:     cellBool(t, "near_mpa", i),
			RiskScore:   cellFloat(t, "risk_score", i),
		}
	}
	return alerts, true
}

// MPASites reduces the recommended protected-area features to centroids with
// their priority and connectivity scores.
func MPASites(reg *registry.Registry) ([]models.MPASite, bool) {
	v, ok := reg.Vector(DatasetMPASites)
	if !ok {
		return nil, false
	}
	sites := make([]models.MPASite, 0, v.Len())
	for _, f := range v.Features() {
		if f.Geometry == nil {
			continue
		}
		centroid, _ := planar.CentroidArea(f.Geometry)
		sites = append(sites, models.MPASite{
			Lat:               centroid.Lat(),
			Lon:               centroid.Lon(),
			PriorityScore:     f.Properties.MustFloat64("priority_score", 0),
			ConnectivityScore: f.Properties.MustFloat64("connectivity_score", 0),
		})
	}
	return sites, true
}

// Scenarios returns the socioeconomic scenario rows with their interpolated
// economic trajectories.
func Scenarios(reg *registry.Registry) ([]models.Scenario, bool) {
	t, ok := reg.Table(DatasetScenarios)
	if !ok {
		return nil, false
	}
	out := make([]models.Scenario, t.Len())
	for i := range out {
		immediate := cellFloat(t, "immediate_economic_impact_usd", i)
		longterm := cellFloat(t, "longterm_economic_benefit_usd", i)
		out[i] = models.Scenario{
			MPAExpansionPct:       cellFloat(t, "mpa_expansion_pct", i),
			ImmediateDisplacement: cellFloat(t, "immediate_job_displacement", i),
			LongtermJobCreation:   cellFloat(t, "longterm_job_creation", i),
			ImmediateImpactUSD:    immediate,
			LongtermBenefitUSD:    longterm,
			NetJobsAfterRecovery:  cellFloat(t, "net_jobs_after_recovery", i),
			BreakevenYear:         cellFloat(t, "breakeven_year", i),
			Trajectory:            Trajectory(immediate, longterm, trajectoryYears),
		}
	}
	return out, true
}

// cellFloat reads a numeric cell, coercing numeric text; missing columns or
// unparseable cells read as 0.
func cellFloat(t *registry.Table, col string, i int) float64 {
	switch v := t.Value(col, i).(type) {
	case float64:
		if math.IsNaN(v) {
			return 0
		}
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// cellString reads a cell as display text. Integral floats print without a
// fraction so numeric cluster ids stay readable.
func cellString(t *registry.Table, col string, i int) string {
	switch v := t.Value(col, i).(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && !math.IsNaN(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return fmt.Sprintf("%g", v)
	}
	return ""
}

// cellBool reads a boolean-ish cell: True/False text or a nonzero number.
func cellBool(t *registry.Table, col string, i int) bool {
	switch v := t.Value(col, i).(type) {
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	return false
}
