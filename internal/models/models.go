package models

import "time"

// DashboardData is the precomputed snapshot behind the metrics and
// data-explorer endpoints.
type DashboardData struct {
	Metrics     Metrics       `json:"metrics"`
	Datasets    []DatasetInfo `json:"datasets"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Metrics are the four headline cards.
type Metrics struct {
	RiskIndex    RiskMetric   `json:"overfishing_risk"`
	Habitat      ScalarMetric `json:"habitat_quality"`
	Connectivity ScalarMetric `json:"larval_connectivity"`
	Alerts       AlertMetric  `json:"illegal_activity"`
}

// ScalarMetric is a single aggregate with an availability flag; consumers
// render a placeholder when Available is false.
type ScalarMetric struct {
	Available bool    `json:"available"`
	Value     float64 `json:"value,omitempty"`
}

// RiskMetric is the overfishing risk card: mean index plus classification
// (SAFE / WARNING / CRITICAL).
type RiskMetric struct {
	Available      bool    `json:"available"`
	Mean           float64 `json:"mean,omitempty"`
	Classification string  `json:"classification,omitempty"`
}

// AlertMetric is the illegal-activity card. Absence of the suspects table
// reads as zero alerts, not as missing data.
type AlertMetric struct {
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// RiskSummary breaks the risk grid into low/medium/high bands.
type RiskSummary struct {
	Available  bool    `json:"available"`
	LowPct     float64 `json:"low_pct,omitempty"`
	MediumPct  float64 `json:"medium_pct,omitempty"`
	HighPct    float64 `json:"high_pct,omitempty"`
	AlertLevel string  `json:"alert_level,omitempty"`
}

// Surface is a 2D lat/lon value matrix for surface plots. Cells without a
// finite value are null.
type Surface struct {
	Available bool         `json:"available"`
	Lats      []float64    `json:"lats,omitempty"`
	Lons      []float64    `json:"lons,omitempty"`
	Values    [][]*float64 `json:"values,omitempty"`
}

// GridPoint is one cell of a gridded dataset with its location.
type GridPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

// PointSet is a flat list of grid points (habitat map, hotspots).
type PointSet struct {
	Available bool        `json:"available"`
	Threshold float64     `json:"threshold,omitempty"`
	Points    []GridPoint `json:"points,omitempty"`
}

// VesselAlert is one suspicious-cluster row.
type VesselAlert struct {
	ClusterID   string  `json:"cluster_id"`
	NVessels    int     `json:"n_vessels"`
	EffortHours float64 `json:"total_effort_hours"`
	NearMPA     bool    `json:"near_mpa"`
	RiskScore   float64 `json:"risk_score"`
}

// MPASite is one recommended protected-area site, reduced to its centroid.
type MPASite struct {
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	PriorityScore     float64 `json:"priority_score"`
	ConnectivityScore float64 `json:"connectivity_score"`
}

// Simulation is the MPA expansion policy simulator output.
type Simulation struct {
	ExpansionPct      float64 `json:"expansion_pct"`
	EfficiencyGainPct float64 `json:"efficiency_gain_pct"`
	NewProtectedKm2   float64 `json:"new_protected_km2"`
}

// Scenario is one socioeconomic scenario row plus its interpolated
// economic trajectory (year 0 through 10).
type Scenario struct {
	MPAExpansionPct       float64   `json:"mpa_expansion_pct"`
	ImmediateDisplacement float64   `json:"immediate_job_displacement"`
	LongtermJobCreation   float64   `json:"longterm_job_creation"`
	ImmediateImpactUSD    float64   `json:"immediate_economic_impact_usd"`
	LongtermBenefitUSD    float64   `json:"longterm_economic_benefit_usd"`
	NetJobsAfterRecovery  float64   `json:"net_jobs_after_recovery"`
	BreakevenYear         float64   `json:"breakeven_year"`
	Trajectory            []float64 `json:"economic_trajectory"`
}

// DatasetInfo is one data-explorer inventory row.
type DatasetInfo struct {
	Name string `json:"dataset"`
	Type string `json:"type"`
	Size string `json:"size"`
}

// Health reports load state.
type Health struct {
	Loading  bool      `json:"loading"`
	Datasets int       `json:"datasets"`
	LoadedAt time.Time `json:"loaded_at,omitzero"`
}
