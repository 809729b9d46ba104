package engine

import (
	"math"

	"medguard/internal/models"
	"medguard/internal/registry"
)

// Risk classifications for the headline card.
const (
	RiskSafe     = "SAFE"
	RiskWarning  = "WARNING"
	RiskCritical = "CRITICAL"
)

// Alert levels for the risk band summary.
const (
	AlertOK      = "ok"
	AlertWarning = "warning"
	AlertHigh    = "alert"
)

// ClassifyRisk maps a mean risk index to its classification given the warn
// and critical thresholds (0.3 and 0.6 by default).
func ClassifyRisk(mean, warn, critical float64) string {
	switch {
	case mean > critical:
		return RiskCritical
	case mean > warn:
		return RiskWarning
	default:
		return RiskSafe
	}
}

// alertLevel grades the share of high-risk cells: above 30% is an alert,
// above 15% warrants closer monitoring.
func alertLevel(highPct float64) string {
	switch {
	case highPct > 30:
		return AlertHigh
	case highPct > 15:
		return AlertWarning
	default:
		return AlertOK
	}
}

// RiskSummary splits the risk grid into low (< warn), medium (warn..critical)
// and high (>= critical) bands as percentages of finite cells.
func RiskSummary(reg *registry.Registry, warn, critical float64) models.RiskSummary {
	g, ok := lookupGridded(reg, DatasetRiskIndex)
	if !ok {
		return models.RiskSummary{}
	}
	values := g.v.Values
	var total int
	for _, v := range values {
		if !math.IsNaN(v) {
			total++
		}
	}
	if total == 0 {
		return models.RiskSummary{}
	}
	low := registry.CountBetween(values, math.Inf(-1), warn)
	med := registry.CountBetween(values, warn, critical)
	high := registry.CountAtLeast(values, critical)

	highPct := float64(high) / float64(total) * 100
	return models.RiskSummary{
		Available:  true,
		LowPct:     float64(low) / float64(total) * 100,
		MediumPct:  float64(med) / float64(total) * 100,
		HighPct:    highPct,
		AlertLevel: alertLevel(highPct),
	}
}
