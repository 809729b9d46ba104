package engine

import (
	"fmt"
	"math"
	"time"

	"medguard/internal/models"
	"medguard/internal/registry"
)

// Snapshot builds the precomputed dashboard payload: the four headline
// metric cards plus the data-explorer inventory.
func Snapshot(reg *registry.Registry, warn, critical float64) *models.DashboardData {
	data := &models.DashboardData{
		Metrics:     buildMetrics(reg, warn, critical),
		Datasets:    inventory(reg),
		GeneratedAt: time.Now(),
	}
	return data
}

func buildMetrics(reg *registry.Registry, warn, critical float64) models.Metrics {
	var m models.Metrics

	if g, ok := lookupGridded(reg, DatasetRiskIndex); ok {
		if mean := g.v.Mean(); !math.IsNaN(mean) {
			m.RiskIndex = models.RiskMetric{
				Available:      true,
				Mean:           mean,
				Classification: ClassifyRisk(mean, warn, critical),
			}
		}
	}
	if g, ok := lookupGridded(reg, DatasetHabitat); ok {
		if mean := g.v.Mean(); !math.IsNaN(mean) {
			m.Habitat = models.ScalarMetric{Available: true, Value: mean}
		}
	}
	if g, ok := lookupGridded(reg, DatasetConnectivity); ok {
		if mean := g.v.Mean(); !math.IsNaN(mean) {
			m.Connectivity = models.ScalarMetric{Available: true, Value: mean}
		}
	}

	m.Alerts = models.AlertMetric{Status: "ALL CLEAR"}
	if t, ok := reg.Table(DatasetSuspects); ok && t.Len() > 0 {
		m.Alerts = models.AlertMetric{Count: t.Len(), Status: "VESSELS FLAGGED"}
	}
	return m
}

// inventory lists every loaded dataset with its variant label and a size
// description, in registration order.
func inventory(reg *registry.Registry) []models.DatasetInfo {
	infos := make([]models.DatasetInfo, 0, reg.Len())
	for _, name := range reg.Names() {
		ds, ok := reg.Get(name)
		if !ok {
			continue
		}
		var size string
		switch d := ds.(type) {
		case *registry.Grid:
			size = fmt.Sprintf("%.1f MB", float64(d.NBytes())/1e6)
		case *registry.GridArray:
			size = fmt.Sprintf("%.1f MB", float64(d.NBytes())/1e6)
		case *registry.VectorCollection:
			size = fmt.Sprintf("%d features", d.Len())
		case *registry.Table:
			size = fmt.Sprintf("%d rows", d.Len())
		}
		infos = append(infos, models.DatasetInfo{
			Name: name,
			Type: ds.Kind().Label(),
			Size: size,
		})
	}
	return infos
}
