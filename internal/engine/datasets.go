// Package engine computes the aggregates the dashboard renders: headline
// metrics, risk band summaries, grid surfaces and point sets, vessel alert
// tables, MPA recommendations and the policy simulator.
//
// Every function takes the registry (or a dataset pulled from it) as input
// and treats missing datasets as "not yet available", never as an error.
package engine

import (
	"medguard/internal/registry"
)

// Dataset names the rendering layer expects. These are the file stems the
// processing pipeline writes into the data directory.
const (
	DatasetRiskIndex    = "overfishing_risk_index"
	DatasetHabitat      = "habitat_quality_index"
	DatasetConnectivity = "larval_connectivity"
	DatasetSuspects     = "illegal_fishing_suspects"
	DatasetMPASites     = "recommended_mpa_locations"
	DatasetScenarios    = "socioeconomic_scenarios"
)

// gridded adapts the two gridded variants to one read surface.
type gridded struct {
	v     *registry.GridVar
	coord func(dim string) ([]float64, bool)
}

// lookupGridded resolves a gridded dataset by name. Multi-variable datasets
// expose their first data variable; that is what the single-product files
// the pipeline writes boil down to.
func lookupGridded(reg *registry.Registry, name string) (gridded, bool) {
	ds, ok := reg.Get(name)
	if !ok {
		return gridded{}, false
	}
	switch d := ds.(type) {
	case *registry.GridArray:
		return gridded{v: d.Var(), coord: d.Coord}, true
	case *registry.Grid:
		vars := d.Vars()
		if len(vars) == 0 {
			return gridded{}, false
		}
		return gridded{v: vars[0], coord: d.Coord}, true
	}
	return gridded{}, false
}
