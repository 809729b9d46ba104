package registry

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// VectorCollection is an ordered set of geometric features with named
// attributes, parsed from a GeoJSON feature collection.
type VectorCollection struct {
	name   string
	source string
	fc     *geojson.FeatureCollection
}

func (v *VectorCollection) Name() string   { return v.name }
func (v *VectorCollection) Kind() Kind     { return KindVector }
func (v *VectorCollection) Source() string { return v.source }

// Len returns the number of features.
func (v *VectorCollection) Len() int { return len(v.fc.Features) }

// Features returns the features in file order.
func (v *VectorCollection) Features() []*geojson.Feature { return v.fc.Features }

// NewVectorCollection wraps an in-memory feature collection.
func NewVectorCollection(name string, fc *geojson.FeatureCollection) *VectorCollection {
	return &VectorCollection{name: name, fc: fc}
}

func parseVector(path, stem string) (*VectorCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	return &VectorCollection{name: stem, source: path, fc: fc}, nil
}
