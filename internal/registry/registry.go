// Package registry loads processed MedGuard datasets from disk and holds
// them in a name-keyed in-memory registry.
//
// A registry value is exactly one of four variants: a gridded multi-variable
// dataset, a gridded single-variable array, a vector feature collection, or
// a tabular record set. Keys are file stems (base name, extension stripped).
// Absence of a key is a normal state that consumers branch on; it is never
// an error.
package registry

// Kind identifies the variant stored under a registry key.
type Kind int

const (
	KindGrid Kind = iota
	KindGridArray
	KindVector
	KindTable
)

// Label returns the human-readable variant name shown in the data explorer.
func (k Kind) Label() string {
	switch k {
	case KindGrid:
		return "NetCDF (Gridded)"
	case KindGridArray:
		return "NetCDF (Array)"
	case KindVector:
		return "GeoJSON (Vector)"
	case KindTable:
		return "CSV (Tabular)"
	}
	return "Unknown"
}

// Dataset is the common surface of all four variants.
type Dataset interface {
	Name() string
	Kind() Kind
	// Source is the path of the file the dataset was parsed from,
	// used by the export endpoints.
	Source() string
}

// Registry is the immutable name->dataset mapping produced by Load.
// It is never mutated after Load returns; refresh builds a new one.
type Registry struct {
	byName map[string]Dataset
	names  []string // registration order
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]Dataset)}
}

// NewRegistry builds a registry from already-constructed datasets. Load is
// the normal constructor; this exists for embedding and tests. Later
// datasets with a duplicate name are ignored, matching Load's first-wins
// collision rule.
func NewRegistry(datasets ...Dataset) *Registry {
	r := newRegistry()
	for _, d := range datasets {
		if r.has(d.Name()) {
			continue
		}
		r.add(d)
	}
	return r
}

func (r *Registry) add(d Dataset) {
	r.byName[d.Name()] = d
	r.names = append(r.names, d.Name())
}

func (r *Registry) has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int { return len(r.byName) }

// Names returns dataset names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get looks up a dataset by name. A false return means "not yet available",
// not an error.
func (r *Registry) Get(name string) (Dataset, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Grid returns the named dataset if it is a gridded multi-variable dataset.
func (r *Registry) Grid(name string) (*Grid, bool) {
	g, ok := r.byName[name].(*Grid)
	return g, ok
}

// Array returns the named dataset if it is a gridded single-variable array.
func (r *Registry) Array(name string) (*GridArray, bool) {
	a, ok := r.byName[name].(*GridArray)
	return a, ok
}

// Vector returns the named dataset if it is a vector feature collection.
func (r *Registry) Vector(name string) (*VectorCollection, bool) {
	v, ok := r.byName[name].(*VectorCollection)
	return v, ok
}

// Table returns the named dataset if it is a tabular record set.
func (r *Registry) Table(name string) (*Table, bool) {
	t, ok := r.byName[name].(*Table)
	return t, ok
}
