package registry

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
)

var (
	errNoDataVars  = errors.New("no data variables")
	errNotSingle   = errors.New("not a single-variable file")
	errNotGridded  = errors.New("not a multi-variable file")
	errNotNumeric  = errors.New("variable is not numeric")
	errRaggedArray = errors.New("ragged array values")
)

// GridVar is one labeled N-dimensional variable of a gridded dataset.
// Values are flattened row-major; Shape gives the per-dimension lengths.
type GridVar struct {
	Name   string
	Dims   []string
	Shape  []int
	Values []float64
}

// Len returns the total number of cells.
func (v *GridVar) Len() int { return len(v.Values) }

// Mean returns the NaN-skipping mean over all cells.
func (v *GridVar) Mean() float64 { return Mean(v.Values) }

// Quantile returns the q-th quantile over all cells.
func (v *GridVar) Quantile(q float64) float64 { return Quantile(v.Values, q) }

// NBytes is the in-memory size of the cell values.
func (v *GridVar) NBytes() int { return 8 * len(v.Values) }

// Grid is a gridded multi-variable dataset: two or more data variables
// sharing coordinate dimensions.
type Grid struct {
	name   string
	source string
	vars   []*GridVar
	byName map[string]*GridVar
	coords map[string][]float64
}

func (g *Grid) Name() string   { return g.name }
func (g *Grid) Kind() Kind     { return KindGrid }
func (g *Grid) Source() string { return g.source }

// Vars returns the data variables in file order.
func (g *Grid) Vars() []*GridVar { return g.vars }

// Var returns a data variable by name.
func (g *Grid) Var(name string) (*GridVar, bool) {
	v, ok := g.byName[name]
	return v, ok
}

// Coord returns the coordinate values for a dimension, if the file had a
// matching coordinate variable.
func (g *Grid) Coord(dim string) ([]float64, bool) {
	c, ok := g.coords[dim]
	return c, ok
}

// NBytes is the in-memory size of all data variables.
func (g *Grid) NBytes() int {
	var n int
	for _, v := range g.vars {
		n += v.NBytes()
	}
	return n
}

// GridArray is a gridded single-variable array: the fallback variant for
// files carrying exactly one data variable.
type GridArray struct {
	name   string
	source string
	v      *GridVar
	coords map[string][]float64
}

func (a *GridArray) Name() string   { return a.name }
func (a *GridArray) Kind() Kind     { return KindGridArray }
func (a *GridArray) Source() string { return a.source }

// Var returns the sole data variable.
func (a *GridArray) Var() *GridVar { return a.v }

// Coord returns the coordinate values for a dimension.
func (a *GridArray) Coord(dim string) ([]float64, bool) {
	c, ok := a.coords[dim]
	return c, ok
}

// Mean is the NaN-skipping mean over all cells.
func (a *GridArray) Mean() float64 { return a.v.Mean() }

// Quantile is the q-th quantile over all cells.
func (a *GridArray) Quantile(q float64) float64 { return a.v.Quantile(q) }

// Len is the total number of cells.
func (a *GridArray) Len() int { return a.v.Len() }

// NBytes is the in-memory size of the cell values.
func (a *GridArray) NBytes() int { return a.v.NBytes() }

// NewGrid builds an in-memory multi-variable dataset.
func NewGrid(name string, vars []*GridVar, coords map[string][]float64) *Grid {
	byName := make(map[string]*GridVar, len(vars))
	for _, v := range vars {
		byName[v.Name] = v
	}
	if coords == nil {
		coords = map[string][]float64{}
	}
	return &Grid{name: name, vars: vars, byName: byName, coords: coords}
}

// NewGridArray builds an in-memory single-variable array.
func NewGridArray(name string, v *GridVar, coords map[string][]float64) *GridArray {
	if coords == nil {
		coords = map[string][]float64{}
	}
	return &GridArray{name: name, v: v, coords: coords}
}

// gridFile is the raw parse result before the multi/single split.
type gridFile struct {
	vars   []*GridVar
	coords map[string][]float64
}

// readGridFile opens a NetCDF file and separates coordinate variables
// (1-D, named after their own dimension) from data variables.
func readGridFile(path string) (*gridFile, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open netcdf: %w", err)
	}
	defer group.Close()

	gf := &gridFile{coords: make(map[string][]float64)}
	for _, name := range group.ListVariables() {
		nv, err := group.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		values, shape, err := flattenNumeric(nv.Values)
		if err != nil {
			// Non-numeric variables (string labels etc.) carry no cells
			// we can aggregate; leave them out rather than failing the file.
			continue
		}
		if len(nv.Dimensions) == 1 && nv.Dimensions[0] == name {
			gf.coords[name] = values
			continue
		}
		gf.vars = append(gf.vars, &GridVar{
			Name:   name,
			Dims:   append([]string(nil), nv.Dimensions...),
			Shape:  shape,
			Values: values,
		})
	}
	if len(gf.vars) == 0 {
		return nil, errNoDataVars
	}
	return gf, nil
}

// parseGridDataset parses a gridded multi-variable dataset. Files with a
// single data variable are rejected so they land in the array variant.
func parseGridDataset(path, stem string) (*Grid, error) {
	gf, err := readGridFile(path)
	if err != nil {
		return nil, err
	}
	if len(gf.vars) < 2 {
		return nil, errNotGridded
	}
	byName := make(map[string]*GridVar, len(gf.vars))
	for _, v := range gf.vars {
		byName[v.Name] = v
	}
	return &Grid{name: stem, source: path, vars: gf.vars, byName: byName, coords: gf.coords}, nil
}

// parseGridArray parses a gridded single-variable array.
func parseGridArray(path, stem string) (*GridArray, error) {
	gf, err := readGridFile(path)
	if err != nil {
		return nil, err
	}
	if len(gf.vars) != 1 {
		return nil, errNotSingle
	}
	return &GridArray{name: stem, source: path, v: gf.vars[0], coords: gf.coords}, nil
}

// flattenNumeric converts the nested typed slices the NetCDF reader returns
// (e.g. [][]float32) into a flat row-major []float64 plus the shape.
// Scalars become a one-cell array with an empty shape.
func flattenNumeric(values any) ([]float64, []int, error) {
	rv := reflect.ValueOf(values)
	if !rv.IsValid() {
		return nil, nil, errNotNumeric
	}
	var shape []int
	for t := rv; t.Kind() == reflect.Slice; {
		shape = append(shape, t.Len())
		if t.Len() == 0 {
			break
		}
		t = t.Index(0)
	}
	out := make([]float64, 0, total(shape))
	if err := appendFlat(rv, shape, 0, &out); err != nil {
		return nil, nil, err
	}
	return out, shape, nil
}

func total(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func appendFlat(rv reflect.Value, shape []int, depth int, out *[]float64) error {
	if depth < len(shape) {
		if rv.Kind() != reflect.Slice || rv.Len() != shape[depth] {
			return errRaggedArray
		}
		for i := 0; i < rv.Len(); i++ {
			if err := appendFlat(rv.Index(i), shape, depth+1, out); err != nil {
				return err
			}
		}
		return nil
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		*out = append(*out, rv.Float())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		*out = append(*out, float64(rv.Int()))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		*out = append(*out, float64(rv.Uint()))
	default:
		return errNotNumeric
	}
	return nil
}
