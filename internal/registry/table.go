package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

var errEmptyTable = errors.New("no header row")

// Table is a tabular record set stored column-wise. Columns whose every
// non-empty cell parses as a float become numeric columns; everything else
// stays text. A column is never both.
type Table struct {
	name    string
	source  string
	cols    []string
	numeric map[string][]float64
	text    map[string][]string
	n       int
}

func (t *Table) Name() string   { return t.name }
func (t *Table) Kind() Kind     { return KindTable }
func (t *Table) Source() string { return t.source }

// Len returns the number of rows.
func (t *Table) Len() int { return t.n }

// Columns returns the header names in file order.
func (t *Table) Columns() []string { return t.cols }

// Float returns a numeric column. Empty cells are NaN.
func (t *Table) Float(col string) ([]float64, bool) {
	v, ok := t.numeric[col]
	return v, ok
}

// Strings returns a text column.
func (t *Table) Strings(col string) ([]string, bool) {
	v, ok := t.text[col]
	return v, ok
}

// Value returns the cell at (col, i) as float64 or string, or nil when the
// column does not exist.
func (t *Table) Value(col string, i int) any {
	if v, ok := t.numeric[col]; ok {
		return v[i]
	}
	if v, ok := t.text[col]; ok {
		return v[i]
	}
	return nil
}

// Row returns row i as a column-name to scalar mapping.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.cols))
	for _, c := range t.cols {
		row[c] = t.Value(c, i)
	}
	return row
}

func parseTable(path, stem string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errEmptyTable
	}
	t := buildTable(stem, path, records[0], records[1:])
	return t, nil
}

// NewTable builds an in-memory record set from a header and rows. Load is
// the normal constructor; this exists for embedding and tests.
func NewTable(name string, header []string, rows [][]string) *Table {
	return buildTable(name, "", header, rows)
}

func buildTable(name, source string, header []string, rows [][]string) *Table {
	t := &Table{
		name:    name,
		source:  source,
		cols:    append([]string(nil), header...),
		numeric: make(map[string][]float64),
		text:    make(map[string][]string),
		n:       len(rows),
	}

	for ci, col := range header {
		raw := make([]string, len(rows))
		nums := make([]float64, len(rows))
		isNum := len(rows) > 0
		for ri, rec := range rows {
			var cell string
			if ci < len(rec) {
				cell = rec[ci]
			}
			raw[ri] = cell
			if !isNum {
				continue
			}
			if cell == "" {
				nums[ri] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				isNum = false
				continue
			}
			nums[ri] = v
		}
		if isNum {
			t.numeric[col] = nums
		} else {
			t.text[col] = raw
		}
	}
	return t
}
