package dataset

import (
	"fmt"
)

// Dataset is the table loaded for one dashboard run: named, ordered columns
// and an ordered sequence of rows. Every row has exactly len(Columns) cells.
type Dataset struct {
	columns []string
	rows    [][]Value
	index   map[string]int
}

// New builds a dataset, padding short rows with missing values and
// truncating long ones
func New(columns []string, rows [][]Value) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	normalized := make([][]Value, len(rows))
	for i, row := range rows {
		r := make([]Value, len(cols))
		for j := range r {
			if j < len(row) {
				r[j] = row[j]
			} else {
				r[j] = NewMissingValue()
			}
		}
		normalized[i] = r
	}

	return &Dataset{columns: cols, rows: normalized, index: index}
}

// Columns returns a copy of the column names in order
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// HasColumn reports whether the column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ColumnIndex returns the position of the first column with the given name
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Row returns the cells of row i
func (d *Dataset) Row(i int) []Value {
	return d.rows[i]
}

// Cell returns the value at row i of the named column
func (d *Dataset) Cell(i int, column string) (Value, bool) {
	j, ok := d.index[column]
	if !ok {
		return Value{}, false
	}
	return d.rows[i][j], true
}

// Column returns all values of the named column in row order
func (d *Dataset) Column(name string) ([]Value, error) {
	j, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]Value, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[j]
	}
	return out, nil
}

// DistinctCount counts distinct non-missing values of a column
func (d *Dataset) DistinctCount(name string) (int, error) {
	values, err := d.Column(name)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		seen[v.Key()] = struct{}{}
	}
	return len(seen), nil
}

// ReplaceColumn swaps in new values for a column. It is the only mutation a
// dataset supports and is used for date coercion right after load.
func (d *Dataset) ReplaceColumn(name string, values []Value) error {
	j, ok := d.index[name]
	if !ok {
		return fmt.Errorf("column %q not found", name)
	}
	if len(values) != len(d.rows) {
		return fmt.Errorf("column %q: got %d values for %d rows", name, len(values), len(d.rows))
	}
	for i := range d.rows {
		d.rows[i][j] = values[i]
	}
	return nil
}

// Records returns the header followed by every row formatted as strings
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.rows)+1)
	records = append(records, d.Columns())
	for _, row := range d.rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.String()
		}
		records = append(records, rec)
	}
	return records
}
