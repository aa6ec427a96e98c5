// Package table holds the tabular value passed between the delimited text
// components, and the components that work on it.
package table

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrUnknownColumn is returned when a column name does not exist in a table.
var ErrUnknownColumn = errors.New("unknown column")

// Table is an ordered set of named columns and string rows. Every row has
// exactly one value per column.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty table with the given columns. Duplicate names keep
// the first position for lookups by name.
func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
	return t
}

// DefaultColumns returns the names given to the columns of a table read
// without a header: Column1, Column2 and so on.
func DefaultColumns(n int) []string {
	columns := make([]string, n)
	for i := range columns {
		columns[i] = "Column" + strconv.Itoa(i+1)
	}
	return columns
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row. The row must hold one value per column.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.columns) {
		return errors.Errorf("row has %d values, table has %d columns", len(row), len(t.columns))
	}
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

// Row returns a copy of the row at index i.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, errors.Errorf("row %d out of range [0,%d)", i, len(t.rows))
	}
	return append([]string(nil), t.rows[i]...), nil
}

// Value returns the value at row i and column position col.
func (t *Table) Value(i, col int) (string, error) {
	if col < 0 || col >= len(t.columns) {
		return "", errors.Errorf("column %d out of range [0,%d)", col, len(t.columns))
	}
	row, err := t.Row(i)
	if err != nil {
		return "", err
	}
	return row[col], nil
}

// ByName returns the value at row i in the named column.
func (t *Table) ByName(i int, column string) (string, error) {
	col, ok := t.index[column]
	if !ok {
		return "", errors.Wrap(ErrUnknownColumn, column)
	}
	return t.Value(i, col)
}

// Records returns every row as a column name to value map.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.rows))
	for _, row := range t.rows {
		record := make(map[string]string, len(t.columns))
		for i, c := range t.columns {
			record[c] = row[i]
		}
		records = append(records, record)
	}
	return records
}
