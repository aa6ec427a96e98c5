package table

import (
	"github.com/pkg/errors"

	fblock "github.com/YuukanOO/FBlock"
)

// Selector projects a table onto a subset of its columns, in the order
// they were requested.
type Selector struct {
	columns []string
}

// Select creates a Selector keeping the given columns. Without columns the
// input table is returned as is.
func Select(columns ...string) *Selector {
	return &Selector{columns: append([]string(nil), columns...)}
}

// Name implements fblock.Component.
func (*Selector) Name() fblock.Name {
	return "table.select"
}

// Process implements fblock.Component.
func (s *Selector) Process(_ *fblock.Context, in *Table) (*Table, error) {
	if in == nil {
		return nil, errors.New("select: nil table")
	}
	if len(s.columns) == 0 {
		return in, nil
	}

	positions := make([]int, len(s.columns))
	for i, c := range s.columns {
		pos, ok := in.index[c]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownColumn, "select %q", c)
		}
		positions[i] = pos
	}

	out := New(s.columns...)
	for _, row := range in.rows {
		projected := make([]string, len(positions))
		for i, pos := range positions {
			projected[i] = row[pos]
		}
		out.rows = append(out.rows, projected)
	}
	return out, nil
}
