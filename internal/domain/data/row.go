package data

import (
	"strings"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

// Row is one record: one cell per schema column, in schema order
type Row []Cell

// NewRow creates a row from the given cells
func NewRow(cells ...Cell) Row {
	return Row(cells)
}

// Copy creates a copy of the row to prevent mutation of the caller's data
func (r Row) Copy() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether both rows hold the same cells
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Validate checks the row against the schema: same arity and, positionally,
// the same kind as each column.
func (r Row) Validate(s schema.Schema) error {
	if len(r) != len(s.Columns) {
		return errors.NewArityMismatch(len(r), len(s.Columns))
	}
	for i, col := range s.Columns {
		if r[i].Kind() != col.Kind {
			return errors.NewTypeMismatch(col.Name, r[i].Value(), col.Kind.String())
		}
	}
	return nil
}

func (r Row) String() string {
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ParseRow converts raw values, one per column, into a row
func ParseRow(s schema.Schema, raw []string) (Row, error) {
	if len(raw) != len(s.Columns) {
		return nil, errors.NewArityMismatch(len(raw), len(s.Columns))
	}
	row := make(Row, len(raw))
	for i, col := range s.Columns {
		c, err := Parse(col.Kind, raw[i])
		if err != nil {
			return nil, err
		}
		row[i] = c
	}
	return row, nil
}
