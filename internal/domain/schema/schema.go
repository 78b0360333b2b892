package schema

import (
	"fmt"

	"github.com/leengari/tabledb/internal/domain/errors"
)

// Kind is the declared type of a column.
// The numeric values are the type codes used by the persisted format.
type Kind int

const (
	KindInteger Kind = 1
	KindText    Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the supported kinds
func (k Kind) Valid() bool {
	return k == KindInteger || k == KindText
}

// ParseKind accepts the names used on the command line ("int", "integer", "text", "string")
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int", "integer", "INT", "INTEGER":
		return KindInteger, nil
	case "text", "string", "TEXT", "STRING":
		return KindText, nil
	}
	return 0, fmt.Errorf("unknown column type %q: %w", s, errors.ErrInvalidSchema)
}

// Column describes one column of a table
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"type"`
}

// Schema is the ordered list of columns of a table.
// It is treated as immutable once a table has been created from it.
type Schema struct {
	Columns []Column
}

// New builds a validated schema from the given columns.
// The column slice is copied so later changes by the caller have no effect.
func New(cols ...Column) (Schema, error) {
	s := Schema{Columns: append([]Column(nil), cols...)}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Validate checks that the schema has at least one column, that every
// column has a non-empty unique name and a supported kind.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema has no columns: %w", errors.ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for i, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("column %d has an empty name: %w", i, errors.ErrInvalidSchema)
		}
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("duplicate column name %q: %w", col.Name, errors.ErrInvalidSchema)
		}
		if !col.Kind.Valid() {
			return fmt.Errorf("column %q has unsupported type %d: %w", col.Name, int(col.Kind), errors.ErrInvalidSchema)
		}
		seen[col.Name] = struct{}{}
	}
	return nil
}

// NumColumns returns the number of columns
func (s Schema) NumColumns() int { return len(s.Columns) }

// Clone returns a deep copy of the schema
func (s Schema) Clone() Schema {
	return Schema{Columns: append([]Column(nil), s.Columns...)}
}

// ColumnIndex returns the position of the named column, or -1
func (s Schema) ColumnIndex(name string) int {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas have the same columns in the same order
func (s Schema) Equal(other Schema) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i] != other.Columns[i] {
			return false
		}
	}
	return true
}
