package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch is returned when a cell's kind differs from its column's kind
	// or a row has the wrong number of cells.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrOutOfRange is returned when a position lies outside [1, length]
	ErrOutOfRange = errors.New("position out of range")

	// ErrMalformedPersisted is returned when a persisted table cannot be decoded
	ErrMalformedPersisted = errors.New("malformed persisted table")

	// ErrIndexUnsupported is returned when an index-assisted search is requested
	// for a column kind or predicate that has no index path.
	ErrIndexUnsupported = errors.New("index path unsupported")

	// ErrKindMismatch is returned when a predicate is issued against a column of the wrong kind
	ErrKindMismatch = errors.New("predicate does not apply to column kind")

	// ErrInvalidArgument covers bad scalar arguments such as a non-positive N
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrColumnNotFound is wrapped by ColumnNotFoundError
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidSchema is returned for schemas with no columns, duplicate or empty names, or unknown kinds
	ErrInvalidSchema = errors.New("invalid schema")
)

// ConstraintError describes a row that violates the table schema
type ConstraintError struct {
	Column     string // column name (empty if the whole row is at fault)
	Value      any    // offending value (may be nil)
	Constraint string // "type_mismatch", "arity", "kind_mismatch"
	Reason     string // human-readable explanation (optional)
	Position   int    // 1-based row position, 0 if unknown
	cause      error
}

func (e *ConstraintError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("constraint violation in column %s", e.Column))
	} else {
		parts = append(parts, "constraint violation")
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Position > 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.Position))
	}

	return strings.Join(parts, " - ")
}

// Unwrap exposes the sentinel so errors.Is(err, ErrSchemaMismatch) works
func (e *ConstraintError) Unwrap() error {
	return e.cause
}

// NewTypeMismatch reports a cell whose kind differs from the column kind
func NewTypeMismatch(column string, value any, expected string) *ConstraintError {
	return &ConstraintError{
		Column:     column,
		Value:      value,
		Constraint: "type_mismatch",
		Reason:     fmt.Sprintf("expected type %s", expected),
		cause:      ErrSchemaMismatch,
	}
}

// NewArityMismatch reports a row with the wrong number of cells
func NewArityMismatch(got, want int) *ConstraintError {
	return &ConstraintError{
		Constraint: "arity",
		Reason:     fmt.Sprintf("row has %d cells, schema has %d columns", got, want),
		cause:      ErrSchemaMismatch,
	}
}

// NewKindMismatch reports a predicate issued against a column of the wrong kind
func NewKindMismatch(column, predicate, kind string) *ConstraintError {
	return &ConstraintError{
		Column:     column,
		Constraint: "kind_mismatch",
		Reason:     fmt.Sprintf("%s is not supported on %s columns", predicate, kind),
		cause:      ErrKindMismatch,
	}
}

// ColumnNotFoundError is returned when a column name does not exist in the schema
type ColumnNotFoundError struct {
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.ColumnName)
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}
