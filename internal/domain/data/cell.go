package data

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

// Cell is a single typed value: either an Integer or a Text.
// The zero Cell has no kind and never matches a schema column.
type Cell struct {
	kind schema.Kind
	i    int64
	s    string
}

// Int returns an Integer cell
func Int(v int64) Cell {
	return Cell{kind: schema.KindInteger, i: v}
}

// Text returns a Text cell
func Text(v string) Cell {
	return Cell{kind: schema.KindText, s: v}
}

// Kind returns the tag of the cell
func (c Cell) Kind() schema.Kind { return c.kind }

// Int returns the integer payload. It is zero for Text cells.
func (c Cell) Int() int64 { return c.i }

// Text returns the string payload. It is empty for Integer cells.
func (c Cell) Text() string { return c.s }

// Value returns the payload as an int64 or a string
func (c Cell) Value() any {
	if c.kind == schema.KindInteger {
		return c.i
	}
	return c.s
}

func (c Cell) String() string {
	switch c.kind {
	case schema.KindInteger:
		return strconv.FormatInt(c.i, 10)
	case schema.KindText:
		return c.s
	default:
		return "<invalid>"
	}
}

// Compare orders two cells of the same kind: numerically for Integer,
// byte-wise lexicographically for Text. Cells of different kinds are
// ordered by kind so the result is still a total order.
func (c Cell) Compare(other Cell) int {
	if c.kind != other.kind {
		return cmp.Compare(c.kind, other.kind)
	}
	if c.kind == schema.KindInteger {
		return cmp.Compare(c.i, other.i)
	}
	return strings.Compare(c.s, other.s)
}

// Equal reports whether both cells have the same kind and payload
func (c Cell) Equal(other Cell) bool {
	return c.kind == other.kind && c.i == other.i && c.s == other.s
}

// Parse converts raw text into a cell of the given kind
func Parse(kind schema.Kind, raw string) (Cell, error) {
	switch kind {
	case schema.KindInteger:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Cell{}, fmt.Errorf("parse %q as int: %w", raw, errors.ErrInvalidArgument)
		}
		return Int(v), nil
	case schema.KindText:
		return Text(raw), nil
	}
	return Cell{}, fmt.Errorf("unsupported kind %s: %w", kind, errors.ErrInvalidArgument)
}
