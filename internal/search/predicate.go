package search

import (
	"fmt"
	"strings"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

// Mode selects how a predicate is evaluated
type Mode int

const (
	// Linear scans the whole table
	Linear Mode = iota
	// Indexed builds a transient AVL index over the column and queries it
	Indexed
)

func (m Mode) String() string {
	if m == Indexed {
		return "indexed"
	}
	return "linear"
}

// Op is the kind of predicate
type Op int

const (
	OpMax Op = iota + 1
	OpMin
	OpEqual
	OpGreaterOrEqual
	OpLessOrEqual
	OpContains
	OpTop
	OpBottom
)

var opNames = map[Op]string{
	OpMax:            "max",
	OpMin:            "min",
	OpEqual:          "eq",
	OpGreaterOrEqual: "ge",
	OpLessOrEqual:    "le",
	OpContains:       "contains",
	OpTop:            "top",
	OpBottom:         "bottom",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// ParseOp accepts the short names ("ge") and the symbols ("=", ">=", "<=")
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(s) {
	case "=", "==":
		return OpEqual, nil
	case ">=":
		return OpGreaterOrEqual, nil
	case "<=":
		return OpLessOrEqual, nil
	}
	for op, name := range opNames {
		if strings.EqualFold(name, s) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown search condition %q: %w", s, errors.ErrInvalidArgument)
}

// NeedsValue reports whether the predicate takes a comparison value
func (o Op) NeedsValue() bool {
	switch o {
	case OpEqual, OpGreaterOrEqual, OpLessOrEqual, OpContains:
		return true
	}
	return false
}

// NeedsCount reports whether the predicate takes N
func (o Op) NeedsCount() bool {
	return o == OpTop || o == OpBottom
}

// integerOnly reports whether the predicate is defined only on Integer columns
func (o Op) integerOnly() bool {
	switch o {
	case OpMax, OpMin, OpGreaterOrEqual, OpLessOrEqual, OpTop, OpBottom:
		return true
	}
	return false
}

// indexable reports whether an index path exists for the predicate on the given kind.
// Text columns have no index path at all.
func (o Op) indexable(kind schema.Kind) bool {
	if kind != schema.KindInteger {
		return false
	}
	return o != OpContains
}

// Predicate is one search request against a single column
type Predicate struct {
	Op     Op
	Column string
	Value  data.Cell // for eq, ge, le, contains
	N      int       // for top, bottom
}
