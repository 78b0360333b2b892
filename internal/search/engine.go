// Package search evaluates predicates against a table, either by a full
// linear scan or through a transient AVL index built for the one query.
//
// The two paths are not interchangeable for columns with repeated values:
// the index keeps only the first record seen for each key, so an indexed
// eq returns at most one record, and indexed ranges or top/bottom N skip
// the later duplicates. Compare runs both paths so callers can surface
// the difference.
package search

import (
	"fmt"
	"time"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
)

// Engine runs searches over one table
type Engine struct {
	table     *table.Table
	observers []Observer
}

// New creates an engine bound to t
func New(t *table.Table) *Engine {
	return &Engine{
		table:     t,
		observers: make([]Observer, 0),
	}
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(q *query, typ EventType, extra map[string]any) {
	if len(e.observers) == 0 {
		return
	}
	fields := q.fields()
	for k, v := range extra {
		fields[k] = v
	}
	event := Event{
		Type:      typ,
		QueryID:   q.ID,
		Timestamp: time.Now(),
		Data:      fields,
	}
	for _, observer := range e.observers {
		observer.OnEvent(event)
	}
}

// Run evaluates p using the requested mode.
// Zero matches is an empty result set, not an error.
func (e *Engine) Run(p Predicate, mode Mode) (*ResultSet, error) {
	col, err := e.check(p, mode)
	if err != nil {
		return nil, err
	}

	q := newQuery(p, mode)
	if mode == Indexed {
		return e.runIndexed(q, p, col)
	}
	return e.runLinear(q, p, col), nil
}

// check resolves the column and rejects predicates that do not apply to it
func (e *Engine) check(p Predicate, mode Mode) (int, error) {
	if _, ok := opNames[p.Op]; !ok {
		return -1, fmt.Errorf("search: %s: %w", p.Op, errors.ErrInvalidArgument)
	}
	if mode != Linear && mode != Indexed {
		return -1, fmt.Errorf("search: unknown mode %d: %w", int(mode), errors.ErrInvalidArgument)
	}

	col, err := e.table.ColumnIndex(p.Column)
	if err != nil {
		return -1, err
	}
	kind := e.table.Schema().Columns[col].Kind

	if p.Op.NeedsCount() && p.N <= 0 {
		return -1, fmt.Errorf("search: %s needs N > 0, got %d: %w", p.Op, p.N, errors.ErrInvalidArgument)
	}

	switch {
	case p.Op.integerOnly() && kind != schema.KindInteger,
		p.Op == OpContains && kind != schema.KindText:
		if mode == Indexed && p.Op != OpContains {
			return -1, fmt.Errorf("search: %s on %s column %q: %w", p.Op, kind, p.Column, errors.ErrIndexUnsupported)
		}
		return -1, errors.NewKindMismatch(p.Column, p.Op.String(), kind.String())
	}

	if p.Op.NeedsValue() && p.Value.Kind() != kind {
		return -1, errors.NewKindMismatch(p.Column, fmt.Sprintf("%s with %s value", p.Op, p.Value.Kind()), kind.String())
	}

	if mode == Indexed && !p.Op.indexable(kind) {
		return -1, fmt.Errorf("search: %s on %s column %q: %w", p.Op, kind, p.Column, errors.ErrIndexUnsupported)
	}

	return col, nil
}

// Max returns the record with the largest value in an Integer column
func (e *Engine) Max(column string, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpMax, Column: column}, mode)
}

// Min returns the record with the smallest value in an Integer column
func (e *Engine) Min(column string, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpMin, Column: column}, mode)
}

// Equal finds records whose column equals key. Linear returns every match;
// Indexed returns at most one and is only available for Integer columns.
func (e *Engine) Equal(column string, key data.Cell, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpEqual, Column: column, Value: key}, mode)
}

// GreaterOrEqual finds records whose Integer column is >= v
func (e *Engine) GreaterOrEqual(column string, v int64, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpGreaterOrEqual, Column: column, Value: data.Int(v)}, mode)
}

// LessOrEqual finds records whose Integer column is <= v
func (e *Engine) LessOrEqual(column string, v int64, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpLessOrEqual, Column: column, Value: data.Int(v)}, mode)
}

// Contains finds records whose Text column contains substr. Linear only.
func (e *Engine) Contains(column, substr string) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpContains, Column: column, Value: data.Text(substr)}, Linear)
}

// Top returns up to n records with the largest values, largest first
func (e *Engine) Top(column string, n int, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpTop, Column: column, N: n}, mode)
}

// Bottom returns up to n records with the smallest values, smallest first
func (e *Engine) Bottom(column string, n int, mode Mode) (*ResultSet, error) {
	return e.Run(Predicate{Op: OpBottom, Column: column, N: n}, mode)
}
