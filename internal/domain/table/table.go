package table

import (
	"fmt"
	"slices"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
)

// Record is one node of the record sequence. It owns its cells.
// A *Record is the row reference handed out by searches; it stays valid
// (and keeps its identity) across UpdateAt, and is detached by DeleteAt.
// A detached record has no cells.
type Record struct {
	cells data.Row
	next  *Record
}

// Cells returns the record's cells. Callers must not modify the returned slice.
func (r *Record) Cells() data.Row { return r.cells }

// Cell returns the cell of the given column index. The zero Cell is
// returned for an index outside the row or a detached record.
func (r *Record) Cell(col int) data.Cell {
	if col < 0 || col >= len(r.cells) {
		return data.Cell{}
	}
	return r.cells[col]
}

// Detached reports whether the record was removed from its table
func (r *Record) Detached() bool { return r.cells == nil }

// Next returns the following record, nil at the tail
func (r *Record) Next() *Record { return r.next }

// Table is an ordered sequence of records under a fixed schema.
// Positions are 1-based and derived from traversal order; they are never stored.
type Table struct {
	schema schema.Schema
	head   *Record
	tail   *Record
	length int
	dirty  bool // tracks unsaved changes
}

// New creates an empty table. The schema is deep-copied.
func New(s schema.Schema) (*Table, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Table{schema: s.Clone()}, nil
}

// Schema returns a copy of the table schema
func (t *Table) Schema() schema.Schema { return t.schema.Clone() }

// Len returns the number of records. It is the sole authority on position validity.
func (t *Table) Len() int { return t.length }

// Head returns the first record, nil when the table is empty
func (t *Table) Head() *Record { return t.head }

// Dirty reports whether the table changed since the last MarkClean
func (t *Table) Dirty() bool { return t.dirty }

// MarkClean clears the dirty flag, typically after a successful save
func (t *Table) MarkClean() { t.dirty = false }

// ColumnIndex resolves a column name to its index
func (t *Table) ColumnIndex(name string) (int, error) {
	idx := t.schema.ColumnIndex(name)
	if idx < 0 {
		return -1, &errors.ColumnNotFoundError{ColumnName: name}
	}
	return idx, nil
}

// Append validates the row and adds a copy of it after the tail in O(1)
func (t *Table) Append(row data.Row) (*Record, error) {
	if err := row.Validate(t.schema); err != nil {
		return nil, err
	}

	rec := &Record{cells: row.Copy()}
	if t.tail == nil {
		t.head = rec
	} else {
		t.tail.next = rec
	}
	t.tail = rec
	t.length++
	t.dirty = true

	return rec, nil
}

// GetAt returns the record at the 1-based position, or nil when out of range
func (t *Table) GetAt(pos int) *Record {
	if pos < 1 || pos > t.length {
		return nil
	}
	cur := t.head
	for i := 1; i < pos; i++ {
		cur = cur.next
	}
	return cur
}

// DeleteAt removes the record at the 1-based position.
// It returns false, without changing anything, when pos is outside [1, Len].
func (t *Table) DeleteAt(pos int) bool {
	if pos < 1 || pos > t.length {
		return false
	}

	var removed *Record
	if pos == 1 {
		removed = t.head
		t.head = removed.next
		if t.tail == removed {
			t.tail = nil
		}
	} else {
		prev := t.GetAt(pos - 1)
		removed = prev.next
		prev.next = removed.next
		if t.tail == removed {
			t.tail = prev
		}
	}

	// detach so stale references cannot reach live records
	removed.next = nil
	removed.cells = nil
	t.length--
	t.dirty = true

	return true
}

// DeleteAll removes the records at the given positions, all taken from the
// table as it is before the call. Positions are deleted highest first so no
// deletion shifts one still pending. Duplicates and out-of-range positions
// are skipped. It returns the number of records removed.
func (t *Table) DeleteAll(positions []int) int {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	deleted := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		if t.DeleteAt(sorted[i]) {
			deleted++
		}
	}
	return deleted
}

// UpdateAt replaces the cells of the record at pos in place. The record
// keeps its identity, so references held elsewhere stay valid.
// It validates before mutating; an out-of-range pos returns (false, nil).
func (t *Table) UpdateAt(pos int, row data.Row) (bool, error) {
	if err := row.Validate(t.schema); err != nil {
		return false, err
	}
	rec := t.GetAt(pos)
	if rec == nil {
		return false, nil
	}
	rec.cells = row.Copy()
	t.dirty = true
	return true, nil
}

// Each visits records head to tail with their current positions.
// Returning false from fn stops the walk.
func (t *Table) Each(fn func(pos int, rec *Record) bool) {
	pos := 1
	for cur := t.head; cur != nil; cur = cur.next {
		if !fn(pos, cur) {
			return
		}
		pos++
	}
}

// Rows returns copies of all rows in positional order
func (t *Table) Rows() []data.Row {
	rows := make([]data.Row, 0, t.length)
	t.Each(func(_ int, rec *Record) bool {
		rows = append(rows, rec.cells.Copy())
		return true
	})
	return rows
}

// CheckPosition returns ErrOutOfRange wrapped with context when pos is invalid
func (t *Table) CheckPosition(pos int) error {
	if pos < 1 || pos > t.length {
		return fmt.Errorf("position %d not in [1, %d]: %w", pos, t.length, errors.ErrOutOfRange)
	}
	return nil
}
