package search

import (
	"strings"

	"github.com/google/btree"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/table"
)

// snapshotDegree is the branching factor of the ordered snapshot used by top/bottom N
const snapshotDegree = 16

// ranked is one (record, position, value) triple of a top/bottom N snapshot
type ranked struct {
	rec   *table.Record
	pos   int
	value int64
}

func (e *Engine) runLinear(q *query, p Predicate, col int) *ResultSet {
	e.notify(q, EventScanStart, map[string]any{"rows": e.table.Len()})

	var rs *ResultSet
	switch p.Op {
	case OpMax:
		rs = linearExtremum(e.table, col, func(a, b int64) bool { return a > b })
	case OpMin:
		rs = linearExtremum(e.table, col, func(a, b int64) bool { return a < b })
	case OpEqual:
		rs = linearFilter(e.table, col, func(c data.Cell) bool { return c.Equal(p.Value) })
	case OpGreaterOrEqual:
		v := p.Value.Int()
		rs = linearFilter(e.table, col, func(c data.Cell) bool { return c.Int() >= v })
	case OpLessOrEqual:
		v := p.Value.Int()
		rs = linearFilter(e.table, col, func(c data.Cell) bool { return c.Int() <= v })
	case OpContains:
		sub := p.Value.Text()
		rs = linearFilter(e.table, col, func(c data.Cell) bool { return strings.Contains(c.Text(), sub) })
	case OpTop:
		rs = linearRank(e.table, col, p.N, func(a, b ranked) bool {
			if a.value != b.value {
				return a.value > b.value
			}
			return a.pos < b.pos
		})
	case OpBottom:
		rs = linearRank(e.table, col, p.N, func(a, b ranked) bool {
			if a.value != b.value {
				return a.value < b.value
			}
			return a.pos < b.pos
		})
	}

	e.notify(q, EventScanEnd, map[string]any{"matches": rs.Len(), "elapsed": q.elapsed()})
	return rs
}

// linearFilter collects, in scan order, every record whose cell matches
func linearFilter(t *table.Table, col int, match func(data.Cell) bool) *ResultSet {
	rs := NewResultSet()
	t.Each(func(pos int, rec *table.Record) bool {
		if match(rec.Cell(col)) {
			rs.Add(rec, pos)
		}
		return true
	})
	return rs
}

// linearExtremum keeps the first record for which better holds against every
// earlier candidate, so ties resolve to the first occurrence.
func linearExtremum(t *table.Table, col int, better func(a, b int64) bool) *ResultSet {
	rs := NewResultSet()

	var (
		best    *table.Record
		bestPos int
	)
	t.Each(func(pos int, rec *table.Record) bool {
		if best == nil || better(rec.Cell(col).Int(), best.Cell(col).Int()) {
			best, bestPos = rec, pos
		}
		return true
	})

	if best != nil {
		rs.Add(best, bestPos)
	}
	return rs
}

// linearRank orders a snapshot of the column and takes the first n entries.
// Ties on value keep scan order (earlier position first).
func linearRank(t *table.Table, col, n int, less btree.LessFunc[ranked]) *ResultSet {
	snapshot := btree.NewG(snapshotDegree, less)
	t.Each(func(pos int, rec *table.Record) bool {
		snapshot.ReplaceOrInsert(ranked{rec: rec, pos: pos, value: rec.Cell(col).Int()})
		return true
	})

	rs := NewResultSet()
	snapshot.Ascend(func(item ranked) bool {
		rs.Add(item.rec, item.pos)
		return rs.Len() < n
	})
	snapshot.Clear(false)
	return rs
}
