package search

import (
	"github.com/leengari/tabledb/internal/index/avl"
)

// runIndexed builds an index over the column, answers p from it and
// releases it before returning. No index outlives the call.
func (e *Engine) runIndexed(q *query, p Predicate, col int) (*ResultSet, error) {
	e.notify(q, EventIndexBuildStart, map[string]any{"rows": e.table.Len()})
	tree, err := avl.Build(e.table, col)
	if err != nil {
		return nil, err
	}
	defer func() {
		tree.Release()
		e.notify(q, EventIndexRelease, nil)
	}()
	e.notify(q, EventIndexBuildEnd, map[string]any{
		"keys":   tree.Len(),
		"height": tree.Height(),
	})

	e.notify(q, EventScanStart, nil)
	rs := NewResultSet()
	switch p.Op {
	case OpMax:
		addNodes(rs, tree.Max())
	case OpMin:
		addNodes(rs, tree.Min())
	case OpEqual:
		addNodes(rs, tree.Equal(p.Value))
	case OpGreaterOrEqual:
		addNodes(rs, tree.GreaterOrEqual(p.Value)...)
	case OpLessOrEqual:
		addNodes(rs, tree.LessOrEqual(p.Value)...)
	case OpTop:
		addNodes(rs, tree.Top(p.N)...)
	case OpBottom:
		addNodes(rs, tree.Bottom(p.N)...)
	}
	e.notify(q, EventScanEnd, map[string]any{"matches": rs.Len(), "elapsed": q.elapsed()})

	return rs, nil
}

func addNodes(rs *ResultSet, nodes ...*avl.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		rs.Add(n.Record, n.Position)
	}
}
