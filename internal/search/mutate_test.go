package search

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/testutil"
)

func TestDeleteMatchesLinear(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 9, 2, 9, 9, 3)
	eng := New(tbl)

	rs, err := eng.Equal("id", data.Int(9), Linear)
	assert.NilError(t, err)
	assert.DeepEqual(t, rs.Positions(), []int{2, 4, 5})

	assert.Equal(t, DeleteMatches(tbl, rs), 3)
	assert.Equal(t, tbl.Len(), 3)
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(1, "r1"), "survivor 1")
	testutil.AssertRowAt(t, tbl, 2, testutil.Row(2, "r3"), "survivor 2")
	testutil.AssertRowAt(t, tbl, 3, testutil.Row(3, "r6"), "survivor 3")
}

func TestDeleteMatchesIndexedOrder(t *testing.T) {
	tbl := testutil.IntTable(t, 5, 1, 7, 3)
	eng := New(tbl)

	// index results come in key order, not position order
	rs, err := eng.GreaterOrEqual("id", 3, Indexed)
	assert.NilError(t, err)
	assert.DeepEqual(t, rs.Positions(), []int{4, 1, 3})

	assert.Equal(t, DeleteMatches(tbl, rs), 3)
	assert.Equal(t, tbl.Len(), 1)
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(1, "r2"), "survivor")
}

func TestDeleteMatchesEmpty(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2)
	assert.Equal(t, DeleteMatches(tbl, NewResultSet()), 0)
	assert.Equal(t, tbl.Len(), 2)
}

func TestPick(t *testing.T) {
	tbl := testutil.IntTable(t, 4, 8)
	rs := NewResultSet()
	rs.Add(tbl.GetAt(2), 2)
	rs.Add(tbl.GetAt(1), 1)

	e, ok := Pick(rs, 1)
	assert.Assert(t, ok)
	assert.Equal(t, e.Position, 2)

	_, ok = Pick(rs, 0)
	assert.Assert(t, !ok)
	_, ok = Pick(rs, 3)
	assert.Assert(t, !ok)
}
