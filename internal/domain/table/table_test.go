package table_test

import (
	stderrors "errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/errors"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
	"github.com/leengari/tabledb/internal/testutil"
)

func TestNewCopiesSchema(t *testing.T) {
	sc := testutil.IDNameSchema()
	tbl, err := table.New(sc)
	assert.NilError(t, err)

	sc.Columns[0].Name = "changed"
	assert.Equal(t, tbl.Schema().Columns[0].Name, "id")

	// the returned schema is a copy too
	got := tbl.Schema()
	got.Columns[1].Kind = schema.KindInteger
	assert.Equal(t, tbl.Schema().Columns[1].Kind, schema.KindText)

	_, err = table.New(schema.Schema{})
	assert.ErrorIs(t, err, errors.ErrInvalidSchema)
}

func TestAppendAndGetAt(t *testing.T) {
	tbl := testutil.NewIDNameTable(t)

	for k := 1; k <= 5; k++ {
		row := testutil.Row(int64(k*10), "n")
		rec, err := tbl.Append(row)
		assert.NilError(t, err)
		assert.Equal(t, tbl.Len(), k)
		assert.Equal(t, tbl.GetAt(k), rec, "getAt(k) returns the most recent append")
	}

	assert.Assert(t, tbl.GetAt(0) == nil)
	assert.Assert(t, tbl.GetAt(6) == nil)
	assert.Assert(t, tbl.GetAt(-1) == nil)
}

func TestAppendSchemaMismatch(t *testing.T) {
	tbl := testutil.NewIDNameTable(t, testutil.Row(1, "a"))

	_, err := tbl.Append(data.NewRow(data.Text("1"), data.Text("b")))
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)

	_, err = tbl.Append(data.NewRow(data.Int(1)))
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)

	testutil.AssertRowCount(t, tbl, 1, "after rejected appends")
}

func TestAppendCopiesRow(t *testing.T) {
	tbl := testutil.NewIDNameTable(t)
	row := testutil.Row(1, "a")
	_, err := tbl.Append(row)
	assert.NilError(t, err)

	row[1] = data.Text("mutated")
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(1, "a"), "caller mutation")
}

func TestScenarioDeleteFirst(t *testing.T) {
	tbl := testutil.NewIDNameTable(t,
		testutil.Row(1, "a"),
		testutil.Row(2, "b"),
		testutil.Row(3, "c"),
	)
	_, err := tbl.Append(testutil.Row(5, "x"))
	assert.NilError(t, err)

	assert.Assert(t, tbl.DeleteAt(1))
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(2, "b"), "after deleting position 1")
	testutil.AssertRowCount(t, tbl, 3, "after delete")
}

func TestDeleteAtShiftsPositions(t *testing.T) {
	for p := 1; p <= 4; p++ {
		tbl := testutil.IntTable(t, 10, 20, 30, 40)
		var next data.Row
		if rec := tbl.GetAt(p + 1); rec != nil {
			next = rec.Cells().Copy()
		}

		assert.Assert(t, tbl.DeleteAt(p))
		assert.Equal(t, tbl.Len(), 3)

		rec := tbl.GetAt(p)
		if next == nil {
			assert.Assert(t, rec == nil, "p=%d was last", p)
			continue
		}
		assert.Assert(t, rec.Cells().Equal(next), "p=%d", p)
	}
}

func TestDeleteAtMaintainsHeadAndTail(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2, 3)

	assert.Assert(t, tbl.DeleteAt(3))
	_, err := tbl.Append(testutil.Row(4, "d"))
	assert.NilError(t, err)
	testutil.AssertRowAt(t, tbl, 3, testutil.Row(4, "d"), "append after tail delete")

	assert.Assert(t, tbl.DeleteAt(1))
	assert.Assert(t, tbl.DeleteAt(1))
	assert.Assert(t, tbl.DeleteAt(1))
	assert.Equal(t, tbl.Len(), 0)
	assert.Assert(t, tbl.Head() == nil)

	_, err = tbl.Append(testutil.Row(9, "z"))
	assert.NilError(t, err)
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(9, "z"), "append into emptied table")
	assert.Equal(t, tbl.Len(), 1)
}

func TestHeadNextTraversal(t *testing.T) {
	tbl := testutil.IntTable(t, 7, 8, 9)
	assert.Assert(t, tbl.DeleteAt(2))

	var ids []int64
	for rec := tbl.Head(); rec != nil; rec = rec.Next() {
		ids = append(ids, rec.Cell(0).Int())
	}
	assert.DeepEqual(t, ids, []int64{7, 9})
}

func TestDeletedRecordReadsAsEmpty(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2)
	rec := tbl.GetAt(1)
	assert.Assert(t, tbl.DeleteAt(1))

	assert.Assert(t, rec.Detached())
	assert.Assert(t, rec.Next() == nil)
	assert.Equal(t, rec.Cell(0).Kind(), schema.Kind(0))
	assert.Equal(t, len(rec.Cells()), 0)
	assert.Assert(t, !tbl.GetAt(1).Detached())
	assert.Equal(t, tbl.GetAt(1).Cell(5).Kind(), schema.Kind(0))
}

func TestDeleteAtOutOfRange(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2)
	assert.Assert(t, !tbl.DeleteAt(0))
	assert.Assert(t, !tbl.DeleteAt(3))
	assert.Equal(t, tbl.Len(), 2)

	empty := testutil.NewIDNameTable(t)
	assert.Assert(t, !empty.DeleteAt(1))

	assert.ErrorIs(t, tbl.CheckPosition(3), errors.ErrOutOfRange)
	assert.NilError(t, tbl.CheckPosition(2))
}

func TestDeleteAll(t *testing.T) {
	tbl := testutil.IntTable(t, 10, 20, 30, 40, 50, 60)

	// unsorted, with a duplicate and an out-of-range position
	n := tbl.DeleteAll([]int{5, 2, 4, 2, 9})
	assert.Equal(t, n, 3)
	assert.Equal(t, tbl.Len(), 3)
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(10, "r1"), "survivor 1")
	testutil.AssertRowAt(t, tbl, 2, testutil.Row(30, "r3"), "survivor 2")
	testutil.AssertRowAt(t, tbl, 3, testutil.Row(60, "r6"), "survivor 3")

	// the tail is still correct after deleting the last rows
	assert.Equal(t, tbl.DeleteAll([]int{3, 2}), 2)
	_, err := tbl.Append(testutil.Row(70, "x"))
	assert.NilError(t, err)
	testutil.AssertRowAt(t, tbl, 2, testutil.Row(70, "x"), "append after bulk delete")

	assert.Equal(t, tbl.DeleteAll(nil), 0)
}

func TestUpdateAtKeepsIdentity(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2, 3)
	before := tbl.GetAt(2)

	ok, err := tbl.UpdateAt(2, testutil.Row(20, "twenty"))
	assert.NilError(t, err)
	assert.Assert(t, ok)

	after := tbl.GetAt(2)
	assert.Equal(t, before, after, "record identity unchanged")
	assert.Assert(t, before.Cells().Equal(testutil.Row(20, "twenty")))
}

func TestUpdateAtValidatesFirst(t *testing.T) {
	tbl := testutil.IntTable(t, 1, 2)

	ok, err := tbl.UpdateAt(1, data.NewRow(data.Text("bad"), data.Text("x")))
	assert.ErrorIs(t, err, errors.ErrSchemaMismatch)
	assert.Assert(t, !ok)
	testutil.AssertRowAt(t, tbl, 1, testutil.Row(1, "r1"), "rejected update")

	ok, err = tbl.UpdateAt(5, testutil.Row(5, "x"))
	assert.NilError(t, err)
	assert.Assert(t, !ok)
}

func TestEachAndRows(t *testing.T) {
	tbl := testutil.IntTable(t, 7, 8, 9)

	var positions []int
	tbl.Each(func(pos int, rec *table.Record) bool {
		positions = append(positions, pos)
		return pos < 2
	})
	assert.DeepEqual(t, positions, []int{1, 2})

	rows := tbl.Rows()
	assert.Equal(t, len(rows), 3)
	assert.Assert(t, rows[2].Equal(testutil.Row(9, "r3")))
}

func TestColumnIndex(t *testing.T) {
	tbl := testutil.NewIDNameTable(t)
	idx, err := tbl.ColumnIndex("name")
	assert.NilError(t, err)
	assert.Equal(t, idx, 1)

	_, err = tbl.ColumnIndex("nope")
	var notFound *errors.ColumnNotFoundError
	assert.Assert(t, stderrors.As(err, &notFound))
	assert.Equal(t, notFound.ColumnName, "nope")
}

func TestDirtyTracking(t *testing.T) {
	tbl := testutil.NewIDNameTable(t)
	assert.Assert(t, !tbl.Dirty())

	_, err := tbl.Append(testutil.Row(1, "a"))
	assert.NilError(t, err)
	assert.Assert(t, tbl.Dirty())

	tbl.MarkClean()
	assert.Assert(t, !tbl.Dirty())

	tbl.DeleteAt(1)
	assert.Assert(t, tbl.Dirty())
}
