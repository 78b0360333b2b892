// Package testutil builds small tables shared by tests of several packages.
package testutil

import (
	"strconv"
	"testing"

	"github.com/leengari/tabledb/internal/domain/data"
	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
)

// IDNameSchema is the (id int, name text) schema used across tests
func IDNameSchema() schema.Schema {
	return schema.Schema{Columns: []schema.Column{
		{Name: "id", Kind: schema.KindInteger},
		{Name: "name", Kind: schema.KindText},
	}}
}

// NewIDNameTable creates an (id, name) table holding the given rows in order
func NewIDNameTable(t *testing.T, rows ...data.Row) *table.Table {
	t.Helper()
	tbl, err := table.New(IDNameSchema())
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	for i, row := range rows {
		if _, err := tbl.Append(row); err != nil {
			t.Fatalf("append row %d: %v", i+1, err)
		}
	}
	return tbl
}

// Row builds an (id, name) row
func Row(id int64, name string) data.Row {
	return data.NewRow(data.Int(id), data.Text(name))
}

// IntTable creates an (id, name) table whose ids are the given values and
// whose names are "r1", "r2", ... in insertion order.
func IntTable(t *testing.T, ids ...int64) *table.Table {
	t.Helper()
	rows := make([]data.Row, len(ids))
	for i, id := range ids {
		rows[i] = Row(id, "r"+strconv.Itoa(i+1))
	}
	return NewIDNameTable(t, rows...)
}

// AssertRowCount checks if the table has the expected number of rows
func AssertRowCount(t *testing.T, tbl *table.Table, expected int, context string) {
	t.Helper()
	if tbl.Len() != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, tbl.Len())
	}
}

// AssertRowAt checks the row stored at a position
func AssertRowAt(t *testing.T, tbl *table.Table, pos int, expected data.Row, context string) {
	t.Helper()
	rec := tbl.GetAt(pos)
	if rec == nil {
		t.Errorf("%s: expected %s at position %d, got nothing", context, expected, pos)
		return
	}
	if !rec.Cells().Equal(expected) {
		t.Errorf("%s: expected %s at position %d, got %s", context, expected, pos, rec.Cells())
	}
}
