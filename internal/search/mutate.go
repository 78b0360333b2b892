package search

import "github.com/leengari/tabledb/internal/domain/table"

// DeleteMatches removes every record of rs from t and returns how many were
// removed. rs must come from a search over t with no mutation in between,
// since its positions are only valid for the table it was computed on.
func DeleteMatches(t *table.Table, rs *ResultSet) int {
	if rs.Empty() {
		return 0
	}
	return t.DeleteAll(rs.Positions())
}

// Pick returns entry n of rs, counting from 1 as results are displayed
func Pick(rs *ResultSet, n int) (Entry, bool) {
	if n < 1 || n > rs.Len() {
		return Entry{}, false
	}
	return rs.At(n - 1), true
}
