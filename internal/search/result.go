package search

import "github.com/leengari/tabledb/internal/domain/table"

const initialResultCapacity = 16

// Entry pairs a matched record with its position at scan time
type Entry struct {
	Record   *table.Record // non-owning
	Position int
}

// ResultSet is the ordered list of matches produced by one search.
// Positions reflect the table at scan time and go stale after the next
// structural mutation of the table.
type ResultSet struct {
	entries []Entry
}

// NewResultSet returns an empty result set with the initial capacity
func NewResultSet() *ResultSet {
	return &ResultSet{entries: make([]Entry, 0, initialResultCapacity)}
}

// Add appends a match, doubling the capacity when full
func (rs *ResultSet) Add(rec *table.Record, pos int) {
	if len(rs.entries) == cap(rs.entries) {
		newCap := cap(rs.entries) * 2
		if newCap == 0 {
			newCap = initialResultCapacity
		}
		grown := make([]Entry, len(rs.entries), newCap)
		copy(grown, rs.entries)
		rs.entries = grown
	}
	rs.entries = append(rs.entries, Entry{Record: rec, Position: pos})
}

// Len returns the number of matches
func (rs *ResultSet) Len() int { return len(rs.entries) }

// Cap returns the current capacity
func (rs *ResultSet) Cap() int { return cap(rs.entries) }

// Empty reports whether nothing matched
func (rs *ResultSet) Empty() bool { return len(rs.entries) == 0 }

// At returns the i-th match (0-based)
func (rs *ResultSet) At(i int) Entry { return rs.entries[i] }

// Entries returns the matches. Callers must not modify the returned slice.
func (rs *ResultSet) Entries() []Entry { return rs.entries }

// Positions returns the scan-time positions of all matches, in result order
func (rs *ResultSet) Positions() []int {
	out := make([]int, len(rs.entries))
	for i, e := range rs.entries {
		out[i] = e.Position
	}
	return out
}
