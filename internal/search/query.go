package search

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// querySeq numbers queries in the order they were issued
var querySeq uint64

// query carries the tracing identity of one search call
type query struct {
	ID        string    // unique query identifier
	Seq       uint64    // process-wide sequence number
	Op        Op        // predicate being evaluated
	Column    string    // column the predicate applies to
	Mode      Mode      // linear or indexed
	StartTime time.Time // when the query began
}

func newQuery(p Predicate, mode Mode) *query {
	return &query{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&querySeq, 1),
		Op:        p.Op,
		Column:    p.Column,
		Mode:      mode,
		StartTime: time.Now(),
	}
}

// elapsed is the time since the query began
func (q *query) elapsed() time.Duration {
	return time.Since(q.StartTime)
}

func (q *query) fields() map[string]any {
	return map[string]any{
		"seq":    q.Seq,
		"op":     q.Op.String(),
		"column": q.Column,
		"mode":   q.Mode.String(),
	}
}
