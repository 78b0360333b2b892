package search

import (
	stderrors "errors"

	"github.com/leengari/tabledb/internal/domain/errors"
)

// Comparison holds the results of one predicate evaluated both ways
type Comparison struct {
	Linear  *ResultSet
	Indexed *ResultSet // nil when IndexErr is set
	// IndexErr is ErrIndexUnsupported (wrapped) when the predicate has no index path
	IndexErr error
}

// Missing returns how many more matches the linear scan found than the index.
// A positive value means rows were hidden by duplicate keys.
func (c *Comparison) Missing() int {
	if c.Indexed == nil {
		return 0
	}
	return c.Linear.Len() - c.Indexed.Len()
}

// Compare runs p on the linear path and, when one exists, on the index path.
// The results are reported side by side and never reconciled.
func (e *Engine) Compare(p Predicate) (*Comparison, error) {
	linear, err := e.Run(p, Linear)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{Linear: linear}
	indexed, err := e.Run(p, Indexed)
	switch {
	case err == nil:
		cmp.Indexed = indexed
	case stderrors.Is(err, errors.ErrIndexUnsupported):
		cmp.IndexErr = err
	default:
		return nil, err
	}
	return cmp, nil
}
