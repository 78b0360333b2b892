package session

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leengari/tabledb/internal/domain/schema"
	"github.com/leengari/tabledb/internal/domain/table"
	"github.com/leengari/tabledb/internal/search"
)

// ErrNoTable is returned when an operation needs a table and none is active
var ErrNoTable = errors.New("no active table")

// Session holds the currently active table. Every operation that the
// command loop performs goes through a session instead of global state.
type Session struct {
	ID        string
	table     *table.Table
	observers []search.Observer
	logger    *slog.Logger
}

// New creates a session with no active table
func New(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	return &Session{
		ID:     id,
		logger: logger.With("session_id", id),
	}
}

// AddObserver registers an observer attached to every search engine the session hands out
func (s *Session) AddObserver(o search.Observer) {
	s.observers = append(s.observers, o)
}

// Create replaces the active table with a new empty table for sc
func (s *Session) Create(sc schema.Schema) (*table.Table, error) {
	t, err := table.New(sc)
	if err != nil {
		return nil, err
	}
	s.Replace(t)
	return t, nil
}

// Replace makes t the active table, dropping the previous one
func (s *Session) Replace(t *table.Table) {
	if s.table != nil && s.table.Dirty() {
		s.logger.Warn("discarding table with unsaved changes", slog.Int("rows", s.table.Len()))
	}
	s.table = t
	s.logger.Info("active table set",
		slog.Int("columns", t.Schema().NumColumns()),
		slog.Int("rows", t.Len()),
	)
}

// HasTable reports whether a table is active
func (s *Session) HasTable() bool { return s.table != nil }

// Table returns the active table
func (s *Session) Table() (*table.Table, error) {
	if s.table == nil {
		return nil, ErrNoTable
	}
	return s.table, nil
}

// Search returns a search engine over the active table
func (s *Session) Search() (*search.Engine, error) {
	t, err := s.Table()
	if err != nil {
		return nil, err
	}
	eng := search.New(t)
	for _, o := range s.observers {
		eng.AddObserver(o)
	}
	return eng, nil
}
