package seen

import (
	"context"
	"sync"
)

// Store records the first row each value of a table appeared in. A table
// holds the values of one unique column.
type Store interface {
	// Seen records key in table at row. When key was already recorded in
	// the session, it returns the first row and duplicate=true.
	Seen(ctx context.Context, table, key string, row int) (firstRow int, duplicate bool, err error)
	// Reset forgets every value of the session in ctx.
	Reset(ctx context.Context) error
}

// MemoryStore keeps tables in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]map[string]int)}
}

func (s *MemoryStore) Seen(ctx context.Context, table, key string, row int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := SessionID(ctx)
	tables, ok := s.sessions[id]
	if !ok {
		tables = make(map[string]map[string]int)
		s.sessions[id] = tables
	}
	values, ok := tables[table]
	if !ok {
		values = make(map[string]int)
		tables[table] = values
	}

	if first, ok := values[key]; ok {
		return first, true, nil
	}
	values[key] = row
	return row, false, nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, SessionID(ctx))
	return nil
}

// Sessions returns the number of sessions with recorded values.
func (s *MemoryStore) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
