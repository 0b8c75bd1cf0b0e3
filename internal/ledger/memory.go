package ledger

import (
	"context"
	"errors"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	records     []Record
	latest      map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.records = nil
	s.latest = make(map[string]int)
	return nil
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.records = append(s.records, rec)
	s.latest[rec.Key] = len(s.records) - 1
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.latest[key]
	if !ok {
		return Record{}, false, nil
	}
	return s.records[idx], true, nil
}

func (s *MemoryStore) Counts(_ context.Context) (map[Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Status]int)
	for _, rec := range s.records {
		counts[rec.Status]++
	}
	return counts, nil
}

// Records returns a copy of every saved record in insertion order.
func (s *MemoryStore) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Record(nil), s.records...)
}
