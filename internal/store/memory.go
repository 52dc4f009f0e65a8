package store

import (
	"context"
	"sync"
	"time"

	"github.com/groblegark/treeline/internal/jira"
)

// MemoryStore implements Store with in-process maps. Used when no cache
// database is configured and as the test double for the repository adapters.
type MemoryStore struct {
	mu         sync.RWMutex
	records    map[string]*Record
	queries    map[string][]string
	lastViewed map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:    make(map[string]*Record),
		queries:    make(map[string][]string),
		lastViewed: make(map[string]string),
	}
}

func (s *MemoryStore) SaveRecord(ctx context.Context, rec *jira.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = &Record{Issue: rec, FetchedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryStore) GetRecord(ctx context.Context, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) SaveQuery(ctx context.Context, query string, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[query] = append([]string(nil), keys...)
	return nil
}

func (s *MemoryStore) GetQuery(ctx context.Context, query string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys, ok := s.queries[query]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]string(nil), keys...), nil
}

func (s *MemoryStore) SetLastViewed(ctx context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastViewed[scope] = key
	return nil
}

func (s *MemoryStore) GetLastViewed(ctx context.Context, scope string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.lastViewed[scope]
	if !ok {
		return "", ErrNotFound
	}
	return key, nil
}

// RunInTransaction runs fn against the store itself; map writes are already
// serialized by the mutex.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	return fn(s)
}

func (s *MemoryStore) Close() error { return nil }
