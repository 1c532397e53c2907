package store

import (
	"context"
	"sync"
	"time"
)

type localRecord struct {
	owner     string
	expiresAt time.Time
}

// localStore implements Store over a mutex-guarded map. It is the
// process-local fallback used while the shared store is unreachable, so its
// records are visible only within the owning process. Each instance is
// constructed explicitly and injected; there is no package-level singleton.
type localStore struct {
	mu      sync.Mutex
	records map[string]localRecord

	// now is replaceable in tests
	now func() time.Time
}

// NewLocalStore creates an empty in-process lock store.
func NewLocalStore() *localStore {
	return &localStore{
		records: make(map[string]localRecord),
		now:     time.Now,
	}
}

// TryCreate checks and writes under one critical section, which makes the
// create-if-absent conditional write atomic within the process.
func (s *localStore) TryCreate(_ context.Context, key, owner string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.records[key]; ok && !s.expired(rec) {
		return false, nil
	}
	s.records[key] = localRecord{
		owner:     owner,
		expiresAt: s.now().Add(ttl),
	}
	return true, nil
}

func (s *localStore) ReadOwner(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return "", nil
	}
	if s.expired(rec) {
		delete(s.records, key)
		return "", nil
	}
	return rec.owner, nil
}

func (s *localStore) DeleteIfOwner(_ context.Context, key, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return false, nil
	}
	if s.expired(rec) {
		delete(s.records, key)
		return false, nil
	}
	if rec.owner != owner {
		return false, nil
	}
	delete(s.records, key)
	return true, nil
}

func (s *localStore) Atomic() bool {
	return true
}

func (s *localStore) Name() string {
	return "local"
}

// expired treats a record whose expiry has elapsed as absent; callers holding
// the mutex remove it.
func (s *localStore) expired(rec localRecord) bool {
	return !rec.expiresAt.After(s.now())
}
