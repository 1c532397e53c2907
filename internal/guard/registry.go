package guard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"jobguard/internal/coordinator"
)

// ErrNotRegistered is returned when a trigger fires for an unknown lock key.
var ErrNotRegistered = errors.New("job not registered")

// Job is the guarded unit of work.
type Job func(ctx context.Context) error

// Entry binds one LockOptions value to one unit of work.
type Entry struct {
	Options coordinator.LockOptions
	Job     Job
}

// Registry maps lock keys to guarded jobs. It is constructed explicitly at
// setup time; there is no runtime metadata or reflection lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register binds job to the lock described by opts. The lock key must be
// unique across registered jobs. Unset option fields take the coordinator
// defaults.
func (r *Registry) Register(opts coordinator.LockOptions, job Job) error {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("nil job not allowed for lock %q", opts.Key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[opts.Key]; exists {
		return fmt.Errorf("lock key %q already registered", opts.Key)
	}
	r.entries[opts.Key] = Entry{Options: opts, Job: job}
	return nil
}

// Lookup returns the entry bound to key.
func (r *Registry) Lookup(key string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[key]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotRegistered, key)
	}
	return entry, nil
}

// Keys returns the registered lock keys in stable order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Options returns the lock options bound to key.
func (r *Registry) Options(key string) (coordinator.LockOptions, error) {
	entry, err := r.Lookup(key)
	if err != nil {
		return coordinator.LockOptions{}, err
	}
	return entry.Options, nil
}
