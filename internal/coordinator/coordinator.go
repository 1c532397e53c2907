package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"jobguard/internal/metrics"
	"jobguard/internal/store"
)

// Coordinator owns acquire/release/isLocked for this process. One coordinator
// runs per process; instances contending for the same key are arbitrated by
// the shared store's own atomicity, never by the coordinator.
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=coordinator.go -destination=../../mocks/mock_coordinator.go -package=mocks
type Coordinator interface {
	// Acquire attempts to take the lock described by opts. A refused
	// acquire is a normal outcome, not an error. Remote store
	// unreachability degrades to process-local coordination and is never
	// surfaced to the caller.
	Acquire(ctx context.Context, opts LockOptions) bool

	// Release removes the record for key if this instance owns it.
	// Calling it without ownership is a no-op.
	Release(ctx context.Context, key string)

	// IsLocked reports whether an unexpired record exists for key.
	IsLocked(ctx context.Context, key string) bool

	// Identity returns this process' opaque owner id.
	Identity() string
}

type lockCoordinator struct {
	logger   *slog.Logger
	remote   store.Store
	fallback store.Store
	identity string

	// held tracks which store granted each lock so release targets the
	// store that holds the record. Guarded for concurrent guarded
	// operations in flight at overlapping times.
	mu   sync.Mutex
	held map[string]store.Store
}

// New creates a coordinator over a remote store and a process-local fallback.
// Both stores must offer an atomic conditional write; a store that cannot is
// a configuration error rejected here, before any lock is attempted.
func New(logger *slog.Logger, remote, fallback store.Store) (Coordinator, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil logger not allowed")
	}
	if remote == nil {
		return nil, fmt.Errorf("nil remote store not allowed")
	}
	if fallback == nil {
		return nil, fmt.Errorf("nil fallback store not allowed")
	}
	for _, st := range []store.Store{remote, fallback} {
		if !st.Atomic() {
			return nil, fmt.Errorf("store %q lacks an atomic conditional-write primitive and cannot uphold mutual exclusion", st.Name())
		}
	}

	identity := NewIdentity()
	logger.Info("Lock coordinator created",
		"owner", identity,
		"remote_store", remote.Name(),
		"fallback_store", fallback.Name(),
	)

	return &lockCoordinator{
		logger:   logger,
		remote:   remote,
		fallback: fallback,
		identity: identity,
		held:     make(map[string]store.Store),
	}, nil
}

// Acquire makes up to MaxRetries+1 attempts, each a single atomic
// create-if-absent against the active store, spaced RetryDelay apart.
func (c *lockCoordinator) Acquire(ctx context.Context, opts LockOptions) bool {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		c.logger.Error("Invalid lock options", "error", err)
		return false
	}

	for attempt := 0; ; attempt++ {
		if c.tryAcquire(ctx, opts) {
			return true
		}
		if attempt >= opts.MaxRetries {
			return false
		}
		select {
		case <-time.After(opts.RetryDelay):
		case <-ctx.Done():
			c.logger.Debug("Acquire cancelled while waiting to retry",
				"key", opts.Key,
				"attempt", attempt+1,
			)
			return false
		}
	}
}

func (c *lockCoordinator) tryAcquire(ctx context.Context, opts LockOptions) bool {
	st := c.remote
	created, err := st.TryCreate(ctx, opts.Key, c.identity, opts.TTL)
	if errors.Is(err, store.ErrUnavailable) {
		c.logger.Warn("Remote lock store unreachable, degrading to process-local coordination",
			"key", opts.Key,
		)
		metrics.DegradedCounter.Inc()
		st = c.fallback
		created, err = st.TryCreate(ctx, opts.Key, c.identity, opts.TTL)
	}
	if err != nil {
		c.logger.Error("Failed to acquire lock",
			"key", opts.Key,
			"store", st.Name(),
			"error", err,
		)
		return false
	}
	if !created {
		metrics.ContentionCounter.Inc()
		c.logger.Debug("Lock held by another owner",
			"key", opts.Key,
			"store", st.Name(),
		)
		return false
	}

	c.mu.Lock()
	c.held[opts.Key] = st
	c.mu.Unlock()

	metrics.AcquiredCounter.Inc()
	c.logger.Debug("Lock acquired",
		"key", opts.Key,
		"store", st.Name(),
		"ttl", opts.TTL,
	)
	return true
}

// Release deletes the record for key only if this instance still owns it. If
// the lock already expired and was re-acquired by another owner, the delete
// is refused by the store and ignored here.
func (c *lockCoordinator) Release(ctx context.Context, key string) {
	c.mu.Lock()
	st, tracked := c.held[key]
	delete(c.held, key)
	c.mu.Unlock()
	if !tracked {
		st = c.remote
	}

	removed, err := st.DeleteIfOwner(ctx, key, c.identity)
	if errors.Is(err, store.ErrUnavailable) && st == c.remote {
		metrics.DegradedCounter.Inc()
		removed, err = c.fallback.DeleteIfOwner(ctx, key, c.identity)
	}
	if err != nil {
		// The record self-heals once its TTL elapses.
		c.logger.Error("Failed to release lock, expiry will reclaim it",
			"key", key,
			"error", err,
		)
		return
	}
	if !removed {
		c.logger.Debug("Release without ownership ignored", "key", key)
		return
	}

	metrics.ReleasedCounter.Inc()
	c.logger.Debug("Lock released", "key", key, "store", st.Name())
}

// IsLocked reports whether an unexpired record exists for key in the active
// store.
func (c *lockCoordinator) IsLocked(ctx context.Context, key string) bool {
	owner, err := c.remote.ReadOwner(ctx, key)
	if errors.Is(err, store.ErrUnavailable) {
		metrics.DegradedCounter.Inc()
		owner, err = c.fallback.ReadOwner(ctx, key)
	}
	if err != nil {
		c.logger.Error("Failed to read lock owner", "key", key, "error", err)
		return false
	}
	return owner != ""
}

func (c *lockCoordinator) Identity() string {
	return c.identity
}
