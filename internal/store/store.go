package store

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable indicates the store could not be reached within its
// operation timeout. Callers are expected to treat it as a signal to
// fall back, not as a fatal condition.
var ErrUnavailable = errors.New("lock store unavailable")

// Store is the capability set shared by every lock store adapter
//
//go:generate go run go.uber.org/mock/mockgen@latest -source=store.go -destination=../../mocks/mock_store.go -package=mocks
type Store interface {
	// TryCreate atomically creates a lock record for key owned by owner,
	// expiring after ttl. It returns true only if no unexpired record
	// existed for key at the moment of the write. The check and the write
	// must be a single conditional operation.
	TryCreate(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)

	// ReadOwner returns the owner of the unexpired record for key, or an
	// empty string if no such record exists.
	ReadOwner(ctx context.Context, key string) (string, error)

	// DeleteIfOwner removes the record for key only if it is owned by
	// owner. It returns true if a record was removed.
	DeleteIfOwner(ctx context.Context, key, owner string) (bool, error)

	// Atomic reports whether TryCreate is backed by a genuinely atomic
	// conditional-write primitive. A store returning false cannot uphold
	// mutual exclusion and must be rejected at setup time.
	Atomic() bool

	// Name identifies the adapter in logs.
	Name() string
}
