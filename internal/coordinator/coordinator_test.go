package coordinator_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"jobguard/internal/coordinator"
	"jobguard/internal/store"
	"jobguard/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// newTestCoordinator builds a coordinator whose "remote" store is an
// in-process store shared between instances, which makes fleet scenarios
// observable without a real Redis.
func newTestCoordinator(t *testing.T, shared store.Store) coordinator.Coordinator {
	t.Helper()
	coord, err := coordinator.New(testLogger(), shared, store.NewLocalStore())
	require.NoError(t, err)
	return coord
}

func TestNewValidation(t *testing.T) {
	logger := testLogger()
	st := store.NewLocalStore()

	_, err := coordinator.New(nil, st, st)
	assert.Error(t, err, "nil logger must be rejected")

	_, err = coordinator.New(logger, nil, st)
	assert.Error(t, err, "nil remote store must be rejected")

	_, err = coordinator.New(logger, st, nil)
	assert.Error(t, err, "nil fallback store must be rejected")
}

func TestNewRejectsNonAtomicStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	nonAtomic := mocks.NewMockStore(ctrl)
	nonAtomic.EXPECT().Atomic().Return(false).AnyTimes()
	nonAtomic.EXPECT().Name().Return("plain-kv").AnyTimes()

	_, err := coordinator.New(testLogger(), nonAtomic, store.NewLocalStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atomic conditional-write")
}

func TestAcquireMutualExclusion(t *testing.T) {
	ctx := context.Background()
	shared := store.NewLocalStore()
	a := newTestCoordinator(t, shared)
	b := newTestCoordinator(t, shared)

	opts := coordinator.LockOptions{Key: "job-x", TTL: time.Minute}

	assert.True(t, a.Acquire(ctx, opts), "A should take the free lock")
	assert.False(t, b.Acquire(ctx, opts), "B must be refused while A holds it")
	assert.True(t, a.IsLocked(ctx, "job-x"))
	assert.True(t, b.IsLocked(ctx, "job-x"))

	a.Release(ctx, "job-x")
	assert.False(t, a.IsLocked(ctx, "job-x"))
	assert.True(t, b.Acquire(ctx, opts), "B should take the lock after A released it")
}

func TestAcquireAfterTTLExpiry(t *testing.T) {
	ctx := context.Background()
	shared := store.NewLocalStore()
	a := newTestCoordinator(t, shared)
	b := newTestCoordinator(t, shared)

	opts := coordinator.LockOptions{Key: "job-y", TTL: 50 * time.Millisecond}

	require.True(t, a.Acquire(ctx, opts))
	assert.True(t, b.IsLocked(ctx, "job-y"))

	time.Sleep(60 * time.Millisecond)

	assert.False(t, a.IsLocked(ctx, "job-y"), "expired lock should read unlocked")
	assert.True(t, b.Acquire(ctx, opts), "B should reacquire after expiry with no release")
}

func TestReleaseByNonOwnerIsNoOp(t *testing.T) {
	ctx := context.Background()
	shared := store.NewLocalStore()
	a := newTestCoordinator(t, shared)
	b := newTestCoordinator(t, shared)

	require.True(t, a.Acquire(ctx, coordinator.LockOptions{Key: "job-x", TTL: time.Minute}))

	b.Release(ctx, "job-x")
	assert.True(t, a.IsLocked(ctx, "job-x"), "non-owner release must not remove the record")

	a.Release(ctx, "job-x")
	assert.False(t, a.IsLocked(ctx, "job-x"))
}

func TestAcquireRetryCountAndSpacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockStore(ctrl)
	remote.EXPECT().Atomic().Return(true).AnyTimes()
	remote.EXPECT().Name().Return("remote-stub").AnyTimes()

	const maxRetries = 2
	delay := 30 * time.Millisecond

	// Exactly maxRetries+1 attempts, no more
	remote.EXPECT().
		TryCreate(gomock.Any(), "job-x", gomock.Any(), gomock.Any()).
		Return(false, nil).
		Times(maxRetries + 1)

	coord, err := coordinator.New(testLogger(), remote, store.NewLocalStore())
	require.NoError(t, err)

	start := time.Now()
	acquired := coord.Acquire(context.Background(), coordinator.LockOptions{
		Key:        "job-x",
		TTL:        time.Minute,
		MaxRetries: maxRetries,
		RetryDelay: delay,
	})
	elapsed := time.Since(start)

	assert.False(t, acquired)
	assert.GreaterOrEqual(t, elapsed, time.Duration(maxRetries)*delay,
		"attempts must be spaced at least the retry delay apart")
}

func TestAcquireCancelledDuringRetryWait(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockStore(ctrl)
	remote.EXPECT().Atomic().Return(true).AnyTimes()
	remote.EXPECT().Name().Return("remote-stub").AnyTimes()
	remote.EXPECT().
		TryCreate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, nil).
		Times(1)

	coord, err := coordinator.New(testLogger(), remote, store.NewLocalStore())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	acquired := coord.Acquire(ctx, coordinator.LockOptions{
		Key:        "job-x",
		TTL:        time.Minute,
		MaxRetries: 5,
		RetryDelay: time.Minute,
	})
	assert.False(t, acquired, "cancellation during the retry wait returns refusal")
}

func TestAcquireFallsBackWhenRemoteUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := mocks.NewMockStore(ctrl)
	remote.EXPECT().Atomic().Return(true).AnyTimes()
	remote.EXPECT().Name().Return("remote-stub").AnyTimes()
	remote.EXPECT().
		TryCreate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, store.ErrUnavailable).
		AnyTimes()
	remote.EXPECT().
		ReadOwner(gomock.Any(), gomock.Any()).
		Return("", store.ErrUnavailable).
		AnyTimes()
	remote.EXPECT().
		DeleteIfOwner(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, store.ErrUnavailable).
		AnyTimes()

	coord, err := coordinator.New(testLogger(), remote, store.NewLocalStore())
	require.NoError(t, err)

	ctx := context.Background()
	opts := coordinator.LockOptions{Key: "job-x", TTL: time.Minute}

	// Acquire succeeds through the fallback, no error escapes
	assert.True(t, coord.Acquire(ctx, opts))
	assert.True(t, coord.IsLocked(ctx, "job-x"))

	// Process-local mutual exclusion still holds in degraded mode
	assert.False(t, coord.Acquire(ctx, opts))

	coord.Release(ctx, "job-x")
	assert.False(t, coord.IsLocked(ctx, "job-x"))
	assert.True(t, coord.Acquire(ctx, opts))
}

func TestAcquireInvalidOptions(t *testing.T) {
	shared := store.NewLocalStore()
	coord := newTestCoordinator(t, shared)

	assert.False(t, coord.Acquire(context.Background(), coordinator.LockOptions{Key: ""}),
		"empty key must be refused")
}

func TestNewIdentityUniqueness(t *testing.T) {
	a := coordinator.NewIdentity()
	b := coordinator.NewIdentity()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b, "two identities from one process must differ")
}

func TestLockOptionsDefaults(t *testing.T) {
	opts := coordinator.LockOptions{Key: "job-x"}.WithDefaults()
	assert.Equal(t, coordinator.DefaultTTL, opts.TTL)
	assert.Equal(t, coordinator.DefaultRetryDelay, opts.RetryDelay)
	assert.Zero(t, opts.MaxRetries)

	custom := coordinator.LockOptions{Key: "job-x", TTL: time.Second, RetryDelay: time.Millisecond}.WithDefaults()
	assert.Equal(t, time.Second, custom.TTL)
	assert.Equal(t, time.Millisecond, custom.RetryDelay)
}

func TestLockOptionsValidate(t *testing.T) {
	assert.Error(t, coordinator.LockOptions{}.Validate())
	assert.Error(t, coordinator.LockOptions{Key: "k", TTL: -time.Second}.Validate())
	assert.Error(t, coordinator.LockOptions{Key: "k", MaxRetries: -1}.Validate())
	assert.Error(t, coordinator.LockOptions{Key: "k", RetryDelay: -time.Second}.Validate())
	assert.NoError(t, coordinator.LockOptions{Key: "k", TTL: time.Minute}.Validate())
}
