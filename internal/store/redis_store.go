package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultOpTimeout bounds every remote store operation so an unresponsive
// Redis is reported as unreachable instead of blocking an acquire.
const DefaultOpTimeout = 2 * time.Second

// deleteIfOwnerScript removes the key only when its value matches the
// caller's owner id. GET and DEL run as one script, so a lock that expired
// and was re-acquired by another instance is never deleted by mistake.
var deleteIfOwnerScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`)

// redisStore implements Store over a shared Redis instance. SET NX provides
// the atomic create-if-absent and Redis' native key TTL provides passive
// expiry, so expired records are invisible without any cleanup pass.
type redisStore struct {
	logger    *slog.Logger
	client    redis.UniversalClient
	opTimeout time.Duration
}

// NewRedisStore creates a Redis-backed lock store using the given client.
// opTimeout bounds each store operation; zero selects DefaultOpTimeout.
func NewRedisStore(logger *slog.Logger, client redis.UniversalClient, opTimeout time.Duration) (*redisStore, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil logger not allowed")
	}
	if client == nil {
		return nil, fmt.Errorf("nil redis client not allowed")
	}
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}
	return &redisStore{
		logger:    logger,
		client:    client,
		opTimeout: opTimeout,
	}, nil
}

// TryCreate issues a single SET key owner NX PX ttl. Two concurrent callers
// can never both succeed; Redis resolves the tie.
func (s *redisStore) TryCreate(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	created, err := s.client.SetNX(opCtx, key, owner, ttl).Result()
	if err != nil {
		return false, s.unavailable("setnx", key, err)
	}
	return created, nil
}

func (s *redisStore) ReadOwner(ctx context.Context, key string) (string, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	owner, err := s.client.Get(opCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", s.unavailable("get", key, err)
	}
	return owner, nil
}

func (s *redisStore) DeleteIfOwner(ctx context.Context, key, owner string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	res, err := deleteIfOwnerScript.Run(opCtx, s.client, []string{key}, owner).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, s.unavailable("delete", key, err)
	}
	return res == 1, nil
}

func (s *redisStore) Atomic() bool {
	return true
}

func (s *redisStore) Name() string {
	return "redis"
}

// unavailable classifies any transport or timeout failure as ErrUnavailable.
// Unreachability is a valid runtime state for the remote store, so it is
// logged here and reported through the sentinel rather than as a raw error.
func (s *redisStore) unavailable(op, key string, err error) error {
	s.logger.Warn("Redis lock store unreachable",
		"operation", op,
		"key", key,
		"error", err,
	)
	return fmt.Errorf("redis %s %q: %w: %v", op, key, ErrUnavailable, err)
}
