package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRecordNotFound is returned when no record exists for the session key.
var ErrRecordNotFound = errors.New("credential record not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("redis unavailable")

const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseLockLua = redis.NewScript(releaseLockScript)

// Store is a Redis-backed token store. It round-trips credential records
// between requests and provides the short-lived per-user refresh lock that
// serializes concurrent refresh attempts against rotating-refresh-token
// providers.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a record [Store] backed by the given Redis client.
// prefix sets the key namespace; ttl bounds how long an untouched record
// survives between requests.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "cr"
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(tenantID, sessionID string) string {
	return s.prefix + ":" + normalizeTenantID(tenantID) + ":" + sessionID
}

func (s *Store) lockKey(tenantID, userID string) string {
	return s.prefix + "l:" + normalizeTenantID(tenantID) + ":" + userID
}

func normalizeTenantID(tenantID string) string {
	if tenantID == "" {
		return "default"
	}
	return tenantID
}

// Save persists a record under the tenant/session key.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, tenantID, sessionID string, rec *Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(tenantID, sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Load retrieves a record by tenant and session ID. Returns
// [ErrRecordNotFound] when absent.
//
//	Performance: 1 Redis GET.
func (s *Store) Load(ctx context.Context, tenantID, sessionID string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(tenantID, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return Decode(data)
}

// Delete removes a record. Deleting an absent record is a no-op.
func (s *Store) Delete(ctx context.Context, tenantID, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(tenantID, sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// AcquireRefreshLock takes the per-user refresh lock with SETNX. The
// returned fencing token must be passed to [Store.ReleaseRefreshLock]. ok is
// false when another request holds the lock; ttl caps how long a crashed
// holder can block refreshes.
//
//	Performance: 1 Redis SET NX PX.
func (s *Store) AcquireRefreshLock(ctx context.Context, tenantID, userID string, ttl time.Duration) (string, bool, error) {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, s.lockKey(tenantID, userID), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseRefreshLock releases the per-user refresh lock if the fencing token
// still matches. A lock that expired and was re-acquired by another request
// is left untouched.
//
//	Performance: 1 Lua EVALSHA (compare-and-delete).
func (s *Store) ReleaseRefreshLock(ctx context.Context, tenantID, userID, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseLockLua.Run(ctx, s.redis, []string{s.lockKey(tenantID, userID)}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
