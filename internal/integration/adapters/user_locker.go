package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

const lockKeyPrefix = "transactions:lock:user:"

// releaseScript deletes the lock only while it still holds our token, so a
// lock that expired and was taken by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker implements adapter.UserLocker across processes.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker creates a locker backed by Redis. Locks expire after ttl so a
// crashed holder cannot block a user forever.
func NewRedisLocker(client *redis.Client, ttl time.Duration) adapter.UserLocker {
	return &redisLocker{client: client, ttl: ttl}
}

// Lock acquires the user's lock or returns domainerror.ErrResolverBusy.
func (l *redisLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := lockKeyPrefix + userID.String()
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, domainerror.ErrResolverBusy
	}

	return func() {
		// The caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil {
			slog.Warn("Failed to release user lock", "user_id", userID, "error", err)
		}
	}, nil
}

// memoryLocker implements adapter.UserLocker within one process.
type memoryLocker struct {
	mu   sync.Mutex
	held map[uuid.UUID]struct{}
}

// NewMemoryLocker creates an in-process locker for deployments without Redis.
func NewMemoryLocker() adapter.UserLocker {
	return &memoryLocker{held: make(map[uuid.UUID]struct{})}
}

// Lock acquires the user's lock or returns domainerror.ErrResolverBusy.
func (l *memoryLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[userID]; busy {
		return nil, domainerror.ErrResolverBusy
	}
	l.held[userID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, userID)
			l.mu.Unlock()
		})
	}, nil
}
