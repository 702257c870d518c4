package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSyncInProgress is returned when another reconciliation pass holds the lock.
	ErrSyncInProgress = errors.New("a reconciliation pass is already running")
	// ErrLockLost is returned on release when the lock expired before the pass finished.
	ErrLockLost = errors.New("sync lock expired before release")
)

// Locker serializes reconciliation passes. TryLock never waits: it returns
// ErrSyncInProgress if the lock is held. unlock reports a failed release.
type Locker interface {
	TryLock(ctx context.Context) (unlock func() error, err error)
}

// LocalLocker serializes passes within one process.
type LocalLocker struct {
	mu sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{}
}

func (l *LocalLocker) TryLock(context.Context) (func() error, error) {
	if !l.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	return func() error {
		l.mu.Unlock()
		return nil
	}, nil
}

// releaseScript deletes the key only if it still holds our token, so a pass that
// outlived its TTL cannot release a lock taken by the next one.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes passes across processes sharing one Redis.
type RedisLocker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, key string, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisLocker{client: client, key: key, ttl: ttl}
}

func (l *RedisLocker) TryLock(ctx context.Context) (func() error, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !ok {
		return nil, ErrSyncInProgress
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		n, err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Int()
		if err != nil {
			return fmt.Errorf("release sync lock: %w", err)
		}
		if n == 0 {
			return ErrLockLost
		}
		return nil
	}, nil
}
