package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// LockKeyPrefix namespaces job locks in Redis.
const LockKeyPrefix = "banking:job-lock:"

// Locker grants a named lock to at most one holder at a time until it is released or its ttl
// runs out.
type Locker interface {
	// TryLock returns acquired=false without error when someone else holds the lock.
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}

// releaseScript deletes the lock only while it still holds our token, so a lock that expired
// and was taken by another instance is left alone.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker coordinates job runs across instances with SET NX PX.
type RedisLocker struct {
	client redis.Cmdable
	owner  string
}

// NewRedisLocker identifies this process with owner, or a random uuid when owner is empty.
func NewRedisLocker(client redis.Cmdable, owner string) *RedisLocker {
	if owner == "" {
		owner = uuid.NewString()
	}
	return &RedisLocker{client: client, owner: owner}
}

func (l *RedisLocker) TryLock(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	key := LockKeyPrefix + name
	ok, err := l.client.SetNX(ctx, key, l.owner, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := l.client.Eval(ctx, releaseScript, []string{key}, l.owner).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
	return release, true, nil
}

// LocalLocker is the single-instance fallback used when no Redis is configured.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time), clock: time.Now}
}

func (l *LocalLocker) TryLock(_ context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expires, ok := l.held[name]; ok && now.Before(expires) {
		return nil, false, nil
	}
	expires := now.Add(ttl)
	l.held[name] = expires

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[name].Equal(expires) {
			delete(l.held, name)
		}
		return nil
	}
	return release, true, nil
}

var (
	_ Locker = (*RedisLocker)(nil)
	_ Locker = (*LocalLocker)(nil)
)
