package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/workbench/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// ErrLockAcquire is returned when Redis fails while acquiring a lock.
var ErrLockAcquire = errors.New("failed to acquire distributed lock")

// DefaultRetryInterval is the polling interval of a contended lock.
const DefaultRetryInterval = 100 * time.Millisecond

// unlockScript deletes the lock only if this holder still owns it.
var unlockScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client *backend.Client
	prefix string
	retry  time.Duration
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		retry:  DefaultRetryInterval,
	}
}

// Lock acquires a distributed lock for the given key using SET NX PX.
// It polls until the lock is free or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLockAcquire, err)
		}
		if ok {
			return func(ctx context.Context) error {
				return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
