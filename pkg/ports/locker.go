package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serialises panel switches of one session across server
// replicas sharing a PanelStore.
type DistributedLocker interface {
	// Lock blocks until key is held or ctx is done. The lock expires after ttl
	// even if the returned UnlockFunc is never called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
