package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/workbench/pkg/adapters/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_LockUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "wb:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("wb:lock:s1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("wb:lock:s1"))
}

func TestLocker_Contention(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "wb:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "s1", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	unlock2, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_UnlockDoesNotStealForeignLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "wb:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)

	// Another holder took over after expiry.
	require.NoError(t, mr.Set("wb:lock:s1", "someone-else"))
	require.NoError(t, unlock(ctx))

	got, err := mr.Get("wb:lock:s1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
