package lock

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLock(t *testing.T) (*Redis, *miniredis.Miniredis, *bytes.Buffer) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	var logs bytes.Buffer
	l := NewRedis(rdb, "salon")
	l.wait = 200 * time.Millisecond
	l.backoff = 5 * time.Millisecond
	l.log = slog.New(slog.NewTextHandler(&logs, nil))
	return l, mr, &logs
}

func TestRedis_AcquireAndRelease(t *testing.T) {
	l, mr, logs := newRedisLock(t)
	ctx := context.Background()

	require.NoError(t, l.Ping(ctx))

	unlock, err := l.Lock(ctx, "queue:b1:2025-06-02")
	require.NoError(t, err)

	key := "salon:queue:b1:2025-06-02"
	require.True(t, mr.Exists(key))
	token, err := mr.Get(key)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 10*time.Second, mr.TTL(key))

	unlock()
	assert.False(t, mr.Exists(key))
	assert.Empty(t, logs.String())
}

func TestRedis_ContentionTimesOut(t *testing.T) {
	l, _, _ := newRedisLock(t)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	defer unlock()

	start := time.Now()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), l.wait)

	other, err := l.Lock(ctx, "other")
	require.NoError(t, err)
	other()
}

func TestRedis_WaiterGetsKeyAfterRelease(t *testing.T) {
	l, _, _ := newRedisLock(t)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		next, err := l.Lock(ctx, "k")
		if err == nil {
			next()
		}
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	unlock()
	assert.NoError(t, <-done)
}

func TestRedis_ReleaseChecksToken(t *testing.T) {
	l, mr, logs := newRedisLock(t)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	// the TTL ran out and another instance took the key
	require.NoError(t, mr.Set("salon:k", "someone-else"))

	unlock()
	got, err := mr.Get("salon:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
	assert.Contains(t, logs.String(), "lock expired before release")
}

func TestRedis_ReleaseFailureIsLogged(t *testing.T) {
	l, mr, logs := newRedisLock(t)

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	mr.Close()
	unlock()

	assert.Contains(t, logs.String(), "lock release failed")
	assert.Contains(t, logs.String(), "key=salon:k")
}
