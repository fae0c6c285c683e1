package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrLockTimeout = errors.New("lock: timed out waiting for key")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a SET NX lock shared by every API instance. The TTL bounds how
// long a crashed holder can keep a key.
type Redis struct {
	rdb     *redis.Client
	prefix  string
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
	log     *slog.Logger
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "lock"
	}
	return &Redis{
		rdb:     rdb,
		prefix:  prefix,
		ttl:     10 * time.Second,
		wait:    5 * time.Second,
		backoff: 25 * time.Millisecond,
		log:     slog.Default(),
	}
}

// NewRedisFromURL parses a redis:// URL.
func NewRedisFromURL(url, prefix string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts), prefix), nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	full := r.prefix + ":" + key
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, r.wait)
	defer cancel()

	for {
		ok, err := r.rdb.SetNX(ctx, full, token, r.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if ok {
			return func() { r.release(full, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(r.backoff):
		}
	}
}

// release deletes the key only while it still holds token. A failed release
// leaves the key to expire.
func (r *Redis) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.wait)
	defer cancel()

	n, err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Int()
	switch {
	case err != nil:
		r.log.Error("lock release failed", "key", key, "err", err)
	case n == 0:
		r.log.Warn("lock expired before release", "key", key)
	}
}
