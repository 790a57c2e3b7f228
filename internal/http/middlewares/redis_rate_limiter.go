package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter keeps fixed window counters in Redis so every instance of the
// server shares one budget per client.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.windowKey(key)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	if count == 1 {
		ttl := int64(r.window / time.Second)
		if err := r.client.Do(ctx, r.client.B().Expire().Key(k).Seconds(ttl).Build()).Error(); err != nil {
			return false, err
		}
	}

	return count <= r.limit, nil
}

func (r *RedisLimiter) windowKey(key string) string {
	seconds := int64(r.window / time.Second)
	return fmt.Sprintf("%s:%s:%d", r.prefix, key, r.now().Unix()/seconds)
}
