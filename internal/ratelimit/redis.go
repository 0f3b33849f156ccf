// Package ratelimit provides a fixed-window rate limiter backed by Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"acharya-admissions-backend/internal/logger"
)

// incrScript counts a hit and arms the window expiry on the first hit.
var incrScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type redisLimiter struct {
	client *redis.Client
}

// NewRedisLimiter returns a limiter that allows at most limit hits per key
// within each window. Redis failures are logged and treated as allowed so an
// outage never blocks applicants.
func NewRedisLimiter(client *redis.Client) *redisLimiter {
	return &redisLimiter{client: client}
}

func (l *redisLimiter) Allow(key string, limit int, window time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := incrScript.Run(ctx, l.client, []string{"ratelimit:" + key}, window.Milliseconds()).Int64()
	if err != nil {
		logger.Error("Rate limiter unavailable, allowing request", "key", key, "error", err)
		return true
	}
	return count <= int64(limit)
}
