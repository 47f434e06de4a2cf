package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript bumps the window counter and sets its expiry in one atomic step.
// A separate EXPIRE could be lost after a successful INCR, leaving a counter
// that never resets.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RateLimiter is a fixed-window counter on Redis, keyed per client.
type RateLimiter struct {
	rdb    redis.Scripter
	limit  int64
	window time.Duration
}

// ParsePolicy parses a policy string such as "100/minute".
func ParsePolicy(policy string) (int64, time.Duration, error) {
	parts := strings.SplitN(policy, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid rate limit policy %q", policy)
	}
	limit, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || limit <= 0 {
		return 0, 0, fmt.Errorf("invalid rate limit count in %q", policy)
	}
	var window time.Duration
	switch strings.TrimSpace(parts[1]) {
	case "second":
		window = time.Second
	case "minute":
		window = time.Minute
	case "hour":
		window = time.Hour
	default:
		return 0, 0, fmt.Errorf("invalid rate limit window in %q", policy)
	}
	return limit, window, nil
}

func NewRateLimiter(rdb redis.Scripter, policy string) (*RateLimiter, error) {
	limit, window, err := ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window}, nil
}

// Allow reports whether the caller identified by key is within its window.
// Limiter backend failures fail open: rate limiting is an optimization,
// never a reason to reject traffic.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := hitScript.Run(ctx, l.rdb,
		[]string{"ratelimit:" + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return true, err
	}
	return n <= l.limit, nil
}
