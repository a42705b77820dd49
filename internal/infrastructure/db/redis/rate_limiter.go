package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateLimitKey holds the process-wide chat call log.
const RateLimitKey = "chat:rate_limit"

// RateLimiter is a sliding-window limiter shared by every caller. Admitted
// calls are stored in a sorted set scored by their timestamp in microseconds;
// rejected calls are not recorded.
//
// The read and the write are separate round trips, so concurrent callers can
// overshoot the limit by a few requests.
type RateLimiter struct {
	client *redis.Client
	key    string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter admits at most limit calls per window.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		key:    RateLimitKey,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow reports whether one more call fits in the current window and, if so,
// records it.
func (l *RateLimiter) Allow(ctx context.Context) (bool, error) {
	now := l.now()
	windowStart := now.Add(-l.window).UnixMicro()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, l.key, "-inf", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, l.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit read: %w", err)
	}

	if count.Val() >= l.limit {
		return false, nil
	}

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, l.key, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
	pipe.Expire(ctx, l.key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit write: %w", err)
	}
	return true, nil
}
