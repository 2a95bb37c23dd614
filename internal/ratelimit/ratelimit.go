// Package ratelimit implements a fixed-window request limiter on Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

type redisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedis allows limit hits per key in each window. Windows are aligned to
// the Unix epoch so every replica agrees on the bucket.
func NewRedis(client *redis.Client, prefix string, limit int, window time.Duration) Limiter {
	if window < time.Second {
		window = time.Second
	}
	return &redisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.limit <= 0 {
		return Result{Allowed: true}, nil
	}

	now := l.now()
	bucketKey, resetAt := l.bucket(key, now)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, bucketKey)
	pipe.ExpireAt(ctx, bucketKey, resetAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("incrementing rate limit counter: %w", err)
	}

	count := int(incr.Val())
	if count > l.limit {
		return Result{Allowed: false, RetryAfter: resetAt.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - count}, nil
}

func (l *redisLimiter) bucket(key string, now time.Time) (string, time.Time) {
	size := int64(l.window / time.Second)
	idx := now.Unix() / size
	resetAt := time.Unix((idx+1)*size, 0)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, idx), resetAt
}

type noopLimiter struct{}

// NewNoop never limits.
func NewNoop() Limiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string) (Result, error) {
	return Result{Allowed: true}, nil
}
