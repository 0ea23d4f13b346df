package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

// Limiter admits or rejects one unit of work for a subject.
type Limiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

type noop struct{}

// Noop admits everything.
func Noop() Limiter { return noop{} }

func (noop) Allow(context.Context, string) (bool, error) { return true, nil }

// RedisLimiter is a fixed-window counter shared by every API replica.
type RedisLimiter struct {
	log    *logger.Logger
	rdb    goredis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(log *logger.Logger, rdb goredis.Cmdable, prefix string, limit int, window time.Duration) (*RedisLimiter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{
		log:    log.With("service", "RedisLimiter"),
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

func (l *RedisLimiter) key(subject string) string {
	bucket := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, subject, bucket)
}

func (l *RedisLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	key := l.key(subject)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn("Rate limit window expiry not set", "key", key, "error", err)
		}
	}
	return n <= int64(l.limit), nil
}

// Dial connects to addr and verifies the server answers.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
