package app

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/platform/openai"
	"github.com/yungbote/courseforge-backend/internal/platform/ratelimit"
)

type Clients struct {
	OpenAI  openai.Client
	Redis   *goredis.Client
	Limiter ratelimit.Limiter
}

// wireClients builds the optional outbound clients. A missing model key or
// an unreachable Redis degrades the generation endpoints instead of failing
// startup.
func wireClients(ctx context.Context, log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")
	out := Clients{Limiter: ratelimit.Noop()}

	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; generation endpoints will fail")
	} else if c, err := openai.NewClient(log, cfg.OpenAI); err != nil {
		log.Warn("OpenAI client init failed; generation endpoints will fail", "error", err)
	} else {
		out.OpenAI = c
	}

	if cfg.RedisAddr == "" || cfg.GenerationRateLimit <= 0 {
		return out
	}
	rdb, err := ratelimit.Dial(ctx, cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis unavailable; generation rate limiting disabled", "error", err, "addr", cfg.RedisAddr)
		return out
	}
	limiter, err := ratelimit.NewRedisLimiter(log, rdb, "genrl", cfg.GenerationRateLimit, cfg.GenerationWindow)
	if err != nil {
		log.Warn("Rate limiter init failed; generation rate limiting disabled", "error", err)
		_ = rdb.Close()
		return out
	}
	out.Redis = rdb
	out.Limiter = limiter
	return out
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
