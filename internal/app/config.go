package app

import (
	"time"

	"github.com/yungbote/courseforge-backend/internal/data/db"
	"github.com/yungbote/courseforge-backend/internal/platform/envutil"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/platform/openai"
)

type Config struct {
	Port        string
	Environment string
	Version     string
	ServiceName string

	DB db.Config

	JWTSecretKey string
	JWTIssuer    string

	OpenAI openai.Config

	RedisAddr           string
	GenerationRateLimit int
	GenerationWindow    time.Duration

	AllowedOrigins []string
	MetricsAddr    string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "courseforge-api"),
		DB: db.Config{
			Driver:     envutil.String("DB_DRIVER", db.DriverPostgres),
			DSN:        envutil.String("POSTGRES_DSN", ""),
			Host:       envutil.String("POSTGRES_HOST", "localhost"),
			Port:       envutil.String("POSTGRES_PORT", "5432"),
			User:       envutil.String("POSTGRES_USER", "postgres"),
			Password:   envutil.String("POSTGRES_PASSWORD", ""),
			Name:       envutil.String("POSTGRES_NAME", "courseforge"),
			SQLitePath: envutil.String("SQLITE_PATH", "courseforge.db"),
		},
		JWTSecretKey: envutil.String("AUTH_JWT_SECRET", ""),
		JWTIssuer:    envutil.String("AUTH_JWT_ISSUER", ""),
		OpenAI: openai.Config{
			APIKey:     envutil.String("OPENAI_API_KEY", ""),
			BaseURL:    envutil.String("OPENAI_BASE_URL", ""),
			Model:      envutil.String("OPENAI_MODEL", "gpt-4"),
			Timeout:    envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 120*time.Second),
			MaxRetries: envutil.Int("OPENAI_MAX_RETRIES", 0),
		},
		RedisAddr:           envutil.String("REDIS_ADDR", ""),
		GenerationRateLimit: envutil.Int("GENERATION_RATE_LIMIT", 0),
		GenerationWindow:    envutil.Seconds("GENERATION_RATE_WINDOW_SECONDS", time.Minute),
		AllowedOrigins:      envutil.List("CORS_ALLOWED_ORIGINS", nil),
		MetricsAddr:         envutil.String("METRICS_ADDR", ""),
	}
	if cfg.JWTSecretKey == "" {
		log.Warn("AUTH_JWT_SECRET is not set; every authenticated request will be rejected")
	}
	return cfg
}
