package app

import (
	apphttp "github.com/yungbote/courseforge-backend/internal/http"
	"github.com/yungbote/courseforge-backend/internal/observability"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(":"+cfg.Port, apphttp.RouterConfig{
		Log:               log,
		ServiceName:       cfg.ServiceName,
		AllowedOrigins:    cfg.AllowedOrigins,
		Metrics:           metrics,
		AuthMiddleware:    middleware.Auth,
		HealthHandler:     handlers.Health,
		UserHandler:       handlers.User,
		CourseHandler:     handlers.Course,
		ModuleHandler:     handlers.Module,
		LessonHandler:     handlers.Lesson,
		GenerationHandler: handlers.Generation,
	})
}
