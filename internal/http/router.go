package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/courseforge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/courseforge-backend/internal/http/middleware"
	"github.com/yungbote/courseforge-backend/internal/observability"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	UserHandler       *httpH.UserHandler
	CourseHandler     *httpH.CourseHandler
	ModuleHandler     *httpH.ModuleHandler
	LessonHandler     *httpH.LessonHandler
	GenerationHandler *httpH.GenerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	protected := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// User (Me)
	if cfg.UserHandler != nil {
		protected.GET("/me", cfg.UserHandler.GetMe)
	}

	// Course
	if cfg.CourseHandler != nil {
		protected.GET("/courses", cfg.CourseHandler.ListMyCourses)
		protected.POST("/courses", cfg.CourseHandler.CreateCourse)
		protected.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		protected.PUT("/courses/:id", cfg.CourseHandler.UpdateCourse)
		protected.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)
		protected.GET("/courses/:id/modules", cfg.CourseHandler.ListCourseModules)
	}

	// Generation
	if cfg.GenerationHandler != nil {
		protected.POST("/modules/generate", cfg.GenerationHandler.GenerateModules)
		protected.POST("/lessons/generate", cfg.GenerationHandler.GenerateLesson)
	}

	// Module
	if cfg.ModuleHandler != nil {
		protected.POST("/modules", cfg.ModuleHandler.CreateModule)
		protected.GET("/modules/:id", cfg.ModuleHandler.GetModule)
		protected.PUT("/modules/:id", cfg.ModuleHandler.UpdateModule)
		protected.DELETE("/modules/:id", cfg.ModuleHandler.DeleteModule)
		protected.GET("/modules/:id/lessons", cfg.ModuleHandler.ListModuleLessons)
	}

	// Lesson
	if cfg.LessonHandler != nil {
		protected.POST("/lessons", cfg.LessonHandler.CreateLesson)
		protected.GET("/lessons/:id", cfg.LessonHandler.GetLesson)
		protected.PUT("/lessons/:id", cfg.LessonHandler.UpdateLesson)
		protected.DELETE("/lessons/:id", cfg.LessonHandler.DeleteLesson)
	}

	return r
}
