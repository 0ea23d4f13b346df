package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/courseforge-backend/internal/http/handlers"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	User       *httpH.UserHandler
	Course     *httpH.CourseHandler
	Module     *httpH.ModuleHandler
	Lesson     *httpH.LessonHandler
	Generation *httpH.GenerationHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(db),
		User:       httpH.NewUserHandler(log, services.User),
		Course:     httpH.NewCourseHandler(log, services.Course, services.Module),
		Module:     httpH.NewModuleHandler(log, services.Module, services.Lesson),
		Lesson:     httpH.NewLessonHandler(log, services.Lesson),
		Generation: httpH.NewGenerationHandler(log, services.Generation),
	}
}
