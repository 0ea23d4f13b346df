package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/learning/prompts"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
	"github.com/yungbote/courseforge-backend/internal/services"
)

type Services struct {
	Identity   services.IdentityService
	Auth       services.AuthService
	User       services.UserService
	Gate       services.OwnershipGate
	Course     services.CourseService
	Module     services.ModuleService
	Lesson     services.LessonService
	Generation services.GenerationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	registry, err := prompts.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load prompts: %w", err)
	}
	identity := services.NewIdentityService(db, log, repos.User)
	gate := services.NewOwnershipGate(log, repos.Course, repos.Module, repos.Lesson)
	return Services{
		Identity:   identity,
		Auth:       services.NewAuthService(log, identity, cfg.JWTSecretKey, cfg.JWTIssuer),
		User:       services.NewUserService(log, repos.User),
		Gate:       gate,
		Course:     services.NewCourseService(db, log, gate, repos.Course, repos.Module, repos.Lesson),
		Module:     services.NewModuleService(db, log, gate, repos.Course, repos.Module, repos.Lesson),
		Lesson:     services.NewLessonService(db, log, gate, repos.Module, repos.Lesson),
		Generation: services.NewGenerationService(log, clients.OpenAI, registry, clients.Limiter),
	}, nil
}
