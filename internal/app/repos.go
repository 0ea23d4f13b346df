package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type Repos struct {
	User   repos.UserRepo
	Course repos.CourseRepo
	Module repos.ModuleRepo
	Lesson repos.LessonRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:   repos.NewUserRepo(db, log),
		Course: repos.NewCourseRepo(db, log),
		Module: repos.NewModuleRepo(db, log),
		Lesson: repos.NewLessonRepo(db, log),
	}
}
