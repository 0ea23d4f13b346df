package domain

import (
	"github.com/yungbote/courseforge-backend/internal/domain/learning"
	"github.com/yungbote/courseforge-backend/internal/domain/user"
)

type (
	User = user.User

	Course       = learning.Course
	CourseDetail = learning.CourseDetail
	Module       = learning.Module
	ModuleDetail = learning.ModuleDetail
	Lesson       = learning.Lesson
	KeyTerm      = learning.KeyTerm
	Activity     = learning.Activity

	ModuleDraft = learning.ModuleDraft
	LessonDraft = learning.LessonDraft
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&learning.Course{},
		&learning.Module{},
		&learning.Lesson{},
	}
}
