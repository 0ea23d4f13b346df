package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:    uuid.New(),
		Name:  "Author",
		Email: email,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID uuid.UUID, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:          uuid.New(),
		Title:       title,
		Description: "desc",
		CreatorID:   creatorID,
		Difficulty:  "intermediate",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

// SeedModule inserts a module and links it from its course.
func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, course *types.Course, order int) *types.Module {
	tb.Helper()
	m := &types.Module{
		ID:          uuid.New(),
		Title:       "module",
		Description: "desc",
		CourseID:    course.ID,
		Order:       order,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	course.ModuleIDs = append(course.ModuleIDs, m.ID)
	if err := tx.WithContext(ctx).Save(course).Error; err != nil {
		tb.Fatalf("link module: %v", err)
	}
	return m
}

// SeedLesson inserts a lesson and links it from its module.
func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, module *types.Module, order int) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:            uuid.New(),
		Title:         "lesson",
		Description:   "desc",
		ModuleID:      module.ID,
		Content:       "# lesson",
		Order:         order,
		EstimatedTime: 30,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	module.LessonIDs = append(module.LessonIDs, l.ID)
	if err := tx.WithContext(ctx).Save(module).Error; err != nil {
		tb.Fatalf("link lesson: %v", err)
	}
	return l
}

func PtrString(s string) *string { return &s }
func PtrInt(i int) *int          { return &i }
