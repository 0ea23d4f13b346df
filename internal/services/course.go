package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/domain/learning"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type CreateCourseInput struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description" validate:"required"`
	LearningOutcomes []string `json:"learningOutcomes"`
	Difficulty       string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime    *int     `json:"estimatedTime" validate:"omitnil,gte=0"`
}

// UpdateCourseInput fields are applied only when present; a nil pointer
// leaves the stored value unchanged.
type UpdateCourseInput struct {
	Title            *string   `json:"title" validate:"omitnil,min=1"`
	Description      *string   `json:"description"`
	LearningOutcomes *[]string `json:"learningOutcomes"`
	Difficulty       *string   `json:"difficulty" validate:"omitnil,oneof=beginner intermediate advanced"`
	EstimatedTime    *int      `json:"estimatedTime" validate:"omitnil,gte=0"`
}

type CourseService interface {
	ListMine(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
	Create(ctx context.Context, tx *gorm.DB, in CreateCourseInput) (*types.Course, error)
	Get(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseDetail, error)
	Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, in UpdateCourseInput) (*types.Course, error)
	Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type courseService struct {
	db         *gorm.DB
	log        *logger.Logger
	gate       OwnershipGate
	courseRepo repos.CourseRepo
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gate OwnershipGate,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) CourseService {
	return &courseService{
		db:         db,
		log:        baseLog.With("service", "CourseService"),
		gate:       gate,
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

func (s *courseService) ListMine(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.GetByCreatorIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, persistenceErr(s.log, "ListMine", "failed to fetch courses", err, "user_id", userID)
	}
	return courses, nil
}

func (s *courseService) Create(ctx context.Context, tx *gorm.DB, in CreateCourseInput) (*types.Course, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	course := &types.Course{
		ID:               uuid.New(),
		Title:            in.Title,
		Description:      in.Description,
		CreatorID:        userID,
		LearningOutcomes: datatypes.NewJSONSlice(in.LearningOutcomes),
		Difficulty:       learning.DifficultyIntermediate,
	}
	if in.Difficulty != "" {
		course.Difficulty = in.Difficulty
	}
	if in.EstimatedTime != nil {
		course.EstimatedTime = *in.EstimatedTime
	}

	if _, err := s.courseRepo.Create(ctx, tx, []*types.Course{course}); err != nil {
		return nil, persistenceErr(s.log, "Create", "failed to create course", err, "user_id", userID)
	}
	return course, nil
}

// Get resolves the course's module list in list order, skipping ids that no
// longer resolve.
func (s *courseService) Get(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseDetail, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	rows, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, persistenceErr(s.log, "Get", "failed to fetch course", err, "course_id", courseID)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("Course not found")
	}
	course := rows[0]

	modules, err := s.moduleRepo.GetByIDs(ctx, tx, course.ModuleIDs)
	if err != nil {
		return nil, persistenceErr(s.log, "Get", "failed to fetch course modules", err, "course_id", courseID)
	}
	return &types.CourseDetail{Course: *course, Modules: orderByIDs(course.ModuleIDs, modules, func(m *types.Module) uuid.UUID { return m.ID })}, nil
}

func (s *courseService) Update(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, in UpdateCourseInput) (*types.Course, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var out *types.Course
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindCourse, courseID); err != nil {
			return err
		}
		course, err := s.courseRepo.LockByID(ctx, txx, courseID)
		if err != nil {
			return err
		}
		if in.Title != nil {
			course.Title = *in.Title
		}
		if in.Description != nil {
			course.Description = *in.Description
		}
		if in.LearningOutcomes != nil {
			course.LearningOutcomes = datatypes.NewJSONSlice(*in.LearningOutcomes)
		}
		if in.Difficulty != nil {
			course.Difficulty = *in.Difficulty
		}
		if in.EstimatedTime != nil {
			course.EstimatedTime = *in.EstimatedTime
		}
		if err := s.courseRepo.Save(ctx, txx, course); err != nil {
			return err
		}
		out = course
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "Update", "failed to update course", err, "course_id", courseID)
	}
	return out, nil
}

// Delete removes the course together with its modules and their lessons.
func (s *courseService) Delete(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindCourse, courseID); err != nil {
			return err
		}
		if _, err := s.courseRepo.LockByID(ctx, txx, courseID); err != nil {
			return err
		}
		modules, err := s.moduleRepo.GetByCourseIDs(ctx, txx, []uuid.UUID{courseID})
		if err != nil {
			return err
		}
		moduleIDs := make([]uuid.UUID, 0, len(modules))
		for _, m := range modules {
			moduleIDs = append(moduleIDs, m.ID)
		}
		if err := s.lessonRepo.DeleteByModuleIDs(ctx, txx, moduleIDs); err != nil {
			return err
		}
		if err := s.moduleRepo.DeleteByCourseIDs(ctx, txx, []uuid.UUID{courseID}); err != nil {
			return err
		}
		return s.courseRepo.DeleteByIDs(ctx, txx, []uuid.UUID{courseID})
	})
	if err != nil {
		return persistenceErr(s.log, "Delete", "failed to delete course", err, "course_id", courseID)
	}
	s.log.Info("Course deleted", "course_id", courseID)
	return nil
}

// orderByIDs arranges rows to follow ids, dropping ids with no row.
func orderByIDs[T any](ids []uuid.UUID, rows []T, idOf func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(rows))
	for _, r := range rows {
		byID[idOf(r)] = r
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
