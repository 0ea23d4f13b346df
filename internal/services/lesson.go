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

type CreateLessonInput struct {
	ModuleID         uuid.UUID        `json:"moduleId"`
	Title            string           `json:"title" validate:"required"`
	Description      string           `json:"description" validate:"required"`
	Content          string           `json:"content" validate:"required"`
	LearningOutcomes []string         `json:"learningOutcomes"`
	KeyTerms         []types.KeyTerm  `json:"keyTerms" validate:"dive"`
	Activities       []types.Activity `json:"activities" validate:"dive"`
	EstimatedTime    *int             `json:"estimatedTime" validate:"omitnil,gte=0"`
}

type UpdateLessonInput struct {
	Title            *string           `json:"title" validate:"omitnil,min=1"`
	Description      *string           `json:"description"`
	Content          *string           `json:"content"`
	LearningOutcomes *[]string         `json:"learningOutcomes"`
	KeyTerms         *[]types.KeyTerm  `json:"keyTerms" validate:"omitnil,dive"`
	Activities       *[]types.Activity `json:"activities" validate:"omitnil,dive"`
	Order            *int              `json:"order" validate:"omitnil,gte=0"`
	EstimatedTime    *int              `json:"estimatedTime" validate:"omitnil,gte=0"`
}

type LessonService interface {
	Create(ctx context.Context, tx *gorm.DB, in CreateLessonInput) (*types.Lesson, error)
	Get(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error)
	ListForModule(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) ([]*types.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, in UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
}

type lessonService struct {
	db         *gorm.DB
	log        *logger.Logger
	gate       OwnershipGate
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func NewLessonService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gate OwnershipGate,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) LessonService {
	return &lessonService{
		db:         db,
		log:        baseLog.With("service", "LessonService"),
		gate:       gate,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

// Create appends a lesson to its module under a lock on the module row.
func (s *lessonService) Create(ctx context.Context, tx *gorm.DB, in CreateLessonInput) (*types.Lesson, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	if in.ModuleID == uuid.Nil {
		return nil, apierr.Validation("invalid moduleId", nil)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var out *types.Lesson
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindModule, in.ModuleID); err != nil {
			return err
		}
		module, err := s.moduleRepo.LockByID(ctx, txx, in.ModuleID)
		if err != nil {
			return err
		}
		max, err := s.lessonRepo.MaxOrder(ctx, txx, module.ID)
		if err != nil {
			return err
		}
		lesson := &types.Lesson{
			ID:               uuid.New(),
			Title:            in.Title,
			Description:      in.Description,
			ModuleID:         module.ID,
			Content:          in.Content,
			LearningOutcomes: datatypes.NewJSONSlice(in.LearningOutcomes),
			KeyTerms:         datatypes.NewJSONSlice(in.KeyTerms),
			Activities:       datatypes.NewJSONSlice(in.Activities),
			Order:            max + 1,
			EstimatedTime:    learning.DefaultLessonMinutes,
		}
		if in.EstimatedTime != nil {
			lesson.EstimatedTime = *in.EstimatedTime
		}
		if _, err := s.lessonRepo.Create(ctx, txx, []*types.Lesson{lesson}); err != nil {
			return err
		}
		module.LessonIDs = append(module.LessonIDs, lesson.ID)
		if err := s.moduleRepo.Save(ctx, txx, module); err != nil {
			return err
		}
		out = lesson
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "Create", "failed to create lesson", err, "module_id", in.ModuleID)
	}
	return out, nil
}

func (s *lessonService) Get(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (*types.Lesson, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	rows, err := s.lessonRepo.GetByIDs(ctx, tx, []uuid.UUID{lessonID})
	if err != nil {
		return nil, persistenceErr(s.log, "Get", "failed to fetch lesson", err, "lesson_id", lessonID)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("Lesson not found")
	}
	return rows[0], nil
}

func (s *lessonService) ListForModule(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) ([]*types.Lesson, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, persistenceErr(s.log, "ListForModule", "failed to fetch module", err, "module_id", moduleID)
	}
	if len(modules) == 0 {
		return nil, apierr.NotFound("Module not found")
	}
	lessons, err := s.lessonRepo.GetByModuleIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, persistenceErr(s.log, "ListForModule", "failed to fetch lessons", err, "module_id", moduleID)
	}
	return lessons, nil
}

func (s *lessonService) Update(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, in UpdateLessonInput) (*types.Lesson, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var out *types.Lesson
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindLesson, lessonID); err != nil {
			return err
		}
		lesson, err := s.lessonRepo.LockByID(ctx, txx, lessonID)
		if err != nil {
			return err
		}
		if in.Title != nil {
			lesson.Title = *in.Title
		}
		if in.Description != nil {
			lesson.Description = *in.Description
		}
		if in.Content != nil {
			lesson.Content = *in.Content
		}
		if in.LearningOutcomes != nil {
			lesson.LearningOutcomes = datatypes.NewJSONSlice(*in.LearningOutcomes)
		}
		if in.KeyTerms != nil {
			lesson.KeyTerms = datatypes.NewJSONSlice(*in.KeyTerms)
		}
		if in.Activities != nil {
			lesson.Activities = datatypes.NewJSONSlice(*in.Activities)
		}
		if in.Order != nil {
			lesson.Order = *in.Order
		}
		if in.EstimatedTime != nil {
			lesson.EstimatedTime = *in.EstimatedTime
		}
		if err := s.lessonRepo.Save(ctx, txx, lesson); err != nil {
			return err
		}
		out = lesson
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "Update", "failed to update lesson", err, "lesson_id", lessonID)
	}
	return out, nil
}

// Delete removes the lesson and unlinks it from its module.
func (s *lessonService) Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		o, err := s.gate.Authorize(ctx, txx, KindLesson, lessonID)
		if err != nil {
			return err
		}
		module, err := s.moduleRepo.LockByID(ctx, txx, o.Module.ID)
		if err != nil {
			return err
		}
		if err := s.lessonRepo.DeleteByIDs(ctx, txx, []uuid.UUID{lessonID}); err != nil {
			return err
		}
		if ids, removed := learning.RemoveID(module.LessonIDs, lessonID); removed {
			module.LessonIDs = ids
			return s.moduleRepo.Save(ctx, txx, module)
		}
		return nil
	})
	if err != nil {
		return persistenceErr(s.log, "Delete", "failed to delete lesson", err, "lesson_id", lessonID)
	}
	return nil
}
