package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/domain/learning"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type CreateModuleInput struct {
	CourseID      uuid.UUID   `json:"courseId"`
	Title         string      `json:"title" validate:"required"`
	Description   string      `json:"description" validate:"required"`
	Prerequisites []uuid.UUID `json:"prerequisites"`
}

type UpdateModuleInput struct {
	Title         *string      `json:"title" validate:"omitnil,min=1"`
	Description   *string      `json:"description"`
	Order         *int         `json:"order" validate:"omitnil,gte=0"`
	Prerequisites *[]uuid.UUID `json:"prerequisites"`
}

type ModuleService interface {
	Create(ctx context.Context, tx *gorm.DB, in CreateModuleInput) (*types.Module, error)
	Get(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.ModuleDetail, error)
	ListForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Module, error)
	Update(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, in UpdateModuleInput) (*types.Module, error)
	Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
}

type moduleService struct {
	db         *gorm.DB
	log        *logger.Logger
	gate       OwnershipGate
	courseRepo repos.CourseRepo
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func NewModuleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	gate OwnershipGate,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) ModuleService {
	return &moduleService{
		db:         db,
		log:        baseLog.With("service", "ModuleService"),
		gate:       gate,
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

// Create appends a module to its course. The course row is locked while the
// next order is computed, so concurrent creates under one course get
// distinct orders and the module is never left out of the course list.
func (s *moduleService) Create(ctx context.Context, tx *gorm.DB, in CreateModuleInput) (*types.Module, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	if in.CourseID == uuid.Nil {
		return nil, apierr.Validation("invalid courseId", nil)
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var out *types.Module
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindCourse, in.CourseID); err != nil {
			return err
		}
		course, err := s.courseRepo.LockByID(ctx, txx, in.CourseID)
		if err != nil {
			return err
		}
		max, err := s.moduleRepo.MaxOrder(ctx, txx, course.ID)
		if err != nil {
			return err
		}
		module := &types.Module{
			ID:              uuid.New(),
			Title:           in.Title,
			Description:     in.Description,
			CourseID:        course.ID,
			Order:           max + 1,
			PrerequisiteIDs: datatypes.NewJSONSlice(in.Prerequisites),
		}
		if _, err := s.moduleRepo.Create(ctx, txx, []*types.Module{module}); err != nil {
			return err
		}
		course.ModuleIDs = append(course.ModuleIDs, module.ID)
		if err := s.courseRepo.Save(ctx, txx, course); err != nil {
			return err
		}
		out = module
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "Create", "failed to create module", err, "course_id", in.CourseID)
	}
	return out, nil
}

// Get resolves lessons (sorted by order) and prerequisites (in list order).
func (s *moduleService) Get(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.ModuleDetail, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	rows, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, persistenceErr(s.log, "Get", "failed to fetch module", err, "module_id", moduleID)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("Module not found")
	}
	module := rows[0]

	var (
		lessons []*types.Lesson
		prereqs []*types.Module
	)
	g, gctx := errgroup.WithContext(ctx)
	if tx != nil {
		// A transaction holds one connection.
		g.SetLimit(1)
	}
	g.Go(func() error {
		rows, err := s.lessonRepo.GetByIDs(gctx, tx, module.LessonIDs)
		if err != nil {
			return err
		}
		lessons = orderByIDs(module.LessonIDs, rows, func(l *types.Lesson) uuid.UUID { return l.ID })
		sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
		return nil
	})
	g.Go(func() error {
		rows, err := s.moduleRepo.GetByIDs(gctx, tx, module.PrerequisiteIDs)
		if err != nil {
			return err
		}
		prereqs = orderByIDs(module.PrerequisiteIDs, rows, func(m *types.Module) uuid.UUID { return m.ID })
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, persistenceErr(s.log, "Get", "failed to fetch module", err, "module_id", moduleID)
	}
	return &types.ModuleDetail{Module: *module, Lessons: lessons, Prerequisites: prereqs}, nil
}

func (s *moduleService) ListForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.Module, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, persistenceErr(s.log, "ListForCourse", "failed to fetch course", err, "course_id", courseID)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("Course not found")
	}
	modules, err := s.moduleRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, persistenceErr(s.log, "ListForCourse", "failed to fetch modules", err, "course_id", courseID)
	}
	return modules, nil
}

func (s *moduleService) Update(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, in UpdateModuleInput) (*types.Module, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var out *types.Module
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		if _, err := s.gate.Authorize(ctx, txx, KindModule, moduleID); err != nil {
			return err
		}
		module, err := s.moduleRepo.LockByID(ctx, txx, moduleID)
		if err != nil {
			return err
		}
		if in.Title != nil {
			module.Title = *in.Title
		}
		if in.Description != nil {
			module.Description = *in.Description
		}
		if in.Order != nil {
			module.Order = *in.Order
		}
		if in.Prerequisites != nil {
			module.PrerequisiteIDs = datatypes.NewJSONSlice(*in.Prerequisites)
		}
		if err := s.moduleRepo.Save(ctx, txx, module); err != nil {
			return err
		}
		out = module
		return nil
	})
	if err != nil {
		return nil, persistenceErr(s.log, "Update", "failed to update module", err, "module_id", moduleID)
	}
	return out, nil
}

// Delete removes the module and its lessons, unlinks it from the course
// list and from sibling prerequisites. Sibling orders are not renumbered.
func (s *moduleService) Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	err := inTx(ctx, s.db, tx, func(txx *gorm.DB) error {
		o, err := s.gate.Authorize(ctx, txx, KindModule, moduleID)
		if err != nil {
			return err
		}
		course, err := s.courseRepo.LockByID(ctx, txx, o.Course.ID)
		if err != nil {
			return err
		}
		if err := s.lessonRepo.DeleteByModuleIDs(ctx, txx, []uuid.UUID{moduleID}); err != nil {
			return err
		}
		if err := s.moduleRepo.DeleteByIDs(ctx, txx, []uuid.UUID{moduleID}); err != nil {
			return err
		}
		if ids, removed := learning.RemoveID(course.ModuleIDs, moduleID); removed {
			course.ModuleIDs = ids
			if err := s.courseRepo.Save(ctx, txx, course); err != nil {
				return err
			}
		}
		siblings, err := s.moduleRepo.GetByCourseIDs(ctx, txx, []uuid.UUID{course.ID})
		if err != nil {
			return err
		}
		for _, sib := range siblings {
			ids, removed := learning.RemoveID(sib.PrerequisiteIDs, moduleID)
			if !removed {
				continue
			}
			sib.PrerequisiteIDs = ids
			if err := s.moduleRepo.Save(ctx, txx, sib); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return persistenceErr(s.log, "Delete", "failed to delete module", err, "module_id", moduleID)
	}
	return nil
}
