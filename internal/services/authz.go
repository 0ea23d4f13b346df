package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type EntityKind string

const (
	KindCourse EntityKind = "course"
	KindModule EntityKind = "module"
	KindLesson EntityKind = "lesson"
)

// Ownership is the chain from a target entity up to its owning course.
// Module and Lesson are nil when the target sits higher in the tree.
type Ownership struct {
	Course *types.Course
	Module *types.Module
	Lesson *types.Lesson
}

// OwnerLookup walks one entity kind up to its course, failing with
// not_found at the first missing link.
type OwnerLookup interface {
	Lookup(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Ownership, error)
}

type courseLookup struct {
	courses repos.CourseRepo
}

func (l courseLookup) Lookup(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Ownership, error) {
	rows, err := l.courses.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, apierr.NotFound("Course not found")
	}
	return &Ownership{Course: rows[0]}, nil
}

type moduleLookup struct {
	modules repos.ModuleRepo
	parent  OwnerLookup
}

func (l moduleLookup) Lookup(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Ownership, error) {
	rows, err := l.modules.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load module: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, apierr.NotFound("Module not found")
	}
	o, err := l.parent.Lookup(ctx, tx, rows[0].CourseID)
	if err != nil {
		return nil, err
	}
	o.Module = rows[0]
	return o, nil
}

type lessonLookup struct {
	lessons repos.LessonRepo
	parent  OwnerLookup
}

func (l lessonLookup) Lookup(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Ownership, error) {
	rows, err := l.lessons.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("load lesson: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, apierr.NotFound("Lesson not found")
	}
	o, err := l.parent.Lookup(ctx, tx, rows[0].ModuleID)
	if err != nil {
		return nil, err
	}
	o.Lesson = rows[0]
	return o, nil
}

// OwnershipGate allows a mutation only when the acting user created the
// course at the top of the target's chain.
type OwnershipGate interface {
	Authorize(ctx context.Context, tx *gorm.DB, kind EntityKind, id uuid.UUID) (*Ownership, error)
}

type ownershipGate struct {
	log     *logger.Logger
	lookups map[EntityKind]OwnerLookup
}

func NewOwnershipGate(baseLog *logger.Logger, courseRepo repos.CourseRepo, moduleRepo repos.ModuleRepo, lessonRepo repos.LessonRepo) OwnershipGate {
	courses := courseLookup{courses: courseRepo}
	modules := moduleLookup{modules: moduleRepo, parent: courses}
	lessons := lessonLookup{lessons: lessonRepo, parent: modules}
	return &ownershipGate{
		log: baseLog.With("service", "OwnershipGate"),
		lookups: map[EntityKind]OwnerLookup{
			KindCourse: courses,
			KindModule: modules,
			KindLesson: lessons,
		},
	}
}

func (g *ownershipGate) Authorize(ctx context.Context, tx *gorm.DB, kind EntityKind, id uuid.UUID) (*Ownership, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	lookup, ok := g.lookups[kind]
	if !ok {
		return nil, fmt.Errorf("no ownership lookup for %q", kind)
	}
	o, err := lookup.Lookup(ctx, tx, id)
	if err != nil {
		return nil, persistenceErr(g.log, "Authorize", "failed to resolve ownership", err, "kind", kind, "id", id)
	}
	if o.Course.CreatorID != userID {
		g.log.Info("Ownership check denied", "kind", kind, "id", id, "user_id", userID)
		return nil, apierr.Unauthorized("Unauthorized")
	}
	return o, nil
}
