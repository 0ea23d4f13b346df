package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	"github.com/yungbote/courseforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/ctxutil"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type testEnv struct {
	db      *gorm.DB
	log     *logger.Logger
	users   repos.UserRepo
	courses CourseService
	modules ModuleService
	lessons LessonService
	gate    OwnershipGate

	courseRepo repos.CourseRepo
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	courseRepo := repos.NewCourseRepo(db, log)
	moduleRepo := repos.NewModuleRepo(db, log)
	lessonRepo := repos.NewLessonRepo(db, log)
	gate := NewOwnershipGate(log, courseRepo, moduleRepo, lessonRepo)
	return &testEnv{
		db:         db,
		log:        log,
		users:      repos.NewUserRepo(db, log),
		courses:    NewCourseService(db, log, gate, courseRepo, moduleRepo, lessonRepo),
		modules:    NewModuleService(db, log, gate, courseRepo, moduleRepo, lessonRepo),
		lessons:    NewLessonService(db, log, gate, moduleRepo, lessonRepo),
		gate:       gate,
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

// asUser returns a context acting as a freshly created user.
func (e *testEnv) asUser(t *testing.T, email string) (context.Context, *types.User) {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), e.db, email)
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID, Email: u.Email}), u
}

func (e *testEnv) mustCourse(t *testing.T, ctx context.Context, title string) *types.Course {
	t.Helper()
	c, err := e.courses.Create(ctx, nil, CreateCourseInput{Title: title, Description: "about " + title})
	if err != nil {
		t.Fatalf("Create course: %v", err)
	}
	return c
}

func (e *testEnv) mustModule(t *testing.T, ctx context.Context, courseID uuid.UUID, title string) *types.Module {
	t.Helper()
	m, err := e.modules.Create(ctx, nil, CreateModuleInput{CourseID: courseID, Title: title, Description: "about " + title})
	if err != nil {
		t.Fatalf("Create module: %v", err)
	}
	return m
}

func (e *testEnv) mustLesson(t *testing.T, ctx context.Context, moduleID uuid.UUID, title string) *types.Lesson {
	t.Helper()
	l, err := e.lessons.Create(ctx, nil, CreateLessonInput{ModuleID: moduleID, Title: title, Description: "about " + title, Content: "# " + title})
	if err != nil {
		t.Fatalf("Create lesson: %v", err)
	}
	return l
}

func (e *testEnv) reloadCourse(t *testing.T, id uuid.UUID) *types.Course {
	t.Helper()
	rows, err := e.courseRepo.GetByIDs(context.Background(), nil, []uuid.UUID{id})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload course: err=%v len=%d", err, len(rows))
	}
	return rows[0]
}

func (e *testEnv) reloadModule(t *testing.T, id uuid.UUID) *types.Module {
	t.Helper()
	rows, err := e.moduleRepo.GetByIDs(context.Background(), nil, []uuid.UUID{id})
	if err != nil || len(rows) != 1 {
		t.Fatalf("reload module: err=%v len=%d", err, len(rows))
	}
	return rows[0]
}

func wantKind(t *testing.T, err error, kind apierr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got nil", kind)
	}
	if got := apierr.KindOf(err); got != kind {
		t.Fatalf("want %s error, got %s (%v)", kind, got, err)
	}
}
