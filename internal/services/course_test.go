package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/courseforge-backend/internal/data/repos/testutil"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
)

func TestCourseCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx, u := env.asUser(t, "author@example.com")

	c, err := env.courses.Create(ctx, nil, CreateCourseInput{Title: "Intro to Algebra", Description: "Basics"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.CreatorID != u.ID {
		t.Fatalf("creator = %s, want %s", c.CreatorID, u.ID)
	}
	if c.Difficulty != "intermediate" || c.EstimatedTime != 0 {
		t.Fatalf("defaults = %q/%d", c.Difficulty, c.EstimatedTime)
	}
	if len(c.ModuleIDs) != 0 {
		t.Fatalf("new course has modules: %v", c.ModuleIDs)
	}
}

func TestCourseCreateRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")

	_, err := env.courses.Create(ctx, nil, CreateCourseInput{Description: "no title"})
	wantKind(t, err, apierr.KindValidation)

	_, err = env.courses.Create(ctx, nil, CreateCourseInput{Title: "T", Description: "D", Difficulty: "expert"})
	wantKind(t, err, apierr.KindValidation)

	_, err = env.courses.Create(context.Background(), nil, CreateCourseInput{Title: "T", Description: "D"})
	wantKind(t, err, apierr.KindUnauthenticated)
}

func TestCourseListMineNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	other, _ := env.asUser(t, "other@example.com")

	first := env.mustCourse(t, ctx, "first")
	second := env.mustCourse(t, ctx, "second")
	env.mustCourse(t, other, "not mine")

	got, err := env.courses.ListMine(ctx, nil)
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	ids := map[uuid.UUID]bool{got[0].ID: true, got[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("unexpected courses %v", ids)
	}
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Fatalf("not newest first")
	}
}

func TestCourseGetResolvesModulesInListOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m1 := env.mustModule(t, ctx, c.ID, "one")
	m2 := env.mustModule(t, ctx, c.ID, "two")

	reader, _ := env.asUser(t, "reader@example.com")
	got, err := env.courses.Get(reader, nil, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Modules) != 2 || got.Modules[0].ID != m1.ID || got.Modules[1].ID != m2.ID {
		t.Fatalf("modules = %+v", got.Modules)
	}

	_, err = env.courses.Get(reader, nil, uuid.New())
	wantKind(t, err, apierr.KindNotFound)
}

func TestCourseUpdateAppliesOnlyPresentFields(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c, err := env.courses.Create(ctx, nil, CreateCourseInput{
		Title:            "Algebra",
		Description:      "Basics",
		LearningOutcomes: []string{"solve"},
		Difficulty:       "beginner",
		EstimatedTime:    testutil.PtrInt(120),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := env.courses.Update(ctx, nil, c.ID, UpdateCourseInput{Title: testutil.PtrString("Algebra I")}); err != nil {
		t.Fatalf("Update title: %v", err)
	}
	got := env.reloadCourse(t, c.ID)
	if got.Title != "Algebra I" || got.Description != "Basics" || got.Difficulty != "beginner" || got.EstimatedTime != 120 {
		t.Fatalf("omitted fields changed: %+v", got)
	}
	if len(got.LearningOutcomes) != 1 {
		t.Fatalf("outcomes changed: %v", got.LearningOutcomes)
	}

	empty := []string{}
	_, err = env.courses.Update(ctx, nil, c.ID, UpdateCourseInput{
		Description:      testutil.PtrString(""),
		LearningOutcomes: &empty,
		EstimatedTime:    testutil.PtrInt(0),
	})
	if err != nil {
		t.Fatalf("Update zero values: %v", err)
	}
	got = env.reloadCourse(t, c.ID)
	if got.Description != "" || got.EstimatedTime != 0 || len(got.LearningOutcomes) != 0 {
		t.Fatalf("zero values not applied: %+v", got)
	}
	if got.Title != "Algebra I" {
		t.Fatalf("title changed: %q", got.Title)
	}

	_, err = env.courses.Update(ctx, nil, c.ID, UpdateCourseInput{Title: testutil.PtrString("")})
	wantKind(t, err, apierr.KindValidation)
}

func TestCourseMutationsRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.asUser(t, "owner@example.com")
	intruder, _ := env.asUser(t, "intruder@example.com")
	c := env.mustCourse(t, owner, "mine")

	_, err := env.courses.Update(intruder, nil, c.ID, UpdateCourseInput{Title: testutil.PtrString("stolen")})
	wantKind(t, err, apierr.KindUnauthorized)
	wantKind(t, env.courses.Delete(intruder, nil, c.ID), apierr.KindUnauthorized)

	if got := env.reloadCourse(t, c.ID); got.Title != "mine" {
		t.Fatalf("title changed to %q", got.Title)
	}

	wantKind(t, env.courses.Delete(owner, nil, uuid.New()), apierr.KindNotFound)
	wantKind(t, env.courses.Delete(context.Background(), nil, c.ID), apierr.KindUnauthenticated)
}

func TestCourseDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m := env.mustModule(t, ctx, c.ID, "module")
	l := env.mustLesson(t, ctx, m.ID, "lesson")

	if err := env.courses.Delete(ctx, nil, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	bg := context.Background()
	if rows, _ := env.courseRepo.GetByIDs(bg, nil, []uuid.UUID{c.ID}); len(rows) != 0 {
		t.Fatalf("course still present")
	}
	if rows, _ := env.moduleRepo.GetByIDs(bg, nil, []uuid.UUID{m.ID}); len(rows) != 0 {
		t.Fatalf("module still present")
	}
	if rows, _ := env.lessonRepo.GetByIDs(bg, nil, []uuid.UUID{l.ID}); len(rows) != 0 {
		t.Fatalf("lesson still present")
	}
}
