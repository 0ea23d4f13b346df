package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/courseforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
)

func TestLessonCreateDefaultsAndOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m := env.mustModule(t, ctx, c.ID, "module")

	l1, err := env.lessons.Create(ctx, nil, CreateLessonInput{
		ModuleID:    m.ID,
		Title:       "Variables",
		Description: "What a variable is",
		Content:     "# Variables",
		KeyTerms:    []types.KeyTerm{{Term: "variable", Definition: "a named quantity"}},
		Activities: []types.Activity{{
			Title:       "Check",
			Description: "Quick quiz",
			Type:        "quiz",
			Content:     datatypes.JSON(`{"questions":[]}`),
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l1.Order != 1 || l1.EstimatedTime != 30 {
		t.Fatalf("order/time = %d/%d", l1.Order, l1.EstimatedTime)
	}

	l2, err := env.lessons.Create(ctx, nil, CreateLessonInput{ModuleID: m.ID, Title: "t", Description: "d", Content: "c", EstimatedTime: testutil.PtrInt(0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l2.Order != 2 {
		t.Fatalf("second order = %d", l2.Order)
	}
	stored, err := env.lessons.Get(ctx, nil, l2.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.EstimatedTime != 0 {
		t.Fatalf("explicit zero estimatedTime stored as %d", stored.EstimatedTime)
	}

	mod := env.reloadModule(t, m.ID)
	if len(mod.LessonIDs) != 2 || mod.LessonIDs[0] != l1.ID || mod.LessonIDs[1] != l2.ID {
		t.Fatalf("module lessons = %v", mod.LessonIDs)
	}

	got, err := env.lessons.Get(ctx, nil, l1.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.KeyTerms) != 1 || got.KeyTerms[0].Term != "variable" {
		t.Fatalf("key terms = %+v", got.KeyTerms)
	}
	if len(got.Activities) != 1 || got.Activities[0].Type != "quiz" {
		t.Fatalf("activities = %+v", got.Activities)
	}
}

func TestLessonCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m := env.mustModule(t, ctx, c.ID, "module")

	cases := map[string]CreateLessonInput{
		"missing module":  {Title: "t", Description: "d", Content: "c"},
		"missing content": {ModuleID: m.ID, Title: "t", Description: "d"},
		"bad activity": {ModuleID: m.ID, Title: "t", Description: "d", Content: "c",
			Activities: []types.Activity{{Title: "a", Description: "b", Type: "lecture"}}},
		"incomplete key term": {ModuleID: m.ID, Title: "t", Description: "d", Content: "c",
			KeyTerms: []types.KeyTerm{{Term: "x"}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.lessons.Create(ctx, nil, in)
			wantKind(t, err, apierr.KindValidation)
		})
	}

	_, err := env.lessons.Create(ctx, nil, CreateLessonInput{ModuleID: uuid.New(), Title: "t", Description: "d", Content: "c"})
	wantKind(t, err, apierr.KindNotFound)
}

func TestLessonUpdateAppliesOnlyPresentFields(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m := env.mustModule(t, ctx, c.ID, "module")
	l := env.mustLesson(t, ctx, m.ID, "lesson")

	noTerms := []types.KeyTerm{}
	got, err := env.lessons.Update(ctx, nil, l.ID, UpdateLessonInput{
		Content:       testutil.PtrString(""),
		KeyTerms:      &noTerms,
		EstimatedTime: testutil.PtrInt(0),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "lesson" || got.Description != "about lesson" {
		t.Fatalf("omitted fields changed: %+v", got)
	}
	if got.Content != "" || got.EstimatedTime != 0 || len(got.KeyTerms) != 0 {
		t.Fatalf("present fields not applied: %+v", got)
	}
	if got.Order != 1 {
		t.Fatalf("order changed to %d", got.Order)
	}
}

func TestLessonMutationsRequireOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.asUser(t, "owner@example.com")
	intruder, _ := env.asUser(t, "intruder@example.com")
	c := env.mustCourse(t, owner, "course")
	m := env.mustModule(t, owner, c.ID, "module")
	l := env.mustLesson(t, owner, m.ID, "lesson")

	_, err := env.lessons.Create(intruder, nil, CreateLessonInput{ModuleID: m.ID, Title: "t", Description: "d", Content: "c"})
	wantKind(t, err, apierr.KindUnauthorized)
	_, err = env.lessons.Update(intruder, nil, l.ID, UpdateLessonInput{Title: testutil.PtrString("x")})
	wantKind(t, err, apierr.KindUnauthorized)
	wantKind(t, env.lessons.Delete(intruder, nil, l.ID), apierr.KindUnauthorized)

	// Reads are open to any signed-in user.
	if _, err := env.lessons.Get(intruder, nil, l.ID); err != nil {
		t.Fatalf("Get as other user: %v", err)
	}
	_, err = env.lessons.Get(context.Background(), nil, l.ID)
	wantKind(t, err, apierr.KindUnauthenticated)
}

func TestLessonDeleteUnlinksFromModule(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.asUser(t, "author@example.com")
	c := env.mustCourse(t, ctx, "course")
	m := env.mustModule(t, ctx, c.ID, "module")
	l1 := env.mustLesson(t, ctx, m.ID, "one")
	l2 := env.mustLesson(t, ctx, m.ID, "two")

	if err := env.lessons.Delete(ctx, nil, l1.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	mod := env.reloadModule(t, m.ID)
	if len(mod.LessonIDs) != 1 || mod.LessonIDs[0] != l2.ID {
		t.Fatalf("module lessons = %v", mod.LessonIDs)
	}
	_, err := env.lessons.Get(ctx, nil, l1.ID)
	wantKind(t, err, apierr.KindNotFound)
	wantKind(t, env.lessons.Delete(ctx, nil, l1.ID), apierr.KindNotFound)

	l3 := env.mustLesson(t, ctx, m.ID, "three")
	if l3.Order != 3 {
		t.Fatalf("order after delete = %d, want 3", l3.Order)
	}

	list, err := env.lessons.ListForModule(ctx, nil, m.ID)
	if err != nil {
		t.Fatalf("ListForModule: %v", err)
	}
	if len(list) != 2 || list[0].ID != l2.ID || list[1].ID != l3.ID {
		t.Fatalf("list = %+v", list)
	}
}
