package learning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/courseforge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"gorm.io/gorm"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "course@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")

	older := &types.Course{Title: "old", Description: "d", CreatorID: u.ID, Difficulty: "beginner", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &types.Course{Title: "new", Description: "d", CreatorID: u.ID, Difficulty: "beginner", CreatedAt: time.Now()}
	foreign := &types.Course{Title: "theirs", Description: "d", CreatorID: other.ID, Difficulty: "advanced"}
	if _, err := repo.Create(ctx, tx, []*types.Course{older, newer, foreign}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := repo.GetByCreatorIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil {
		t.Fatalf("GetByCreatorIDs: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != newer.ID || mine[1].ID != older.ID {
		t.Fatalf("GetByCreatorIDs: want newest first, got %+v", mine)
	}
	if mine[0].ModuleIDs == nil || mine[0].LearningOutcomes == nil {
		t.Fatalf("list columns should load as empty slices")
	}

	locked, err := repo.LockByID(ctx, tx, older.ID)
	if err != nil {
		t.Fatalf("LockByID: %v", err)
	}
	locked.EstimatedTime = 0
	locked.Title = "renamed"
	if err := repo.Save(ctx, tx, locked); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{older.ID}); err != nil || len(rows) != 1 || rows[0].Title != "renamed" {
		t.Fatalf("GetByIDs after Save: err=%v rows=%v", err, rows)
	}

	if _, err := repo.LockByID(ctx, tx, uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("LockByID(missing): got %v", err)
	}

	if err := repo.DeleteByIDs(ctx, tx, []uuid.UUID{older.ID}); err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{older.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByIDs GetByIDs: err=%v len=%d", err, len(rows))
	}
}
