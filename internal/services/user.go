package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/repos"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{log: baseLog.With("service", "UserService"), userRepo: userRepo}
}

func (s *userService) GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
	if err != nil {
		return nil, persistenceErr(s.log, "GetMe", "failed to load user", err, "user_id", userID)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("User not found")
	}
	return users[0], nil
}
