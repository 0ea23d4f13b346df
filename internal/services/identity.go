package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/courseforge-backend/internal/data/db"
	"github.com/yungbote/courseforge-backend/internal/data/repos"
	types "github.com/yungbote/courseforge-backend/internal/domain"
	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

// Identity is a verified assertion from the identity provider.
type Identity struct {
	Name  string
	Email string
	Image string
}

type IdentityService interface {
	Resolve(ctx context.Context, tx *gorm.DB, id Identity) (*types.User, error)
}

type identityService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewIdentityService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) IdentityService {
	return &identityService{
		db:       db,
		log:      baseLog.With("service", "IdentityService"),
		userRepo: userRepo,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Resolve finds the user for id.Email or creates one. Profile fields of an
// existing user are left untouched.
func (s *identityService) Resolve(ctx context.Context, tx *gorm.DB, id Identity) (*types.User, error) {
	email := normalizeEmail(id.Email)
	if email == "" {
		return nil, apierr.Unauthenticated("identity has no email")
	}

	u, err := s.findByEmail(ctx, tx, email)
	if err != nil {
		return nil, persistenceErr(s.log, "Resolve", "failed to load user", err)
	}
	if u != nil {
		return u, nil
	}

	created, err := s.userRepo.Create(ctx, tx, []*types.User{{
		Name:  strings.TrimSpace(id.Name),
		Email: email,
		Image: strings.TrimSpace(id.Image),
	}})
	if err == nil {
		s.log.Info("User created on first sign-in", "user_id", created[0].ID)
		return created[0], nil
	}
	if !db.IsUniqueViolation(err) {
		return nil, persistenceErr(s.log, "Resolve", "failed to create user", err)
	}

	// Lost a concurrent first sign-in; the winner's row is authoritative.
	u, err = s.findByEmail(ctx, tx, email)
	if err != nil {
		return nil, persistenceErr(s.log, "Resolve", "failed to load user", err)
	}
	if u == nil {
		return nil, apierr.Persistence("failed to create user", nil)
	}
	return u, nil
}

func (s *identityService) findByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	users, err := s.userRepo.GetByEmails(ctx, tx, []string{email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}
