package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/courseforge-backend/internal/platform/apierr"
	"github.com/yungbote/courseforge-backend/internal/platform/ctxutil"
	"github.com/yungbote/courseforge-backend/internal/platform/logger"
)

// SessionClaims is the identity provider's session token payload.
type SessionClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	log          *logger.Logger
	identity     IdentityService
	jwtSecretKey string
	issuer       string
}

func NewAuthService(baseLog *logger.Logger, identity IdentityService, jwtSecretKey, issuer string) AuthService {
	return &authService{
		log:          baseLog.With("service", "AuthService"),
		identity:     identity,
		jwtSecretKey: jwtSecretKey,
		issuer:       strings.TrimSpace(issuer),
	}
}

// SetContextFromToken verifies the session token, resolves the acting user
// and attaches it to the returned context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if strings.TrimSpace(tokenString) == "" {
		return ctx, apierr.Unauthenticated("missing session token")
	}
	if as.jwtSecretKey == "" {
		return ctx, apierr.Unauthenticated("session verification is not configured")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if as.issuer != "" {
		opts = append(opts, jwt.WithIssuer(as.issuer))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, opts...)
	if err != nil {
		return ctx, apierr.New(apierr.KindUnauthenticated, "invalid session token", fmt.Errorf("parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthenticated("invalid session token")
	}

	u, err := as.identity.Resolve(ctx, nil, Identity{Name: claims.Name, Email: claims.Email, Image: claims.Picture})
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: u.ID, Email: u.Email}), nil
}
