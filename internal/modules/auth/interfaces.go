package auth

import (
	"context"
	"time"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
)

// UserStore — only the methods the auth service uses
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, userName string) (*domain.User, error)
	ExistsByName(ctx context.Context, userName string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	GetRoles(ctx context.Context, userID string) ([]string, error)
	AddToRole(ctx context.Context, userID, roleID string) error
}

// RoleStore resolves role names to ids for the initial role grant.
type RoleStore interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

// AccessTokenIssuer signs short-lived bearer tokens.
type AccessTokenIssuer interface {
	Issue(userID, userName string, roles []string, now time.Time) (string, error)
	Validate(token string) (*tokens.AccessClaims, error)
}

// RefreshTokenManager owns the opaque refresh token lifecycle.
type RefreshTokenManager interface {
	Issue(ctx context.Context, userID string, now time.Time) (string, error)
	Validate(ctx context.Context, presented string, now time.Time) (string, error)
	Revoke(ctx context.Context, userID string) error
}
