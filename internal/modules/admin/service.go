package admin

import (
	"context"
	"errors"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnknownRole     = errors.New("unknown role")
	ErrAdminReclassify = errors.New("admin accounts cannot be reclassified")
)

// UserStore — only the methods the admin service uses
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetRoles(ctx context.Context, userID string) ([]string, error)
	AddToRole(ctx context.Context, userID, roleID string) error
	RemoveAllRoles(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type RoleStore interface {
	List(ctx context.Context) ([]domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

// SessionRevoker cuts a user's refresh token after an admin intervention.
type SessionRevoker interface {
	Revoke(ctx context.Context, userID string) error
}

type Service struct {
	users    UserStore
	roles    RoleStore
	sessions SessionRevoker
}

func NewService(users UserStore, roles RoleStore, sessions SessionRevoker) *Service {
	return &Service{users: users, roles: roles, sessions: sessions}
}

// ListUsers returns every account with its roles. The first role name (they
// come back sorted) doubles as the primary role shown in admin screens.
func (s *Service) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		roles, err := s.users.GetRoles(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summarize(u, roles))
	}
	return summaries, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (s *Service) GetUserRole(ctx context.Context, userID string) (*UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	roles, err := s.users.GetRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := summarize(*user, roles)
	return &summary, nil
}

// UpdateUserRole replaces the user's role set with the single named role.
// Admin accounts are off limits: demoting the last admin would lock everyone
// out of this surface.
func (s *Service) UpdateUserRole(ctx context.Context, userID, roleName string) (*UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	current, err := s.users.GetRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(current, domain.RoleAdmin) {
		return nil, ErrAdminReclassify
	}

	role, err := s.roles.GetByName(ctx, strings.TrimSpace(roleName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownRole
		}
		return nil, err
	}

	if err := s.users.RemoveAllRoles(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.users.AddToRole(ctx, userID, role.ID); err != nil {
		return nil, err
	}

	// Role changes take effect on next refresh; drop the session now so the
	// new claims cannot be delayed for the whole refresh window.
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		return nil, err
	}

	summary := summarize(*user, []string{role.Name})
	return &summary, nil
}

// ResetPassword sets a new password without the current one and kills the
// user's session.
func (s *Service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, userID)
}

func summarize(u domain.User, roles []string) UserSummary {
	primary := ""
	if len(roles) > 0 {
		primary = roles[0]
	}
	return UserSummary{
		ID:       u.ID,
		UserName: u.UserName,
		Role:     primary,
		Roles:    roles,
		IsAdmin:  slices.Contains(roles, domain.RoleAdmin),
	}
}
