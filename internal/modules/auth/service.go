package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

// Service contains the account and session business logic.
type Service struct {
	users   UserStore
	roles   RoleStore
	access  AccessTokenIssuer
	refresh RefreshTokenManager

	// refreshGroup coalesces concurrent refresh calls that present the same
	// cookie value, so a burst of parallel requests from one client performs
	// a single rotation instead of tripping reuse detection on itself.
	refreshGroup singleflight.Group
}

// Session carries everything a successful login or refresh produces.
type Session struct {
	User         *domain.User
	Roles        []string
	AccessToken  string
	RefreshToken string
}

func NewService(users UserStore, roles RoleStore, access AccessTokenIssuer, refresh RefreshTokenManager) *Service {
	return &Service{
		users:   users,
		roles:   roles,
		access:  access,
		refresh: refresh,
	}
}

// Register creates a new account with the member role. The uniqueness
// pre-check gives a friendly error; the unique index on user_name is the
// real guarantee, so a racing duplicate insert is mapped to the same error.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	userName := strings.TrimSpace(req.UserName)

	exists, err := s.users.ExistsByName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserName:     userName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicateErr(err) {
			return nil, ErrUserNameTaken
		}
		return nil, err
	}

	role, err := s.roles.GetByName(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	if err := s.users.AddToRole(ctx, user.ID, role.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and opens a session. Unknown user and wrong
// password return the same error so the response does not reveal which
// user names exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.users.GetByName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Refresh validates the presented refresh cookie, rotates it, and returns a
// new session. Roles are re-read from the store so a role change takes
// effect on the next refresh, not only on re-login.
func (s *Service) Refresh(ctx context.Context, presented string) (*Session, error) {
	v, err, _ := s.refreshGroup.Do(presented, func() (any, error) {
		userID, err := s.refresh.Validate(ctx, presented, time.Now().UTC())
		if err != nil {
			return nil, err
		}

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Account deleted after the token was issued; the slot is
				// orphaned, clear it.
				_ = s.refresh.Revoke(ctx, userID)
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}

		return s.openSession(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Logout clears the user's refresh token slot. A malformed or unknown
// cookie value is not an error; logout always succeeds from the client's
// point of view.
func (s *Service) Logout(ctx context.Context, presented string) error {
	userID, ok := OwnerOf(presented)
	if !ok {
		return nil
	}
	return s.refresh.Revoke(ctx, userID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*domain.User, []string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	roles, err := s.users.GetRoles(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, roles, nil
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes the refresh token so stolen sessions die with the old password.
func (s *Service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	return s.refresh.Revoke(ctx, userID)
}

// openSession issues both tokens with a single timestamp so their lifetimes
// line up.
func (s *Service) openSession(ctx context.Context, user *domain.User) (*Session, error) {
	roles, err := s.users.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	accessToken, err := s.access.Issue(user.ID, user.UserName, roles, now)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refresh.Issue(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:         user,
		Roles:        roles,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// OwnerOf extracts the user id from a refresh cookie value without
// validating the secret. Good enough for best-effort revocation on logout
// and on failed refresh.
func OwnerOf(cookieValue string) (string, bool) {
	userID, secret, ok := strings.Cut(cookieValue, "|")
	if !ok || userID == "" || secret == "" {
		return "", false
	}
	return userID, true
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
