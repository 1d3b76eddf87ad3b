package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u.ID == "" {
		u.ID = "user-1"
	}
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) GetByName(ctx context.Context, userName string) (*domain.User, error) {
	args := m.Called(ctx, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) ExistsByName(ctx context.Context, userName string) (bool, error) {
	args := m.Called(ctx, userName)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserStore) GetRoles(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockUserStore) AddToRole(ctx context.Context, userID, roleID string) error {
	args := m.Called(ctx, userID, roleID)
	return args.Error(0)
}

type mockRoleStore struct {
	mock.Mock
}

func (m *mockRoleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

type mockAccessIssuer struct {
	mock.Mock
}

func (m *mockAccessIssuer) Issue(userID, userName string, roles []string, now time.Time) (string, error) {
	args := m.Called(userID, userName, roles, now)
	return args.String(0), args.Error(1)
}

func (m *mockAccessIssuer) Validate(token string) (*tokens.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokens.AccessClaims), args.Error(1)
}

type mockRefreshManager struct {
	mock.Mock
}

func (m *mockRefreshManager) Issue(ctx context.Context, userID string, now time.Time) (string, error) {
	args := m.Called(ctx, userID, now)
	return args.String(0), args.Error(1)
}

func (m *mockRefreshManager) Validate(ctx context.Context, presented string, now time.Time) (string, error) {
	args := m.Called(ctx, presented, now)
	return args.String(0), args.Error(1)
}

func (m *mockRefreshManager) Revoke(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestService() (*Service, *mockUserStore, *mockRoleStore, *mockAccessIssuer, *mockRefreshManager) {
	users := new(mockUserStore)
	roles := new(mockRoleStore)
	access := new(mockAccessIssuer)
	refresh := new(mockRefreshManager)
	return NewService(users, roles, access, refresh), users, roles, access, refresh
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_Register_Success(t *testing.T) {
	svc, users, roles, _, _ := newTestService()

	users.On("ExistsByName", mock.Anything, "alice").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	roles.On("GetByName", mock.Anything, domain.RoleMember).Return(&domain.Role{ID: "role-member", Name: domain.RoleMember}, nil)
	users.On("AddToRole", mock.Anything, "user-1", "role-member").Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{UserName: "alice", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	users.AssertExpectations(t)
	roles.AssertExpectations(t)
}

func TestService_Register_UserNameTaken(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("ExistsByName", mock.Anything, "alice").Return(true, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{UserName: "alice", Password: "secret123"})

	assert.ErrorIs(t, err, ErrUserNameTaken)
}

func TestService_Login_Success(t *testing.T) {
	svc, users, _, access, refresh := newTestService()

	user := &domain.User{ID: "user-1", UserName: "alice", PasswordHash: hashFor(t, "secret123")}
	users.On("GetByName", mock.Anything, "alice").Return(user, nil)
	users.On("GetRoles", mock.Anything, "user-1").Return([]string{"member"}, nil)
	access.On("Issue", "user-1", "alice", []string{"member"}, mock.Anything).Return("access-token", nil)
	refresh.On("Issue", mock.Anything, "user-1", mock.Anything).Return("user-1|secret", nil)

	session, err := svc.Login(context.Background(), LoginRequest{UserName: "alice", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, "user-1|secret", session.RefreshToken)
	assert.Equal(t, []string{"member"}, session.Roles)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	user := &domain.User{ID: "user-1", UserName: "alice", PasswordHash: hashFor(t, "secret123")}
	users.On("GetByName", mock.Anything, "alice").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{UserName: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownUser(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("GetByName", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{UserName: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Refresh_RereadsRoles(t *testing.T) {
	svc, users, _, access, refresh := newTestService()

	user := &domain.User{ID: "user-1", UserName: "alice"}
	refresh.On("Validate", mock.Anything, "user-1|old-secret", mock.Anything).Return("user-1", nil)
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	users.On("GetRoles", mock.Anything, "user-1").Return([]string{"admin", "member"}, nil)
	access.On("Issue", "user-1", "alice", []string{"admin", "member"}, mock.Anything).Return("new-access", nil)
	refresh.On("Issue", mock.Anything, "user-1", mock.Anything).Return("user-1|new-secret", nil)

	session, err := svc.Refresh(context.Background(), "user-1|old-secret")

	assert.NoError(t, err)
	assert.Equal(t, []string{"admin", "member"}, session.Roles)
	assert.Equal(t, "user-1|new-secret", session.RefreshToken)
}

func TestService_Refresh_CoalescesConcurrentCalls(t *testing.T) {
	svc, users, _, access, refresh := newTestService()

	const workers = 8
	gate := make(chan struct{})
	var started sync.WaitGroup
	started.Add(workers)

	user := &domain.User{ID: "user-1", UserName: "alice"}
	refresh.On("Validate", mock.Anything, "user-1|secret", mock.Anything).
		Run(func(mock.Arguments) { <-gate }).
		Return("user-1", nil)
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	users.On("GetRoles", mock.Anything, "user-1").Return([]string{"member"}, nil)
	access.On("Issue", "user-1", "alice", []string{"member"}, mock.Anything).Return("new-access", nil)
	refresh.On("Issue", mock.Anything, "user-1", mock.Anything).Return("user-1|rotated", nil)

	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			session, err := svc.Refresh(context.Background(), "user-1|secret")
			if assert.NoError(t, err) {
				results <- session.RefreshToken
			}
		}()
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(results)

	for token := range results {
		assert.Equal(t, "user-1|rotated", token)
	}

	validateCalls := 0
	for _, call := range refresh.Calls {
		if call.Method == "Validate" {
			validateCalls++
		}
	}
	assert.Equal(t, 1, validateCalls)
}

func TestService_Refresh_InvalidSessionPassesThrough(t *testing.T) {
	svc, _, _, _, refresh := newTestService()

	refresh.On("Validate", mock.Anything, "bad-cookie", mock.Anything).Return("", tokens.ErrInvalidSession)

	_, err := svc.Refresh(context.Background(), "bad-cookie")

	assert.ErrorIs(t, err, tokens.ErrInvalidSession)
}

func TestService_Refresh_DeletedUserClearsSlot(t *testing.T) {
	svc, users, _, _, refresh := newTestService()

	refresh.On("Validate", mock.Anything, "user-1|secret", mock.Anything).Return("user-1", nil)
	users.On("GetByID", mock.Anything, "user-1").Return(nil, gorm.ErrRecordNotFound)
	refresh.On("Revoke", mock.Anything, "user-1").Return(nil)

	_, err := svc.Refresh(context.Background(), "user-1|secret")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	refresh.AssertCalled(t, "Revoke", mock.Anything, "user-1")
}

func TestService_Logout_MalformedCookieIsNoop(t *testing.T) {
	svc, _, _, _, refresh := newTestService()

	assert.NoError(t, svc.Logout(context.Background(), "not-a-cookie"))
	refresh.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}

func TestService_Logout_RevokesSlot(t *testing.T) {
	svc, _, _, _, refresh := newTestService()

	refresh.On("Revoke", mock.Anything, "user-1").Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "user-1|secret"))
	refresh.AssertExpectations(t)
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	user := &domain.User{ID: "user-1", PasswordHash: hashFor(t, "old-password")}
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	err := svc.ChangePassword(context.Background(), "user-1", ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ChangePassword_RevokesRefreshToken(t *testing.T) {
	svc, users, _, _, refresh := newTestService()

	user := &domain.User{ID: "user-1", PasswordHash: hashFor(t, "old-password")}
	users.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	users.On("UpdatePassword", mock.Anything, "user-1", mock.Anything).Return(nil)
	refresh.On("Revoke", mock.Anything, "user-1").Return(nil)

	err := svc.ChangePassword(context.Background(), "user-1", ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})

	assert.NoError(t, err)
	users.AssertExpectations(t)
	refresh.AssertExpectations(t)
}
