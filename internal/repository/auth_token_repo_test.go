package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/database"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// one connection, or every pooled conn gets its own empty in-memory db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func TestAuthTokenRepository_RoundTrip(t *testing.T) {
	repo := NewAuthTokenRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	d := domain.RefreshTokenDescriptor{
		TokenHash:         "hash-a",
		PreviousTokenHash: "hash-z",
		ExpiresUTC:        now.Add(time.Hour),
		CreatedUTC:        now,
	}

	require.NoError(t, repo.Store(ctx, "user-1", d))

	got, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-a", got.TokenHash)
	assert.Equal(t, "hash-z", got.PreviousTokenHash)
	assert.False(t, got.Revoked)
}

func TestAuthTokenRepository_StoreReplacesSlot(t *testing.T) {
	repo := NewAuthTokenRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Store(ctx, "user-1", domain.RefreshTokenDescriptor{TokenHash: "hash-a", ExpiresUTC: now.Add(time.Hour), CreatedUTC: now}))
	require.NoError(t, repo.Store(ctx, "user-1", domain.RefreshTokenDescriptor{TokenHash: "hash-b", ExpiresUTC: now.Add(time.Hour), CreatedUTC: now, Revoked: true}))

	got, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-b", got.TokenHash)
	assert.True(t, got.Revoked)
}

func TestAuthTokenRepository_MissingSlot(t *testing.T) {
	repo := NewAuthTokenRepository(newTestDB(t))

	got, err := repo.Load(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthTokenRepository_CorruptValueReadsAsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuthTokenRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		"INSERT INTO auth_tokens (user_id, login_provider, name, value) VALUES (?, ?, ?, ?)",
		"user-1", "BestProductManager", "RefreshToken", "{not valid json",
	).Error)

	got, err := repo.Load(ctx, "user-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthTokenRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewAuthTokenRepository(newTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Store(ctx, "user-1", domain.RefreshTokenDescriptor{TokenHash: "hash-a", ExpiresUTC: now.Add(time.Hour), CreatedUTC: now}))

	require.NoError(t, repo.Delete(ctx, "user-1"))
	require.NoError(t, repo.Delete(ctx, "user-1"))

	got, err := repo.Load(ctx, "user-1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
