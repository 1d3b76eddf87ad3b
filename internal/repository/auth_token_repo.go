package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/pkg/tokens"
)

// AuthTokenRepository holds the single refresh-token descriptor slot per
// user, keyed (user_id, login_provider, name) with a JSON value.
type AuthTokenRepository struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

type authTokenModel struct {
	UserID        string `gorm:"column:user_id;primaryKey"`
	LoginProvider string `gorm:"column:login_provider;primaryKey"`
	Name          string `gorm:"column:name;primaryKey"`
	Value         string `gorm:"column:value"`
}

func (authTokenModel) TableName() string { return "auth_tokens" }

// Load returns (nil, nil) for both a missing slot and a corrupt one: a value
// that no longer parses cannot validate anything, so the holder re-logs-in
// and the next Store overwrites the bad row.
func (r *AuthTokenRepository) Load(ctx context.Context, userID string) (*domain.RefreshTokenDescriptor, error) {
	var m authTokenModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND login_provider = ? AND name = ?", userID, tokens.LoginProvider, tokens.TokenName).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}

	var d domain.RefreshTokenDescriptor
	if err := json.Unmarshal([]byte(m.Value), &d); err != nil {
		log.Printf("auth_tokens: discarding unparseable descriptor user_id=%s err=%v", userID, err)
		return nil, nil
	}
	return &d, nil
}

func (r *AuthTokenRepository) Store(ctx context.Context, userID string, d domain.RefreshTokenDescriptor) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}

	m := authTokenModel{
		UserID:        userID,
		LoginProvider: tokens.LoginProvider,
		Name:          tokens.TokenName,
		Value:         string(raw),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "login_provider"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&m).Error
}

func (r *AuthTokenRepository) Delete(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND login_provider = ? AND name = ?", userID, tokens.LoginProvider, tokens.TokenName).
		Delete(&authTokenModel{}).Error
}
