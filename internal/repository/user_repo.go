package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	UserName     string    `gorm:"column:user_name;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type userRoleModel struct {
	UserID string `gorm:"column:user_id;primaryKey"`
	RoleID string `gorm:"column:role_id;primaryKey"`
}

func (userRoleModel) TableName() string { return "user_roles" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		UserName:     m.UserName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m := userModel{
		ID:           u.ID,
		UserName:     strings.TrimSpace(u.UserName),
		PasswordHash: u.PasswordHash,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByName(ctx context.Context, userName string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(user_name) = ?", strings.ToLower(strings.TrimSpace(userName))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByName(ctx context.Context, userName string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(user_name) = ?", strings.ToLower(strings.TrimSpace(userName))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var ms []userModel
	tx := r.db.WithContext(ctx).Order("user_name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	users := make([]domain.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

// GetRoles returns the user's role names ordered by role name, so the first
// entry is a stable "primary" role for the admin screens.
func (r *UserRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	var names []string
	tx := r.db.WithContext(ctx).
		Table("user_roles").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name").
		Scan(&names)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return names, nil
}

func (r *UserRepository) AddToRole(ctx context.Context, userID, roleID string) error {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userRoleModel{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count)
	if tx.Error != nil {
		return tx.Error
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&userRoleModel{UserID: userID, RoleID: roleID}).Error
}

func (r *UserRepository) RemoveFromRole(ctx context.Context, userID, roleID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&userRoleModel{}).Error
}

func (r *UserRepository) RemoveAllRoles(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userRoleModel{}).Error
}
