package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

type roleModel struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (roleModel) TableName() string { return "roles" }

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if role.ID == "" {
		role.ID = uuid.NewString()
	}
	m := roleModel{ID: role.ID, Name: strings.TrimSpace(role.Name)}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	role.Name = m.Name
	return nil
}

func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var ms []roleModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	roles := make([]domain.Role, 0, len(ms))
	for _, m := range ms {
		roles = append(roles, domain.Role{ID: m.ID, Name: m.Name})
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	var m roleModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Role{ID: m.ID, Name: m.Name}, nil
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var m roleModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Role{ID: m.ID, Name: m.Name}, nil
}
