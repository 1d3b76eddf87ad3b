package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

type departmentModel struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (departmentModel) TableName() string { return "departments" }

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]domain.Department, error) {
	var ms []departmentModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	departments := make([]domain.Department, 0, len(ms))
	for _, m := range ms {
		departments = append(departments, domain.Department{ID: m.ID, Name: m.Name})
	}
	return departments, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	var m departmentModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Department{ID: m.ID, Name: m.Name}, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, name string) (string, error) {
	m := departmentModel{ID: uuid.NewString(), Name: name}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return "", tx.Error
	}
	return m.ID, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, id, name string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&departmentModel{}).
		Where("id = ?", id).
		Update("name", name)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&departmentModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Search filters by exact id and/or name substring, both case-insensitive.
func (r *DepartmentRepository) Search(ctx context.Context, id, name string) ([]domain.Department, error) {
	q := r.db.WithContext(ctx).Model(&departmentModel{})
	if s := strings.TrimSpace(id); s != "" {
		q = q.Where("LOWER(id) = ?", strings.ToLower(s))
	}
	if s := strings.TrimSpace(name); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var ms []departmentModel
	tx := q.Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	departments := make([]domain.Department, 0, len(ms))
	for _, m := range ms {
		departments = append(departments, domain.Department{ID: m.ID, Name: m.Name})
	}
	return departments, nil
}
