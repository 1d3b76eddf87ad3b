package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

type employeeModel struct {
	ID            string     `gorm:"column:id;primaryKey"`
	FirstName     *string    `gorm:"column:first_name"`
	MiddleName    *string    `gorm:"column:middle_name"`
	LastName      *string    `gorm:"column:last_name"`
	Age           *int       `gorm:"column:age"`
	Birthday      *time.Time `gorm:"column:birthday"`
	Address       *string    `gorm:"column:address"`
	Email         *string    `gorm:"column:email"`
	DepartmentID  *string    `gorm:"column:department_id;index"`
	WorkStartDate *time.Time `gorm:"column:work_start_date"`
	WorkEndDate   *time.Time `gorm:"column:work_end_date"`
	CreatedDate   *time.Time `gorm:"column:created_date"`
	UpdatedDate   *time.Time `gorm:"column:updated_date"`
}

func (employeeModel) TableName() string { return "employees" }

// EmployeeFilter holds optional search criteria. Nil fields are skipped;
// id and age match exactly, birthday matches by calendar day, string fields
// match case-insensitive substring.
type EmployeeFilter struct {
	ID           *string
	FirstName    *string
	MiddleName   *string
	LastName     *string
	Age          *int
	Birthday     *time.Time
	Address      *string
	Email        *string
	DepartmentID *string
}

func toDomainEmployee(m employeeModel) domain.Employee {
	return domain.Employee{
		ID:            m.ID,
		FirstName:     m.FirstName,
		MiddleName:    m.MiddleName,
		LastName:      m.LastName,
		Age:           m.Age,
		Birthday:      m.Birthday,
		Address:       m.Address,
		Email:         m.Email,
		DepartmentID:  m.DepartmentID,
		WorkStartDate: m.WorkStartDate,
		WorkEndDate:   m.WorkEndDate,
		CreatedDate:   m.CreatedDate,
		UpdatedDate:   m.UpdatedDate,
	}
}

func toEmployeeModel(e *domain.Employee) employeeModel {
	return employeeModel{
		ID:            e.ID,
		FirstName:     e.FirstName,
		MiddleName:    e.MiddleName,
		LastName:      e.LastName,
		Age:           e.Age,
		Birthday:      e.Birthday,
		Address:       e.Address,
		Email:         e.Email,
		DepartmentID:  e.DepartmentID,
		WorkStartDate: e.WorkStartDate,
		WorkEndDate:   e.WorkEndDate,
		CreatedDate:   e.CreatedDate,
		UpdatedDate:   e.UpdatedDate,
	}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]domain.Employee, error) {
	var ms []employeeModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	employees := make([]domain.Employee, 0, len(ms))
	for _, m := range ms {
		employees = append(employees, toDomainEmployee(m))
	}
	return employees, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var m employeeModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	e := toDomainEmployee(m)
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	m := toEmployeeModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = toDomainEmployee(m)
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, e *domain.Employee) (bool, error) {
	m := toEmployeeModel(e)
	m.ID = id
	tx := r.db.WithContext(ctx).Model(&employeeModel{}).
		Where("id = ?", id).
		Select("first_name", "middle_name", "last_name", "age", "birthday",
			"address", "email", "department_id", "work_start_date",
			"work_end_date", "updated_date").
		Updates(&m)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&employeeModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *EmployeeRepository) Search(ctx context.Context, f EmployeeFilter) ([]domain.Employee, error) {
	q := r.db.WithContext(ctx).Model(&employeeModel{})

	if f.ID != nil {
		q = q.Where("id = ?", strings.TrimSpace(*f.ID))
	}
	q = likeFilter(q, "first_name", f.FirstName)
	q = likeFilter(q, "middle_name", f.MiddleName)
	q = likeFilter(q, "last_name", f.LastName)
	q = likeFilter(q, "address", f.Address)
	q = likeFilter(q, "email", f.Email)
	q = likeFilter(q, "department_id", f.DepartmentID)
	if f.Age != nil {
		q = q.Where("age = ?", *f.Age)
	}
	if f.Birthday != nil {
		day := f.Birthday.Truncate(24 * time.Hour)
		q = q.Where("birthday >= ? AND birthday < ?", day, day.Add(24*time.Hour))
	}

	var ms []employeeModel
	tx := q.Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	employees := make([]domain.Employee, 0, len(ms))
	for _, m := range ms {
		employees = append(employees, toDomainEmployee(m))
	}
	return employees, nil
}

func likeFilter(q *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil || strings.TrimSpace(*value) == "" {
		return q
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(*value)) + "%"
	return q.Where("LOWER("+column+") LIKE ?", pattern)
}
