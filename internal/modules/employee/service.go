package employee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
	"github.com/kienkmaster/BestProductManager-Jwt/internal/repository"
)

const birthdayLayout = "2006-01-02"

// Store — only the methods the employee service uses
type Store interface {
	GetAll(ctx context.Context) ([]domain.Employee, error)
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, id string, e *domain.Employee) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, f repository.EmployeeFilter) ([]domain.Employee, error)
}

// DepartmentReader checks department references on register and update.
type DepartmentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Department, error)
}

type Service struct {
	employees   Store
	departments DepartmentReader
}

func NewService(employees Store, departments DepartmentReader) *Service {
	return &Service{employees: employees, departments: departments}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.GetAll(ctx)
}

func (s *Service) Register(ctx context.Context, req RegisterEmployeeRequest) (*domain.Employee, error) {
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		FirstName:     trimPtr(req.FirstName),
		MiddleName:    trimPtr(req.MiddleName),
		LastName:      trimPtr(req.LastName),
		Age:           req.Age,
		Birthday:      req.Birthday,
		Address:       trimPtr(req.Address),
		Email:         trimPtr(req.Email),
		DepartmentID:  trimPtr(req.DepartmentID),
		WorkStartDate: req.WorkStartDate,
		WorkEndDate:   req.WorkEndDate,
		CreatedDate:   &now,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the stored record with the request; absent fields clear
// their columns rather than being preserved.
func (s *Service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := s.checkDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &domain.Employee{
		ID:            id,
		FirstName:     trimPtr(req.FirstName),
		MiddleName:    trimPtr(req.MiddleName),
		LastName:      trimPtr(req.LastName),
		Age:           req.Age,
		Birthday:      req.Birthday,
		Address:       trimPtr(req.Address),
		Email:         trimPtr(req.Email),
		DepartmentID:  trimPtr(req.DepartmentID),
		WorkStartDate: req.WorkStartDate,
		WorkEndDate:   req.WorkEndDate,
		UpdatedDate:   &now,
	}
	ok, err := s.employees.Update(ctx, id, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.employees.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.employees.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Search ANDs every present criterion. No criteria at all still returns the
// full list, matching the list endpoint.
func (s *Service) Search(ctx context.Context, q SearchEmployeeQuery) ([]domain.Employee, error) {
	f, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.employees.Search(ctx, f)
}

func buildFilter(q SearchEmployeeQuery) (repository.EmployeeFilter, error) {
	var f repository.EmployeeFilter

	f.ID = optional(q.ID)
	f.FirstName = optional(q.FirstName)
	f.MiddleName = optional(q.MiddleName)
	f.LastName = optional(q.LastName)
	f.Address = optional(q.Address)
	f.Email = optional(q.Email)
	f.DepartmentID = optional(q.DepartmentID)

	if v := strings.TrimSpace(q.Age); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("age must be a number: %w", err)
		}
		f.Age = &age
	}
	if v := strings.TrimSpace(q.Birthday); v != "" {
		day, err := time.Parse(birthdayLayout, v)
		if err != nil {
			return f, fmt.Errorf("birthday must be YYYY-MM-DD: %w", err)
		}
		f.Birthday = &day
	}

	return f, nil
}

func (s *Service) checkDepartment(ctx context.Context, id *string) error {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	if _, err := s.departments.GetByID(ctx, strings.TrimSpace(*id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownDepartment
		}
		return err
	}
	return nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
