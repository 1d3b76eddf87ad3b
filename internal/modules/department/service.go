package department

import (
	"context"
	"errors"
	"strings"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

var ErrNotFound = errors.New("department not found")

// Store — only the methods the department service uses
type Store interface {
	GetAll(ctx context.Context) ([]domain.Department, error)
	Create(ctx context.Context, name string) (string, error)
	Update(ctx context.Context, id, name string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, id, name string) ([]domain.Department, error)
}

type Service struct {
	departments Store
}

func NewService(departments Store) *Service {
	return &Service{departments: departments}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Department, error) {
	return s.departments.GetAll(ctx)
}

func (s *Service) Register(ctx context.Context, req RegisterDepartmentRequest) (*domain.Department, error) {
	name := strings.TrimSpace(req.Name)
	id, err := s.departments.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.Department{ID: id, Name: name}, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (*domain.Department, error) {
	name := strings.TrimSpace(req.Name)
	ok, err := s.departments.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &domain.Department{ID: id, Name: name}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.departments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Search requires at least one criterion; with none it returns an empty
// result rather than the full list.
func (s *Service) Search(ctx context.Context, q SearchDepartmentQuery) ([]domain.Department, error) {
	id := strings.TrimSpace(q.ID)
	name := strings.TrimSpace(q.Name)
	if id == "" && name == "" {
		return []domain.Department{}, nil
	}
	return s.departments.Search(ctx, id, name)
}
