package product

import (
	"context"
	"strings"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

// Store — only the methods the product service uses
type Store interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id int64, p *domain.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	products Store
}

func NewService(products Store) *Service {
	return &Service{products: products}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.products.GetAll(ctx)
}

// Search matches the product name, case-insensitive. An empty keyword
// returns everything, same as the list endpoint.
func (s *Service) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.products.GetAll(ctx)
	}
	return s.products.Search(ctx, keyword)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		ProductName: strings.TrimSpace(req.ProductName),
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		ID:          id,
		ProductName: strings.TrimSpace(req.ProductName),
		Price:       req.Price,
		Stock:       req.Stock,
	}
	ok, err := s.products.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
