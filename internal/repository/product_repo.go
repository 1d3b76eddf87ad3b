package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kienkmaster/BestProductManager-Jwt/internal/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	ProductName string  `gorm:"column:product_name;size:100"`
	Price       float64 `gorm:"column:price"`
	Stock       int     `gorm:"column:stock"`
}

func (productModel) TableName() string { return "products" }

func toDomainProduct(m productModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		ProductName: m.ProductName,
		Price:       m.Price,
		Stock:       m.Stock,
	}
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	var ms []productModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	products := make([]domain.Product, 0, len(ms))
	for _, m := range ms {
		products = append(products, toDomainProduct(m))
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	p := toDomainProduct(m)
	return &p, nil
}

func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	var ms []productModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(product_name) LIKE ?", pattern).
		Order("id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	products := make([]domain.Product, 0, len(ms))
	for _, m := range ms {
		products = append(products, toDomainProduct(m))
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	m := productModel{
		ProductName: p.ProductName,
		Price:       p.Price,
		Stock:       p.Stock,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	return nil
}

// Update returns false when no row matched the id.
func (r *ProductRepository) Update(ctx context.Context, id int64, p *domain.Product) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&productModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"product_name": p.ProductName,
			"price":        p.Price,
			"stock":        p.Stock,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
