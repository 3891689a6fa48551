package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// AutoMigrate runs database migrations for the product table.
func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// Create inserts a new product.
func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create product", err)
	}
	return nil
}

// FindByID retrieves a product by primary key.
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "failed to find product", err)
	}
	return &product, nil
}

// escapeLike escapes LIKE metacharacters so the search term is always a
// literal substring match.
func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}

// Search returns one page of matching products plus the total count.
func (r *GormProductRepository) Search(ctx context.Context, term string, limit, offset int) ([]domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "failed to count products", err)
	}

	var products []domain.Product
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "failed to search products", err)
	}

	return products, count, nil
}

// Update persists changes to an existing product.
func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update product", err)
	}
	return nil
}

// Delete soft deletes a product.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

// Count returns the total number of products.
func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.Internal, "failed to count products", err)
	}
	return count, nil
}
