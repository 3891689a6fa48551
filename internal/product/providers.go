package product

import (
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/internal/product/repository"
)

// ProvideProductRepository provides the traced product repository.
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(db)
}
