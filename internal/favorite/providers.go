package favorite

import (
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/favorite/domain"
	"github.com/adilzhn/marketplace/internal/favorite/repository"
)

// ProvideFavoriteRepository provides the traced favorite repository.
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewTracingFavoriteRepository(db)
}
