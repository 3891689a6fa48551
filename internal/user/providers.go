package user

import (
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/internal/user/repository"
)

// ProvideUserRepository provides the traced user repository.
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewTracingUserRepository(db)
}
