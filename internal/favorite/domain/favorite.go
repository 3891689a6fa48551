package domain

import (
	"context"
	"time"

	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
)

// UserFavorite links a user to a product they saved. The pair is
// unique, so saving the same product twice leaves a single row.
type UserFavorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_product"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the UserFavorite model.
func (UserFavorite) TableName() string {
	return "user_favorites"
}

// FavoriteRepository defines persistence for the favorites relation.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, productID uint) error
	Remove(ctx context.Context, userID, productID uint) error
	ListProducts(ctx context.Context, userID uint) ([]productdomain.Product, error)
	Exists(ctx context.Context, userID, productID uint) (bool, error)
	RemoveAllForProduct(ctx context.Context, productID uint) (int64, error)
}
