package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adilzhn/marketplace/internal/favorite/domain"
	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository.
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// AutoMigrate runs database migrations for the user_favorites table.
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.UserFavorite{})
}

// Add saves a product to the user's favorites. The composite unique
// index plus ON CONFLICT DO NOTHING makes the write idempotent without
// a read-then-write race.
func (r *GormFavoriteRepository) Add(ctx context.Context, userID, productID uint) error {
	favorite := domain.UserFavorite{UserID: userID, ProductID: productID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add favorite", err)
	}
	return nil
}

// Remove deletes a favorite. Removing a product that is not favorited
// is a no-op, not an error.
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID, productID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.UserFavorite{}).Error
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove favorite", err)
	}
	return nil
}

// ListProducts returns the user's favorited products in the order they
// were saved. The join against products drops favorites whose product
// has been soft deleted since being saved.
func (r *GormFavoriteRepository) ListProducts(ctx context.Context, userID uint) ([]productdomain.Product, error) {
	var products []productdomain.Product
	err := r.db.WithContext(ctx).
		Model(&productdomain.Product{}).
		Joins("JOIN user_favorites ON user_favorites.product_id = products.id").
		Where("user_favorites.user_id = ?", userID).
		Where("products.deleted_at IS NULL").
		Order("user_favorites.created_at ASC, user_favorites.id ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to list favorites", err)
	}
	return products, nil
}

// Exists reports whether the user has favorited the product.
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.UserFavorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Wrap(apperr.Internal, "failed to check favorite", err)
	}
	return count > 0, nil
}

// RemoveAllForProduct prunes every favorite pointing at a product.
// Called from the event consumer when a product is deleted.
func (r *GormFavoriteRepository) RemoveAllForProduct(ctx context.Context, productID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&domain.UserFavorite{})
	if result.Error != nil {
		return 0, apperr.Wrap(apperr.Internal, "failed to prune favorites", result.Error)
	}
	return result.RowsAffected, nil
}
