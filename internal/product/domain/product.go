package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PlaceholderImage is used when a listing is created without an image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

// Product represents a catalog listing.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;index"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description" gorm:"not null"`
	Image       string         `json:"image"`
	CreatedBy   uint           `json:"created_by" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name.
func (Product) TableName() string {
	return "products"
}

// IsOwnedBy reports whether the given user created this listing.
func (p *Product) IsOwnedBy(userID uint) bool {
	return p.CreatedBy == userID
}

// Page is one page of catalog results.
type Page struct {
	Products      []Product `json:"products"`
	CurrentPage   int       `json:"currentPage"`
	TotalPages    int       `json:"totalPages"`
	TotalProducts int64     `json:"totalProducts"`
}

// ProductRepository defines the contract for catalog data access.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	// Search returns one page of products whose title contains term
	// (case-insensitive), newest first, plus the total match count.
	// An empty term matches everything.
	Search(ctx context.Context, term string, limit, offset int) ([]Product, int64, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
