package query

import (
	"context"

	"github.com/adilzhn/marketplace/internal/product/domain"
)

// GetProductQuery represents the query to fetch a single listing.
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles the get product query.
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler.
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindByID(ctx, q.ID)
}
