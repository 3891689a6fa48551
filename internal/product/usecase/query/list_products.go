package query

import (
	"context"
	"strings"

	"github.com/adilzhn/marketplace/internal/product/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListProductsQuery represents a paginated catalog query. Pages are
// 1-indexed; Search is an optional case-insensitive substring filter on
// the title.
type ListProductsQuery struct {
	Search string
	Page   int
	Limit  int
}

// ListProductsHandler handles the list products query.
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler.
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*domain.Page, error) {
	term := strings.TrimSpace(q.Search)

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	products, count, err := h.repo.Search(ctx, term, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	// An empty result set is still one (empty) page.
	totalPages := int((count + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return &domain.Page{
		Products:      products,
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: count,
	}, nil
}
