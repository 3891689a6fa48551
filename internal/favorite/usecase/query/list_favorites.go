package query

import (
	"context"

	"github.com/adilzhn/marketplace/internal/favorite/domain"
	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
)

// ListFavoritesQuery represents the query to fetch a user's saved
// products, oldest save first.
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles the list favorites query.
type ListFavoritesHandler struct {
	favorites domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler.
func NewListFavoritesHandler(favorites domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{favorites: favorites}
}

// Handle executes the list favorites query.
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]productdomain.Product, error) {
	products, err := h.favorites.ListProducts(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []productdomain.Product{}
	}
	return products, nil
}
