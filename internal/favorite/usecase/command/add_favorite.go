package command

import (
	"context"

	"github.com/adilzhn/marketplace/internal/favorite/domain"
	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
)

// AddFavoriteCommand represents the command to save a product to the
// acting user's favorites.
type AddFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// AddFavoriteHandler handles the add favorite command.
type AddFavoriteHandler struct {
	favorites domain.FavoriteRepository
	products  productdomain.ProductRepository
}

// NewAddFavoriteHandler creates a new add favorite handler.
func NewAddFavoriteHandler(favorites domain.FavoriteRepository, products productdomain.ProductRepository) *AddFavoriteHandler {
	return &AddFavoriteHandler{favorites: favorites, products: products}
}

// Handle executes the add favorite command. Adding a product that is
// already favorited succeeds without creating a duplicate.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) error {
	if _, err := h.products.FindByID(ctx, cmd.ProductID); err != nil {
		return err
	}
	return h.favorites.Add(ctx, cmd.UserID, cmd.ProductID)
}
