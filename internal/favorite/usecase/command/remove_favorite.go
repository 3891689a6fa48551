package command

import (
	"context"

	"github.com/adilzhn/marketplace/internal/favorite/domain"
)

// RemoveFavoriteCommand represents the command to drop a product from
// the acting user's favorites.
type RemoveFavoriteCommand struct {
	UserID    uint
	ProductID uint
}

// RemoveFavoriteHandler handles the remove favorite command.
type RemoveFavoriteHandler struct {
	favorites domain.FavoriteRepository
}

// NewRemoveFavoriteHandler creates a new remove favorite handler.
func NewRemoveFavoriteHandler(favorites domain.FavoriteRepository) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{favorites: favorites}
}

// Handle executes the remove favorite command. Removing a product that
// was never favorited succeeds.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) error {
	return h.favorites.Remove(ctx, cmd.UserID, cmd.ProductID)
}
