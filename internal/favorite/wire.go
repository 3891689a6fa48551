//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/favorite/delivery/http"
	"github.com/adilzhn/marketplace/internal/favorite/usecase/command"
	"github.com/adilzhn/marketplace/internal/favorite/usecase/query"
	"github.com/adilzhn/marketplace/internal/product"
)

// InitializeFavoriteHandler wires the favorite domain from a database
// handle.
func InitializeFavoriteHandler(db *gorm.DB) *http.FavoriteHandler {
	wire.Build(
		ProvideFavoriteRepository,
		product.ProvideProductRepository,
		command.NewAddFavoriteHandler,
		command.NewRemoveFavoriteHandler,
		query.NewListFavoritesHandler,
		http.NewFavoriteHandlerWithDI,
	)
	return nil
}
