//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/product/delivery/http"
	"github.com/adilzhn/marketplace/internal/product/usecase/command"
	"github.com/adilzhn/marketplace/internal/product/usecase/query"
	"github.com/adilzhn/marketplace/kafka"
)

// InitializeProductHandler wires the product domain from a database
// handle and an event publisher.
func InitializeProductHandler(db *gorm.DB, publisher *kafka.Publisher) *http.ProductHandler {
	wire.Build(
		ProvideProductRepository,
		command.NewCreateProductHandler,
		command.NewUpdateProductHandler,
		command.NewDeleteProductHandler,
		query.NewGetProductHandler,
		query.NewListProductsHandler,
		http.NewProductHandlerWithDI,
	)
	return nil
}
