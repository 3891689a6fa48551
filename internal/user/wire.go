//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/user/delivery/http"
	"github.com/adilzhn/marketplace/internal/user/usecase/command"
	"github.com/adilzhn/marketplace/internal/user/usecase/query"
)

// InitializeUserHandler wires the user domain from a database handle.
func InitializeUserHandler(db *gorm.DB) *http.UserHandler {
	wire.Build(
		ProvideUserRepository,
		command.NewRegisterUserHandler,
		command.NewLoginUserHandler,
		query.NewGetUserHandler,
		http.NewUserHandlerWithDI,
	)
	return nil
}
