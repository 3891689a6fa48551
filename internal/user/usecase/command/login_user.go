package command

import (
	"context"
	"strings"

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user.
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles the login command.
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login handler.
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// errInvalidCredentials is shared by the unknown-email and wrong-password
// paths so responses cannot be used to enumerate accounts.
var errInvalidCredentials = apperr.New(apperr.Unauthorized, "invalid credentials")

// Handle executes the login command.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))

	if cmd.Email == "" {
		return nil, apperr.New(apperr.Validation, "email is required")
	}
	if cmd.Password == "" {
		return nil, apperr.New(apperr.Validation, "password is required")
	}

	user, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		// Only an unknown email is a credential failure; a store error
		// must surface as such.
		if apperr.IsKind(err, apperr.NotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, errInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate token", err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}
