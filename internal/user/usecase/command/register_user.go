package command

import (
	"context"
	"strings"

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/auth"
)

// RegisterUserCommand represents the command to register a new account.
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterUserHandler handles the register command.
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register handler.
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register command.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterResponse, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(strings.ToLower(cmd.Email))

	if cmd.Name == "" {
		return nil, apperr.New(apperr.Validation, "name is required")
	}
	if cmd.Email == "" {
		return nil, apperr.New(apperr.Validation, "email is required")
	}
	if cmd.Password == "" {
		return nil, apperr.New(apperr.Validation, "password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperr.New(apperr.Validation, "password must be at least 6 characters")
	}

	existing, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.Validation, "email already registered")
	}

	hashed, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	user := &domain.User{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: hashed,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate token", err)
	}

	return &RegisterResponse{Token: token, User: user}, nil
}
