package command

import (
	"context"
	"strings"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

// UpdateProductCommand represents a partial update of a listing. Nil
// fields are left untouched.
type UpdateProductCommand struct {
	ID      uint
	ActorID uint

	Title       *string
	Price       *float64
	Description *string
	Image       *string
}

// UpdateProductHandler handles the update product command.
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler.
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if !product.IsOwnedBy(cmd.ActorID) {
		return nil, apperr.New(apperr.Forbidden, "only the creator may edit this product")
	}

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return nil, apperr.New(apperr.Validation, "title cannot be empty")
		}
		product.Title = title
	}
	if cmd.Price != nil {
		if *cmd.Price <= 0 {
			return nil, apperr.New(apperr.Validation, "price must be a positive number")
		}
		product.Price = *cmd.Price
	}
	if cmd.Description != nil {
		description := strings.TrimSpace(*cmd.Description)
		if description == "" {
			return nil, apperr.New(apperr.Validation, "description cannot be empty")
		}
		product.Description = description
	}
	if cmd.Image != nil {
		image := strings.TrimSpace(*cmd.Image)
		if image == "" {
			image = domain.PlaceholderImage
		}
		product.Image = image
	}

	if err := h.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}
