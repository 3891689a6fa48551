package command

import (
	"context"
	"strings"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/kafka"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/logger"
)

// CreateProductCommand represents the command to create a listing.
type CreateProductCommand struct {
	Title       string
	Price       float64
	Description string
	Image       string
	CreatedBy   uint
}

// CreateProductHandler handles the create product command.
type CreateProductHandler struct {
	repo      domain.ProductRepository
	publisher *kafka.Publisher
}

// NewCreateProductHandler creates a new create product handler.
func NewCreateProductHandler(repo domain.ProductRepository, publisher *kafka.Publisher) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the create product command.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.Description = strings.TrimSpace(cmd.Description)
	cmd.Image = strings.TrimSpace(cmd.Image)

	if cmd.Title == "" {
		return nil, apperr.New(apperr.Validation, "title is required")
	}
	if cmd.Description == "" {
		return nil, apperr.New(apperr.Validation, "description is required")
	}
	if cmd.Price <= 0 {
		return nil, apperr.New(apperr.Validation, "price must be a positive number")
	}
	if cmd.Image == "" {
		cmd.Image = domain.PlaceholderImage
	}

	product := &domain.Product{
		Title:       cmd.Title,
		Price:       cmd.Price,
		Description: cmd.Description,
		Image:       cmd.Image,
		CreatedBy:   cmd.CreatedBy,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	if err := h.publisher.PublishProductCreated(ctx, kafka.ProductCreatedEvent{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		CreatedBy: product.CreatedBy,
	}); err != nil {
		// The listing is already persisted; a missed event is not fatal.
		logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish product created event")
	}

	return product, nil
}
