package command

import (
	"context"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/kafka"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/logger"
)

// DeleteProductCommand represents the command to delete a listing.
type DeleteProductCommand struct {
	ID      uint
	ActorID uint
}

// DeleteProductHandler handles the delete product command.
type DeleteProductHandler struct {
	repo      domain.ProductRepository
	publisher *kafka.Publisher
}

// NewDeleteProductHandler creates a new delete product handler.
func NewDeleteProductHandler(repo domain.ProductRepository, publisher *kafka.Publisher) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, publisher: publisher}
}

// Handle executes the delete product command.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	product, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if !product.IsOwnedBy(cmd.ActorID) {
		return apperr.New(apperr.Forbidden, "only the creator may delete this product")
	}

	if err := h.repo.Delete(ctx, cmd.ID); err != nil {
		return err
	}

	if err := h.publisher.PublishProductDeleted(ctx, kafka.ProductDeletedEvent{
		ProductID: cmd.ID,
		DeletedBy: cmd.ActorID,
	}); err != nil {
		// Favorites referencing this product are also skipped lazily on
		// read, so a missed prune event only delays cleanup.
		logger.Warn(ctx).Err(err).Uint("product_id", cmd.ID).Msg("Failed to publish product deleted event")
	}

	return nil
}
