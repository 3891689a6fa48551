package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
)

var tracer = otel.Tracer("favorite-repository")

// TracingFavoriteRepository wraps GormFavoriteRepository with tracing spans.
type TracingFavoriteRepository struct {
	*GormFavoriteRepository
}

// NewTracingFavoriteRepository creates a traced favorite repository.
func NewTracingFavoriteRepository(db *gorm.DB) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{GormFavoriteRepository: NewGormFavoriteRepository(db)}
}

func (r *TracingFavoriteRepository) Add(ctx context.Context, userID, productID uint) error {
	ctx, span := tracer.Start(ctx, "repository.favorites.Add",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	if err := r.GormFavoriteRepository.Add(ctx, userID, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingFavoriteRepository) Remove(ctx context.Context, userID, productID uint) error {
	ctx, span := tracer.Start(ctx, "repository.favorites.Remove",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	if err := r.GormFavoriteRepository.Remove(ctx, userID, productID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (r *TracingFavoriteRepository) ListProducts(ctx context.Context, userID uint) ([]productdomain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.favorites.ListProducts",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	products, err := r.GormFavoriteRepository.ListProducts(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorites.count", len(products)))
	return products, nil
}

func (r *TracingFavoriteRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.favorites.Exists",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	exists, err := r.GormFavoriteRepository.Exists(ctx, userID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return exists, nil
}

func (r *TracingFavoriteRepository) RemoveAllForProduct(ctx context.Context, productID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.favorites.RemoveAllForProduct",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	pruned, err := r.GormFavoriteRepository.RemoveAllForProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int64("favorites.pruned", pruned))
	return pruned, nil
}
