package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/internal/product/repository"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

func newTestRepo(t *testing.T) *repository.GormProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))

	return repository.NewGormProductRepository(db)
}

func TestCreateProductValidation(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateProductHandler(repo, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"empty title", CreateProductCommand{Title: "  ", Price: 10, Description: "d", CreatedBy: 1}},
		{"empty description", CreateProductCommand{Title: "t", Price: 10, Description: "", CreatedBy: 1}},
		{"zero price", CreateProductCommand{Title: "t", Price: 0, Description: "d", CreatedBy: 1}},
		{"negative price", CreateProductCommand{Title: "t", Price: -5, Description: "d", CreatedBy: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tt.cmd)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
		})
	}
}

func TestCreateProductDefaultsImage(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewCreateProductHandler(repo, nil)

	product, err := handler.Handle(context.Background(), CreateProductCommand{
		Title:       "  Wireless Mouse  ",
		Price:       799,
		Description: "Ergonomic mouse",
		CreatedBy:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse", product.Title)
	assert.Equal(t, domain.PlaceholderImage, product.Image)
	assert.Equal(t, uint(1), product.CreatedBy)
	assert.NotZero(t, product.ID)
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	repo := newTestRepo(t)
	create := NewCreateProductHandler(repo, nil)
	update := NewUpdateProductHandler(repo)
	ctx := context.Background()

	product, err := create.Handle(ctx, CreateProductCommand{
		Title: "Keyboard", Price: 4599, Description: "Mechanical", CreatedBy: 1,
	})
	require.NoError(t, err)

	title := "Better Keyboard"
	_, err = update.Handle(ctx, UpdateProductCommand{ID: product.ID, ActorID: 2, Title: &title})
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	updated, err := update.Handle(ctx, UpdateProductCommand{ID: product.ID, ActorID: 1, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Better Keyboard", updated.Title)
}

func TestUpdateProductPartial(t *testing.T) {
	repo := newTestRepo(t)
	create := NewCreateProductHandler(repo, nil)
	update := NewUpdateProductHandler(repo)
	ctx := context.Background()

	product, err := create.Handle(ctx, CreateProductCommand{
		Title: "Earbuds", Price: 2499, Description: "Wireless", CreatedBy: 1,
	})
	require.NoError(t, err)

	price := 1999.0
	updated, err := update.Handle(ctx, UpdateProductCommand{ID: product.ID, ActorID: 1, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 1999.0, updated.Price)
	assert.Equal(t, "Earbuds", updated.Title)
	assert.Equal(t, "Wireless", updated.Description)
}

func TestUpdateProductRejectsBadFields(t *testing.T) {
	repo := newTestRepo(t)
	create := NewCreateProductHandler(repo, nil)
	update := NewUpdateProductHandler(repo)
	ctx := context.Background()

	product, err := create.Handle(ctx, CreateProductCommand{
		Title: "Watch", Price: 12499, Description: "Smart", CreatedBy: 1,
	})
	require.NoError(t, err)

	empty := "   "
	_, err = update.Handle(ctx, UpdateProductCommand{ID: product.ID, ActorID: 1, Title: &empty})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	negative := -1.0
	_, err = update.Handle(ctx, UpdateProductCommand{ID: product.ID, ActorID: 1, Price: &negative})
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := newTestRepo(t)
	update := NewUpdateProductHandler(repo)

	title := "x"
	_, err := update.Handle(context.Background(), UpdateProductCommand{ID: 999, ActorID: 1, Title: &title})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	repo := newTestRepo(t)
	create := NewCreateProductHandler(repo, nil)
	del := NewDeleteProductHandler(repo, nil)
	ctx := context.Background()

	product, err := create.Handle(ctx, CreateProductCommand{
		Title: "Charger", Price: 1899, Description: "65W", CreatedBy: 5,
	})
	require.NoError(t, err)

	err = del.Handle(ctx, DeleteProductCommand{ID: product.ID, ActorID: 6})
	assert.True(t, apperr.IsKind(err, apperr.Forbidden))

	require.NoError(t, del.Handle(ctx, DeleteProductCommand{ID: product.ID, ActorID: 5}))

	_, err = repo.FindByID(ctx, product.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteProductNotFound(t *testing.T) {
	repo := newTestRepo(t)
	del := NewDeleteProductHandler(repo, nil)

	err := del.Handle(context.Background(), DeleteProductCommand{ID: 12345, ActorID: 1})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
