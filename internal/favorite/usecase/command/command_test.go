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

	favoritedomain "github.com/adilzhn/marketplace/internal/favorite/domain"
	favoriterepo "github.com/adilzhn/marketplace/internal/favorite/repository"
	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
	productrepo "github.com/adilzhn/marketplace/internal/product/repository"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

func newHandlers(t *testing.T) (*AddFavoriteHandler, *RemoveFavoriteHandler, *favoriterepo.GormFavoriteRepository, *productrepo.GormProductRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&productdomain.Product{}, &favoritedomain.UserFavorite{}))

	favorites := favoriterepo.NewGormFavoriteRepository(db)
	products := productrepo.NewGormProductRepository(db)

	return NewAddFavoriteHandler(favorites, products), NewRemoveFavoriteHandler(favorites), favorites, products
}

func TestAddFavoriteRequiresExistingProduct(t *testing.T) {
	add, _, _, _ := newHandlers(t)

	err := add.Handle(context.Background(), AddFavoriteCommand{UserID: 1, ProductID: 999})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestAddThenRemoveFavorite(t *testing.T) {
	add, remove, favorites, products := newHandlers(t)
	ctx := context.Background()

	p := &productdomain.Product{Title: "SSD", Price: 7999, Description: "1TB", Image: productdomain.PlaceholderImage, CreatedBy: 2}
	require.NoError(t, products.Create(ctx, p))

	require.NoError(t, add.Handle(ctx, AddFavoriteCommand{UserID: 1, ProductID: p.ID}))
	// Saving again is a no-op, not an error
	require.NoError(t, add.Handle(ctx, AddFavoriteCommand{UserID: 1, ProductID: p.ID}))

	exists, err := favorites.Exists(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, remove.Handle(ctx, RemoveFavoriteCommand{UserID: 1, ProductID: p.ID}))
	// Removing again is also a no-op
	require.NoError(t, remove.Handle(ctx, RemoveFavoriteCommand{UserID: 1, ProductID: p.ID}))

	exists, err = favorites.Exists(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
