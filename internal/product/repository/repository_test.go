package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&domain.Product{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, title string, createdAt time.Time) *domain.Product {
	t.Helper()

	p := &domain.Product{
		Title:       title,
		Price:       100,
		Description: "test product",
		Image:       domain.PlaceholderImage,
		CreatedBy:   1,
	}
	require.NoError(t, db.Create(p).Error)
	require.NoError(t, db.Model(p).UpdateColumn("created_at", createdAt).Error)
	p.CreatedAt = createdAt
	return p
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	base := time.Now()
	seedProduct(t, db, "Wireless Mouse", base)
	seedProduct(t, db, "Gaming MOUSE Pad", base.Add(time.Minute))
	seedProduct(t, db, "Mechanical Keyboard", base.Add(2*time.Minute))

	products, count, err := repo.Search(ctx, "mouse", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), count)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, strings.ToLower(p.Title), "mouse")
	}
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	base := time.Now()
	seedProduct(t, db, "100% Cotton Shirt", base)
	seedProduct(t, db, "1000 Piece Puzzle", base.Add(time.Minute))

	// "%" must match literally, not as a wildcard
	products, count, err := repo.Search(ctx, "100%", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, products, 1)
	assert.Equal(t, "100% Cotton Shirt", products[0].Title)

	_, count, err = repo.Search(ctx, "100_", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSearchOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	seedProduct(t, db, "Oldest", base.Add(-2*time.Hour))
	seedProduct(t, db, "Middle", base.Add(-time.Hour))
	seedProduct(t, db, "Newest", base)

	products, _, err := repo.Search(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Newest", products[0].Title)
	assert.Equal(t, "Middle", products[1].Title)
	assert.Equal(t, "Oldest", products[2].Title)
}

func TestSearchPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		seedProduct(t, db, fmt.Sprintf("Product %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	firstPage, count, err := repo.Search(ctx, "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	require.Len(t, firstPage, 2)

	secondPage, _, err := repo.Search(ctx, "", 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 2)

	// Pages must not overlap
	assert.NotEqual(t, firstPage[0].ID, secondPage[0].ID)
	assert.NotEqual(t, firstPage[1].ID, secondPage[1].ID)

	lastPage, _, err := repo.Search(ctx, "", 2, 4)
	require.NoError(t, err)
	assert.Len(t, lastPage, 1)
}

func TestFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)

	err := repo.Delete(context.Background(), 999)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDeleteHidesProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	p := seedProduct(t, db, "Doomed", time.Now())

	require.NoError(t, repo.Delete(ctx, p.ID))

	_, err := repo.FindByID(ctx, p.ID)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))

	_, count, err := repo.Search(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	created := &domain.Product{
		Title:       "Portable SSD",
		Price:       7999,
		Description: "1TB NVMe",
		Image:       domain.PlaceholderImage,
		CreatedBy:   3,
	}
	require.NoError(t, repo.Create(ctx, created))
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portable SSD", found.Title)
	assert.Equal(t, float64(7999), found.Price)
	assert.Equal(t, uint(3), found.CreatedBy)

	found.Price = 6999
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(6999), updated.Price)
}
