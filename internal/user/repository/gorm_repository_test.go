package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/database"
)

// The repository is opened with the same gorm.Config the server uses, so
// the error translation verified here is the one production sees.
func newTestRepo(t *testing.T) *GormUserRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return NewGormUserRepository(db)
}

func TestCreateDuplicateEmailMapsToValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{
		Name: "Alice", Email: "alice@example.com", Password: "hash1",
	}))

	// Concurrent registration can slip past the usecase's pre-check, so the
	// unique index violation itself must come back as a validation error.
	err := repo.Create(ctx, &domain.User{
		Name: "Impostor", Email: "alice@example.com", Password: "hash2",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Equal(t, "email already registered", apperr.Message(err))
}

func TestFindByEmailNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestFindByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Name: "Bob", Email: "bob@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	found, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", found.Email)

	_, err = repo.FindByID(ctx, u.ID+1000)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
