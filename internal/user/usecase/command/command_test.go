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

	"github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/internal/user/repository"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/auth"
)

func newTestRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	return repository.NewGormUserRepository(db)
}

func TestRegisterValidation(t *testing.T) {
	handler := NewRegisterUserHandler(newTestRepo(t))
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"empty name", RegisterUserCommand{Name: " ", Email: "a@b.com", Password: "secret1"}},
		{"empty email", RegisterUserCommand{Name: "A", Email: "", Password: "secret1"}},
		{"empty password", RegisterUserCommand{Name: "A", Email: "a@b.com", Password: ""}},
		{"short password", RegisterUserCommand{Name: "A", Email: "a@b.com", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tt.cmd)
			assert.True(t, apperr.IsKind(err, apperr.Validation))
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := newTestRepo(t)
	handler := NewRegisterUserHandler(repo)

	resp, err := handler.Handle(context.Background(), RegisterUserCommand{
		Name:     "Alice",
		Email:    "  Alice@Example.COM  ",
		Password: "secret1",
	})
	require.NoError(t, err)

	// Email is normalized before storage
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotZero(t, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	// Password is stored hashed
	assert.NotEqual(t, "secret1", resp.User.Password)
	assert.True(t, auth.CheckPassword(resp.User.Password, "secret1"))

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewRegisterUserHandler(newTestRepo(t))
	ctx := context.Background()

	_, err := handler.Handle(ctx, RegisterUserCommand{Name: "A", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = handler.Handle(ctx, RegisterUserCommand{Name: "B", Email: "DUP@example.com", Password: "secret2"})
	assert.True(t, apperr.IsKind(err, apperr.Validation))
	assert.Equal(t, "email already registered", apperr.Message(err))
}

func TestLoginSuccess(t *testing.T) {
	repo := newTestRepo(t)
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)
	ctx := context.Background()

	_, err := register.Handle(ctx, RegisterUserCommand{Name: "Bob", Email: "bob@example.com", Password: "hunter22"})
	require.NoError(t, err)

	resp, err := login.Handle(ctx, LoginUserCommand{Email: "BOB@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "bob@example.com", resp.User.Email)
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	repo := newTestRepo(t)
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)
	ctx := context.Background()

	_, err := register.Handle(ctx, RegisterUserCommand{Name: "Carol", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, unknownEmailErr := login.Handle(ctx, LoginUserCommand{Email: "nobody@example.com", Password: "secret1"})
	_, wrongPasswordErr := login.Handle(ctx, LoginUserCommand{Email: "carol@example.com", Password: "wrong"})

	// Both failures must be indistinguishable to the caller
	assert.True(t, apperr.IsKind(unknownEmailErr, apperr.Unauthorized))
	assert.True(t, apperr.IsKind(wrongPasswordErr, apperr.Unauthorized))
	assert.Equal(t, apperr.Message(unknownEmailErr), apperr.Message(wrongPasswordErr))
}

// brokenUserRepo fails every lookup the way a down database would.
type brokenUserRepo struct {
	domain.UserRepository
}

func (brokenUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, apperr.Wrap(apperr.Internal, "failed to find user", fmt.Errorf("connection refused"))
}

func TestLoginStoreFailureIsNotUnauthorized(t *testing.T) {
	login := NewLoginUserHandler(brokenUserRepo{})

	_, err := login.Handle(context.Background(), LoginUserCommand{
		Email: "carol@example.com", Password: "secret1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))
	assert.NotEqual(t, "invalid credentials", apperr.Message(err))
}

func TestRegisterStoreFailureAborts(t *testing.T) {
	register := NewRegisterUserHandler(brokenUserRepo{})

	_, err := register.Handle(context.Background(), RegisterUserCommand{
		Name: "Dave", Email: "dave@example.com", Password: "secret1",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))
}

func TestLoginValidation(t *testing.T) {
	login := NewLoginUserHandler(newTestRepo(t))
	ctx := context.Background()

	_, err := login.Handle(ctx, LoginUserCommand{Email: "", Password: "x"})
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	_, err = login.Handle(ctx, LoginUserCommand{Email: "a@b.com", Password: ""})
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}
