package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adilzhn/marketplace/internal/product"
	producthttp "github.com/adilzhn/marketplace/internal/product/delivery/http"
	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
	"github.com/adilzhn/marketplace/internal/user"
	userhttp "github.com/adilzhn/marketplace/internal/user/delivery/http"
	userdomain "github.com/adilzhn/marketplace/internal/user/domain"
	userrepo "github.com/adilzhn/marketplace/internal/user/repository"
	"github.com/adilzhn/marketplace/pkg/auth"
)

type env struct {
	router *mux.Router
	token  string
	userID uint
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}, &productdomain.Product{}))

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	u := &userdomain.User{Name: "Seller", Email: "seller@example.com", Password: hash}
	require.NoError(t, userrepo.NewGormUserRepository(db).Create(context.Background(), u))

	token, err := auth.GenerateToken(u.ID, u.Email)
	require.NoError(t, err)

	router := mux.NewRouter()
	requireAuth := userhttp.AuthMiddleware(user.ProvideUserRepository(db))
	product.InitializeProductHandler(db, nil).RegisterRoutes(router, requireAuth)

	return &env{router: router, token: token, userID: u.ID}
}

func (e *env) do(t *testing.T, method, path string, authed bool, body interface{}) (*httptest.ResponseRecorder, producthttp.Response) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var resp producthttp.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (e *env) createProduct(t *testing.T, title string, price float64) uint {
	t.Helper()

	rec, resp := e.do(t, http.MethodPost, "/api/products", true, map[string]interface{}{
		"title":       title,
		"price":       price,
		"description": "test listing",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var p productdomain.Product
	require.NoError(t, json.Unmarshal(data, &p))
	return p.ID
}

func decodePage(t *testing.T, resp producthttp.Response) productdomain.Page {
	t.Helper()

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page productdomain.Page
	require.NoError(t, json.Unmarshal(data, &page))
	return page
}

func TestBrowseIsPublic(t *testing.T) {
	e := newEnv(t)
	e.createProduct(t, "Wireless Mouse", 799)

	rec, resp := e.do(t, http.MethodGet, "/api/products", false, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodePage(t, resp)
	assert.Equal(t, int64(1), page.TotalProducts)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestMutationsRequireAuth(t *testing.T) {
	e := newEnv(t)
	id := e.createProduct(t, "Keyboard", 4599)

	rec, _ := e.do(t, http.MethodPost, "/api/products", false, map[string]interface{}{
		"title": "x", "price": 1.0, "description": "y",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = e.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), false, map[string]interface{}{"price": 1.0})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = e.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), false, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSearchAndPaginationParams(t *testing.T) {
	e := newEnv(t)
	e.createProduct(t, "Wireless Mouse", 799)
	e.createProduct(t, "Gaming Mouse Pad", 999)
	e.createProduct(t, "Mechanical Keyboard", 4599)

	rec, resp := e.do(t, http.MethodGet, "/api/products?search=mouse", false, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, resp)
	assert.Equal(t, int64(2), page.TotalProducts)

	rec, resp = e.do(t, http.MethodGet, "/api/products?page=2&limit=2", false, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decodePage(t, resp)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Products, 1)

	// Junk paging params fall back to defaults
	rec, resp = e.do(t, http.MethodGet, "/api/products?page=abc&limit=-5", false, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decodePage(t, resp)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Products, 3)
}

func TestGetProductInvalidID(t *testing.T) {
	e := newEnv(t)

	rec, resp := e.do(t, http.MethodGet, "/api/products/notanumber", false, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", resp.Error)

	rec, resp = e.do(t, http.MethodGet, "/api/products/424242", false, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", resp.Error)
}

func TestCreateValidation(t *testing.T) {
	e := newEnv(t)

	rec, resp := e.do(t, http.MethodPost, "/api/products", true, map[string]interface{}{
		"title": "", "price": 10.0, "description": "d",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
}

func TestUpdateAndDeleteRoundTrip(t *testing.T) {
	e := newEnv(t)
	id := e.createProduct(t, "Earbuds", 2499)

	rec, resp := e.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), true, map[string]interface{}{
		"price": 1999.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var updated productdomain.Product
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, 1999.0, updated.Price)
	assert.Equal(t, "Earbuds", updated.Title)

	rec, _ = e.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), true, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = e.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), false, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
