// Package client is a typed Go client for the marketplace API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	productdomain "github.com/adilzhn/marketplace/internal/product/domain"
	userdomain "github.com/adilzhn/marketplace/internal/user/domain"
	"github.com/adilzhn/marketplace/pkg/apperr"
)

// Client talks to the marketplace API. It is safe for concurrent use
// once the token is set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token up front.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	Token string           `json:"token"`
	User  *userdomain.User `json:"user"`
}

// Register creates an account and stores the returned token on the
// client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*userdomain.User, error) {
	var user userdomain.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProducts fetches one catalog page. Zero page and limit use the
// server defaults.
func (c *Client) ListProducts(ctx context.Context, search string, page, limit int) (*productdomain.Page, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var result productdomain.Page
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct fetches a single listing.
func (c *Client) GetProduct(ctx context.Context, id uint) (*productdomain.Product, error) {
	var product productdomain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProductRequest is the payload for CreateProduct.
type CreateProductRequest struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
}

// CreateProduct creates a listing owned by the authenticated user.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*productdomain.Product, error) {
	var product productdomain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProductRequest is the payload for UpdateProduct. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// UpdateProduct updates a listing the authenticated user created.
func (c *Client) UpdateProduct(ctx context.Context, id uint, req UpdateProductRequest) (*productdomain.Product, error) {
	var product productdomain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct deletes a listing the authenticated user created.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

// AddFavorite saves a product to the authenticated user's favorites.
func (c *Client) AddFavorite(ctx context.Context, productID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/favorites/%d", productID), nil, nil, nil)
}

// RemoveFavorite drops a product from the authenticated user's
// favorites.
func (c *Client) RemoveFavorite(ctx context.Context, productID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", productID), nil, nil, nil)
}

// ListFavorites fetches the authenticated user's saved products.
func (c *Client) ListFavorites(ctx context.Context) ([]productdomain.Product, error) {
	var products []productdomain.Product
	if err := c.do(ctx, http.MethodGet, "/api/favorites", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		return apperr.New(kindForStatus(resp.StatusCode), env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// kindForStatus maps the server's status codes back onto the shared
// error taxonomy so callers can branch with apperr.IsKind.
func kindForStatus(status int) apperr.Kind {
	switch status {
	case http.StatusBadRequest:
		return apperr.Validation
	case http.StatusUnauthorized:
		return apperr.Unauthorized
	case http.StatusForbidden:
		return apperr.Forbidden
	case http.StatusNotFound:
		return apperr.NotFound
	default:
		return apperr.Internal
	}
}
