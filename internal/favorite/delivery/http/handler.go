package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adilzhn/marketplace/internal/favorite/usecase/command"
	"github.com/adilzhn/marketplace/internal/favorite/usecase/query"
	userhttp "github.com/adilzhn/marketplace/internal/user/delivery/http"
	"github.com/adilzhn/marketplace/pkg/apperr"
	"github.com/adilzhn/marketplace/pkg/logger"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_requests_total",
			Help: "Total number of requests to favorites endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_request_duration_seconds",
			Help:    "Duration of favorites endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// FavoriteHandler exposes the favorites endpoints. All of them require
// an authenticated user.
type FavoriteHandler struct {
	addHandler    *command.AddFavoriteHandler
	removeHandler *command.RemoveFavoriteHandler
	listHandler   *query.ListFavoritesHandler
}

// NewFavoriteHandlerWithDI creates a favorite handler from prebuilt
// usecase handlers. Used by Wire.
func NewFavoriteHandlerWithDI(
	addHandler *command.AddFavoriteHandler,
	removeHandler *command.RemoveFavoriteHandler,
	listHandler *query.ListFavoritesHandler,
) *FavoriteHandler {
	return &FavoriteHandler{
		addHandler:    addHandler,
		removeHandler: removeHandler,
		listHandler:   listHandler,
	}
}

// Response is the JSON envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes mounts the favorites endpoints behind the supplied
// auth middleware.
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router, requireAuth userhttp.Middleware) {
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", requireAuth(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/favorites/{productId}", h.metricsMiddleware("/api/favorites/{productId}", requireAuth(h.AddFavorite))).Methods("POST")
	router.HandleFunc("/api/favorites/{productId}", h.metricsMiddleware("/api/favorites/{productId}", requireAuth(h.RemoveFavorite))).Methods("DELETE")
}

// ListFavorites handles GET /api/favorites
// @Summary List the caller's saved products
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /api/favorites [get]
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "not authenticated"})
		return
	}

	products, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Uint("user_id", userID).Msg("Failed to list favorites")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// AddFavorite handles POST /api/favorites/{productId}
// @Summary Save a product to favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/favorites/{productId} [post]
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "not authenticated"})
		return
	}

	productID, ok := favoriteProductID(w, r)
	if !ok {
		return
	}

	if err := h.addHandler.Handle(r.Context(), command.AddFavoriteCommand{UserID: userID, ProductID: productID}); err != nil {
		logger.Warn(r.Context()).Err(err).Uint("product_id", productID).Msg("Failed to add favorite")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "product added to favorites",
	})
}

// RemoveFavorite handles DELETE /api/favorites/{productId}
// @Summary Remove a product from favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /api/favorites/{productId} [delete]
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := userhttp.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "not authenticated"})
		return
	}

	productID, ok := favoriteProductID(w, r)
	if !ok {
		return
	}

	if err := h.removeHandler.Handle(r.Context(), command.RemoveFavoriteCommand{UserID: userID, ProductID: productID}); err != nil {
		logger.Warn(r.Context()).Err(err).Uint("product_id", productID).Msg("Failed to remove favorite")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "product removed from favorites",
	})
}

func favoriteProductID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "product not found",
		})
		return 0, false
	}
	return uint(id), true
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, apperr.Status(err), Response{
		Success: false,
		Error:   apperr.Message(err),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
