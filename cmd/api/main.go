package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/adilzhn/marketplace/docs"
	"github.com/adilzhn/marketplace/internal/favorite"
	favoriterepo "github.com/adilzhn/marketplace/internal/favorite/repository"
	"github.com/adilzhn/marketplace/internal/product"
	productrepo "github.com/adilzhn/marketplace/internal/product/repository"
	"github.com/adilzhn/marketplace/internal/user"
	userhttp "github.com/adilzhn/marketplace/internal/user/delivery/http"
	userrepo "github.com/adilzhn/marketplace/internal/user/repository"
	"github.com/adilzhn/marketplace/kafka"
	"github.com/adilzhn/marketplace/pkg/database"
	"github.com/adilzhn/marketplace/pkg/logger"
	"github.com/adilzhn/marketplace/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "marketplace-api")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting marketplace API")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(database.ConfigFromEnv())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := userrepo.NewGormUserRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate users")
	}
	if err := productrepo.NewGormProductRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate products")
	}
	favoriteRepo := favoriterepo.NewGormFavoriteRepository(db)
	if err := favoriteRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to migrate favorites")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka is optional: without brokers the publisher stays nil and
	// product lifecycle events are simply not emitted.
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()

	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		brokerList := strings.Split(brokers, ",")

		publisher, err = kafka.NewPublisher(brokerList)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}

		consumer, err := kafka.NewConsumer(brokerList, getEnv("KAFKA_GROUP_ID", "marketplace-api"),
			func(ctx context.Context, event kafka.ProductDeletedEvent) error {
				pruned, err := favoriteRepo.RemoveAllForProduct(ctx, event.ProductID)
				if err != nil {
					return err
				}
				logger.Info(ctx).
					Uint("product_id", event.ProductID).
					Int64("pruned", pruned).
					Msg("Pruned favorites for deleted product")
				return nil
			},
		)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, favorite pruning disabled")
		} else {
			defer consumer.Close()
			consumer.Start(consumerCtx)
		}
	}

	// Initialize handlers with Wire DI
	userHandler := user.InitializeUserHandler(db)
	productHandler := product.InitializeProductHandler(db, publisher)
	favoriteHandler := favorite.InitializeFavoriteHandler(db)

	// Setup router
	router := mux.NewRouter()

	requireAuth := userhttp.AuthMiddleware(user.ProvideUserRepository(db))
	userHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router, requireAuth)
	favoriteHandler.RegisterRoutes(router, requireAuth)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: otelhttp.NewHandler(c.Handler(router), "marketplace-api"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	cancelConsumer()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
