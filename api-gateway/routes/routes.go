package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adilzhn/marketplace/api-gateway/config"
	"github.com/adilzhn/marketplace/api-gateway/health"
	"github.com/adilzhn/marketplace/api-gateway/middleware"
	"github.com/adilzhn/marketplace/api-gateway/proxy"
)

// AuthMode controls which auth middleware guards a route prefix.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthOptional
	AuthRequired
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	Auth        AuthMode
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:      "/api/auth",
		ServiceName: "api",
		Description: "Registration and login",
		Auth:        AuthNone,
	},
	{
		Prefix:      "/api/users",
		ServiceName: "api",
		Description: "User profile",
		Auth:        AuthRequired,
	},
	{
		// Browsing is public; the API rejects unauthenticated mutations.
		Prefix:      "/api/products",
		ServiceName: "api",
		Description: "Product catalog",
		Auth:        AuthOptional,
	},
	{
		Prefix:      "/api/favorites",
		ServiceName: "api",
		Description: "Per-user favorites",
		Auth:        AuthRequired,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks the API)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Marketplace API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	switch route.Auth {
	case AuthRequired:
		middlewares = append(middlewares, middleware.AuthMiddleware())
	case AuthOptional:
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
