package main

// @title Marketplace API
// @version 1.0
// @description REST API for the marketplace: accounts, product catalog with search and pagination, and per-user favorites.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/adilzhn/marketplace
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/adilzhn/marketplace/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description User profile endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Favorites
// @tag.description Per-user favorites endpoints

// @tag.name Health
// @tag.description Health check endpoints
