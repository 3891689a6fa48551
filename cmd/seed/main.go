package main

import (
	"database/sql"
	"time"

	"github.com/adilzhn/marketplace/pkg/auth"
	"github.com/adilzhn/marketplace/pkg/database"
	"github.com/adilzhn/marketplace/pkg/logger"
)

type seedProduct struct {
	Title       string
	Price       float64
	Description string
	Image       string
}

var products = []seedProduct{
	{"Wireless Mouse", 799, "Ergonomic 2.4GHz wireless mouse with silent clicks", "https://picsum.photos/seed/mouse/300/200"},
	{"Mechanical Keyboard", 4599, "Hot-swappable mechanical keyboard with RGB backlight", "https://picsum.photos/seed/keyboard/300/200"},
	{"Bluetooth Earbuds", 2499, "True wireless earbuds with 24h battery case", "https://picsum.photos/seed/earbuds/300/200"},
	{"Smart Watch Series 5", 12499, "Fitness tracking smart watch with AMOLED display", "https://picsum.photos/seed/watch/300/200"},
	{"USB-C Fast Charger 65W", 1899, "GaN fast charger with dual USB-C ports", "https://picsum.photos/seed/charger/300/200"},
	{"4K Webcam", 3499, "Ultra HD webcam with autofocus and dual microphones", "https://picsum.photos/seed/webcam/300/200"},
	{"Portable SSD 1TB", 7999, "Pocket-sized NVMe SSD with USB-C, 1050MB/s", "https://picsum.photos/seed/ssd/300/200"},
	{"Gaming Mouse Pad XXL", 999, "Extended cloth mouse pad with stitched edges", "https://picsum.photos/seed/mousepad/300/200"},
	{"Noise Cancelling Headphones", 6999, "Over-ear headphones with hybrid ANC", "https://picsum.photos/seed/headphones/300/200"},
}

func main() {
	logger.Init("marketplace-seed", true)

	db, err := database.NewPostgresConnection(database.ConfigFromEnv())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	userID, err := seedDemoUser(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed demo user")
	}

	inserted, err := seedProducts(db, userID)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed products")
	}

	logger.Logger.Info().
		Uint("user_id", userID).
		Int("products", inserted).
		Msg("Seeding complete")
}

// seedDemoUser inserts the demo account if it does not exist and
// returns its id either way.
func seedDemoUser(db *sql.DB) (uint, error) {
	const email = "demo@marketplace.local"

	var id uint
	err := db.QueryRow(`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`, email).Scan(&id)
	if err == nil {
		logger.Logger.Info().Uint("user_id", id).Msg("Demo user already present")
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	hash, err := auth.HashPassword("demo1234")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	err = db.QueryRow(
		`INSERT INTO users (name, email, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4) RETURNING id`,
		"Demo User", email, hash, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	logger.Logger.Info().Uint("user_id", id).Str("email", email).Msg("Demo user created")
	return id, nil
}

// seedProducts fills the catalog once; a non-empty products table means
// the seeder already ran.
func seedProducts(db *sql.DB, createdBy uint) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Logger.Info().Int("count", count).Msg("Products already present, skipping")
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO products (title, price, description, image, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	// Staggered timestamps keep newest-first ordering deterministic.
	base := time.Now().Add(-time.Duration(len(products)) * time.Minute)
	for i, p := range products {
		if _, err := stmt.Exec(p.Title, p.Price, p.Description, p.Image, createdBy, base.Add(time.Duration(i)*time.Minute)); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(products), nil
}
