package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'free_trial',
			stripe_customer_id VARCHAR(255),
			subscription_id VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	restaurantTableSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) UNIQUE,
			description TEXT,
			address TEXT,
			phone VARCHAR(50),
			email VARCHAR(255),
			logo_url VARCHAR(500),
			cover_image_url VARCHAR(500),
			theme_color VARCHAR(7),
			menu_template VARCHAR(50) NOT NULL DEFAULT 'list',
			hide_powered_by BOOLEAN NOT NULL DEFAULT FALSE,
			primary_language VARCHAR(10) NOT NULL DEFAULT 'th',
			service_options JSONB NOT NULL DEFAULT '{"dine_in": true, "pickup": true, "delivery": false}',
			delivery_rates JSONB,
			delivery_settings JSONB,
			payment_settings JSONB NOT NULL DEFAULT '{"accept_card": true, "accept_bank_transfer": false, "bank_accounts": []}',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, restaurantTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU ITEMS
	// -------------------------------
	menuItemsSQL := `
		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			name_en VARCHAR(255),
			description TEXT,
			description_en TEXT,
			category VARCHAR(100),
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			image_url VARCHAR(500),
			meat_options JSONB,
			addon_options JSONB,
			is_best_seller BOOLEAN NOT NULL DEFAULT FALSE,
			best_seller_pinned BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, menuItemsSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU TRANSLATIONS (per menu item, per language)
	// -------------------------------
	translationsSQL := `
		CREATE TABLE IF NOT EXISTS menu_translations (
			id SERIAL PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			menu_id UUID NOT NULL,
			language_code VARCHAR(10) NOT NULL,
			name TEXT,
			description TEXT,
			category TEXT,
			meat_options JSONB,
			addon_options JSONB,
			source_hash VARCHAR(64),
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (restaurant_id, menu_id, language_code)
		)
	`
	if _, err := db.Exec(ctx, translationsSQL); err != nil {
		return err
	}

	// -------------------------------
	// ORDERS
	// -------------------------------
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			order_number VARCHAR(20) NOT NULL,
			service_type VARCHAR(20) NOT NULL,
			customer_details JSONB NOT NULL DEFAULT '{}',
			items JSONB NOT NULL,
			subtotal NUMERIC(10,2) NOT NULL,
			tax NUMERIC(10,2) NOT NULL DEFAULT 0,
			delivery_fee NUMERIC(10,2) NOT NULL DEFAULT 0,
			total NUMERIC(10,2) NOT NULL,
			status VARCHAR(30) NOT NULL DEFAULT 'pending_payment',
			payment_status VARCHAR(30) NOT NULL DEFAULT 'pending',
			payment_intent_id VARCHAR(255),
			receipt_url VARCHAR(500),
			payment_slip_url VARCHAR(500),
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	// -------------------------------
	// SERVICE REQUESTS (call waiter etc.)
	// -------------------------------
	serviceRequestsSQL := `
		CREATE TABLE IF NOT EXISTS service_requests (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			table_number VARCHAR(20),
			request_type VARCHAR(30) NOT NULL,
			note TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			acknowledged_by VARCHAR(255),
			acknowledged_at TIMESTAMP,
			completed_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, serviceRequestsSQL); err != nil {
		return err
	}

	// -------------------------------
	// STAFF + ACTIVITY LOG
	// -------------------------------
	staffSQL := `
		CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			role VARCHAR(30) NOT NULL,
			pin_hash VARCHAR(255) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS staff_activity (
			id SERIAL PRIMARY KEY,
			staff_id UUID NOT NULL REFERENCES staff(id) ON DELETE CASCADE,
			restaurant_id UUID NOT NULL,
			action VARCHAR(50) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, staffSQL); err != nil {
		return err
	}

	// -------------------------------
	// TRIAL / USAGE COUNTERS
	// -------------------------------
	trialSQL := `
		CREATE TABLE IF NOT EXISTS trial_usage (
			id SERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			feature VARCHAR(50) NOT NULL,
			used_count INT NOT NULL DEFAULT 0,
			period_start TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, feature)
		)
	`
	if _, err := db.Exec(ctx, trialSQL); err != nil {
		return err
	}

	// -------------------------------
	// IMAGE LIBRARY
	// -------------------------------
	imagesSQL := `
		CREATE TABLE IF NOT EXISTS image_library (
			id SERIAL PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			url VARCHAR(500) NOT NULL,
			source VARCHAR(30) NOT NULL,
			prompt TEXT,
			menu_item_name VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, imagesSQL); err != nil {
		return err
	}

	// -------------------------------
	// MENU INGESTIONS (uploaded menu files -> parsed items)
	// -------------------------------
	ingestionsSQL := `
		CREATE TABLE IF NOT EXISTS menu_ingestions (
			id SERIAL PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			file_url VARCHAR(500) NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			file_type VARCHAR(20) NOT NULL,
			target_language VARCHAR(10),
			status VARCHAR(30) NOT NULL DEFAULT 'UPLOADED',
			raw_text TEXT,
			items JSONB,
			translated_items JSONB,
			qr_code TEXT,
			error_reason TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, ingestionsSQL); err != nil {
		return err
	}

	// Older deployments predate the location columns
	locationColumnsSQL := `
		ALTER TABLE restaurants
		ADD COLUMN IF NOT EXISTS latitude DOUBLE PRECISION;

		ALTER TABLE restaurants
		ADD COLUMN IF NOT EXISTS longitude DOUBLE PRECISION;
	`
	if _, err := db.Exec(ctx, locationColumnsSQL); err != nil {
		log.Println("Note: location columns may already exist")
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
