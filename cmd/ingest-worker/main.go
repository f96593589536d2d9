package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/db"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ingest"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/storage"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/translate"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, using environment variables")
	}

	log.Println("🧠 Menu ingestion worker starting...")

	required := []string{
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// Database connection
	pgDB := db.ConnectPostgres()

	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatalf("❌ Failed to initialize R2 storage: %v", err)
	}

	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatalf("❌ Invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	}

	aiClient := ai.NewOpenAIClient()
	if !aiClient.Configured() {
		log.Println("⚠️  OPENAI_API_KEY not set, uploads will fail until it is configured")
	}

	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	translateRepo := translate.NewPostgresRepository(pgDB)
	ingestRepo := ingest.NewPostgresRepository(pgDB)

	translateService := translate.NewService(aiClient, translateRepo, translate.NewCache(rdb))
	ingestService := ingest.NewService(ingestRepo, aiClient, translateService, r2Client, restaurantRepo)

	log.Println("Processing menu uploads every 2 seconds. Press Ctrl+C to stop.")

	ingestService.RunWorker(context.Background(), 2*time.Second)
}
