package main

import (
	"log"
	"os"

	"luminate/internal/router"
	"luminate/internal/services"
	"luminate/internal/store"
	"luminate/internal/store/memory"
	"luminate/internal/store/postgres"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	st := openStore()

	// Trending worker runs for the process lifetime.
	trending := services.InitTrendingService(st)
	trending.StartScheduledRefresh()

	r := gin.Default()
	router.RegisterRoutes(r, st)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Luminate server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// openStore picks the storage backend. STORE=memory keeps everything in
// process for local development; anything else expects Postgres.
func openStore() store.Store {
	if os.Getenv("STORE") == "memory" {
		log.Println("Using in-memory store")
		return memory.New()
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=luminate port=5432 sslmode=disable"
	}
	st, err := postgres.Open(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return st
}
