package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dstrelka/marketcart/internal/auth"
	"github.com/dstrelka/marketcart/internal/catalog"
	"github.com/dstrelka/marketcart/internal/config"
	"github.com/dstrelka/marketcart/internal/database"
	"github.com/dstrelka/marketcart/internal/handlers"
	"github.com/dstrelka/marketcart/internal/routes"
	"github.com/dstrelka/marketcart/internal/service"
	"github.com/dstrelka/marketcart/internal/store"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	cfg := config.Load()
	auth.SetSecret(cfg.JWTSecret)

	// 1. --- Database Connection ---
	db, err := database.OpenDB(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// 2. --- Catalog Cache (Optional) ---
	// The cache is best-effort: a missing or dead Redis only means every
	// product summary read goes to MySQL.
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Printf("WARNING: Redis not reachable, catalog cache disabled: %v", err)
			cache = nil
		} else {
			log.Println("Catalog cache connected")
		}
	}

	// 3. --- Wire Services ---
	catalogClient := catalog.NewService(db, cache, cfg.CatalogCacheTTL)
	carts := store.NewMySQLCartStore(db)
	orders := store.NewMySQLOrderStore(db)

	app := &handlers.Handlers{
		DB:     db,
		Carts:  service.NewCartService(carts, catalogClient),
		Orders: service.NewOrderService(orders),
	}

	// --- Router & Server Setup ---
	router := routes.SetupRouter(app)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting marketcart API server on %s...", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
