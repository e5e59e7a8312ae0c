package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/vaneapp/vane/internal/adapters/cache"
	adapterHTTP "github.com/vaneapp/vane/internal/adapters/handler/http"
	"github.com/vaneapp/vane/internal/adapters/repository"
	"github.com/vaneapp/vane/internal/core/domain"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	serverPort := envOr("PORT", "3000")
	apiKey := os.Getenv("VANE_API_KEY")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	entryRepo := repository.NewPostgresEntryRepository(db)

	redisClient := connectRedis()
	if redisClient != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, redisClient)
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(habitRepo),
		EntryHandler: adapterHTTP.NewEntryHandler(entryRepo),
		StatsHandler: adapterHTTP.NewStatsHandler(entryRepo),
		DB:           db,
		Redis:        redisClient,
		APIKey:       apiKey,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("vaned running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}

// connectRedis is optional wiring: no REDIS_HOST means no cache and no
// rate limiting, not a startup failure.
func connectRedis() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("REDIS_HOST not set, running without cache")
		return nil
	}

	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")
	dbIndex, _ := strconv.Atoi(envOr("REDIS_DB", "0"))

	client, err := cache.NewRedisClient(host, port, password, dbIndex)
	if err != nil {
		log.Printf("Redis unavailable, running without cache: %v", err)
		return nil
	}

	log.Println("Redis connected successfully.")
	return client
}
