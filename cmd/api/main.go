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

	_ "github.com/lucabarzi/ritmo/docs"
	"github.com/lucabarzi/ritmo/internal/adapters/cache"
	adapterHTTP "github.com/lucabarzi/ritmo/internal/adapters/handler/http"
	"github.com/lucabarzi/ritmo/internal/adapters/repository"
	"github.com/lucabarzi/ritmo/internal/core/domain"
	"github.com/lucabarzi/ritmo/internal/core/services"
	"github.com/lucabarzi/ritmo/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title ritmo API
// @version 1.0
// @description Habit planning backend with a progress analytics core.
// @BasePath /api/v1
func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

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

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rdb, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Redis unavailable, running without cache and rate limiting: %v", err)
		rdb = nil
	}

	plannedRepo := repository.NewPostgresPlannedRepository(db)
	entryRepo := repository.NewPostgresEntryRepository(db)
	capacityRepo := repository.NewPostgresCapacityRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	if rdb != nil {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewRecoveryWorker(plannedRepo, entryRepo)
	worker.Start(ctx)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(
		getEnv("JWT_SECRET", "dev-secret-do-not-use"),
		getEnv("JWT_ISSUER", "ritmo"),
		24*time.Hour,
		userRepo,
	)
	habitService := services.NewHabitService(habitRepo)
	plannedService := services.NewPlannedService(plannedRepo, habitRepo)
	entryService := services.NewEntryService(entryRepo, habitRepo, worker)
	capacityService := services.NewCapacityService(capacityRepo, userRepo)
	progressService := services.NewProgressService(habitRepo, plannedRepo, entryRepo, capacityRepo, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		PlannedHandler:  adapterHTTP.NewPlannedHandler(plannedService),
		EntryHandler:    adapterHTTP.NewEntryHandler(entryService),
		CapacityHandler: adapterHTTP.NewCapacityHandler(capacityService),
		ProgressHandler: adapterHTTP.NewProgressHandler(progressService),
		ExportHandler:   adapterHTTP.NewExportHandler(progressService, plannedService, habitService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           rdb,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("ritmo API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
