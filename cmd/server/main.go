// Package main is the entry point for the storechain API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"storechain/internal/domain/auth"
	"storechain/internal/domain/cart"
	"storechain/internal/domain/customer"
	"storechain/internal/domain/employee"
	"storechain/internal/domain/inventory"
	"storechain/internal/domain/receiving"
	"storechain/internal/domain/store"
	v1 "storechain/internal/infrastructure/http/v1"
	"storechain/internal/infrastructure/storage/postgres"
	"storechain/internal/infrastructure/storage/postgres/repo"
	"storechain/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting storechain server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	storeRepo := repo.NewStoreRepo(txManager)
	inventoryProductRepo := repo.NewInventoryProductRepo(txManager)
	inventoryOrderRepo := repo.NewInventoryOrderRepo(txManager)
	cartOrderRepo := repo.NewCartOrderRepo(txManager)
	cartProductRepo := repo.NewCartProductRepo(txManager)
	customerRepo := repo.NewCustomerRepo(txManager)
	employeeRepo := repo.NewEmployeeRepo(txManager)

	// --- Services ---
	hasher := auth.NewBcryptHasher(0)

	inventoryService := inventory.NewService(inventoryProductRepo, storeRepo, txManager)
	receivingService := receiving.NewService(inventoryOrderRepo, inventoryProductRepo, storeRepo, inventoryService, txManager)
	customerService := customer.NewService(customerRepo, hasher, txManager)
	employeeService := employee.NewService(employeeRepo, storeRepo, hasher, txManager)
	cartService := cart.NewService(cartOrderRepo, cartProductRepo, customerService, storeRepo, inventoryService, txManager)
	storeService := store.NewService(storeRepo, receivingService, cartService, inventoryProductRepo, employeeRepo, txManager)

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(customerRepo, employeeRepo, hasher, jwtService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		StoreService:     storeService,
		CustomerService:  customerService,
		EmployeeService:  employeeService,
		InventoryService: inventoryService,
		ReceivingService: receivingService,
		CartService:      cartService,
		AllowedOrigins:   splitEnv("CORS_ALLOWED_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
