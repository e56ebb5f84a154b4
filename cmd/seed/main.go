// Package main seeds a development database with a demo store, staff,
// a customer, and shelf stock received through the regular pipeline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"storechain/internal/core/apperror"
	"storechain/internal/core/types"
	"storechain/internal/domain/auth"
	"storechain/internal/domain/customer"
	"storechain/internal/domain/employee"
	"storechain/internal/domain/inventory"
	"storechain/internal/domain/receiving"
	"storechain/internal/domain/store"
	"storechain/internal/infrastructure/storage/postgres"
	"storechain/internal/infrastructure/storage/postgres/repo"
	"storechain/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	storeRepo := repo.NewStoreRepo(txManager)
	inventoryProductRepo := repo.NewInventoryProductRepo(txManager)
	inventoryOrderRepo := repo.NewInventoryOrderRepo(txManager)
	customerRepo := repo.NewCustomerRepo(txManager)
	employeeRepo := repo.NewEmployeeRepo(txManager)

	hasher := auth.NewBcryptHasher(0)
	inventoryService := inventory.NewService(inventoryProductRepo, storeRepo, txManager)
	receivingService := receiving.NewService(inventoryOrderRepo, inventoryProductRepo, storeRepo, inventoryService, txManager)
	customerService := customer.NewService(customerRepo, hasher, txManager)
	employeeService := employee.NewService(employeeRepo, storeRepo, hasher, txManager)

	// Demo store; re-running the seeder against a populated database is a no-op.
	storeService := store.NewService(storeRepo, receivingService, nil, inventoryProductRepo, employeeRepo, txManager)
	if existing, err := storeService.GetByNumber(ctx, "S-0001"); err == nil {
		log.Infow("store already seeded, nothing to do", "store_id", existing.ID)
		return
	} else if !apperror.IsNotFound(err) {
		log.Fatalw("look up store", "error", err)
	}

	st := store.New("Downtown Flagship", "S-0001", "1 Main St")
	if err := storeService.Create(ctx, st); err != nil {
		log.Fatalw("seed store", "error", err)
	}

	// Admin employee; Normalize widens admin to both pipeline roles.
	admin := &employee.Employee{
		Email: "admin@storechain.dev",
		Name:  "Admin",
		Admin: true,
	}
	if _, err := employeeService.Create(ctx, st.ID, admin, "changeme-admin"); err != nil {
		log.Fatalw("seed admin", "error", err)
	}

	// Demo customer
	cust := customer.New("", "demo@storechain.dev", "Demo Customer", "42 Elm St")
	if _, err := customerService.Create(ctx, cust, "changeme-demo"); err != nil {
		log.Fatalw("seed customer", "error", err)
	}

	// Receive some stock onto the shelf
	items := []inventory.Product{
		*inventory.NewProduct("Espresso Beans", "1kg dark roast", "grocery", types.MustMoney("14.50"), 40),
		*inventory.NewProduct("French Press", "0.5L glass", "kitchen", types.MustMoney("24.00"), 12),
	}
	order, err := receivingService.Create(ctx, st.ID, items)
	if err != nil {
		log.Fatalw("seed inventory order", "error", err)
	}
	if err := receivingService.CompleteNextLineItem(ctx, order.ID); err != nil {
		log.Fatalw("seed shelf stock", "error", err)
	}

	log.Infow("seed complete",
		"store_id", st.ID,
		"admin_id", admin.ID,
		"customer_id", cust.ID,
	)
}
