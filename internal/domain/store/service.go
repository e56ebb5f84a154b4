package store

import (
	"context"
	"fmt"

	"storechain/internal/core/apperror"
	"storechain/internal/core/id"
	"storechain/internal/core/tx"
	"storechain/pkg/logger"
)

// Service provides business operations for stores, including the cascade
// that removes every dependent record when a store is deleted.
type Service struct {
	repo            Repository
	inventoryOrders InventoryOrders
	cartOrders      CartOrders
	shelf           ShelfStock
	employees       Employees
	txManager       tx.Manager
}

// NewService creates a new store service.
func NewService(
	repo Repository,
	inventoryOrders InventoryOrders,
	cartOrders CartOrders,
	shelf ShelfStock,
	employees Employees,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:            repo,
		inventoryOrders: inventoryOrders,
		cartOrders:      cartOrders,
		shelf:           shelf,
		employees:       employees,
		txManager:       txManager,
	}
}

// Create creates a new store.
func (s *Service) Create(ctx context.Context, st *Store) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}

	exists, err := s.repo.ExistsByNumber(ctx, st.StoreNumber)
	if err != nil {
		return fmt.Errorf("check store number: %w", err)
	}
	if exists {
		return apperror.NewDuplicate("store", "storeNumber", st.StoreNumber)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, st)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "store created", "id", st.ID, "store_number", st.StoreNumber)
	return nil
}

// GetByID retrieves a store by id.
func (s *Service) GetByID(ctx context.Context, storeID id.ID) (*Store, error) {
	return s.repo.GetByID(ctx, storeID)
}

// GetByNumber retrieves a store by its unique store number.
func (s *Service) GetByNumber(ctx context.Context, number string) (*Store, error) {
	return s.repo.GetByNumber(ctx, number)
}

// ListIDs returns the ids of all stores.
// Fails with an empty-collection error when none exist (legacy wire contract).
func (s *Service) ListIDs(ctx context.Context) ([]id.ID, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.NewEmptyCollection("store")
	}
	return ids, nil
}

// Update modifies store profile fields.
func (s *Service) Update(ctx context.Context, st *Store) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, st)
	})
}

// Delete removes a store and cascades to every dependent record: inventory
// orders with their unshelved line items, on-shelf stock, cart orders with
// their line items, and employees. The whole cascade runs in one transaction
// and is awaited, so a failure anywhere rolls the deletion back.
func (s *Service) Delete(ctx context.Context, storeID id.ID) error {
	var removed struct {
		inventoryOrders int
		cartOrders      int
		shelf           int64
		employees       int64
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		st, err := s.repo.GetByID(ctx, storeID)
		if err != nil {
			return err
		}

		orderIDs, err := s.inventoryOrders.ListIDsByStore(ctx, st.ID)
		if err != nil {
			return fmt.Errorf("list inventory orders: %w", err)
		}
		for _, orderID := range orderIDs {
			if err := s.inventoryOrders.Delete(ctx, orderID); err != nil {
				return fmt.Errorf("delete inventory order %s: %w", orderID, err)
			}
		}
		removed.inventoryOrders = len(orderIDs)

		cartIDs, err := s.cartOrders.ListIDsByStore(ctx, st.ID)
		if err != nil {
			return fmt.Errorf("list cart orders: %w", err)
		}
		for _, orderID := range cartIDs {
			if err := s.cartOrders.DeleteOrder(ctx, orderID); err != nil {
				return fmt.Errorf("delete cart order %s: %w", orderID, err)
			}
		}
		removed.cartOrders = len(cartIDs)

		if removed.shelf, err = s.shelf.DeleteByStore(ctx, st.ID); err != nil {
			return fmt.Errorf("delete shelf stock: %w", err)
		}

		if removed.employees, err = s.employees.DeleteByStore(ctx, st.ID); err != nil {
			return fmt.Errorf("delete employees: %w", err)
		}

		return s.repo.Delete(ctx, st.ID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "store deleted",
		"id", storeID,
		"inventory_orders", removed.inventoryOrders,
		"cart_orders", removed.cartOrders,
		"shelf_products", removed.shelf,
		"employees", removed.employees,
	)
	return nil
}
